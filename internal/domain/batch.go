package domain

import "time"

// ItemState enumerates the lifecycle of one keyword inside a batch job.
type ItemState string

const (
	ItemPending   ItemState = "pending"
	ItemRunning   ItemState = "running"
	ItemSucceeded ItemState = "succeeded"
	ItemFailed    ItemState = "failed"
)

// Terminal reports whether no further transition can occur.
func (s ItemState) Terminal() bool {
	return s == ItemSucceeded || s == ItemFailed
}

// BatchItem is one keyword's execution slot within a job. Result is set only
// in the succeeded state, Reason only in the failed state.
type BatchItem struct {
	Keyword string
	State   ItemState
	Result  *ValidatedContent
	Reason  string
}

// BatchJob tracks the ordered item set of one submission. Items keep their
// submission order regardless of completion timing.
type BatchJob struct {
	ID               string
	ContentType      ContentType
	Items            []BatchItem
	ConcurrencyLimit int
	CreatedAt        time.Time
}

// Completed reports whether every item reached a terminal state.
func (j *BatchJob) Completed() bool {
	for i := range j.Items {
		if !j.Items[i].State.Terminal() {
			return false
		}
	}
	return true
}

// Progress is a read-only snapshot returned to progress queries.
type Progress struct {
	JobID     string
	Total     int
	Completed int
	Done      bool
	Items     []BatchItem
}
