package usecase

import (
	"sync"

	"SeoContentEngine/internal/domain"
)

// JobStore holds batch jobs in memory, keyed by job id. It is the only shared
// mutable state in the engine; everything downstream of it is pure.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*jobState
}

// NewJobStore builds an empty store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: map[string]*jobState{}}
}

// Put registers a freshly created job and returns its mutable state.
func (s *JobStore) Put(job domain.BatchJob) *jobState {
	state := &jobState{
		job:  job,
		done: make(chan struct{}),
	}
	if job.Completed() {
		close(state.done)
	}

	s.mu.Lock()
	s.jobs[job.ID] = state
	s.mu.Unlock()
	return state
}

// Get looks up a job by id.
func (s *JobStore) Get(jobID string) (*jobState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.jobs[jobID]
	return state, ok
}

// jobState guards one job's items. Item identities are fixed at submission;
// only per-item state mutates, so a single job-scoped mutex covers both item
// transitions and the terminal counter.
type jobState struct {
	mu       sync.Mutex
	job      domain.BatchJob
	terminal int
	done     chan struct{}
}

// Done is closed once every item reached a terminal state.
func (s *jobState) Done() <-chan struct{} { return s.done }

// MarkRunning transitions a pending item to running. It reports false when
// the item is no longer pending (already cancelled), in which case the worker
// must skip it.
func (s *jobState) MarkRunning(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &s.job.Items[index]
	if item.State != domain.ItemPending {
		return false
	}
	item.State = domain.ItemRunning
	return true
}

// MarkSucceeded stores the validated content on the item.
func (s *jobState) MarkSucceeded(index int, content domain.ValidatedContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &s.job.Items[index]
	if item.State.Terminal() {
		return
	}
	item.State = domain.ItemSucceeded
	item.Result = &content
	item.Reason = ""
	s.noteTerminalLocked()
}

// MarkFailed records the failure reason verbatim.
func (s *jobState) MarkFailed(index int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &s.job.Items[index]
	if item.State.Terminal() {
		return
	}
	item.State = domain.ItemFailed
	item.Result = nil
	item.Reason = reason
	s.noteTerminalLocked()
}

// CancelPending fails every still-pending item with the given reason. Running
// items are left to finish naturally.
func (s *jobState) CancelPending(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.job.Items {
		item := &s.job.Items[i]
		if item.State != domain.ItemPending {
			continue
		}
		item.State = domain.ItemFailed
		item.Reason = reason
		s.noteTerminalLocked()
	}
}

// Snapshot returns a deep-enough copy for readers: items are copied so no
// half-updated state is ever observed.
func (s *jobState) Snapshot() domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.BatchItem, len(s.job.Items))
	copy(items, s.job.Items)

	return domain.Progress{
		JobID:     s.job.ID,
		Total:     len(items),
		Completed: s.terminal,
		Done:      s.terminal == len(items),
		Items:     items,
	}
}

// ContentType returns the immutable content type of the job.
func (s *jobState) ContentType() domain.ContentType {
	return s.job.ContentType
}

func (s *jobState) noteTerminalLocked() {
	s.terminal++
	if s.terminal == len(s.job.Items) {
		close(s.done)
	}
}
