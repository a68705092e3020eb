package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/ports"
)

// CancelledReason marks items failed through job cancellation.
const CancelledReason = "cancelled"

// OrchestratorDeps wires the batch orchestrator.
type OrchestratorDeps struct {
	Pipeline *Pipeline
	Store    *JobStore
	Workers  int
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Orchestrator fans keyword batches out over a bounded worker pool. Submission
// never blocks; execution proceeds asynchronously and progress is queryable at
// any time.
type Orchestrator struct {
	pipeline *Pipeline
	store    *JobStore
	workers  int
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewOrchestrator constructs the orchestration component.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	workers := deps.Workers
	if workers <= 0 {
		workers = 5
	}
	store := deps.Store
	if store == nil {
		store = NewJobStore()
	}
	return &Orchestrator{
		pipeline: deps.Pipeline,
		store:    store,
		workers:  workers,
		notifier: deps.Notifier,
		logger:   deps.Logger,
	}
}

// SubmitBatch validates the keyword list, creates the job with every item
// pending, and starts execution immediately. Blank keywords are filtered;
// an empty remainder fails fast with ErrEmptyBatch and creates no job.
func (o *Orchestrator) SubmitBatch(keywords []string, contentType domain.ContentType) (string, error) {
	usable := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			usable = append(usable, keyword)
		}
	}
	if len(usable) == 0 {
		return "", domain.ErrEmptyBatch
	}

	items := make([]domain.BatchItem, len(usable))
	for i, keyword := range usable {
		items[i] = domain.BatchItem{Keyword: keyword, State: domain.ItemPending}
	}

	job := domain.BatchJob{
		ID:               uuid.NewString(),
		ContentType:      contentType,
		Items:            items,
		ConcurrencyLimit: o.workers,
		CreatedAt:        time.Now().UTC(),
	}

	state := o.store.Put(job)
	o.info("batch submitted", "job_id", job.ID, "items", len(items), "type", contentType)

	// Execution deliberately detaches from the caller's context: the job
	// outlives the submitting request and is cancelled via Cancel only.
	go o.run(context.Background(), state, usable)

	return job.ID, nil
}

func (o *Orchestrator) run(ctx context.Context, state *jobState, keywords []string) {
	indexes := make(chan int)
	go func() {
		for i := range keywords {
			indexes <- i
		}
		close(indexes)
	}()

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				o.processItem(ctx, state, i, keywords[i])
			}
		}()
	}
	wg.Wait()

	snapshot := state.Snapshot()
	o.info("batch completed", "job_id", snapshot.JobID,
		"succeeded", countState(snapshot.Items, domain.ItemSucceeded),
		"failed", countState(snapshot.Items, domain.ItemFailed))

	o.notifyCompletion(ctx, snapshot)
}

// processItem drives one item end to end. Items cancelled before a worker
// reaches them are already terminal and get skipped.
func (o *Orchestrator) processItem(ctx context.Context, state *jobState, index int, keyword string) {
	if !state.MarkRunning(index) {
		return
	}

	content, err := o.pipeline.ProcessKeyword(ctx, keyword, state.ContentType())
	if err != nil {
		state.MarkFailed(index, failureReason(err))
		return
	}
	state.MarkSucceeded(index, content)
}

// Progress returns a non-blocking, consistent snapshot of the job.
func (o *Orchestrator) Progress(jobID string) (domain.Progress, error) {
	state, ok := o.store.Get(jobID)
	if !ok {
		return domain.Progress{}, domain.ErrJobNotFound
	}
	return state.Snapshot(), nil
}

// Cancel fails all still-pending items and lets running items finish
// naturally; in-flight generator calls are external and not preempted.
func (o *Orchestrator) Cancel(jobID string) error {
	state, ok := o.store.Get(jobID)
	if !ok {
		return domain.ErrJobNotFound
	}
	state.CancelPending(CancelledReason)
	o.info("batch cancelled", "job_id", jobID)
	return nil
}

// WaitSync blocks until the job completes or the context expires, then
// returns the final snapshot. Used by the synchronous batch endpoint for
// modest batch sizes.
func (o *Orchestrator) WaitSync(ctx context.Context, jobID string) (domain.Progress, error) {
	state, ok := o.store.Get(jobID)
	if !ok {
		return domain.Progress{}, domain.ErrJobNotFound
	}

	select {
	case <-state.Done():
		return state.Snapshot(), nil
	case <-ctx.Done():
		return state.Snapshot(), ctx.Err()
	}
}

func (o *Orchestrator) notifyCompletion(ctx context.Context, snapshot domain.Progress) {
	if o.notifier == nil {
		return
	}

	digest := buildBatchDigest(snapshot)
	if err := o.notifier.PublishDigest(ctx, digest); err != nil {
		o.info("batch digest not delivered", "job_id", snapshot.JobID, "error", err)
	}
}

func buildBatchDigest(snapshot domain.Progress) string {
	succeeded := countState(snapshot.Items, domain.ItemSucceeded)
	failed := countState(snapshot.Items, domain.ItemFailed)

	var totalScore int
	for _, item := range snapshot.Items {
		if item.Result != nil {
			totalScore += item.Result.Validation.SeoScore.TotalScore
		}
	}
	mean := 0
	if succeeded > 0 {
		mean = totalScore / succeeded
	}

	return fmt.Sprintf("Batch %s finished: %d succeeded, %d failed, mean SEO score %d",
		snapshot.JobID, succeeded, failed, mean)
}

func countState(items []domain.BatchItem, state domain.ItemState) int {
	n := 0
	for _, item := range items {
		if item.State == state {
			n++
		}
	}
	return n
}

// failureReason keeps generation reasons verbatim for display and debugging.
func failureReason(err error) string {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) && genErr.Reason != "" {
		return genErr.Reason
	}
	return err.Error()
}

func (o *Orchestrator) info(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Info(msg, args...)
	}
}
