package scheduler

import (
	"context"
	"time"

	"SeoContentEngine/internal/ports"
)

// DailyScheduler drives the analytics digest on a fixed daily interval using
// time.Ticker, anchored to the configured location's start of day.
type DailyScheduler struct {
	location *time.Location
	stop     chan struct{}
}

var _ ports.Scheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler running in the given timezone.
func NewDailyScheduler(location *time.Location) *DailyScheduler {
	if location == nil {
		location = time.UTC
	}
	return &DailyScheduler{location: location}
}

// Start begins ticking once a day; the job also runs immediately so a fresh
// deploy publishes a digest without waiting a full day.
func (s *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		job(time.Now().In(s.location))
		for {
			select {
			case t := <-ticker.C:
				job(t.In(s.location))
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *DailyScheduler) Stop(_ context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
