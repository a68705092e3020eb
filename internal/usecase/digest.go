package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SeoContentEngine/internal/analytics"
	"SeoContentEngine/internal/ports"
)

// AnalyticsDigest periodically summarizes the stored corpus and publishes the
// summary through the notifier.
type AnalyticsDigest struct {
	repository ports.ContentRepository
	notifier   ports.Notifier
	windowDays int
	logger     *slog.Logger
}

// NewAnalyticsDigest wires the recurring digest job.
func NewAnalyticsDigest(repo ports.ContentRepository, notifier ports.Notifier, windowDays int, logger *slog.Logger) *AnalyticsDigest {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &AnalyticsDigest{
		repository: repo,
		notifier:   notifier,
		windowDays: windowDays,
		logger:     logger,
	}
}

// Run aggregates the trailing window and publishes the digest.
func (d *AnalyticsDigest) Run(ctx context.Context, now time.Time) error {
	if d.repository == nil || d.notifier == nil {
		return nil
	}

	since := now.AddDate(0, 0, -d.windowDays)
	corpus, err := d.repository.ListSince(ctx, since)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	stats := analytics.Aggregate(corpus, d.windowDays, now)
	message := buildStatsDigest(stats, d.windowDays)

	if err := d.notifier.PublishDigest(ctx, message); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	if d.logger != nil {
		d.logger.Info("analytics digest published", "window_days", d.windowDays, "total", stats.TotalContent)
	}
	return nil
}

func buildStatsDigest(stats analytics.Stats, windowDays int) string {
	return fmt.Sprintf(
		"SEO content, last %d days: %d items, mean score %.2f (high %d / mid %d / low %d)",
		windowDays,
		stats.TotalContent,
		stats.AverageSeoScore,
		stats.ScoreDistribution[analytics.BandHigh],
		stats.ScoreDistribution[analytics.BandMid],
		stats.ScoreDistribution[analytics.BandLow],
	)
}

// DigestScheduler wires the cron-like driver with the digest job.
type DigestScheduler struct {
	driver ports.Scheduler
	digest *AnalyticsDigest
}

// NewDigestScheduler returns a helper to start/stop the recurring digest.
func NewDigestScheduler(driver ports.Scheduler, digest *AnalyticsDigest) *DigestScheduler {
	return &DigestScheduler{driver: driver, digest: digest}
}

// Start registers the digest with the provided scheduler.
func (s *DigestScheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.digest == nil {
		return nil
	}

	job := func(trigger time.Time) {
		_ = s.digest.Run(ctx, trigger)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *DigestScheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
