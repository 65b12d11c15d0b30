package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/ingest"
)

// Scheduler periodically reloads derived metric snapshots into the
// repository, so files dropped into the data directory by the processing
// pipeline become queryable without a restart.
type Scheduler struct {
	scheduler *gocron.Scheduler
	loader    *ingest.SnapshotLoader
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler around the snapshot loader.
func New(loader *ingest.SnapshotLoader, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		loader:    loader,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic reload job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		n, err := s.loader.LoadAll(ctx)
		if err != nil {
			s.logger.Error("snapshot reload failed", "error", err)
			return
		}
		s.logger.Info("snapshot reload complete", "metrics", n)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
