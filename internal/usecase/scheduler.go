package usecase

import (
	"context"
	"log/slog"
	"time"

	"techdigest/internal/ports"
)

// Scheduler wires the cron driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	log      *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring digest runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, log: logger}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if _, err := s.pipeline.Run(ctx, trigger); err != nil && s.log != nil {
			s.log.Error("scheduled run failed", slog.Any("error", err))
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
