// Package scheduler runs the digest job on a cron expression.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"techdigest/internal/ports"
	"techdigest/internal/render"
)

// CronScheduler triggers the job per a cron expression, evaluated in the
// digest timezone so "0 4 * * *" means 4 AM IST.
type CronScheduler struct {
	spec string
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler configured via cron expression string.
func NewCronScheduler(spec string) *CronScheduler {
	return &CronScheduler{spec: spec}
}

// Start schedules the job. Returns an error for an invalid expression.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if c.cron != nil {
		return nil
	}

	runner := cron.New(cron.WithLocation(render.Zone()))
	if _, err := runner.AddFunc(c.spec, func() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		job(time.Now())
	}); err != nil {
		return fmt.Errorf("parse cron expression %q: %w", c.spec, err)
	}
	runner.Start()
	c.cron = runner

	// Capture the local runner: Stop may nil the field concurrently.
	go func() {
		<-ctx.Done()
		runner.Stop()
	}()

	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (c *CronScheduler) Stop(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}
	stopCtx := c.cron.Stop()
	c.cron = nil

	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
