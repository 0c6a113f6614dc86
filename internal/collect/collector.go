// Package collect runs all source fetches under a bounded worker pool with an
// overall wall-clock budget. One source failing or hanging never affects the
// others; a task that misses the deadline is abandoned and contributes
// nothing.
package collect

import (
	"context"
	"log/slog"
	"time"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
)

// Result is the observable outcome of one fetch task. Failures are carried
// here so the caller can count them instead of losing them to a log line.
type Result struct {
	SourceID string
	Items    []domain.RawItem
	Err      error
}

// Collector holds the pool bounds. It keeps no state across calls.
type Collector struct {
	maxWorkers int
	overall    time.Duration
	logger     *slog.Logger
}

// New builds a collector with the given concurrency bound and aggregate
// deadline.
func New(maxWorkers int, overall time.Duration, logger *slog.Logger) *Collector {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Collector{maxWorkers: maxWorkers, overall: overall, logger: logger}
}

// Collect submits one task per fetcher and merges the items of every task
// that completes before the aggregate deadline. Merge order follows task
// completion, so it is not stable across runs. The returned results report
// the per-source outcomes that landed in time; abandoned sources appear in
// neither slice.
func (c *Collector) Collect(ctx context.Context, fetchers []ports.Fetcher) ([]domain.RawItem, []Result) {
	ctx, cancel := context.WithTimeout(ctx, c.overall)
	defer cancel()

	resultCh := make(chan Result, len(fetchers))
	sem := make(chan struct{}, c.maxWorkers)

	for _, f := range fetchers {
		go func(f ports.Fetcher) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			items, err := f.Fetch(ctx)
			select {
			case resultCh <- Result{SourceID: f.Source().ID, Items: items, Err: err}:
			case <-ctx.Done():
			}
		}(f)
	}

	// Single reader: the merged slice has no concurrent writers.
	var (
		merged  []domain.RawItem
		results []Result
	)
	for received := 0; received < len(fetchers); received++ {
		select {
		case res := <-resultCh:
			results = append(results, res)
			if res.Err != nil {
				c.log(slog.LevelWarn, "source fetch failed", "source", res.SourceID, "error", res.Err)
				continue
			}
			c.log(slog.LevelDebug, "source fetched", "source", res.SourceID, "items", len(res.Items))
			merged = append(merged, res.Items...)
		case <-ctx.Done():
			c.log(slog.LevelWarn, "collect deadline reached", "completed", received, "total", len(fetchers))
			return merged, results
		}
	}

	return merged, results
}

// Failed counts results that carried an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func (c *Collector) log(level slog.Level, msg string, args ...any) {
	if c.logger != nil {
		c.logger.Log(context.Background(), level, msg, args...)
	}
}
