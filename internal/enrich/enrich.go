// Package enrich adds a short summary to every sectioned item using a second
// bounded worker-pool phase. Each item carries its own timeout; a summarizer
// failure never blocks other items and falls back to the truncated title.
package enrich

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
)

// Enricher applies a Summarizer to each item under a concurrency bound.
type Enricher struct {
	workers int
	perItem time.Duration
	logger  *slog.Logger
}

// New builds an enricher with the given pool size and per-item timeout.
func New(workers int, perItem time.Duration, logger *slog.Logger) *Enricher {
	if workers < 1 {
		workers = 1
	}
	return &Enricher{workers: workers, perItem: perItem, logger: logger}
}

// Enrich fills the Summary of every item in place. Items whose summarizer
// call errors or exceeds its timeout keep the truncated-title fallback.
// Feed-provided summaries are preserved as-is.
func (e *Enricher) Enrich(ctx context.Context, sections []domain.Section, summarizer ports.Summarizer) {
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for si := range sections {
		for ii := range sections[si].Items {
			item := &sections[si].Items[ii]
			if item.Summary != "" {
				continue
			}
			if summarizer == nil {
				item.Summary = FallbackSummary(item.Title)
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func(item *domain.ClassifiedItem) {
				defer wg.Done()
				defer func() { <-sem }()
				item.Summary = e.summarizeOne(ctx, summarizer, *item)
			}(item)
		}
	}

	wg.Wait()
}

// summarizeOne runs a single bounded summarizer call. Each goroutine writes
// to its own item, so no synchronization beyond the WaitGroup is needed.
func (e *Enricher) summarizeOne(ctx context.Context, summarizer ports.Summarizer, item domain.ClassifiedItem) string {
	itemCtx, cancel := context.WithTimeout(ctx, e.perItem)
	defer cancel()

	summary, err := summarizer.Summarize(itemCtx, item)
	if err != nil || summary == "" {
		if err != nil && e.logger != nil {
			e.logger.Debug("summary fallback", "url", item.URL, "error", err)
		}
		return FallbackSummary(item.Title)
	}
	return summary
}
