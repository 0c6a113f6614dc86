// Package usecase orchestrates the digest workflow: collect, classify,
// section, enrich, publish, archive.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"techdigest/internal/classify"
	"techdigest/internal/collect"
	"techdigest/internal/domain"
	"techdigest/internal/enrich"
	"techdigest/internal/ports"
	"techdigest/internal/render"
	"techdigest/internal/section"
)

// PipelineDeps wires all driven adapters into the digest pipeline.
type PipelineDeps struct {
	Fetchers   []ports.Fetcher
	Collector  *collect.Collector
	Builder    *section.Builder
	Enricher   *enrich.Enricher
	Summarizer ports.Summarizer
	Publishers []ports.Publisher
	Archive    ports.DigestArchive
	Logger     *slog.Logger
}

// Pipeline implements the digest generation workflow.
type Pipeline struct {
	fetchers   []ports.Fetcher
	collector  *collect.Collector
	builder    *section.Builder
	enricher   *enrich.Enricher
	summarizer ports.Summarizer
	publishers []ports.Publisher
	archive    ports.DigestArchive
	log        *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		fetchers:   deps.Fetchers,
		collector:  deps.Collector,
		builder:    deps.Builder,
		enricher:   deps.Enricher,
		summarizer: deps.Summarizer,
		publishers: deps.Publishers,
		archive:    deps.Archive,
		log:        deps.Logger,
	}
}

// Run produces and delivers one digest. Source failures are tolerated as
// long as at least one source succeeds; publish failures abort the run.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (domain.Digest, error) {
	raw, results := p.collector.Collect(ctx, p.fetchers)

	for _, res := range results {
		if res.Err != nil {
			p.logWarn("source failed",
				slog.String("source", res.SourceID),
				slog.Any("error", res.Err))
		}
	}
	failed := collect.Failed(results)
	if len(p.fetchers) > 0 && failed == len(p.fetchers) {
		// Source-level failures are never fatal: an all-failed run still
		// produces and delivers an empty digest.
		p.logWarn("every source failed", slog.Int("sources", len(p.fetchers)))
	}
	p.logInfo("collected items",
		slog.Int("items", len(raw)),
		slog.Int("sources", len(p.fetchers)),
		slog.Int("failed", failed))

	classified := make([]domain.ClassifiedItem, len(raw))
	for i, item := range raw {
		classified[i] = domain.ClassifiedItem{
			RawItem:  item,
			Category: classify.Classify(item.Title, item.Summary, item.Source),
		}
	}

	sections := p.builder.Build(classified)

	if p.enricher != nil {
		p.enricher.Enrich(ctx, sections, p.summarizer)
	}

	digest := domain.Digest{GeneratedAt: now, Sections: sections}
	p.logInfo("digest built", slog.Int("items", digest.TotalItems()))

	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, digest); err != nil {
			return digest, fmt.Errorf("publish via %s: %w", pub.Name(), err)
		}
		p.logInfo("digest published", slog.String("channel", pub.Name()))
	}

	if p.archive != nil {
		payload, err := render.JSON(digest)
		if err == nil {
			err = p.archive.SaveRun(ctx, digest, payload)
		}
		if err != nil {
			// Archival is best effort; a storage outage must not block delivery.
			p.logWarn("archive failed", slog.Any("error", err))
		}
	}

	return digest, nil
}

func (p *Pipeline) logInfo(msg string, args ...any) {
	if p.log != nil {
		p.log.Info(msg, args...)
	}
}

func (p *Pipeline) logWarn(msg string, args ...any) {
	if p.log != nil {
		p.log.Warn(msg, args...)
	}
}
