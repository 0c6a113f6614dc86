// Package app wires configuration to use cases and lifecycle orchestration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"techdigest/internal/collect"
	"techdigest/internal/config"
	"techdigest/internal/enrich"
	"techdigest/internal/infrastructure/llm"
	"techdigest/internal/infrastructure/publish"
	"techdigest/internal/infrastructure/scheduler"
	"techdigest/internal/infrastructure/sources"
	"techdigest/internal/infrastructure/storage"
	"techdigest/internal/logging"
	"techdigest/internal/ports"
	"techdigest/internal/render"
	"techdigest/internal/section"
	"techdigest/internal/usecase"
)

// RunOptions adjust a single invocation from CLI flags.
type RunOptions struct {
	// Test prints the digest to stdout instead of publishing it.
	Test bool
	// NoSend publishes the file artifact but skips Telegram.
	NoSend bool
	// Debug lowers the log level to debug.
	Debug bool
}

// Application owns the assembled pipeline and its dependencies.
type Application struct {
	cfg      config.Config
	opts     RunOptions
	log      *slog.Logger
	pipeline *usecase.Pipeline
	closers  []func() error
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, opts RunOptions, baseLogger *slog.Logger) (*Application, error) {
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	a := &Application{cfg: cfg, opts: opts, log: baseLogger}

	httpClient := &http.Client{Timeout: cfg.Collector.FetchTimeout()}
	registry := sources.NewRegistry(httpClient)
	fetchers, err := registry.Build(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("build fetchers: %w", err)
	}

	builder, err := section.NewBuilder(section.DefaultRecipes())
	if err != nil {
		return nil, fmt.Errorf("build sections: %w", err)
	}

	var summarizer ports.Summarizer
	if cfg.OpenAI.APIKey != "" {
		summarizer = llm.NewOpenAISummarizer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		summarizer = enrich.NewPageSummarizer(&http.Client{Timeout: cfg.Enricher.ItemTimeout()})
	}

	publishers, err := a.buildPublishers()
	if err != nil {
		return nil, err
	}

	var archive ports.DigestArchive
	if cfg.Database.DSN != "" && !opts.Test {
		db, dbErr := storage.Open(context.Background(), cfg.Database.DSN)
		if dbErr != nil {
			// The archive is optional; run the digest without it.
			baseLogger.Warn("digest archive unavailable", slog.Any("error", dbErr))
		} else {
			archive = storage.NewPostgresArchive(db)
			a.closers = append(a.closers, db.Close)
		}
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Fetchers:   fetchers,
		Collector:  collect.New(cfg.Collector.MaxWorkers, cfg.Collector.OverallTimeout(), baseLogger.With("component", "collector")),
		Builder:    builder,
		Enricher:   enrich.New(cfg.Enricher.Workers, cfg.Enricher.ItemTimeout(), baseLogger.With("component", "enricher")),
		Summarizer: summarizer,
		Publishers: publishers,
		Archive:    archive,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return a, nil
}

func (a *Application) buildPublishers() ([]ports.Publisher, error) {
	if a.opts.Test {
		return nil, nil
	}

	repoDir := a.cfg.Output.RepoDir
	if a.opts.NoSend {
		// No-send runs keep the local artifact but push nothing anywhere.
		repoDir = ""
	}
	publishers := []ports.Publisher{
		publish.NewFilePublisher(a.cfg.Output.JSONPath, repoDir, a.cfg.Output.Branch,
			a.log.With("component", "publish.file")),
	}

	if a.opts.NoSend {
		return publishers, nil
	}
	if a.cfg.Telegram.BotToken != "" && a.cfg.Telegram.ChatID != 0 {
		tg, err := publish.NewTelegramPublisher(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID,
			a.log.With("component", "publish.telegram"))
		if err != nil {
			return nil, fmt.Errorf("telegram publisher: %w", err)
		}
		publishers = append(publishers, tg)
	}

	return publishers, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	digest, err := a.pipeline.Run(ctx, time.Now().In(render.Zone()))
	if err != nil {
		return err
	}

	if a.opts.Test {
		fmt.Fprintln(os.Stdout, render.Text(digest))
	}

	return nil
}

// Schedule runs the pipeline on the configured cron expression until the
// context is cancelled.
func (a *Application) Schedule(ctx context.Context) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression)
	sched := usecase.NewScheduler(driver, a.pipeline, a.log.With("component", "scheduler"))

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.log.Info("scheduler started", slog.String("cron", a.cfg.Scheduler.CronExpression))

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Close releases held resources such as the archive connection.
func (a *Application) Close() error {
	var firstErr error
	for _, closer := range a.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
