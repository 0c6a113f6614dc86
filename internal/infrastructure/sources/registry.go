// Package sources maps adapter names from config to fetcher implementations.
package sources

import (
	"fmt"
	"net/http"

	"techdigest/internal/config"
	"techdigest/internal/domain"
	"techdigest/internal/infrastructure/feed"
	"techdigest/internal/infrastructure/scrape"
	"techdigest/internal/ports"
)

// Builder constructs a fetcher for one configured source.
type Builder func(source domain.Source, limit int) ports.Fetcher

// Registry keeps a mapping from adapter names to fetcher builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry builds a registry with the standard adapters registered.
// A nil client gets the default scrape client timeout.
func NewRegistry(client *http.Client) *Registry {
	sc := scrape.NewClient(client)
	r := &Registry{builders: map[string]Builder{}}
	r.Register("hackernews", func(source domain.Source, limit int) ports.Fetcher {
		return scrape.NewHackerNewsFetcher(sc, source, limit)
	})
	r.Register("reddit", func(source domain.Source, limit int) ports.Fetcher {
		return scrape.NewRedditFetcher(sc, source, limit)
	})
	r.Register("generic", func(source domain.Source, limit int) ports.Fetcher {
		return scrape.NewGenericFetcher(sc, source, limit)
	})
	r.Register("github", func(source domain.Source, limit int) ports.Fetcher {
		return scrape.NewGitHubTrendingFetcher(sc, source, limit)
	})
	r.Register("rss", func(source domain.Source, limit int) ports.Fetcher {
		return feed.NewRSSFetcher(source, limit)
	})
	return r
}

// Register adds or replaces a builder.
func (r *Registry) Register(name string, builder Builder) {
	if r.builders == nil {
		r.builders = map[string]Builder{}
	}
	r.builders[name] = builder
}

// Resolve returns the builder for an adapter name or an error if absent.
func (r *Registry) Resolve(name string) (Builder, error) {
	if builder, ok := r.builders[name]; ok {
		return builder, nil
	}
	return nil, fmt.Errorf("adapter %s is not registered", name)
}

// Build turns the configured source list into fetchers. An unknown adapter
// name fails the whole build since it points at a config mistake.
func (r *Registry) Build(configs []config.SourceConfig) ([]ports.Fetcher, error) {
	fetchers := make([]ports.Fetcher, 0, len(configs))
	for _, sc := range configs {
		builder, err := r.Resolve(sc.Adapter)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", sc.ID, err)
		}
		fetchers = append(fetchers, builder(domain.Source{
			URL:  sc.URL,
			ID:   sc.ID,
			Name: sc.Name,
		}, sc.Limit))
	}
	return fetchers, nil
}
