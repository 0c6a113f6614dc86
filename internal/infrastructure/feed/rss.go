// Package feed adapts RSS and Atom endpoints into the fetcher port.
package feed

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"techdigest/internal/domain"
)

const (
	defaultLimit = 6
	summaryLen   = 200
)

var tagExpr = regexp.MustCompile(`<[^>]+>`)

// RSSFetcher pulls entries from a syndication feed. Feed descriptions become
// item summaries so these items skip page enrichment later.
type RSSFetcher struct {
	parser *gofeed.Parser
	source domain.Source
	limit  int
}

func NewRSSFetcher(source domain.Source, limit int) *RSSFetcher {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &RSSFetcher{parser: gofeed.NewParser(), source: source, limit: limit}
}

func (f *RSSFetcher) Source() domain.Source {
	return f.source
}

func (f *RSSFetcher) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	parsed, err := f.parser.ParseURLWithContext(f.source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []domain.RawItem
	for _, entry := range parsed.Items {
		if len(items) >= f.limit {
			break
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" || entry.Link == "" {
			continue
		}
		items = append(items, domain.RawItem{
			Title:    title,
			URL:      entry.Link,
			Source:   f.source.Name,
			SourceID: f.source.ID,
			Summary:  cleanDescription(entry.Description),
			Type:     domain.TypeArticle,
		})
	}

	return items, nil
}

// cleanDescription strips markup from a feed description and trims it to a
// digest-sized summary.
func cleanDescription(desc string) string {
	text := tagExpr.ReplaceAllString(desc, " ")
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > summaryLen {
		text = strings.TrimSpace(string(runes[:summaryLen])) + "..."
	}
	return text
}
