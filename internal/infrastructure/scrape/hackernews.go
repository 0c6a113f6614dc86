package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"techdigest/internal/domain"
)

const hackerNewsLimit = 8

// HackerNewsFetcher scrapes the front page story table.
type HackerNewsFetcher struct {
	client *Client
	source domain.Source
	limit  int
}

func NewHackerNewsFetcher(client *Client, source domain.Source, limit int) *HackerNewsFetcher {
	if limit <= 0 {
		limit = hackerNewsLimit
	}
	return &HackerNewsFetcher{client: client, source: source, limit: limit}
}

func (f *HackerNewsFetcher) Source() domain.Source {
	return f.source
}

func (f *HackerNewsFetcher) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	doc, err := f.client.Document(ctx, f.source.URL)
	if err != nil {
		return nil, err
	}

	var items []domain.RawItem
	doc.Find("tr.athing").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("span.titleline a").First()
		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if title == "" || !ok || href == "" {
			return true
		}
		if strings.HasPrefix(href, "item?") {
			href = "https://news.ycombinator.com/" + href
		}
		items = append(items, domain.RawItem{
			Title:    title,
			URL:      href,
			Source:   f.source.Name,
			SourceID: f.source.ID,
			Type:     domain.TypeNews,
		})
		return len(items) < f.limit
	})

	return items, nil
}
