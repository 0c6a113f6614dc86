package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"techdigest/internal/domain"
)

const genericLimit = 6

// GenericFetcher handles blog-style listings where each entry sits in an
// <article> with an <h2> or <h3> headline link. Covers most tech news sites
// without a dedicated adapter.
type GenericFetcher struct {
	client *Client
	source domain.Source
	limit  int
}

func NewGenericFetcher(client *Client, source domain.Source, limit int) *GenericFetcher {
	if limit <= 0 {
		limit = genericLimit
	}
	return &GenericFetcher{client: client, source: source, limit: limit}
}

func (f *GenericFetcher) Source() domain.Source {
	return f.source
}

func (f *GenericFetcher) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	doc, err := f.client.Document(ctx, f.source.URL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(f.source.URL)
	if err != nil {
		return nil, err
	}

	var items []domain.RawItem
	seen := make(map[string]bool)
	doc.Find("article").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		heading := article.Find("h2, h3").First()
		link := heading.Find("a").First()
		if link.Length() == 0 {
			link = article.Find("a").First()
		}
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		href, ok := link.Attr("href")
		if title == "" || !ok || href == "" {
			return true
		}
		abs := resolveURL(base, href)
		if abs == "" || seen[abs] {
			return true
		}
		seen[abs] = true
		items = append(items, domain.RawItem{
			Title:    title,
			URL:      abs,
			Source:   f.source.Name,
			SourceID: f.source.ID,
			Type:     domain.TypeArticle,
		})
		return len(items) < f.limit
	})

	return items, nil
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
