package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"techdigest/internal/domain"
)

const (
	githubLimit   = 8
	githubDescLen = 60
)

// GitHubTrendingFetcher scrapes the trending repositories page. The item
// title combines the repo name with a truncated description so the digest
// line is self-explanatory.
type GitHubTrendingFetcher struct {
	client *Client
	source domain.Source
	limit  int
}

func NewGitHubTrendingFetcher(client *Client, source domain.Source, limit int) *GitHubTrendingFetcher {
	if limit <= 0 {
		limit = githubLimit
	}
	return &GitHubTrendingFetcher{client: client, source: source, limit: limit}
}

func (f *GitHubTrendingFetcher) Source() domain.Source {
	return f.source
}

func (f *GitHubTrendingFetcher) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	doc, err := f.client.Document(ctx, f.source.URL)
	if err != nil {
		return nil, err
	}

	var items []domain.RawItem
	doc.Find("article").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		link := article.Find("h2 a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		repo := collapseSpace(link.Text())
		if repo == "" {
			return true
		}
		title := repo
		if desc := collapseSpace(article.Find("p.col-9").First().Text()); desc != "" {
			title = repo + ": " + truncateRunes(desc, githubDescLen)
		}
		items = append(items, domain.RawItem{
			Title:    title,
			URL:      "https://github.com" + href,
			Source:   f.source.Name,
			SourceID: f.source.ID,
			Type:     domain.TypeProject,
		})
		return len(items) < f.limit
	})

	return items, nil
}

// collapseSpace flattens the whitespace GitHub scatters through repo names
// ("owner /\n  repo") into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
