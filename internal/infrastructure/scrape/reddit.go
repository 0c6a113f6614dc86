package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"techdigest/internal/domain"
)

const redditLimit = 6

// RedditFetcher scrapes a subreddit listing rendered with shreddit-post
// custom elements, which carry the title and permalink as attributes.
type RedditFetcher struct {
	client *Client
	source domain.Source
	limit  int
}

func NewRedditFetcher(client *Client, source domain.Source, limit int) *RedditFetcher {
	if limit <= 0 {
		limit = redditLimit
	}
	return &RedditFetcher{client: client, source: source, limit: limit}
}

func (f *RedditFetcher) Source() domain.Source {
	return f.source
}

func (f *RedditFetcher) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	doc, err := f.client.Document(ctx, f.source.URL)
	if err != nil {
		return nil, err
	}

	var items []domain.RawItem
	doc.Find("shreddit-post").EachWithBreak(func(_ int, post *goquery.Selection) bool {
		title := strings.TrimSpace(post.AttrOr("post-title", ""))
		permalink := post.AttrOr("permalink", "")
		if title == "" || permalink == "" {
			return true
		}
		items = append(items, domain.RawItem{
			Title:    title,
			URL:      "https://reddit.com" + permalink,
			Source:   f.source.Name,
			SourceID: f.source.ID,
			Type:     domain.TypeDiscussion,
		})
		return len(items) < f.limit
	})

	return items, nil
}
