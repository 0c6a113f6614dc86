package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techdigest/internal/domain"
)

func serveHTML(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestHackerNewsFetch(t *testing.T) {
	t.Parallel()

	server := serveHTML(t, `
	<table>
	  <tr class="athing"><td>
	    <span class="titleline"><a href="https://example.com/gpu">New GPU Benchmarks</a></span>
	  </td></tr>
	  <tr class="athing"><td>
	    <span class="titleline"><a href="item?id=123">Ask HN: Favorite editor?</a></span>
	  </td></tr>
	  <tr class="athing"><td>
	    <span class="titleline"><a href="https://example.com/empty"></a></span>
	  </td></tr>
	</table>`, http.StatusOK)
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "hackernews", Name: "Hacker News"}
	f := NewHackerNewsFetcher(NewClient(server.Client()), source, 8)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "New GPU Benchmarks" {
		t.Fatalf("unexpected title: %s", items[0].Title)
	}
	if items[0].URL != "https://example.com/gpu" {
		t.Fatalf("unexpected url: %s", items[0].URL)
	}
	if items[0].Type != domain.TypeNews {
		t.Fatalf("unexpected type: %s", items[0].Type)
	}
	if items[1].URL != "https://news.ycombinator.com/item?id=123" {
		t.Fatalf("expected site-relative link resolved, got %s", items[1].URL)
	}
}

func TestHackerNewsFetchLimit(t *testing.T) {
	t.Parallel()

	var rows []string
	for i := 0; i < 10; i++ {
		rows = append(rows, `<tr class="athing"><td><span class="titleline"><a href="https://example.com/a">Story</a></span></td></tr>`)
	}
	server := serveHTML(t, "<table>"+strings.Join(rows, "")+"</table>", http.StatusOK)
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "hackernews", Name: "Hacker News"}
	f := NewHackerNewsFetcher(NewClient(server.Client()), source, 3)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(items))
	}
}

func TestRedditFetch(t *testing.T) {
	t.Parallel()

	server := serveHTML(t, `
	<shreddit-post post-title="Go 1.25 released" permalink="/r/golang/comments/abc/go_125_released/"></shreddit-post>
	<shreddit-post post-title="" permalink="/r/golang/comments/def/"></shreddit-post>
	<shreddit-post post-title="Generics question" permalink="/r/golang/comments/ghi/generics_question/"></shreddit-post>`, http.StatusOK)
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "reddit-golang", Name: "r/golang"}
	f := NewRedditFetcher(NewClient(server.Client()), source, 6)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].URL != "https://reddit.com/r/golang/comments/abc/go_125_released/" {
		t.Fatalf("unexpected url: %s", items[0].URL)
	}
	if items[0].Type != domain.TypeDiscussion {
		t.Fatalf("unexpected type: %s", items[0].Type)
	}
	if items[0].Source != "r/golang" {
		t.Fatalf("unexpected source: %s", items[0].Source)
	}
}

func TestGenericFetch(t *testing.T) {
	t.Parallel()

	server := serveHTML(t, `
	<article>
	  <h2><a href="/2026/08/chips">Chip shortage easing</a></h2>
	</article>
	<article>
	  <h3><a href="https://other.example.com/full">Full URL entry</a></h3>
	</article>
	<article>
	  <h2><a href="/2026/08/chips">Chip shortage easing</a></h2>
	</article>
	<article>
	  <div>No headline here</div>
	</article>`, http.StatusOK)
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "technews", Name: "Tech News Site"}
	f := NewGenericFetcher(NewClient(server.Client()), source, 6)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected duplicate and headline-less entries dropped, got %d items", len(items))
	}
	if items[0].URL != server.URL+"/2026/08/chips" {
		t.Fatalf("expected relative link resolved against page host, got %s", items[0].URL)
	}
	if items[1].URL != "https://other.example.com/full" {
		t.Fatalf("unexpected url: %s", items[1].URL)
	}
	if items[0].Type != domain.TypeArticle {
		t.Fatalf("unexpected type: %s", items[0].Type)
	}
}

func TestGitHubTrendingFetch(t *testing.T) {
	t.Parallel()

	server := serveHTML(t, `
	<article>
	  <h2><a href="/acme/fastcache">acme /
	      fastcache</a></h2>
	  <p class="col-9">A very fast in-memory cache library with sharding support and extensive benchmarks included</p>
	</article>
	<article>
	  <h2><a href="/solo/tinytool">solo / tinytool</a></h2>
	</article>`, http.StatusOK)
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "github", Name: "GitHub Trending"}
	f := NewGitHubTrendingFetcher(NewClient(server.Client()), source, 8)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !strings.HasPrefix(items[0].Title, "acme / fastcache: ") {
		t.Fatalf("expected repo name with description, got %s", items[0].Title)
	}
	if len([]rune(items[0].Title)) > len("acme / fastcache: ")+githubDescLen {
		t.Fatalf("description not truncated: %s", items[0].Title)
	}
	if items[0].URL != "https://github.com/acme/fastcache" {
		t.Fatalf("unexpected url: %s", items[0].URL)
	}
	if items[1].Title != "solo / tinytool" {
		t.Fatalf("expected bare repo name without description, got %s", items[1].Title)
	}
	if items[0].Type != domain.TypeProject {
		t.Fatalf("unexpected type: %s", items[0].Type)
	}
}

func TestClientRejectsBadStatus(t *testing.T) {
	t.Parallel()

	server := serveHTML(t, "nope", http.StatusForbidden)
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "hackernews", Name: "Hacker News"}
	f := NewHackerNewsFetcher(NewClient(server.Client()), source, 8)

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
