package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techdigest/internal/domain"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Research Blog</title>
    <item>
      <title>Scaling transformers further</title>
      <link>https://example.com/scaling</link>
      <description>&lt;p&gt;We present a &lt;b&gt;new&lt;/b&gt; approach to scaling.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Untitled entry</title>
      <link></link>
    </item>
    <item>
      <title>Second post</title>
      <link>https://example.com/second</link>
      <description></description>
    </item>
  </channel>
</rss>`

func TestRSSFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	source := domain.Source{URL: server.URL, ID: "research-blog", Name: "Example Research"}
	f := NewRSSFetcher(source, 6)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected linkless entry dropped, got %d items", len(items))
	}
	if items[0].Title != "Scaling transformers further" {
		t.Fatalf("unexpected title: %s", items[0].Title)
	}
	if items[0].Summary != "We present a new approach to scaling." {
		t.Fatalf("expected markup stripped from summary, got %q", items[0].Summary)
	}
	if items[0].Type != domain.TypeArticle {
		t.Fatalf("unexpected type: %s", items[0].Type)
	}
	if items[1].Summary != "" {
		t.Fatalf("expected empty summary, got %q", items[1].Summary)
	}
}

func TestCleanDescriptionTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 100)
	got := cleanDescription(long)
	if len([]rune(got)) > summaryLen+3 {
		t.Fatalf("summary too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestRSSFetchLimit(t *testing.T) {
	t.Parallel()

	var entries []string
	for i := 0; i < 10; i++ {
		entries = append(entries, `<item><title>Post</title><link>https://example.com/p</link></item>`)
	}
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>T</title>` +
		strings.Join(entries, "") + `</channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	f := NewRSSFetcher(domain.Source{URL: server.URL, ID: "blog", Name: "Blog"}, 4)
	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected limit of 4, got %d", len(items))
	}
}
