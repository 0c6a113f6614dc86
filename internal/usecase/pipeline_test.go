package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"techdigest/internal/collect"
	"techdigest/internal/domain"
	"techdigest/internal/enrich"
	"techdigest/internal/ports"
	"techdigest/internal/section"
)

type stubFetcher struct {
	source domain.Source
	items  []domain.RawItem
	err    error
}

func (f *stubFetcher) Source() domain.Source { return f.source }

func (f *stubFetcher) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	return f.items, f.err
}

func newStubFetcher(id, name string, titles ...string) *stubFetcher {
	f := &stubFetcher{source: domain.Source{ID: id, Name: name, URL: "https://" + id + ".example.com"}}
	for i, title := range titles {
		f.items = append(f.items, domain.RawItem{
			Title:    title,
			URL:      "https://" + id + ".example.com/" + string(rune('a'+i)),
			Source:   name,
			SourceID: id,
			Type:     domain.TypeNews,
		})
	}
	return f
}

type recordingPublisher struct {
	name   string
	err    error
	digest *domain.Digest
}

func (p *recordingPublisher) Name() string { return p.name }

func (p *recordingPublisher) Publish(ctx context.Context, d domain.Digest) error {
	if p.err != nil {
		return p.err
	}
	p.digest = &d
	return nil
}

type recordingArchive struct {
	saved int
	err   error
}

func (a *recordingArchive) SaveRun(ctx context.Context, d domain.Digest, payload []byte) error {
	if a.err != nil {
		return a.err
	}
	a.saved++
	return nil
}

func newTestPipeline(t *testing.T, deps PipelineDeps) *Pipeline {
	t.Helper()
	if deps.Collector == nil {
		deps.Collector = collect.New(4, 5*time.Second, nil)
	}
	if deps.Builder == nil {
		builder, err := section.NewBuilder(section.DefaultRecipes())
		if err != nil {
			t.Fatalf("NewBuilder error: %v", err)
		}
		deps.Builder = builder
	}
	if deps.Enricher == nil {
		deps.Enricher = enrich.New(2, time.Second, nil)
	}
	return NewPipeline(deps)
}

func TestPipelineRunEndToEnd(t *testing.T) {
	t.Parallel()

	fetchers := []ports.Fetcher{
		newStubFetcher("hackernews", "Hacker News",
			"GPT model breaks coding benchmark"),
		newStubFetcher("techcrunch", "TechCrunch",
			"Startup raises Series A funding"),
	}
	pub := &recordingPublisher{name: "file"}
	archive := &recordingArchive{}

	p := newTestPipeline(t, PipelineDeps{
		Fetchers:   fetchers,
		Publishers: []ports.Publisher{pub},
		Archive:    archive,
	})

	now := time.Now()
	digest, err := p.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !digest.GeneratedAt.Equal(now) {
		t.Fatalf("unexpected timestamp: %v", digest.GeneratedAt)
	}
	if pub.digest == nil {
		t.Fatal("publisher did not receive the digest")
	}
	if archive.saved != 1 {
		t.Fatalf("expected 1 archived run, got %d", archive.saved)
	}

	top := findSection(t, digest, domain.SectionTopNews)
	categories := map[string]string{}
	for _, item := range top.Items {
		categories[item.Title] = item.Category
	}
	if categories["GPT model breaks coding benchmark"] != domain.CategoryAIML {
		t.Fatalf("expected AI/ML item in top news, got %v", categories)
	}
	if categories["Startup raises Series A funding"] != domain.CategoryStartups {
		t.Fatalf("expected funding item in top news, got %v", categories)
	}

	seen := map[string]bool{}
	for _, sec := range digest.Sections {
		for _, item := range sec.Items {
			if seen[item.URL] {
				t.Fatalf("url %s appears twice", item.URL)
			}
			seen[item.URL] = true
			if item.Summary == "" {
				t.Fatalf("item %q not enriched", item.Title)
			}
		}
	}
}

func TestPipelineToleratesPartialFailure(t *testing.T) {
	t.Parallel()

	fetchers := []ports.Fetcher{
		newStubFetcher("hackernews", "Hacker News", "Working source story"),
		&stubFetcher{
			source: domain.Source{ID: "down", Name: "Down Source"},
			err:    errors.New("connect refused"),
		},
	}

	pub := &recordingPublisher{name: "file"}
	p := newTestPipeline(t, PipelineDeps{
		Fetchers:   fetchers,
		Publishers: []ports.Publisher{pub},
	})

	digest, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if digest.TotalItems() != 1 {
		t.Fatalf("expected 1 item, got %d", digest.TotalItems())
	}
}

func TestPipelinePublishesEmptyDigestWhenAllSourcesFail(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{name: "file"}
	p := newTestPipeline(t, PipelineDeps{
		Fetchers: []ports.Fetcher{
			&stubFetcher{source: domain.Source{ID: "a", Name: "A"}, err: errors.New("boom")},
			&stubFetcher{source: domain.Source{ID: "b", Name: "B"}, err: errors.New("boom")},
		},
		Publishers: []ports.Publisher{pub},
	})

	digest, err := p.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("source failures must not abort the run: %v", err)
	}
	if digest.TotalItems() != 0 {
		t.Fatalf("expected empty digest, got %d items", digest.TotalItems())
	}
	if pub.digest == nil {
		t.Fatal("empty digest should still be published")
	}
}

func TestPipelinePublishErrorAborts(t *testing.T) {
	t.Parallel()

	okPub := &recordingPublisher{name: "file"}
	badPub := &recordingPublisher{name: "telegram", err: errors.New("api down")}

	p := newTestPipeline(t, PipelineDeps{
		Fetchers:   []ports.Fetcher{newStubFetcher("hackernews", "Hacker News", "Some story")},
		Publishers: []ports.Publisher{okPub, badPub},
	})

	if _, err := p.Run(context.Background(), time.Now()); err == nil {
		t.Fatal("expected publish error to surface")
	}
	if okPub.digest == nil {
		t.Fatal("first publisher should have run before the failure")
	}
}

func TestPipelineArchiveErrorIsNotFatal(t *testing.T) {
	t.Parallel()

	archive := &recordingArchive{err: errors.New("db down")}
	p := newTestPipeline(t, PipelineDeps{
		Fetchers: []ports.Fetcher{newStubFetcher("hackernews", "Hacker News", "Some story")},
		Archive:  archive,
	})

	if _, err := p.Run(context.Background(), time.Now()); err != nil {
		t.Fatalf("archive failure must not abort the run: %v", err)
	}
}

func findSection(t *testing.T, d domain.Digest, name string) domain.Section {
	t.Helper()
	for _, sec := range d.Sections {
		if sec.Name == name {
			return sec
		}
	}
	t.Fatalf("section %s not found", name)
	return domain.Section{}
}
