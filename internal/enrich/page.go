package enrich

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
)

const (
	maxPageText     = 400
	minSentenceLen  = 20
	maxSentenceLen  = 150
	pageClientLimit = 15 * time.Second
)

var contentClassExpr = regexp.MustCompile(`content|article|body|post`)

// PageSummarizer extracts a short summary from the item's linked page: it
// strips boilerplate markup, looks for the main content container, and picks
// the first sentence of reasonable length. When the page yields nothing
// usable it falls back to the cleaned title.
type PageSummarizer struct {
	client *http.Client
}

var _ ports.Summarizer = (*PageSummarizer)(nil)

// NewPageSummarizer wires an HTTP client; a nil client gets a default with a
// conservative timeout (per-item deadlines come from the caller's context).
func NewPageSummarizer(client *http.Client) *PageSummarizer {
	if client == nil {
		client = &http.Client{Timeout: pageClientLimit}
	}
	return &PageSummarizer{client: client}
}

// Summarize returns the first meaningful sentence of the linked page, or the
// cleaned truncated title when extraction comes up empty.
func (p *PageSummarizer) Summarize(ctx context.Context, item domain.ClassifiedItem) (string, error) {
	text, err := p.extract(ctx, item.URL)
	if err != nil {
		return "", err
	}

	if sentence := firstSentence(text); sentence != "" {
		return sentence, nil
	}
	return FallbackSummary(item.Title), nil
}

func (p *PageSummarizer) extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find("script, style, nav, footer, header, aside, meta").Remove()

	content := doc.Find("article").First()
	if content.Length() == 0 {
		content = doc.Find("main").First()
	}
	if content.Length() == 0 {
		content = doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			return contentClassExpr.MatchString(class)
		}).First()
	}
	if content.Length() == 0 {
		content = doc.Selection
	}

	text := strings.Join(strings.Fields(content.Text()), " ")

	// Login walls and code-browser chrome are not article text.
	if strings.Contains(text, "Search code") || strings.Contains(head(text, 100), "Sign in") {
		return "", nil
	}

	runes := []rune(text)
	if len(runes) > maxPageText {
		text = string(runes[:maxPageText])
	}
	return text, nil
}

func firstSentence(text string) string {
	if text == "" {
		return ""
	}
	sentences := strings.SplitN(text, ". ", 5)
	for i, sentence := range sentences {
		if i >= 4 {
			break
		}
		sentence = strings.TrimSpace(sentence)
		if len(sentence) > minSentenceLen && len(sentence) < maxSentenceLen && !strings.HasPrefix(sentence, "Skip") {
			return sentence + "."
		}
	}
	return ""
}

func head(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
