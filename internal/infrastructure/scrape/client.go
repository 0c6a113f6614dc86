// Package scrape implements the HTML source adapters: each fetcher turns one
// upstream listing page into normalized RawItems. Entries missing a title or
// URL are dropped here and never reach the pipeline.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultClientTimeout = 10 * time.Second

// Some listing sites reject obvious bot agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Client fetches and parses listing pages; shared by all HTML adapters.
type Client struct {
	http *http.Client
}

// NewClient wires an HTTP client; nil gets a default with a per-request
// timeout.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}
	return &Client{http: client}
}

// Document fetches pageURL and parses it into a goquery document.
func (c *Client) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}
