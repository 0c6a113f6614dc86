package enrich

import (
	"regexp"
	"strings"
)

// FallbackLength bounds the summary substituted when enrichment fails.
const FallbackLength = 90

var titlePrefixes = []string{"Show HN:", "Ask HN:", "Tell HN:", "[AMA]", "[Tutorial]", "[Guide]"}

var (
	domainTagExpr = regexp.MustCompile(`\([a-z0-9.]+\)`)
	bracketExpr   = regexp.MustCompile(`\[.*?\]`)
)

// CleanTitle strips aggregator prefixes, bracketed tags, and domain
// annotations like "(example.com)" that listing sites append to titles.
func CleanTitle(title string) string {
	clean := title
	for _, prefix := range titlePrefixes {
		clean = strings.TrimSpace(strings.ReplaceAll(clean, prefix, ""))
	}
	clean = domainTagExpr.ReplaceAllString(clean, "")
	clean = bracketExpr.ReplaceAllString(clean, "")
	return strings.Join(strings.Fields(clean), " ")
}

// FallbackSummary is the summary used when enrichment fails or times out:
// the cleaned title, truncated to FallbackLength.
func FallbackSummary(title string) string {
	clean := CleanTitle(title)
	runes := []rune(clean)
	if len(runes) <= FallbackLength {
		return clean
	}
	return string(runes[:FallbackLength-3]) + "..."
}
