// Package classify assigns each item exactly one topical category using an
// ordered list of keyword rules. The first matching rule wins, so the table
// order encodes deliberate precedence: AI/ML outranks generic DevTools, and
// Security sits after Open Source so "hack" in a repository description does
// not shadow it.
package classify

import (
	"strings"

	"techdigest/internal/domain"
)

// Rule is one predicate in the ordered table. A rule matches when any keyword
// is found in the normalized text (title + summary + source name). Guards
// narrow a match: Exclude keywords veto it when present in the title or
// summary, and a non-empty Sources set restricts the rule to those source
// display names. Rules without keywords match on source name alone via
// SourceMarks substrings.
type Rule struct {
	Label       string
	Keywords    []string
	Exclude     []string
	Sources     []string
	SourceMarks []string
}

// DefaultLabel is returned when no rule matches.
const DefaultLabel = domain.CategoryTechNews

// Rules returns the classification table in evaluation order. Callers must
// not reorder it: later rules are unreachable for text matching an earlier
// one.
func Rules() []Rule {
	return []Rule{
		{
			Label:    domain.CategoryAIML,
			Keywords: []string{"ai", "gpt", "llm", "openai", "neural network", "machine learning", "deep learning", "model", "transformers", "language model"},
			Exclude:  []string{"hack", "breach"},
		},
		{
			Label:    domain.CategoryOpenSource,
			Keywords: []string{"github", "open source", "repository", "rust", "golang"},
			Sources:  []string{"GitHub Trending"},
		},
		{
			Label:    domain.CategoryWebDev,
			Keywords: []string{"web", "frontend", "react", "javascript", "css", "html", "vue", "typescript"},
		},
		{
			Label:    domain.CategoryCloud,
			Keywords: []string{"cloud", "aws", "kubernetes", "docker", "infrastructure", "devops", "datacenter"},
		},
		{
			Label:    domain.CategoryDevTools,
			Keywords: []string{"tool", "framework", "library", "cli", "command line"},
		},
		{
			Label:    domain.CategoryStartups,
			Keywords: []string{"startup", "funding", "raise", "series a", "vc", "venture", "billion"},
		},
		{
			Label:    domain.CategoryLaunches,
			Keywords: []string{"launch", "announce", "new", "release", "product hunt", "beta"},
			Sources:  []string{"Product Hunt"},
		},
		{
			Label:    domain.CategoryResearch,
			Keywords: []string{"research", "paper", "arxiv", "study", "google research", "stanford", "mit"},
		},
		{
			Label:    domain.CategorySecurity,
			Keywords: []string{"security", "breach", "vulnerability", "crypto", "privacy", "encryption"},
		},
		{
			Label:    domain.CategoryPolicy,
			Keywords: []string{"policy", "regulation", "law", "government", "act", "dsa", "gdpr"},
		},
		{
			Label:    domain.CategoryIndiaTech,
			Keywords: []string{"india", "yourstory", "et tech", "moneycontrol", "indian"},
		},
		{
			Label:       domain.CategoryCommunity,
			SourceMarks: []string{"reddit", "r/"},
		},
	}
}

// Classify maps an item's text to one category label. It is total and
// deterministic: identical input always yields the identical label.
func Classify(title, summary, sourceName string) string {
	return classifyWith(Rules(), title, summary, sourceName)
}

func classifyWith(rules []Rule, title, summary, sourceName string) string {
	body := strings.ToLower(strings.TrimSpace(title + " " + summary))
	source := strings.ToLower(sourceName)
	text := body + " " + source

	for _, rule := range rules {
		if !rule.matches(text, source) {
			continue
		}
		if rule.excluded(body) {
			continue
		}
		if len(rule.Sources) > 0 && !containsFold(rule.Sources, sourceName) {
			continue
		}
		return rule.Label
	}
	return DefaultLabel
}

func (r Rule) matches(text, source string) bool {
	if len(r.Keywords) == 0 {
		for _, mark := range r.SourceMarks {
			if strings.Contains(source, mark) {
				return true
			}
		}
		return false
	}
	for _, kw := range r.Keywords {
		if matchKeyword(text, kw) {
			return true
		}
	}
	return false
}

func (r Rule) excluded(body string) bool {
	for _, kw := range r.Exclude {
		if matchKeyword(body, kw) {
			return true
		}
	}
	return false
}

// matchKeyword finds kw inside text. Keywords of three characters or fewer
// must sit on word boundaries, otherwise "ai" would match "raises" and "mit"
// would match "limit". Longer and multi-word keywords match as substrings.
func matchKeyword(text, kw string) bool {
	if len(kw) > 3 || strings.ContainsRune(kw, ' ') {
		return strings.Contains(text, kw)
	}

	for start := 0; ; {
		i := strings.Index(text[start:], kw)
		if i < 0 {
			return false
		}
		i += start
		if boundary(text, i-1) && boundary(text, i+len(kw)) {
			return true
		}
		start = i + 1
	}
}

func boundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9')
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}
