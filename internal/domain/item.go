package domain

import "time"

// ItemType tags how an item was produced upstream (story listing, subreddit
// post, article page, trending repository).
type ItemType string

const (
	TypeNews       ItemType = "news"
	TypeDiscussion ItemType = "discussion"
	TypeArticle    ItemType = "article"
	TypeProject    ItemType = "project"
)

// Source is one fetch target: a location plus its stable identifier and the
// name shown to readers. Defined at startup, never mutated.
type Source struct {
	URL  string
	ID   string
	Name string
}

// RawItem is a normalized entry produced by a source adapter. Title and URL
// are required; adapters drop entries missing either before they reach the
// pipeline. Summary is optional and only pre-filled by feed adapters.
type RawItem struct {
	Title    string
	URL      string
	Source   string
	SourceID string
	Summary  string
	Type     ItemType
}

// ClassifiedItem is a RawItem with its category label assigned. Summary is
// replaced by the enricher after section assignment; until then it holds
// whatever the adapter provided.
type ClassifiedItem struct {
	RawItem
	Category string
}

// Section is one named output bucket with its items in final display order.
type Section struct {
	Name  string
	Items []ClassifiedItem
}

// Digest is the published artifact: a timestamped ordered list of sections.
// Within a digest no URL appears twice; the section builder's final dedup
// pass enforces this.
type Digest struct {
	GeneratedAt time.Time
	Sections    []Section
}

// TotalItems counts items across all sections.
func (d Digest) TotalItems() int {
	total := 0
	for _, s := range d.Sections {
		total += len(s.Items)
	}
	return total
}

// Category labels assigned by the classifier.
const (
	CategoryAIML       = "AI/ML"
	CategoryOpenSource = "Open Source"
	CategoryWebDev     = "Web Development"
	CategoryCloud      = "Cloud/Infrastructure"
	CategoryDevTools   = "DevTools"
	CategoryStartups   = "Startups/Funding"
	CategoryLaunches   = "Product Launches"
	CategoryResearch   = "Research"
	CategorySecurity   = "Security"
	CategoryPolicy     = "Policy/Regulation"
	CategoryIndiaTech  = "India Tech"
	CategoryCommunity  = "Community Discussion"
	CategoryTechNews   = "Tech News"
)

// Section names in display order.
const (
	SectionTopNews   = "TOP NEWS"
	SectionTrending  = "TRENDING NOW"
	SectionResearch  = "RESEARCH & INNOVATION"
	SectionDev       = "DEVELOPMENT"
	SectionCommunity = "COMMUNITY"
)
