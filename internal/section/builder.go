// Package section distributes classified items into the fixed named sections
// of a digest. Each section has a recipe of index slices over category pools;
// recipes are validated up front so two sections can never claim overlapping
// ranges of the same pool.
package section

import (
	"fmt"
	"sort"

	"techdigest/internal/domain"
)

// ToEnd marks an open-ended slice that runs to the end of its pool.
const ToEnd = -1

// Slice takes the closed-open index range [From, To) of one category pool.
type Slice struct {
	Category string
	From     int
	To       int
}

// Recipe describes how one section is filled: the slices are concatenated in
// order and the result truncated to Cap.
type Recipe struct {
	Name   string
	Cap    int
	Slices []Slice
}

// DefaultRecipes returns the production section layout in display order.
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			Name: domain.SectionTopNews,
			Cap:  8,
			Slices: []Slice{
				{Category: domain.CategoryAIML, From: 0, To: 2},
				{Category: domain.CategoryResearch, From: 0, To: 1},
				{Category: domain.CategoryCloud, From: 0, To: 2},
				{Category: domain.CategoryStartups, From: 0, To: 2},
				{Category: domain.CategoryTechNews, From: 0, To: 2},
			},
		},
		{
			Name: domain.SectionTrending,
			Cap:  6,
			Slices: []Slice{
				{Category: domain.CategoryCommunity, From: 0, To: 3},
				{Category: domain.CategoryLaunches, From: 0, To: 2},
				{Category: domain.CategoryIndiaTech, From: 0, To: 2},
				{Category: domain.CategoryTechNews, From: 2, To: 5},
			},
		},
		{
			Name: domain.SectionResearch,
			Cap:  5,
			Slices: []Slice{
				{Category: domain.CategoryResearch, From: 1, To: ToEnd},
				{Category: domain.CategoryOpenSource, From: 0, To: 2},
				{Category: domain.CategoryAIML, From: 2, To: ToEnd},
			},
		},
		{
			Name: domain.SectionDev,
			Cap:  6,
			Slices: []Slice{
				{Category: domain.CategoryWebDev, From: 0, To: ToEnd},
				{Category: domain.CategoryDevTools, From: 0, To: ToEnd},
				{Category: domain.CategoryOpenSource, From: 2, To: ToEnd},
				{Category: domain.CategoryTechNews, From: 5, To: 8},
			},
		},
		{
			Name: domain.SectionCommunity,
			Cap:  5,
			Slices: []Slice{
				{Category: domain.CategoryTechNews, From: 8, To: ToEnd},
				{Category: domain.CategoryPolicy, From: 0, To: ToEnd},
				{Category: domain.CategoryIndiaTech, From: 2, To: ToEnd},
			},
		},
	}
}

// Builder fills sections from category pools according to validated recipes.
type Builder struct {
	recipes []Recipe
}

// NewBuilder validates the recipes and returns a builder. A recipe set where
// two slices of the same category overlap, or where a slice range is
// malformed, is a configuration fault and rejected here rather than silently
// absorbed by the dedup pass.
func NewBuilder(recipes []Recipe) (*Builder, error) {
	if err := validate(recipes); err != nil {
		return nil, err
	}
	return &Builder{recipes: recipes}, nil
}

type claimedRange struct {
	section  string
	from, to int
}

func validate(recipes []Recipe) error {
	claims := map[string][]claimedRange{}

	for _, r := range recipes {
		if r.Cap <= 0 {
			return fmt.Errorf("section %q: capacity must be positive, got %d", r.Name, r.Cap)
		}
		for _, s := range r.Slices {
			if s.From < 0 {
				return fmt.Errorf("section %q: slice of %q starts at %d", r.Name, s.Category, s.From)
			}
			if s.To != ToEnd && s.To <= s.From {
				return fmt.Errorf("section %q: slice of %q has empty range [%d,%d)", r.Name, s.Category, s.From, s.To)
			}
			claims[s.Category] = append(claims[s.Category], claimedRange{section: r.Name, from: s.From, to: s.To})
		}
	}

	for category, ranges := range claims {
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].from < ranges[j].from })
		for i := 1; i < len(ranges); i++ {
			prev, cur := ranges[i-1], ranges[i]
			if prev.to == ToEnd || prev.to > cur.from {
				return fmt.Errorf("pool %q: sections %q and %q claim overlapping ranges", category, prev.section, cur.section)
			}
		}
	}

	return nil
}

// Build groups items into category pools (arrival order preserved), fills
// each section from its recipe, and drops any item whose URL already appeared
// in an earlier section or earlier position. Total over any input: an empty
// item list yields empty sections.
func (b *Builder) Build(items []domain.ClassifiedItem) []domain.Section {
	pools := map[string][]domain.ClassifiedItem{}
	for _, item := range items {
		pools[item.Category] = append(pools[item.Category], item)
	}

	sections := make([]domain.Section, 0, len(b.recipes))
	for _, recipe := range b.recipes {
		var filled []domain.ClassifiedItem
		for _, s := range recipe.Slices {
			filled = append(filled, cut(pools[s.Category], s)...)
		}
		if len(filled) > recipe.Cap {
			filled = filled[:recipe.Cap]
		}
		sections = append(sections, domain.Section{Name: recipe.Name, Items: filled})
	}

	dedup(sections)
	return sections
}

// cut clamps the slice range to the pool's current length.
func cut(pool []domain.ClassifiedItem, s Slice) []domain.ClassifiedItem {
	from, to := s.From, s.To
	if to == ToEnd || to > len(pool) {
		to = len(pool)
	}
	if from >= to {
		return nil
	}
	return pool[from:to]
}

// dedup scans sections in display order, keeping the first occurrence of
// every URL and dropping the rest.
func dedup(sections []domain.Section) {
	seen := map[string]struct{}{}
	for i := range sections {
		unique := sections[i].Items[:0]
		for _, item := range sections[i].Items {
			if _, ok := seen[item.URL]; ok {
				continue
			}
			seen[item.URL] = struct{}{}
			unique = append(unique, item)
		}
		sections[i].Items = unique
	}
}
