// Package render turns a digest into its two transport shapes: the
// line-oriented plain-text message and the JSON artifact. Section order is
// preserved in both, which for JSON means hand-writing the sections object
// instead of marshaling a map.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"techdigest/internal/domain"
)

// Timestamps are rendered in a fixed +05:30 offset regardless of host zone.
var istZone = time.FixedZone("IST", 5*3600+30*60)

const timeLayout = "2006-01-02 15:04 IST"

// Timestamp formats t for digest headers and footers.
func Timestamp(t time.Time) string {
	return t.In(istZone).Format(timeLayout)
}

// Zone returns the digest's fixed display zone.
func Zone() *time.Location {
	return istZone
}

// Text renders the digest as a plain-text message: per section a header and
// dash rule, per item a summary line, a source/category line, and a link
// line. Empty sections are skipped.
func Text(d domain.Digest) string {
	var b strings.Builder
	rule := strings.Repeat("-", 50)

	for _, section := range d.Sections {
		if len(section.Items) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n%s\n", section.Name)
		fmt.Fprintf(&b, "%s\n", rule)

		for _, item := range section.Items {
			summary := item.Summary
			if summary == "" {
				summary = item.Title
			}
			fmt.Fprintf(&b, "%s\n", summary)
			fmt.Fprintf(&b, "Source: %s | %s\n", item.Source, item.Category)
			fmt.Fprintf(&b, "Link: %s\n\n", item.URL)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Generated: %s\n", Timestamp(d.GeneratedAt))
	b.WriteString("Next digest: Tomorrow 4 AM\n")

	return b.String()
}

type jsonItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	Category string `json:"category"`
	Link     string `json:"link"`
}

// JSON renders the digest as the published artifact:
// {"generated_at": "...", "sections": {name: [items...]}} with sections in
// display order and two-space indentation.
func JSON(d domain.Digest) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")

	generated, err := json.Marshal(Timestamp(d.GeneratedAt))
	if err != nil {
		return nil, fmt.Errorf("marshal timestamp: %w", err)
	}
	buf.WriteString(`"generated_at":`)
	buf.Write(generated)
	buf.WriteString(`,"sections":{`)

	for i, section := range d.Sections {
		if i > 0 {
			buf.WriteString(",")
		}

		name, err := json.Marshal(section.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal section name: %w", err)
		}
		buf.Write(name)
		buf.WriteString(":")

		items := make([]jsonItem, 0, len(section.Items))
		for _, item := range section.Items {
			summary := item.Summary
			if summary == "" {
				summary = item.Title
			}
			items = append(items, jsonItem{
				Title:    item.Title,
				Summary:  summary,
				Source:   item.Source,
				Category: item.Category,
				Link:     item.URL,
			})
		}

		encoded, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("marshal section %s: %w", section.Name, err)
		}
		buf.Write(encoded)
	}

	buf.WriteString("}}")

	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent digest: %w", err)
	}
	return indented.Bytes(), nil
}
