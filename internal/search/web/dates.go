package web

import "encoding/json"

// Publication dates live in heterogeneous, optional pagemap metadata. They
// are pulled out by a chain of named extractors tried in a fixed order, each
// looking at one pagemap section; the first value found wins. Absence of any
// section or key is not an error — the result simply carries no date.

var pagemapSections = []string{"metatags", "article", "webpage", "newsarticle"}

var publishedKeys = []string{
	"article:published_time",
	"og:published_time",
	"published_time",
	"datepublished",
	"date",
	"publishdate",
}

var updatedKeys = []string{
	"article:modified_time",
	"og:updated_time",
	"modified_time",
	"datemodified",
}

// extractDates pulls best-effort published/updated strings out of a raw
// pagemap. Either return value may be empty.
func extractDates(pagemap json.RawMessage) (published, updated string) {
	if len(pagemap) == 0 {
		return "", ""
	}

	var sections map[string][]map[string]any
	if err := json.Unmarshal(pagemap, &sections); err != nil {
		return "", ""
	}

	published = firstDate(sections, publishedKeys)
	updated = firstDate(sections, updatedKeys)
	return published, updated
}

func firstDate(sections map[string][]map[string]any, keys []string) string {
	for _, name := range pagemapSections {
		entries, ok := sections[name]
		if !ok || len(entries) == 0 {
			continue
		}
		entry := entries[0]
		for _, key := range keys {
			if value, ok := entry[key].(string); ok && value != "" {
				return value
			}
		}
	}
	return ""
}
