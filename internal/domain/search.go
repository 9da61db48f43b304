package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MaxSearchDepth caps content tree traversal. Object descent increments
// depth; array elements share their array's depth so list records stay
// searchable.
const MaxSearchDepth = 3

// SearchParams holds full-text search parameters over the content tree.
type SearchParams struct {
	Query   string // case-insensitive substring query
	Section string // optional: restrict to one top-level section
	Limit   int    // optional result cap
}

// Normalize applies bound correction to search params.
func (p *SearchParams) Normalize() {
	p.Query = strings.TrimSpace(p.Query)
	p.Section = strings.TrimSpace(p.Section)
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// SearchMatch is one string leaf that matched the query.
type SearchMatch struct {
	Path    string `json:"path"`    // dotted path, e.g. "hero.title"
	Section string `json:"section"` // top-level section the match lives in
	Text    string `json:"text"`
	Score   int    `json:"score"`
}

// SearchContent walks the raw content tree collecting string leaves that
// contain the query, scored by RelevanceScore and sorted by score
// descending (ties by path, for deterministic output). The tree is never
// mutated.
func SearchContent(doc map[string]any, params SearchParams) []SearchMatch {
	params.Normalize()
	if params.Query == "" || len(doc) == 0 {
		return nil
	}

	var matches []SearchMatch
	collect := func(section, path string, value string) {
		if score := RelevanceScore(value, params.Query); score > 0 {
			matches = append(matches, SearchMatch{
				Path:    path,
				Section: section,
				Text:    value,
				Score:   score,
			})
		}
	}

	for section, value := range doc {
		if params.Section != "" && section != params.Section {
			continue
		}
		walkContent(value, section, section, 1, collect)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Path < matches[j].Path
	})

	if params.Limit > 0 && len(matches) > params.Limit {
		matches = matches[:params.Limit]
	}

	return matches
}

func walkContent(value any, section, path string, depth int, collect func(section, path, value string)) {
	if depth > MaxSearchDepth {
		return
	}

	switch v := value.(type) {
	case string:
		collect(section, path, v)
	case map[string]any:
		for key, child := range v {
			walkContent(child, section, path+"."+key, depth+1, collect)
		}
	case []any:
		for i, child := range v {
			walkContent(child, section, fmt.Sprintf("%s[%d]", path, i), depth, collect)
		}
	}
}
