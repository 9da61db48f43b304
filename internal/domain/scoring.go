// Package domain contains the core content model and validation logic.
package domain

import (
	"strings"
	"unicode"
)

// Relevance score components. A matching string accumulates every
// component it satisfies, so an exact match also collects the prefix,
// whole-word, and substring components.
const (
	scoreExactMatch = 100
	scorePrefix     = 50
	scoreWholeWord  = 25
	scoreSubstring  = 10
	scorePerHit     = 5
)

// RelevanceScore computes the search relevance of text for query.
//
// Score = 100 (exact match)
//   - 50 (query is a prefix of the text)
//   - 25 (query appears as a whole word)
//   - 10 (query appears as a substring)
//   - 5 per occurrence of the query within the text
//
// Matching is case-insensitive. Returns 0 when the query does not occur
// in the text at all.
func RelevanceScore(text, query string) int {
	t := strings.ToLower(strings.TrimSpace(text))
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || t == "" || !strings.Contains(t, q) {
		return 0
	}

	score := scoreSubstring
	if t == q {
		score += scoreExactMatch
	}
	if strings.HasPrefix(t, q) {
		score += scorePrefix
	}
	if containsWholeWord(t, q) {
		score += scoreWholeWord
	}
	score += scorePerHit * strings.Count(t, q)

	return score
}

// containsWholeWord reports whether q occurs in t delimited by non-word
// characters (or the string boundaries).
func containsWholeWord(t, q string) bool {
	for from := 0; ; {
		idx := strings.Index(t[from:], q)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(q)

		leftOK := start == 0 || !isWordChar(rune(t[start-1]))
		rightOK := end == len(t) || !isWordChar(rune(t[end]))
		if leftOK && rightOK {
			return true
		}

		from = start + 1
		if from >= len(t) {
			return false
		}
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
