package filter

import (
	"strings"

	"github.com/outfitly/stylist/internal/domain/vocab"
)

// minTokenLength is the shortest search token worth matching; shorter tokens
// ("a", "of") are discarded before expansion.
const minTokenLength = 3

// searchTerm is a tokenized, synonym-expanded free-text term. The union
// pattern serves the coarse single-token pass; the per-token variant sets
// drive the strict AND match.
type searchTerm struct {
	tokens    []string   // retained tokens, case-folded
	variants  [][]string // variant set per retained token
	union     []string   // deduplicated union of all variant sets
	hasGender bool       // a token belongs to a gender family
}

// parseSearchTerm splits a raw term on whitespace, drops tokens shorter than
// minTokenLength, and expands each survivor through the variant tables.
func parseSearchTerm(raw string) searchTerm {
	var st searchTerm
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(raw)) {
		if len(word) < minTokenLength {
			continue
		}
		vs := vocab.ExpandToken(word)
		st.tokens = append(st.tokens, word)
		st.variants = append(st.variants, vs)
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				st.union = append(st.union, v)
			}
		}
		if vocab.IsGenderToken(word) {
			st.hasGender = true
		}
	}
	return st
}

func (st searchTerm) empty() bool { return len(st.tokens) == 0 }

// categoryPattern maps a category facet to its substring alternatives.
// Unmapped categories pass through as a single literal.
func categoryPattern(category string) []string {
	if alts, ok := vocab.CategoryPatterns[category]; ok {
		return alts
	}
	return []string{category}
}
