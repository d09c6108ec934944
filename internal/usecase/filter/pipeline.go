package filter

import (
	"sort"
	"strings"

	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	"github.com/outfitly/stylist/internal/domain/vocab"
)

// pipeline narrows a candidate set through an ordered sequence of facet
// stages. Each invocation owns its own copy of the rows, so concurrent
// calls never share mutable state. Every stage is a no-op when its facet is
// absent or when the set is already empty — an empty set stays empty so the
// zero-count diagnostic reflects the stage that exhausted it.
type pipeline struct {
	rows []product.Product
}

func newPipeline(source []product.Product) *pipeline {
	rows := make([]product.Product, len(source))
	copy(rows, source)
	return &pipeline{rows: rows}
}

func (p *pipeline) result() []product.Product { return p.rows }

func (p *pipeline) size() int { return len(p.rows) }

// keep replaces the candidate set with rows satisfying pred.
func (p *pipeline) keep(pred func(product.Product) bool) {
	kept := p.rows[:0:0]
	for _, r := range p.rows {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	p.rows = kept
}

// applyGender keeps rows whose gender column equals the canonical value.
// Equality, not substring: "Women" must not satisfy a Men query.
func (p *pipeline) applyGender(g facet.Gender) {
	if g == facet.GenderNone || len(p.rows) == 0 {
		return
	}
	p.keep(func(r product.Product) bool {
		return r.Gender == string(g)
	})
}

// applyCategory keeps rows whose description contains any pattern
// alternative for the category facet.
func (p *pipeline) applyCategory(category string) {
	if category == "" || len(p.rows) == 0 {
		return
	}
	alts := categoryPattern(category)
	p.keep(func(r product.Product) bool {
		return containsAny(r.Description, alts)
	})
}

// applyColor keeps rows whose colors column contains the color literal.
func (p *pipeline) applyColor(color string) {
	if color == "" || len(p.rows) == 0 {
		return
	}
	p.keep(func(r product.Product) bool {
		return containsFold(r.Colors, color)
	})
}

// applySize keeps rows whose sizes column contains the size literal.
func (p *pipeline) applySize(size string) {
	if size == "" || len(p.rows) == 0 {
		return
	}
	p.keep(func(r product.Product) bool {
		return containsFold(r.Sizes, size)
	})
}

// applyPrice keeps rows within [min, max]. Rows with an unparsable price
// never satisfy a bound and are dropped by this stage.
func (p *pipeline) applyPrice(min, max *float64) {
	if (min == nil && max == nil) || len(p.rows) == 0 {
		return
	}
	p.keep(func(r product.Product) bool {
		price, ok := r.Price()
		if !ok {
			return false
		}
		if min != nil && price < *min {
			return false
		}
		if max != nil && price > *max {
			return false
		}
		return true
	})
}

// applySort reorders the candidate set by numeric price. Rows with invalid
// prices sort last in either direction, keeping their relative order.
func (p *pipeline) applySort(s facet.Sort) {
	if s == facet.SortNone || len(p.rows) == 0 {
		return
	}
	sort.SliceStable(p.rows, func(i, j int) bool {
		pi, oki := p.rows[i].Price()
		pj, okj := p.rows[j].Price()
		if oki != okj {
			return oki // valid prices before invalid ones
		}
		if !oki {
			return false
		}
		if s == facet.SortAsc {
			return pi < pj
		}
		return pi > pj
	})
}

// applySearchTerm runs last, over the set the earlier stages produced.
//
// A single retained token matches through its variant union. Multiple tokens
// use strict AND semantics: every token, via its own variant set, must
// appear in the row's text columns — except gender-family tokens, which
// match the gender column exactly (every "Women's" description contains
// "men", so text matching cannot keep genders apart). When strict AND finds
// nothing the outcome depends on the gender-lock rule: a gender token keeps
// the zero result final, otherwise one relaxed OR pass over the raw tokens
// is tried against the same candidate set and used if it matches at least
// one row.
func (p *pipeline) applySearchTerm(st searchTerm) {
	if st.empty() || len(p.rows) == 0 {
		return
	}

	if len(st.tokens) == 1 {
		p.keep(func(r product.Product) bool {
			return tokenMatches(r, st.tokens[0], st.union)
		})
		return
	}

	strict := filterRows(p.rows, func(r product.Product) bool {
		for i, vs := range st.variants {
			if !tokenMatches(r, st.tokens[i], vs) {
				return false
			}
		}
		return true
	})

	if len(strict) == 0 && !st.hasGender {
		relaxed := filterRows(p.rows, func(r product.Product) bool {
			return matchesText(r, st.tokens)
		})
		if len(relaxed) > 0 {
			p.rows = relaxed
			return
		}
	}
	p.rows = strict
}

// tokenMatches checks one search token against a row: gender-family tokens
// compare the gender column exactly, everything else searches the text
// columns for any variant.
func tokenMatches(r product.Product, token string, variants []string) bool {
	if canonical := vocab.GenderTokenCanonical(token); canonical != "" {
		return r.Gender == canonical
	}
	return matchesText(r, variants)
}

// applyDescriptionTerms keeps rows whose description contains any of the
// given terms (pairing path).
func (p *pipeline) applyDescriptionTerms(terms []string) {
	if len(terms) == 0 || len(p.rows) == 0 {
		return
	}
	p.keep(func(r product.Product) bool {
		return containsAny(r.Description, terms)
	})
}

// applyNameTerm keeps rows whose brand/name contains the term.
func (p *pipeline) applyNameTerm(term string) {
	if term == "" || len(p.rows) == 0 {
		return
	}
	p.keep(func(r product.Product) bool {
		return containsFold(r.Name, term)
	})
}

// matchesText reports whether any alternative appears in the row's
// description or detailed description.
func matchesText(r product.Product, alts []string) bool {
	return containsAny(r.Description, alts) || containsAny(r.DetailedDescription, alts)
}

func filterRows(rows []product.Product, pred func(product.Product) bool) []product.Product {
	var kept []product.Product
	for _, r := range rows {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

func containsAny(text string, alts []string) bool {
	lower := strings.ToLower(text)
	for _, alt := range alts {
		if alt != "" && strings.Contains(lower, alt) {
			return true
		}
	}
	return false
}

// containsFold matches a single case-folded literal (facets are already
// lowercased at construction).
func containsFold(text, literal string) bool {
	return strings.Contains(strings.ToLower(text), literal)
}
