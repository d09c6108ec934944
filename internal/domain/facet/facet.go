// Package facet defines the validated facet query consumed by the filter
// pipeline. Facet values arrive loosely structured from an upstream language
// model; construction normalizes them once and the query is immutable after.
package facet

import (
	"fmt"
	"strings"

	"github.com/outfitly/stylist/internal/domain"
)

// Default result limits per entry point.
const (
	DefaultFilterLimit    = 20
	DefaultExtendedLimit  = 100
	DefaultRecommendLimit = 4
)

// Gender is the canonical gender facet. Matching is exact, never substring,
// so a "men" query cannot match "Women" via the shared suffix.
type Gender string

const (
	// GenderNone means no gender filter is applied.
	GenderNone  Gender = ""
	GenderMen   Gender = "Men"
	GenderWomen Gender = "Women"
)

// ParseGender maps raw gender synonyms to the canonical catalog value.
// Unrecognized values yield GenderNone (facet treated as absent).
func ParseGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "men", "male":
		return GenderMen
	case "women", "female":
		return GenderWomen
	default:
		return GenderNone
	}
}

// Sort is the optional price ordering.
type Sort string

const (
	SortNone Sort = ""
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

// ParseSort validates the sort_by_price facet.
func ParseSort(raw string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SortNone, nil
	case "asc", "ascending":
		return SortAsc, nil
	case "desc", "descending":
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("%w: sort_by_price must be asc or desc, got %q", domain.ErrMalformedQuery, raw)
	}
}

// Params carries raw facet values into New.
type Params struct {
	Gender      string
	Category    string
	Color       string
	Size        string
	SearchTerm  string
	MinPrice    *float64
	MaxPrice    *float64
	SortByPrice string
	Limit       int
}

// Query is a validated facet query. Constructed per request, consumed once.
type Query struct {
	gender     Gender
	category   string
	color      string
	size       string
	searchTerm string
	minPrice   *float64
	maxPrice   *float64
	sort       Sort
	limit      int
}

// New validates and normalizes facet parameters. Limit falls back to
// defaultLimit when non-positive. Price bounds must be non-negative and
// ordered; a violated order is rejected rather than swapped.
func New(p Params, defaultLimit int) (Query, error) {
	sort, err := ParseSort(p.SortByPrice)
	if err != nil {
		return Query{}, err
	}
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return Query{}, fmt.Errorf("%w: min_price must be non-negative, got %f", domain.ErrMalformedQuery, *p.MinPrice)
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return Query{}, fmt.Errorf("%w: max_price must be non-negative, got %f", domain.ErrMalformedQuery, *p.MaxPrice)
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return Query{}, fmt.Errorf("%w: min_price %f exceeds max_price %f", domain.ErrMalformedQuery, *p.MinPrice, *p.MaxPrice)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return Query{
		gender:     ParseGender(p.Gender),
		category:   strings.ToLower(strings.TrimSpace(p.Category)),
		color:      strings.ToLower(strings.TrimSpace(p.Color)),
		size:       strings.ToLower(strings.TrimSpace(p.Size)),
		searchTerm: strings.ToLower(strings.TrimSpace(p.SearchTerm)),
		minPrice:   p.MinPrice,
		maxPrice:   p.MaxPrice,
		sort:       sort,
		limit:      limit,
	}, nil
}

// Gender returns the canonical gender facet (GenderNone when absent).
func (q Query) Gender() Gender { return q.gender }

// Category returns the case-folded category facet ("" when absent).
func (q Query) Category() string { return q.category }

// Color returns the case-folded color facet ("" when absent).
func (q Query) Color() string { return q.color }

// Size returns the case-folded size facet ("" when absent).
func (q Query) Size() string { return q.size }

// SearchTerm returns the case-folded free-text term ("" when absent).
func (q Query) SearchTerm() string { return q.searchTerm }

// MinPrice returns the lower price bound (nil when absent).
func (q Query) MinPrice() *float64 { return q.minPrice }

// MaxPrice returns the upper price bound (nil when absent).
func (q Query) MaxPrice() *float64 { return q.maxPrice }

// SortByPrice returns the requested price ordering.
func (q Query) SortByPrice() Sort { return q.sort }

// Limit returns the maximum number of rows to return.
func (q Query) Limit() int { return q.limit }
