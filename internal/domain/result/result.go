// Package result assembles matched catalog rows into the JSON-serializable
// shapes returned to collaborators (the tool-calling gateway and the chat
// orchestrator).
package result

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	"github.com/outfitly/stylist/internal/domain/vocab"
)

// Product is the full output record for filter responses.
type Product struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description"`
	Price               string `json:"price"`
	OriginalPrice       string `json:"original_price"`
	ImageURL            string `json:"image_url"`
	ProductURL          string `json:"product_url"`
	Sizes               string `json:"sizes"`
	Colors              string `json:"colors"`
	Messaging           string `json:"messaging"`
	OfferPercent        string `json:"offer_percent"`
	Gender              string `json:"gender"`
}

// Recommendation is the trimmed output record for the pairing path.
type Recommendation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	ProductURL  string `json:"product_url"`
	Sizes       string `json:"sizes"`
	Colors      string `json:"colors"`
}

// Applied echoes the normalized facet values back to the caller. Absent
// facets serialize as null so the round-trip is exact.
type Applied struct {
	Gender      *string  `json:"gender"`
	Category    *string  `json:"category"`
	Color       *string  `json:"color"`
	Size        *string  `json:"size"`
	SearchTerm  *string  `json:"search_term"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	SortByPrice *string  `json:"sort_by_price"`
}

// FilterResult is the boundary response for filter calls.
type FilterResult struct {
	Success    bool      `json:"success"`
	Products   []Product `json:"products"`
	TotalCount int       `json:"total_count"`
	Filters    *Applied  `json:"filters_applied,omitempty"`
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// RecommendResult is the boundary response for recommendation calls.
type RecommendResult struct {
	Success         bool             `json:"success"`
	Recommendations []Recommendation `json:"recommendations"`
	TotalCount      int              `json:"total_count"`
	Message         string           `json:"message,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// AppliedFrom captures a query's normalized facets for the echo field.
func AppliedFrom(q facet.Query) *Applied {
	a := &Applied{
		MinPrice: q.MinPrice(),
		MaxPrice: q.MaxPrice(),
	}
	if g := q.Gender(); g != facet.GenderNone {
		a.Gender = strPtr(string(g))
	}
	if v := q.Category(); v != "" {
		a.Category = strPtr(v)
	}
	if v := q.Color(); v != "" {
		a.Color = strPtr(v)
	}
	if v := q.Size(); v != "" {
		a.Size = strPtr(v)
	}
	if v := q.SearchTerm(); v != "" {
		a.SearchTerm = strPtr(v)
	}
	if s := q.SortByPrice(); s != facet.SortNone {
		a.SortByPrice = strPtr(string(s))
	}
	return a
}

// ProductsFrom converts rows to output records, truncated to limit.
// Rows keep their catalog ProductID when present; otherwise they get
// sequential display identifiers starting at 1.
func ProductsFrom(rows []product.Product, limit int, keepCatalogID bool) []Product {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]Product, 0, len(rows))
	for i, r := range rows {
		out = append(out, Product{
			ID:                  displayID(r.ID, i, keepCatalogID),
			Name:                r.Name,
			Description:         r.Description,
			DetailedDescription: r.DetailedDescription,
			Price:               r.RawPrice,
			OriginalPrice:       r.OriginalPrice,
			ImageURL:            r.ImageURL,
			ProductURL:          r.ProductURL,
			Sizes:               r.Sizes,
			Colors:              r.Colors,
			Messaging:           r.Messaging,
			OfferPercent:        r.OfferPercent,
			Gender:              r.Gender,
		})
	}
	return out
}

// RecommendationsFrom converts rows to the trimmed recommendation shape with
// sequential display identifiers.
func RecommendationsFrom(rows []product.Product, limit int) []Recommendation {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]Recommendation, 0, len(rows))
	for i, r := range rows {
		out = append(out, Recommendation{
			ID:          strconv.Itoa(i + 1),
			Name:        r.Name,
			Description: r.Description,
			Price:       r.RawPrice,
			ImageURL:    r.ImageURL,
			ProductURL:  r.ProductURL,
			Sizes:       r.Sizes,
			Colors:      r.Colors,
		})
	}
	return out
}

// NoResultsMessage builds the suggestion-bearing diagnostic for an empty
// result, specific to what the caller asked for.
func NoResultsMessage(q facet.Query) string {
	var suggestions []string
	switch q.Gender() {
	case facet.GenderMen:
		suggestions = append(suggestions, "men's clothing")
	case facet.GenderWomen:
		suggestions = append(suggestions, "women's clothing")
	}
	if c := q.Category(); c != "" {
		suggestions = append(suggestions, c+"s")
	}
	if c := q.Color(); c != "" {
		suggestions = append(suggestions, c+" items")
	}
	if len(suggestions) == 0 {
		suggestions = vocab.DefaultSuggestions
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return fmt.Sprintf(
		"Sorry, I couldn't find any products matching your search criteria. 😔\n\n"+
			"How about trying one of these instead?\n• %s\n• Or try a different color or size\n\n"+
			"I'm here to help you find the perfect fashion items! 💫",
		strings.Join(suggestions, ", "),
	)
}

// FilterFailure is the structured failure response for filter calls.
func FilterFailure(err error) FilterResult {
	return FilterResult{Success: false, Products: []Product{}, Error: errText(err)}
}

// RecommendFailure is the structured failure response for recommendation calls.
func RecommendFailure(err error) RecommendResult {
	return RecommendResult{Success: false, Recommendations: []Recommendation{}, Error: errText(err)}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return capitalizeFirst(err.Error())
}

// Sentinel texts are lowercase Go-style; the wire contract reports them
// sentence-cased ("No products available").
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func displayID(catalogID string, index int, keepCatalogID bool) string {
	if keepCatalogID && catalogID != "" {
		return catalogID
	}
	return strconv.Itoa(index + 1)
}

func strPtr(s string) *string { return &s }
