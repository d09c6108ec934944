// Package product defines the catalog row entity and price normalization.
package product

import (
	"strconv"
	"strings"
)

// Canonical gender values as they appear in the catalog column.
const (
	GenderMen   = "Men"
	GenderWomen = "Women"
)

// Product is one catalog row. Immutable after catalog load.
type Product struct {
	ID                  string // optional ProductID column, empty when absent
	Name                string // brand/name ("Category" column)
	Description         string // "Category.1" column
	DetailedDescription string
	RawPrice            string // "Current Price" as shipped, e.g. "$49.99"
	OriginalPrice       string
	ImageURL            string
	ProductURL          string
	Sizes               string // free-text token list
	Colors              string
	Messaging           string // "productcard_messaging"
	OfferPercent        string
	Gender              string // canonical "Men"/"Women"/other

	price      float64
	priceValid bool
}

// New builds a product and normalizes its price once.
func New(p Product) Product {
	p.price, p.priceValid = ParsePrice(p.RawPrice)
	return p
}

// Price returns the normalized numeric price. ok is false when the raw
// string could not be parsed; such rows never satisfy a price bound.
func (p Product) Price() (float64, bool) {
	return p.price, p.priceValid
}

var priceStripper = strings.NewReplacer("$", "", ",", "", " ", "")

// ParsePrice strips currency symbols, thousands separators and non-breaking
// spaces, then parses the remainder as a float. Negative or empty values are
// invalid.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(priceStripper.Replace(raw))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
