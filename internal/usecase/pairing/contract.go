package pairing

import (
	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
)

// CatalogReader is the storage contract for the pairing engine.
type CatalogReader interface {
	Rows() []product.Product
	Empty() bool
}

// Filterer layers explicit caller facets over a candidate set before the
// derived pairing terms narrow it further.
type Filterer interface {
	Apply(rows []product.Product, q facet.Query) []product.Product
}
