package filter

import "github.com/outfitly/stylist/internal/domain/product"

// CatalogReader is the storage contract for the filter pipeline. The catalog
// is read-only after load; Rows must return the full table.
type CatalogReader interface {
	Rows() []product.Product
	Empty() bool
}
