package health

import (
	"context"

	"github.com/outfitly/stylist/internal/domain/product"
)

// CatalogReader exposes the loaded product catalog.
type CatalogReader interface {
	Rows() []product.Product
	Empty() bool
}

// HistoryPinger checks conversation store availability.
type HistoryPinger interface {
	Ping(ctx context.Context) error
}
