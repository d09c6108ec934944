// Package catalog holds the in-memory product table. The table is loaded
// once at process start and read-only afterwards, so concurrent reads need
// no synchronization.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain/product"
)

// Store is the in-memory product table.
type Store struct {
	rows []product.Product
}

// NewStore builds a store over pre-parsed rows. Prices are normalized here
// so later stages never re-parse.
func NewStore(rows []product.Product) *Store {
	normalized := make([]product.Product, 0, len(rows))
	for _, r := range rows {
		normalized = append(normalized, product.New(r))
	}
	return &Store{rows: normalized}
}

// Load reads a tabular catalog file (.csv or .xlsx). A load failure yields
// an empty store rather than an error: every dependent operation then
// degrades to a well-defined empty-result response.
func Load(path string, logger *zap.Logger) *Store {
	rows, err := readRows(path)
	if err != nil {
		logger.Error("Failed to load catalog, starting with empty store",
			zap.String("path", path), zap.Error(err))
		return &Store{}
	}
	logger.Info("Loaded catalog", zap.String("path", path), zap.Int("products", len(rows)))
	return NewStore(rows)
}

func readRows(path string) ([]product.Product, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// Rows returns the full table. Callers must not mutate the returned slice;
// pipeline invocations work on their own candidate copies.
func (s *Store) Rows() []product.Product {
	return s.rows
}

// Len returns the number of products.
func (s *Store) Len() int { return len(s.rows) }

// Empty reports whether the store has no rows (load failed or zero rows).
func (s *Store) Empty() bool { return len(s.rows) == 0 }
