package stylist

import (
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	rows        []Row
	brand       string
	logger      *zap.Logger
}

// WithCatalogPath loads the catalog from a .csv or .xlsx file. A missing or
// unreadable file yields an empty catalog, matching server behavior.
func WithCatalogPath(path string) Option {
	return optionFunc(func(c *clientConfig) { c.catalogPath = path })
}

// WithRows supplies catalog rows directly, bypassing file loading.
// Takes precedence over WithCatalogPath.
func WithRows(rows []Row) Option {
	return optionFunc(func(c *clientConfig) { c.rows = rows })
}

// WithBrand sets the brand token used for last-resort pairing matches.
// Defaults to "Nike".
func WithBrand(brand string) Option {
	return optionFunc(func(c *clientConfig) { c.brand = brand })
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = logger })
}
