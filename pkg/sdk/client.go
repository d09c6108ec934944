package stylist

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	"github.com/outfitly/stylist/internal/domain/result"
	"github.com/outfitly/stylist/internal/repository/catalog"
	filteruc "github.com/outfitly/stylist/internal/usecase/filter"
	pairinguc "github.com/outfitly/stylist/internal/usecase/pairing"
)

// Row is a single catalog product.
type Row = product.Product

// FilterResult is the engine response for filter and search calls.
type FilterResult = result.FilterResult

// RecommendResult is the engine response for pairing calls.
type RecommendResult = result.RecommendResult

// Query carries facet values for filter and search calls. Zero values mean
// the facet is absent.
type Query struct {
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

// Client is the embedded engine entry point.
type Client struct {
	store   *catalog.Store
	filters *filteruc.Service
	pairs   *pairinguc.Service
}

// New creates a Client. With no options it starts with an empty catalog and
// every query reports no products available.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{brand: "Nike"}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	var store *catalog.Store
	switch {
	case cfg.rows != nil:
		store = catalog.NewStore(cfg.rows)
	case cfg.catalogPath != "":
		store = catalog.Load(cfg.catalogPath, cfg.logger)
	default:
		store = catalog.NewStore(nil)
	}

	filters := filteruc.New(store)
	c := &Client{
		store:   store,
		filters: filters,
		pairs:   pairinguc.New(store, filters, cfg.brand),
	}
	return c, nil
}

// Len returns the number of catalog rows loaded.
func (c *Client) Len() int { return c.store.Len() }

// Filter runs a facet query with the standard result limit.
func (c *Client) Filter(ctx context.Context, q Query) FilterResult {
	fq, err := c.query(q, facet.DefaultFilterLimit)
	if err != nil {
		return result.FilterFailure(err)
	}
	return c.filters.Filter(ctx, fq)
}

// Search runs a facet query with the extended result limit, preserving
// catalog product identifiers.
func (c *Client) Search(ctx context.Context, q Query) FilterResult {
	fq, err := c.query(q, facet.DefaultExtendedLimit)
	if err != nil {
		return result.FilterFailure(err)
	}
	return c.filters.FilterExtended(ctx, fq)
}

// Recommend returns products that pair with the seed product. seedJSON is
// the product the user is viewing; seedDescription is used when the seed
// has no name. limit <= 0 applies the default of 4.
func (c *Client) Recommend(ctx context.Context, seedDescription string, seedJSON []byte, limit int) RecommendResult {
	fq, err := facet.New(facet.Params{Limit: limit}, facet.DefaultRecommendLimit)
	if err != nil {
		return result.RecommendFailure(err)
	}
	return c.pairs.Recommend(ctx, seedDescription, json.RawMessage(seedJSON), fq)
}

func (c *Client) query(q Query, defaultLimit int) (facet.Query, error) {
	return facet.New(facet.Params{
		Gender:      q.Gender,
		Category:    q.Category,
		Color:       q.Color,
		Size:        q.Size,
		SearchTerm:  q.SearchTerm,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		SortByPrice: q.SortByPrice,
		Limit:       q.Limit,
	}, defaultLimit)
}
