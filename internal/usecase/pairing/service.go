// Package pairing derives complementary products for a seed item: opposite
// category terms from the seed's name, matching color terms from its colors,
// then a fallback chain that loosens the criteria until something matches or
// everything is exhausted.
package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain"
	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	"github.com/outfitly/stylist/internal/domain/result"
	"github.com/outfitly/stylist/internal/domain/vocab"
	"github.com/outfitly/stylist/internal/logger"
	"github.com/outfitly/stylist/internal/metrics"
	filteruc "github.com/outfitly/stylist/internal/usecase/filter"
)

// DefaultBrandToken is the brand fallback when config does not override it.
const DefaultBrandToken = "Nike"

// Seed is the caller-supplied current product the pairing derives from.
type Seed struct {
	Name   string `json:"name"`
	Colors string `json:"colors"`
}

// Service produces "goes well with" recommendations.
type Service struct {
	catalog CatalogReader
	filters Filterer
	brand   string
}

// New creates a pairing service. brandToken may be empty to use the default.
func New(catalog CatalogReader, filters Filterer, brandToken string) *Service {
	if brandToken == "" {
		brandToken = DefaultBrandToken
	}
	return &Service{catalog: catalog, filters: filters, brand: strings.ToLower(brandToken)}
}

// Recommend derives pairing terms from the seed and walks the fallback
// chain. Like the filter boundary it never faults: malformed seeds and
// internal errors come back as structured failure results.
func (s *Service) Recommend(
	ctx context.Context, seedDescription string, seedJSON json.RawMessage, q facet.Query,
) (res result.RecommendResult) {
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Pairing engine panicked", zap.Any("panic", r))
			metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
			res = result.RecommendFailure(domain.ErrInternalFilter)
		}
	}()

	if s.catalog.Empty() {
		metrics.RecommendRequestsTotal.WithLabelValues("unavailable").Inc()
		return result.RecommendFailure(domain.ErrCatalogUnavailable)
	}

	seed, err := parseSeed(seedJSON)
	if err != nil {
		log.Warn("Rejecting malformed seed product", zap.Error(err))
		metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
		return result.RecommendFailure(err)
	}
	if seed.Name == "" {
		seed.Name = seedDescription
	}

	terms := deriveTerms(seed)
	rows := s.matchChain(ctx, terms, q)

	recs := result.RecommendationsFrom(rows, q.Limit())
	if len(recs) == 0 {
		metrics.RecommendRequestsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()
	}
	log.Info("Pairing complete",
		zap.Strings("terms", terms),
		zap.Int("recommendations", len(recs)),
	)
	return result.RecommendResult{
		Success:         true,
		Recommendations: recs,
		TotalCount:      len(recs),
	}
}

// deriveTerms collects opposite-category and complementary-color keywords
// from the seed. Both sets feed one OR-match over the description column.
func deriveTerms(seed Seed) []string {
	terms := vocab.PairingCategories(strings.ToLower(seed.Name))
	terms = append(terms, vocab.PairingColors(strings.ToLower(seed.Colors))...)
	return terms
}

// matchChain runs the primary pass then the fallback chain, stopping at the
// first non-empty set. The last link returns fewer than requested — possibly
// zero — rather than erroring.
func (s *Service) matchChain(ctx context.Context, terms []string, q facet.Query) []product.Product {
	log := logger.FromContext(ctx)

	// Primary: explicit caller facets first, derived terms on top.
	candidates := s.filters.Apply(s.catalog.Rows(), q)
	if len(terms) > 0 {
		if rows := filteruc.MatchDescriptionTerms(candidates, terms); len(rows) > 0 {
			return rows
		}
		// Fallback 1: derived terms alone against the full catalog.
		if rows := filteruc.MatchDescriptionTerms(s.catalog.Rows(), terms); len(rows) > 0 {
			log.Debug("Pairing fell back to derived terms without caller facets")
			return rows
		}
	} else if len(candidates) > 0 {
		// No derivable terms: the caller facets alone decide.
		return candidates
	}

	// Fallback 2: anything from the house brand.
	if rows := filteruc.MatchNameTerm(s.catalog.Rows(), s.brand); len(rows) > 0 {
		log.Debug("Pairing fell back to brand match", zap.String("brand", s.brand))
		return rows
	}

	// Fallback 3: fewer than requested (possibly none).
	return nil
}

func parseSeed(raw json.RawMessage) (Seed, error) {
	if len(raw) == 0 {
		return Seed{}, nil
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		// Tolerate a double-encoded product object.
		var nested string
		if err2 := json.Unmarshal(raw, &nested); err2 == nil {
			if err3 := json.Unmarshal([]byte(nested), &seed); err3 == nil {
				return seed, nil
			}
		}
		return Seed{}, fmt.Errorf("%w: invalid seed product: %v", domain.ErrMalformedQuery, err)
	}
	return seed, nil
}
