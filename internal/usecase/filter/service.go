package filter

import (
	"context"

	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain"
	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	"github.com/outfitly/stylist/internal/domain/result"
	"github.com/outfitly/stylist/internal/logger"
	"github.com/outfitly/stylist/internal/metrics"
)

// Service narrows the catalog to rows matching a facet query. Any internal
// fault is converted to a structured failure result at this boundary — the
// caller never sees a panic or a raw error.
type Service struct {
	catalog CatalogReader
}

// New creates a filter service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// Filter is the plain entry point: default limit 20, sequential display IDs.
func (s *Service) Filter(ctx context.Context, q facet.Query) result.FilterResult {
	return s.run(ctx, q, "filter", false)
}

// FilterExtended is the extended entry point: default limit 100 and catalog
// product IDs passed through when the source carries them.
func (s *Service) FilterExtended(ctx context.Context, q facet.Query) result.FilterResult {
	return s.run(ctx, q, "extended", true)
}

// Apply runs the pipeline over an existing candidate set and returns the
// narrowed rows. The pairing engine layers its derived terms on top of this.
func (s *Service) Apply(rows []product.Product, q facet.Query) []product.Product {
	p := newPipeline(rows)
	runStages(p, q)
	return p.result()
}

func (s *Service) run(ctx context.Context, q facet.Query, entry string, keepCatalogID bool) (res result.FilterResult) {
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Filter pipeline panicked", zap.Any("panic", r))
			metrics.FilterRequestsTotal.WithLabelValues(entry, "error").Inc()
			res = result.FilterFailure(domain.ErrInternalFilter)
		}
	}()

	if s.catalog.Empty() {
		metrics.FilterRequestsTotal.WithLabelValues(entry, "unavailable").Inc()
		return result.FilterFailure(domain.ErrCatalogUnavailable)
	}

	p := newPipeline(s.catalog.Rows())
	log.Debug("Starting filter",
		zap.Int("candidates", p.size()),
		zap.String("gender", string(q.Gender())),
		zap.String("category", q.Category()),
		zap.String("color", q.Color()),
		zap.String("size", q.Size()),
		zap.String("search_term", q.SearchTerm()),
	)
	runStages(p, q)

	rows := p.result()
	products := result.ProductsFrom(rows, q.Limit(), keepCatalogID)
	res = result.FilterResult{
		Success:    true,
		Products:   products,
		TotalCount: len(products),
		Filters:    result.AppliedFrom(q),
	}
	if len(products) == 0 {
		res.Message = result.NoResultsMessage(q)
		metrics.FilterRequestsTotal.WithLabelValues(entry, "empty").Inc()
	} else {
		metrics.FilterRequestsTotal.WithLabelValues(entry, "ok").Inc()
	}
	log.Info("Filter complete", zap.String("entry", entry), zap.Int("matches", len(products)))
	return res
}

// MatchDescriptionTerms returns the subset of rows whose description
// contains any of the given terms (pairing path).
func MatchDescriptionTerms(rows []product.Product, terms []string) []product.Product {
	p := newPipeline(rows)
	p.applyDescriptionTerms(terms)
	return p.result()
}

// MatchNameTerm returns the subset of rows whose brand/name contains term.
func MatchNameTerm(rows []product.Product, term string) []product.Product {
	p := newPipeline(rows)
	p.applyNameTerm(term)
	return p.result()
}

// runStages applies the facet stages in their fixed order. Gender first —
// it is the strictest facet — then the narrowing substring stages, then
// price bounds and ordering, with the free-text term over whatever remains.
func runStages(p *pipeline, q facet.Query) {
	p.applyGender(q.Gender())
	p.applyCategory(q.Category())
	p.applyColor(q.Color())
	p.applySize(q.Size())
	p.applyPrice(q.MinPrice(), q.MaxPrice())
	p.applySort(q.SortByPrice())
	p.applySearchTerm(parseSearchTerm(q.SearchTerm()))
}
