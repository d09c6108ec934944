// Package chi exposes the engine over HTTP. Engine outcomes travel as
// structured success/failure payloads with status 200; only transport-level
// problems (bad JSON, failed validation) map to error statuses.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain"
	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/result"
	chatuc "github.com/outfitly/stylist/internal/usecase/chat"
	healthuc "github.com/outfitly/stylist/internal/usecase/health"
)

// validate checks request DTOs against struct tags.
var validate = validator.New()

// Chatter runs one assistant conversation turn.
type Chatter interface {
	Chat(ctx context.Context, sessionID, message string) (chatuc.Reply, error)
}

// Filterer runs facet queries against the catalog.
type Filterer interface {
	Filter(ctx context.Context, q facet.Query) result.FilterResult
	FilterExtended(ctx context.Context, q facet.Query) result.FilterResult
}

// Recommender produces pairing recommendations for a seed product.
type Recommender interface {
	Recommend(ctx context.Context, seedDescription string, seedJSON json.RawMessage, q facet.Query) result.RecommendResult
}

// Server holds the HTTP handlers for the engine API.
type Server struct {
	chat    Chatter
	filters Filterer
	pairs   Recommender
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server. chat can be nil when no model
// provider is configured; the chat route then reports it is unavailable.
func NewServer(chat Chatter, filters Filterer, pairs Recommender, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		chat:    chat,
		filters: filters,
		pairs:   pairs,
		health:  health,
		logger:  logger,
	}
}

// Register mounts all routes on the router. Middleware is applied by the
// caller before registration.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/chat", s.Chat)
	r.Post("/api/products/filter", s.FilterProducts)
	r.Post("/api/products/search", s.SearchProducts)
	r.Post("/api/recommendations", s.Recommendations)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "chat is not configured")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "No message provided")
		return
	}

	reply, err := s.chat.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

type filterRequest struct {
	Gender      string   `json:"gender"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Size        string   `json:"size"`
	SearchTerm  string   `json:"search_term"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	SortByPrice string   `json:"sort_by_price"`
	Limit       int      `json:"limit" validate:"gte=0,lte=1000"`
}

// FilterProducts handles POST /api/products/filter.
func (s *Server) FilterProducts(w http.ResponseWriter, r *http.Request) {
	q, ok := s.decodeQuery(w, r, facet.DefaultFilterLimit)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.filters.Filter(r.Context(), q))
}

// SearchProducts handles POST /api/products/search. Same query shape as
// filter, but with the extended default limit and catalog identifiers
// preserved in the response.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q, ok := s.decodeQuery(w, r, facet.DefaultExtendedLimit)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.filters.FilterExtended(r.Context(), q))
}

func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request, defaultLimit int) (facet.Query, bool) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return facet.Query{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return facet.Query{}, false
	}

	q, err := facet.New(facet.Params{
		Gender:      req.Gender,
		Category:    req.Category,
		Color:       req.Color,
		Size:        req.Size,
		SearchTerm:  req.SearchTerm,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		SortByPrice: req.SortByPrice,
		Limit:       req.Limit,
	}, defaultLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return facet.Query{}, false
	}
	return q, true
}

type recommendRequest struct {
	Product json.RawMessage `json:"product" validate:"required"`
	Limit   int             `json:"limit" validate:"gte=0,lte=100"`
}

// Recommendations handles POST /api/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "No product provided")
		return
	}

	q, err := facet.New(facet.Params{Limit: req.Limit}, facet.DefaultRecommendLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res := s.pairs.Recommend(r.Context(), seedDescription(req.Product), req.Product, q)
	writeJSON(w, http.StatusOK, res)
}

// seedDescription pulls the description out of the seed payload so the
// pairing engine can fall back to it when the seed has no name.
func seedDescription(raw json.RawMessage) string {
	var seed struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &seed); err == nil && seed.Description != "" {
		return seed.Description
	}
	// The seed may arrive double-encoded as a JSON string.
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &seed); err == nil {
			return seed.Description
		}
	}
	return ""
}

type healthResponse struct {
	Status   string                          `json:"status"`
	Checks   map[string]healthuc.CheckResult `json:"checks"`
	Products int                             `json:"products"`
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:   string(report.Status),
		Checks:   report.Checks,
		Products: report.Products,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnavailable      = "unavailable"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	if errors.Is(err, domain.ErrMalformedQuery) {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
