package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	"github.com/outfitly/stylist/internal/domain/result"
	chatuc "github.com/outfitly/stylist/internal/usecase/chat"
	healthuc "github.com/outfitly/stylist/internal/usecase/health"
)

// --- Mocks ---

type mockChatter struct {
	reply chatuc.Reply
	err   error
	got   string
}

func (m *mockChatter) Chat(_ context.Context, _, message string) (chatuc.Reply, error) {
	m.got = message
	return m.reply, m.err
}

type mockFilterer struct {
	gotQuery    facet.Query
	gotExtended bool
	res         result.FilterResult
}

func (m *mockFilterer) Filter(_ context.Context, q facet.Query) result.FilterResult {
	m.gotQuery = q
	return m.res
}

func (m *mockFilterer) FilterExtended(_ context.Context, q facet.Query) result.FilterResult {
	m.gotQuery = q
	m.gotExtended = true
	return m.res
}

type mockRecommender struct {
	gotDesc string
	gotQ    facet.Query
	res     result.RecommendResult
}

func (m *mockRecommender) Recommend(
	_ context.Context, seedDescription string, _ json.RawMessage, q facet.Query,
) result.RecommendResult {
	m.gotDesc = seedDescription
	m.gotQ = q
	return m.res
}

type mockCatalog struct {
	rows []product.Product
}

func (m *mockCatalog) Rows() []product.Product { return m.rows }
func (m *mockCatalog) Empty() bool             { return len(m.rows) == 0 }

func newTestRouter(chat Chatter, filters Filterer, pairs Recommender, catalog healthuc.CatalogReader) *chi.Mux {
	if catalog == nil {
		catalog = &mockCatalog{rows: []product.Product{{Name: "Hoodie"}}}
	}
	s := NewServer(chat, filters, pairs, healthuc.New(catalog, nil), zap.NewNop())
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestFilterProducts_OK(t *testing.T) {
	filters := &mockFilterer{res: result.FilterResult{
		Success:    true,
		Products:   []result.Product{{ID: "1", Name: "Hoodie"}},
		TotalCount: 1,
	}}
	r := newTestRouter(&mockChatter{}, filters, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/products/filter",
		`{"gender":"women","category":"hoodie","min_price":30,"max_price":80}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res result.FilterResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || res.TotalCount != 1 {
		t.Errorf("response = %+v", res)
	}

	if filters.gotQuery.Gender() != facet.GenderWomen {
		t.Errorf("query gender = %q, want Women", filters.gotQuery.Gender())
	}
	if filters.gotQuery.Limit() != facet.DefaultFilterLimit {
		t.Errorf("query limit = %d, want %d", filters.gotQuery.Limit(), facet.DefaultFilterLimit)
	}
	if filters.gotExtended {
		t.Error("filter endpoint must not use the extended path")
	}
}

func TestFilterProducts_EngineFailureStaysHTTP200(t *testing.T) {
	filters := &mockFilterer{res: result.FilterResult{
		Success:  false,
		Products: []result.Product{},
		Error:    "No products available",
	}}
	r := newTestRouter(&mockChatter{}, filters, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/products/filter", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res result.FilterResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Success {
		t.Error("expected success=false in body")
	}
	if res.Error != "No products available" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestFilterProducts_BadJSON(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/products/filter", `{"gender":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFilterProducts_InvertedPriceBounds(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/products/filter",
		`{"min_price":100,"max_price":10}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var res errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Code != codeValidationFailed {
		t.Errorf("code = %q, want %q", res.Code, codeValidationFailed)
	}
}

func TestSearchProducts_UsesExtendedPath(t *testing.T) {
	filters := &mockFilterer{res: result.FilterResult{Success: true, Products: []result.Product{}}}
	r := newTestRouter(&mockChatter{}, filters, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/products/search", `{"search_term":"women hoodie"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !filters.gotExtended {
		t.Error("search endpoint must use the extended path")
	}
	if filters.gotQuery.Limit() != facet.DefaultExtendedLimit {
		t.Errorf("query limit = %d, want %d", filters.gotQuery.Limit(), facet.DefaultExtendedLimit)
	}
}

func TestRecommendations_OK(t *testing.T) {
	pairs := &mockRecommender{res: result.RecommendResult{
		Success:         true,
		Recommendations: []result.Recommendation{{ID: "1"}},
		TotalCount:      1,
	}}
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, pairs, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/recommendations",
		`{"product":{"name":"Club Fleece Hoodie","description":"Men's Pullover Hoodie"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res result.RecommendResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || len(res.Recommendations) != 1 {
		t.Errorf("response = %+v", res)
	}
	if pairs.gotDesc != "Men's Pullover Hoodie" {
		t.Errorf("seed description = %q", pairs.gotDesc)
	}
	if pairs.gotQ.Limit() != facet.DefaultRecommendLimit {
		t.Errorf("limit = %d, want %d", pairs.gotQ.Limit(), facet.DefaultRecommendLimit)
	}
}

func TestRecommendations_MissingProduct(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/recommendations", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var res errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Message != "No product provided" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestChat_OK(t *testing.T) {
	chat := &mockChatter{reply: chatuc.Reply{
		SessionID: "s1",
		Message:   "I found 2 products that match your request! Here are some great options:",
		Products:  []result.Product{{ID: "1"}, {ID: "2"}},
	}}
	r := newTestRouter(chat, &mockFilterer{}, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/chat", `{"session_id":"s1","message":"women hoodie"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if chat.got != "women hoodie" {
		t.Errorf("forwarded message = %q", chat.got)
	}

	var reply chatuc.Reply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.SessionID != "s1" || len(reply.Products) != 2 {
		t.Errorf("reply = %+v", reply)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{}, nil)

	rec := doJSON(t, r, http.MethodPost, "/api/chat", `{"session_id":"s1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var res errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Message != "No message provided" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestChat_NotConfigured(t *testing.T) {
	s := NewServer(nil, &mockFilterer{}, &mockRecommender{},
		healthuc.New(&mockCatalog{rows: []product.Product{{Name: "x"}}}, nil), zap.NewNop())
	r := chi.NewRouter()
	s.Register(r)

	rec := doJSON(t, r, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealthCheck_OK(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{},
		&mockCatalog{rows: []product.Product{{Name: "a"}, {Name: "b"}}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != string(healthuc.Healthy) || res.Products != 2 {
		t.Errorf("response = %+v", res)
	}
}

func TestHealthCheck_EmptyCatalogIs503(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{}, &mockCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(&mockChatter{}, &mockFilterer{}, &mockRecommender{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
