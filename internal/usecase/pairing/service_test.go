package pairing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/product"
	filteruc "github.com/outfitly/stylist/internal/usecase/filter"
)

func row(gender, name, desc, colors string) product.Product {
	return product.New(product.Product{
		Gender:      gender,
		Name:        name,
		Description: desc,
		RawPrice:    "$50.00",
		Colors:      colors,
	})
}

type fixtureStore struct {
	rows []product.Product
}

func (s *fixtureStore) Rows() []product.Product { return s.rows }
func (s *fixtureStore) Empty() bool             { return len(s.rows) == 0 }

func pairingFixture() *fixtureStore {
	return &fixtureStore{rows: []product.Product{
		row("Men", "Nike Sportswear Club", "Men's Pullover Hoodie", "Black"),
		row("Men", "Nike Dri-FIT", "Men's Training Pants", "White"),
		row("Women", "Nike Yoga", "Women's Leggings", "Gray"),
		row("Women", "Nike Air", "Women's Cropped Top", "Pink"),
		row("Men", "Nike Club", "Men's Woven Jacket", "Navy"),
	}}
}

func newService(store *fixtureStore) *Service {
	return New(store, filteruc.New(store), "")
}

func mustQuery(t *testing.T) facet.Query {
	t.Helper()
	q, err := facet.New(facet.Params{}, facet.DefaultRecommendLimit)
	if err != nil {
		t.Fatalf("facet.New: %v", err)
	}
	return q
}

func seedJSON(t *testing.T, name, colors string) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(Seed{Name: name, Colors: colors})
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	return b
}

func TestRecommend_TopSeedPairsWithBottoms(t *testing.T) {
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Nike Sportswear Club Fleece Hoodie", ""), mustQuery(t))
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.TotalCount == 0 {
		t.Fatal("expected pairing matches for a hoodie seed")
	}
	for _, r := range res.Recommendations {
		if r.Description == "Men's Pullover Hoodie" {
			t.Error("a top seed should pair with bottoms, not another hoodie")
		}
	}
}

func TestRecommend_BottomSeedPairsWithTops(t *testing.T) {
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Dri-FIT Joggers", ""), mustQuery(t))
	if res.TotalCount == 0 {
		t.Fatal("expected pairing matches for a joggers seed")
	}
	found := false
	for _, r := range res.Recommendations {
		if r.Description == "Men's Pullover Hoodie" {
			found = true
		}
	}
	if !found {
		t.Error("expected the hoodie among top pairings for a bottom seed")
	}
}

func TestRecommend_ColorTermsExtendTheMatch(t *testing.T) {
	// A black seed adds white/gray/beige/cream pairing terms; with a cap
	// seed (no category class) only color terms remain and nothing in the
	// description column matches them, so the brand fallback kicks in.
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Running Cap", "Black"), mustQuery(t))
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.TotalCount == 0 {
		t.Fatal("expected brand fallback to produce rows")
	}
}

func TestRecommend_CallerFacetsLayerFirst(t *testing.T) {
	q, err := facet.New(facet.Params{Gender: "women"}, facet.DefaultRecommendLimit)
	if err != nil {
		t.Fatalf("facet.New: %v", err)
	}
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Fleece Hoodie", ""), q)
	if res.TotalCount == 0 {
		t.Fatal("expected matches")
	}
	// Women + bottom pairings → only the leggings row.
	if res.TotalCount != 1 || res.Recommendations[0].Description != "Women's Leggings" {
		t.Errorf("caller facets not layered first: %+v", res.Recommendations)
	}
}

func TestRecommend_FallbackToDerivedTermsWithoutFacets(t *testing.T) {
	// Caller facets exhaust the set (no Women jackets); the chain retries
	// the derived terms against the full catalog.
	q, err := facet.New(facet.Params{Gender: "women", Category: "jacket"}, facet.DefaultRecommendLimit)
	if err != nil {
		t.Fatalf("facet.New: %v", err)
	}
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Fleece Hoodie", ""), q)
	if res.TotalCount == 0 {
		t.Fatal("expected fallback matches")
	}
}

func TestRecommend_BrandFallback(t *testing.T) {
	store := &fixtureStore{rows: []product.Product{
		row("Men", "Nike Essentials", "Men's Socks", "White"),
	}}
	svc := newService(store)
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Fleece Hoodie", ""), mustQuery(t))
	if res.TotalCount != 1 {
		t.Fatalf("expected 1 brand-fallback row, got %d", res.TotalCount)
	}
	if res.Recommendations[0].Name != "Nike Essentials" {
		t.Errorf("brand fallback picked %q", res.Recommendations[0].Name)
	}
}

func TestRecommend_ReturnsFewerRatherThanError(t *testing.T) {
	store := &fixtureStore{rows: []product.Product{
		row("Men", "Generic Co", "Men's Socks", "White"),
	}}
	svc := newService(store)
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Fleece Hoodie", ""), mustQuery(t))
	if !res.Success {
		t.Fatalf("exhausted chain must still succeed, got error %q", res.Error)
	}
	if res.TotalCount != 0 {
		t.Errorf("expected 0 recommendations, got %d", res.TotalCount)
	}
}

func TestRecommend_LimitTruncation(t *testing.T) {
	rows := make([]product.Product, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, row("Men", "Nike Dri-FIT", "Men's Training Pants", "White"))
	}
	svc := newService(&fixtureStore{rows: rows})
	res := svc.Recommend(context.Background(), "", seedJSON(t, "Fleece Hoodie", ""), mustQuery(t))
	if res.TotalCount != facet.DefaultRecommendLimit {
		t.Errorf("expected %d rows, got %d", facet.DefaultRecommendLimit, res.TotalCount)
	}
}

func TestRecommend_MalformedSeed(t *testing.T) {
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", json.RawMessage(`{not json`), mustQuery(t))
	if res.Success {
		t.Error("expected failure for malformed seed")
	}
	if len(res.Recommendations) != 0 {
		t.Error("failure result must carry an empty list")
	}
}

func TestRecommend_DoubleEncodedSeed(t *testing.T) {
	inner, _ := json.Marshal(Seed{Name: "Fleece Hoodie"})
	outer, _ := json.Marshal(string(inner))
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "", outer, mustQuery(t))
	if !res.Success {
		t.Fatalf("double-encoded seed rejected: %s", res.Error)
	}
	if res.TotalCount == 0 {
		t.Error("expected matches from the decoded seed")
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	svc := newService(&fixtureStore{})
	res := svc.Recommend(context.Background(), "", nil, mustQuery(t))
	if res.Success {
		t.Error("expected failure for empty catalog")
	}
	if res.Error != "No products available" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestRecommend_SeedDescriptionFallback(t *testing.T) {
	// No seed object name: the free-text description classifies instead.
	svc := newService(pairingFixture())
	res := svc.Recommend(context.Background(), "cozy fleece hoodie for winter", nil, mustQuery(t))
	if res.TotalCount == 0 {
		t.Fatal("expected matches from description-derived terms")
	}
}
