package catalog

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/festiloc/festiloc-server/internal/models"
)

var scoreNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// old is far outside the recency window.
var old = scoreNow.AddDate(-2, 0, 0)

func refChair() models.Product {
	return models.Product{
		ID: "ref", Category: "mobilier", SubCategory: "chaises",
		PriceTTC: 100,
		Colors:   datatypes.JSONSlice[string]{"blanc", "noir"},
		CreatedAt: old,
	}
}

func TestScoreWorkedExample(t *testing.T) {
	ref := refChair()
	candA := models.Product{
		ID: "a", Category: "mobilier", SubCategory: "chaises",
		PriceTTC:  102,
		Colors:    datatypes.JSONSlice[string]{"blanc"},
		CreatedAt: old,
	}
	candB := models.Product{
		ID: "b", Category: "luminaires",
		PriceTTC:  500,
		CreatedAt: old,
	}

	// 10 (category) + 25 (subCategory) + 20 (r=0.02) + 5+round(15*1/2)=13 (colors)
	if got := Score(ref, candA, scoreNow); got != 68 {
		t.Errorf("Score(A) = %d, want 68", got)
	}
	if got := Score(ref, candB, scoreNow); got != 0 {
		t.Errorf("Score(B) = %d, want 0", got)
	}

	ranked := Rank(ref, []models.Product{candB, candA}, 2, scoreNow)
	if ranked[0].Product.ID != "a" {
		t.Errorf("candidate A must rank before B, got %s first", ranked[0].Product.ID)
	}
}

func TestPriceProximityBandsAreExclusive(t *testing.T) {
	cases := []struct {
		price float64
		want  int
	}{
		{104, 20},  // r=0.04, tightest band only
		{100, 20},  // identical price
		{107, 15},  // r=0.07
		{125, 10},  // r=0.25
		{145, 5},   // r=0.45
		{160, 0},   // r=0.60
		{51, 5},    // r=0.49 below reference
		{40, 0},    // r=0.60 below reference
	}

	for _, tc := range cases {
		got := priceProximityBonus(100, tc.price)
		if got != tc.want {
			t.Errorf("priceProximityBonus(100, %v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestScoreZeroReferencePrice(t *testing.T) {
	ref := refChair()
	ref.PriceTTC = 0
	cand := models.Product{ID: "c", Category: "mobilier", SubCategory: "chaises", PriceTTC: 10, CreatedAt: old}

	// No price contribution, only category + subCategory.
	if got := Score(ref, cand, scoreNow); got != 35 {
		t.Errorf("Score with zero reference price = %d, want 35", got)
	}
}

func TestSpecOverlapBonus(t *testing.T) {
	ref := map[string]string{"matiere": "bois", "hauteur": "90cm", "pliable": "non"}
	cand := map[string]string{"matiere": "bois", "hauteur": "85cm"}

	// 2 of 3 keys shared: 5 + round(20*2/3)=13, one identical value: +3
	if got := specOverlapBonus(ref, cand); got != 21 {
		t.Errorf("specOverlapBonus = %d, want 21", got)
	}

	if got := specOverlapBonus(nil, cand); got != 0 {
		t.Errorf("missing reference specs must contribute 0, got %d", got)
	}
	if got := specOverlapBonus(ref, map[string]string{"poids": "3kg"}); got != 0 {
		t.Errorf("disjoint specs must contribute 0, got %d", got)
	}
}

func TestStockAndRecencyBonuses(t *testing.T) {
	ref := models.Product{ID: "ref", Category: "x", PriceTTC: 0, CreatedAt: old}
	cand := models.Product{ID: "c", Category: "y", Stock: 6, CreatedAt: scoreNow.AddDate(0, 0, -30)}

	// stock > 5 and created within 90 days, nothing else matches.
	if got := Score(ref, cand, scoreNow); got != 10 {
		t.Errorf("Score = %d, want 10", got)
	}

	cand.Stock = 5
	cand.CreatedAt = scoreNow.AddDate(0, 0, -91)
	if got := Score(ref, cand, scoreNow); got != 0 {
		t.Errorf("Score = %d, want 0 at thresholds", got)
	}
}

func TestRankIsStable(t *testing.T) {
	ref := refChair()
	// Identical candidates score identically; input order must survive.
	twin := func(id string) models.Product {
		return models.Product{
			ID: id, Category: "mobilier", SubCategory: "chaises",
			PriceTTC: 102, CreatedAt: old,
		}
	}
	pool := []models.Product{twin("first"), twin("second"), twin("third")}

	ranked := Rank(ref, pool, 3, scoreNow)
	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].Product.ID != want {
			t.Fatalf("rank[%d] = %s, want %s (stable sort)", i, ranked[i].Product.ID, want)
		}
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	ref := refChair()
	pool := make([]models.Product, 10)
	for i := range pool {
		pool[i] = models.Product{ID: string(rune('a' + i)), Category: "mobilier", CreatedAt: old}
	}

	if got := Rank(ref, pool, 4, scoreNow); len(got) != 4 {
		t.Errorf("Rank returned %d results, want 4", len(got))
	}
}

func TestCandidatesBroadensInOrder(t *testing.T) {
	ref := models.Product{
		ID: "ref", Category: "mobilier", SubCategory: "chaises", SubSubCategory: "pliantes",
		PriceTTC: 100,
	}
	exact := models.Product{ID: "exact", Category: "mobilier", SubCategory: "chaises", SubSubCategory: "pliantes", Available: true}
	sameSub := models.Product{ID: "sub", Category: "mobilier", SubCategory: "chaises", SubSubCategory: "napoleon", Available: true}
	sameCat := models.Product{ID: "cat", Category: "mobilier", SubCategory: "tables", Available: true}
	priced := models.Product{ID: "priced", Category: "textile", PriceTTC: 120, Available: true}
	far := models.Product{ID: "far", Category: "textile", PriceTTC: 900, Available: true}

	pool := []models.Product{far, priced, sameCat, sameSub, exact}

	// Limit 1 is satisfied by the strictest step alone.
	got := Candidates(ref, pool, 1)
	if len(got) != 1 || got[0].ID != "exact" {
		t.Fatalf("limit 1: got %v, want [exact]", ids(got))
	}

	// Limit 4 walks every relaxation step; step order outranks pool order.
	got = Candidates(ref, pool, 4)
	want := []string{"exact", "sub", "cat", "priced"}
	if len(got) != 4 {
		t.Fatalf("limit 4: got %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("limit 4: position %d = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestCandidatesExcludesReferenceAndUnavailable(t *testing.T) {
	ref := models.Product{ID: "ref", Category: "mobilier", PriceTTC: 100}
	pool := []models.Product{
		{ID: "ref", Category: "mobilier", Available: true},
		{ID: "hidden", Category: "mobilier", Available: false},
		{ID: "ok", Category: "mobilier", Available: true},
	}

	got := Candidates(ref, pool, 10)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("got %v, want [ok]", ids(got))
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
