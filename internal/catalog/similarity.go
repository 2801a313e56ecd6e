package catalog

import (
	"math"
	"sort"
	"time"

	"github.com/festiloc/festiloc-server/internal/models"
)

// Scoring weights for product similarity. All contributions are additive.
const (
	categoryBonus       = 10
	subCategoryBonus    = 25
	subSubCategoryBonus = 35

	stockBonus     = 5
	stockThreshold = 5

	recencyBonus  = 5
	recencyWindow = 90 * 24 * time.Hour

	// Fallback price band used by the last filter-relaxation step: candidates
	// within ±50% of the reference price, regardless of category.
	fallbackPriceBand = 0.50
)

// ScoredProduct pairs a candidate with its computed relevance score. It is
// ephemeral: scores are never persisted.
type ScoredProduct struct {
	Product models.Product `json:"product"`
	Score   int            `json:"score"`
}

// Score computes the relevance of a candidate relative to a reference
// product. Higher is more similar; the result is always >= 0.
func Score(ref, cand models.Product, now time.Time) int {
	score := 0

	if ref.Category != "" && ref.Category == cand.Category {
		score += categoryBonus
	}
	if ref.SubCategory != "" && ref.SubCategory == cand.SubCategory {
		score += subCategoryBonus
	}
	if ref.SubSubCategory != "" && ref.SubSubCategory == cand.SubSubCategory {
		score += subSubCategoryBonus
	}

	score += priceProximityBonus(ref.PriceTTC, cand.PriceTTC)
	score += specOverlapBonus(ref.Specs.Data(), cand.Specs.Data())
	score += colorOverlapBonus(ref.Colors, cand.Colors)

	if cand.Stock > stockThreshold {
		score += stockBonus
	}
	if now.Sub(cand.CreatedAt) <= recencyWindow {
		score += recencyBonus
	}

	return score
}

// priceProximityBonus rewards candidates priced close to the reference.
// Bands are mutually exclusive, evaluated tightest first. A zero reference
// price contributes nothing (no relative difference is defined).
func priceProximityBonus(refPrice, candPrice float64) int {
	if refPrice == 0 {
		return 0
	}
	r := math.Abs(candPrice-refPrice) / refPrice
	switch {
	case r < 0.05:
		return 20
	case r < 0.10:
		return 15
	case r < 0.30:
		return 10
	case r < 0.50:
		return 5
	default:
		return 0
	}
}

// specOverlapBonus scores shared technical-specification keys, with an extra
// reward for keys holding the identical value on both sides.
func specOverlapBonus(ref, cand map[string]string) int {
	if len(ref) == 0 || len(cand) == 0 {
		return 0
	}
	matching := 0
	identical := 0
	for key, refVal := range ref {
		candVal, ok := cand[key]
		if !ok {
			continue
		}
		matching++
		if candVal == refVal {
			identical++
		}
	}
	if matching == 0 {
		return 0
	}
	return 5 + roundHalfUp(20*float64(matching)/float64(len(ref))) + 3*identical
}

// colorOverlapBonus scores the intersection of available color sets.
func colorOverlapBonus(ref, cand []string) int {
	if len(ref) == 0 || len(cand) == 0 {
		return 0
	}
	candSet := make(map[string]struct{}, len(cand))
	for _, c := range cand {
		candSet[c] = struct{}{}
	}
	common := 0
	for _, c := range ref {
		if _, ok := candSet[c]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	return 5 + roundHalfUp(15*float64(common)/float64(len(ref)))
}

// roundHalfUp is the single rounding rule used by all fractional bonuses.
func roundHalfUp(x float64) int {
	return int(math.Round(x))
}

// Rank scores every candidate against the reference and returns up to limit
// results ordered by descending score. The sort is stable: candidates with
// equal scores keep their input order.
func Rank(ref models.Product, pool []models.Product, limit int, now time.Time) []ScoredProduct {
	scored := make([]ScoredProduct, 0, len(pool))
	for _, cand := range pool {
		scored = append(scored, ScoredProduct{Product: cand, Score: Score(ref, cand, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// relaxationSteps is the fixed filter-broadening pipeline: each step admits a
// wider slice of the pool than the previous one. Steps run in order and only
// as long as the candidate count stays short of the requested limit.
func relaxationSteps(ref models.Product) []func(models.Product) bool {
	return []func(models.Product) bool{
		func(p models.Product) bool {
			return p.Category == ref.Category &&
				p.SubCategory == ref.SubCategory &&
				ref.SubSubCategory != "" && p.SubSubCategory == ref.SubSubCategory
		},
		func(p models.Product) bool {
			return p.Category == ref.Category && p.SubCategory == ref.SubCategory
		},
		func(p models.Product) bool {
			return p.Category == ref.Category
		},
		func(p models.Product) bool {
			if ref.PriceTTC == 0 {
				return false
			}
			return math.Abs(p.PriceTTC-ref.PriceTTC)/ref.PriceTTC <= fallbackPriceBand
		},
	}
}

// Candidates applies the relaxation pipeline to the pool and returns the
// candidate set to score, preserving pool order and deduplicating across
// steps. The reference itself and unavailable products are excluded.
func Candidates(ref models.Product, pool []models.Product, limit int) []models.Product {
	seen := make(map[string]struct{}, limit)
	var out []models.Product

	for _, step := range relaxationSteps(ref) {
		if limit > 0 && len(out) >= limit {
			break
		}
		for _, p := range pool {
			if p.ID == ref.ID || !p.Available {
				continue
			}
			if _, dup := seen[p.ID]; dup {
				continue
			}
			if !step(p) {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Similar is the full recommendation pipeline: broaden the candidate set
// until limit is satisfiable, then score, sort and truncate.
func Similar(ref models.Product, pool []models.Product, limit int, now time.Time) []ScoredProduct {
	return Rank(ref, Candidates(ref, pool, limit), limit, now)
}
