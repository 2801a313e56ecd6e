package catalog

import "github.com/festiloc/festiloc-server/internal/models"

// Totals holds the four derived price fields of a package.
type Totals struct {
	OriginalHT  float64 `json:"originalTotalHT"`
	OriginalTTC float64 `json:"originalTotalTTC"`
	FinalHT     float64 `json:"finalTotalHT"`
	FinalTTC    float64 `json:"finalTotalTTC"`
}

// ComputeTotals sums the list prices of a package's items and applies the
// discount percentage. Items whose product does not resolve contribute zero;
// a dangling reference is not an error. The discount is clamped to [0,100].
func ComputeTotals(items []models.PackageItem, products map[string]models.Product, discountPct float64) Totals {
	var t Totals
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			continue
		}
		qty := float64(item.Quantity)
		t.OriginalHT += p.PriceHT * qty
		t.OriginalTTC += p.PriceTTC * qty
	}

	if discountPct < 0 {
		discountPct = 0
	} else if discountPct > 100 {
		discountPct = 100
	}
	multiplier := 1 - discountPct/100

	t.FinalHT = t.OriginalHT * multiplier
	t.FinalTTC = t.OriginalTTC * multiplier
	return t
}

// ApplyTotals writes computed totals onto a package.
func ApplyTotals(pkg *models.Package, t Totals) {
	pkg.OriginalTotalHT = t.OriginalHT
	pkg.OriginalTotalTTC = t.OriginalTTC
	pkg.FinalTotalHT = t.FinalHT
	pkg.FinalTotalTTC = t.FinalTTC
}
