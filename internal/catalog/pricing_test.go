package catalog

import (
	"math"
	"testing"

	"github.com/festiloc/festiloc-server/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testLookup() map[string]models.Product {
	return map[string]models.Product{
		"chaise": {ID: "chaise", PriceHT: 2.50, PriceTTC: 3.00},
		"table":  {ID: "table", PriceHT: 9.00, PriceTTC: 10.80},
	}
}

func TestComputeTotalsAppliesDiscount(t *testing.T) {
	items := []models.PackageItem{
		{ProductID: "chaise", Quantity: 50},
		{ProductID: "table", Quantity: 7},
	}

	totals := ComputeTotals(items, testLookup(), 10)

	wantHT := 50*2.50 + 7*9.00
	wantTTC := 50*3.00 + 7*10.80

	if !almostEqual(totals.OriginalHT, wantHT) {
		t.Errorf("OriginalHT = %v, want %v", totals.OriginalHT, wantHT)
	}
	if !almostEqual(totals.OriginalTTC, wantTTC) {
		t.Errorf("OriginalTTC = %v, want %v", totals.OriginalTTC, wantTTC)
	}
	if !almostEqual(totals.FinalHT, wantHT*0.9) {
		t.Errorf("FinalHT = %v, want %v", totals.FinalHT, wantHT*0.9)
	}
	if !almostEqual(totals.FinalTTC, wantTTC*0.9) {
		t.Errorf("FinalTTC = %v, want %v", totals.FinalTTC, wantTTC*0.9)
	}
	if totals.FinalHT > totals.OriginalHT || totals.FinalTTC > totals.OriginalTTC {
		t.Error("discounted totals must never exceed originals")
	}
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, testLookup(), 25)

	if totals.OriginalHT != 0 || totals.OriginalTTC != 0 || totals.FinalHT != 0 || totals.FinalTTC != 0 {
		t.Errorf("empty item list must produce all-zero totals, got %+v", totals)
	}
}

func TestComputeTotalsSkipsUnresolvedProducts(t *testing.T) {
	items := []models.PackageItem{
		{ProductID: "chaise", Quantity: 2},
		{ProductID: "deleted-product", Quantity: 100},
	}

	totals := ComputeTotals(items, testLookup(), 0)

	if !almostEqual(totals.OriginalHT, 5.00) {
		t.Errorf("unresolved item must contribute zero, got OriginalHT = %v", totals.OriginalHT)
	}
}

func TestComputeTotalsClampsDiscount(t *testing.T) {
	items := []models.PackageItem{{ProductID: "table", Quantity: 1}}

	over := ComputeTotals(items, testLookup(), 150)
	if !almostEqual(over.FinalHT, 0) {
		t.Errorf("discount above 100 must clamp to free, got FinalHT = %v", over.FinalHT)
	}

	under := ComputeTotals(items, testLookup(), -20)
	if !almostEqual(under.FinalHT, under.OriginalHT) {
		t.Errorf("negative discount must clamp to zero, got FinalHT = %v", under.FinalHT)
	}
}

func TestApplyTotals(t *testing.T) {
	pkg := models.Package{}
	ApplyTotals(&pkg, Totals{OriginalHT: 100, OriginalTTC: 120, FinalHT: 90, FinalTTC: 108})

	if pkg.OriginalTotalHT != 100 || pkg.OriginalTotalTTC != 120 ||
		pkg.FinalTotalHT != 90 || pkg.FinalTotalTTC != 108 {
		t.Errorf("totals not applied: %+v", pkg)
	}
}
