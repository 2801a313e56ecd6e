// Package quote renders a package as a printable PDF quote with a QR code
// linking back to the package page.
package quote

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/festiloc/festiloc-server/internal/models"
)

// GeneratePDF builds the quote for a package. products resolves item lines;
// unresolved references are printed as unavailable rather than failing the
// whole document, matching the pricing rule.
func GeneratePDF(pkg *models.Package, products map[string]models.Product, baseURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Festiloc", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Devis - location de matériel événementiel"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(pkg.Name), "", 1, "L", false, 0, "")
	if pkg.Description != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(pkg.Description), "", "L", false)
	}
	pdf.Ln(4)

	// Item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 7, tr("Désignation"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, tr("Qté"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Prix unit. HT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total HT", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range pkg.Items {
		product, ok := products[item.ProductID]
		if !ok {
			pdf.CellFormat(90, 7, tr("(article indisponible)"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 7, "-", "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 7, "-", "1", 1, "R", false, 0, "")
			continue
		}
		pdf.CellFormat(90, 7, tr(product.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, formatEuro(product.PriceHT), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatEuro(product.PriceHT*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block
	pdf.SetFont("Arial", "", 10)
	writeTotal(pdf, tr, "Total HT", pkg.OriginalTotalHT, false)
	if pkg.DiscountPct > 0 {
		pdf.SetTextColor(180, 0, 0)
		writeTotal(pdf, tr, fmt.Sprintf("Remise (%.0f%%)", pkg.DiscountPct), pkg.FinalTotalHT-pkg.OriginalTotalHT, false)
		pdf.SetTextColor(0, 0, 0)
		writeTotal(pdf, tr, "Total HT remisé", pkg.FinalTotalHT, false)
	}
	writeTotal(pdf, tr, "Total TTC", pkg.FinalTotalTTC, true)

	// QR code to the package page
	pageURL := fmt.Sprintf("%s/packages/%s", baseURL, pkg.Slug)
	qrPng, err := qrcode.Encode(pageURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("package_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("package_qr", 15, 250, 25, 25, false, opts, 0, "")
	pdf.SetXY(42, 260)
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 5, tr("Retrouvez ce pack en ligne : ")+pageURL, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTotal(pdf *gofpdf.Fpdf, tr func(string) string, label string, amount float64, bold bool) {
	if bold {
		pdf.SetFont("Arial", "B", 11)
	}
	pdf.CellFormat(145, 7, tr(label), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, formatEuro(amount), "", 1, "R", false, 0, "")
	if bold {
		pdf.SetFont("Arial", "", 10)
	}
}

func formatEuro(amount float64) string {
	return fmt.Sprintf("%.2f EUR", amount)
}
