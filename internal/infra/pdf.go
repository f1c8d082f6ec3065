package infra

// pdf.go — inventory valuation report export using go-pdf/fpdf.
// Renders an A4 table with one row per product (stock, unit price, value)
// and a bold grand total.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shopforge/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateValuationPDF writes the valuation report as a PDF file and returns
// the absolute path. storagePath is created if it does not exist.
func GenerateValuationPDF(report *dto.ValuationReport, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now().UTC()
	fileName := fmt.Sprintf("valuation_%s.pdf", now.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Inventory Valuation Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, now.Format("2006-01-02 15:04 UTC"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // product name
	col2 := contentW * 0.14 // stock
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.22 // value

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Stock", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Value", "B", 1, "R", false, 0, "")

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range report.Products {
		name := item.Name
		if len(name) > 48 {
			name = name[:47] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Stock), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.Value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL INVENTORY VALUE:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+report.TotalInventoryValue.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
