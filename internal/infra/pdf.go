package infra

// pdf.go: sales report rendering with go-pdf/fpdf.
// A4 portrait document with:
//   - Business name and date range header
//   - Totals (sales, profit, units)
//   - Employee ranking
//   - Product ranking
//   - Sale line detail

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"eskimo/internal/dto"

	"github.com/go-pdf/fpdf"
)

const fechaReporte = "02/01/2006"

// WriteReportePDF renders rep as a PDF into w.
func WriteReportePDF(w io.Writer, rep *dto.ReporteVentas) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Reporte de ventas", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr(rep.Negocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	// Hasta is exclusive; show the last included day.
	periodo := fmt.Sprintf("Reporte de ventas del %s al %s",
		rep.Desde.Format(fechaReporte), rep.Hasta.AddDate(0, 0, -1).Format(fechaReporte))
	pdf.CellFormat(contentW, 6, tr(periodo), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	third := contentW / 3
	pdf.CellFormat(third, 6, "Total vendido", "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, 6, "Ganancia", "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, 6, "Unidades", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(third, 6, "$"+rep.Resumen.Total.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, 6, "$"+rep.Resumen.Ganancia.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, 6, fmt.Sprintf("%d", rep.Resumen.Cantidad), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Rankings ─────────────────────────────────────────────────────────────
	seccion(pdf, contentW, "Ventas por empleado")
	pdf.SetFont("Helvetica", "", 9)
	for i, e := range rep.Empleados {
		pdf.CellFormat(contentW*0.1, 5, fmt.Sprintf("%d", i+1), "B", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.6, 5, tr(e.Name), "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, "$"+e.TotalSales.StringFixed(2), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	seccion(pdf, contentW, "Productos mas vendidos")
	pdf.SetFont("Helvetica", "", 9)
	for i, p := range rep.Productos {
		pdf.CellFormat(contentW*0.1, 5, fmt.Sprintf("%d", i+1), "B", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.6, 5, tr(p.Name), "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, fmt.Sprintf("%d u.", p.QuantitySold), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Detail ───────────────────────────────────────────────────────────────
	seccion(pdf, contentW, "Detalle")
	cols := []float64{contentW * 0.18, contentW * 0.27, contentW * 0.25, contentW * 0.1, contentW * 0.2}
	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range []string{"Fecha", "Producto", "Empleado", "Cant", "Total"} {
		pdf.CellFormat(cols[i], 5, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	for _, v := range rep.Ventas {
		total := v.PrecioVenta.Mul(decimalFromInt(v.Cantidad))
		pdf.CellFormat(cols[0], 5, v.CreatedAt.Format("02/01 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], 5, tr(truncar(v.Producto, 28)), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], 5, tr(truncar(v.Empleado, 26)), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[3], 5, fmt.Sprintf("%d", v.Cantidad), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[4], 5, "$"+total.StringFixed(2), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

// GuardarReportePDF writes the report into dir and returns the file path.
func GuardarReportePDF(rep *dto.ReporteVentas, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("reporte_%s_%s.pdf",
		rep.Desde.Format("20060102"), rep.Hasta.AddDate(0, 0, -1).Format("20060102")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	defer f.Close()
	if err := WriteReportePDF(f, rep); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}

func seccion(pdf *fpdf.Fpdf, w float64, titulo string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(w, 7, titulo, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func truncar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
