package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zodiac/internal/dto"

	"github.com/go-pdf/fpdf"
)

// WriteForecastReport renders the demand forecast as a PDF table and writes
// it under dir. Returns the absolute path of the generated file.
func WriteForecastReport(dir string, forecast *dto.ForecastResponse) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create report dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Demand Forecast Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Demand Forecast Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s | probe factor %.2f",
		time.Now().Format("2006-01-02 15:04"), forecast.ProbeFactor))
	pdf.Ln(10)

	// Table header
	cols := []struct {
		title string
		width float64
	}{
		{"Product", 55},
		{"Price", 25},
		{"Monthly Sales", 30},
		{"Predicted", 30},
		{"Trend", 30},
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range forecast.Items {
		trend := item.Trend
		predicted := fmt.Sprintf("%.1f", item.PredictedSales)
		if !item.Labeled {
			trend = "n/a"
			predicted = "-"
		}
		pdf.CellFormat(cols[0].width, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1].width, 7, item.PricePerUnit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[2].width, 7, fmt.Sprintf("%d", item.MonthlySales), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3].width, 7, predicted, "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4].width, 7, trend, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, forecast.Summary, "", "L", false)

	path := filepath.Join(dir, fmt.Sprintf("forecast_%s.pdf", time.Now().Format("20060102_150405")))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("pdf: write report: %w", err)
	}
	return path, nil
}
