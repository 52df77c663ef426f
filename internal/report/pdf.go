package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/schema"
)

// A4 layout constants, in millimeters.
const (
	pdfMarginLeft  = 15.0
	pdfChartWidth  = 180.0
	pdfChartHeight = 90.0
	chartsPerPage  = 2
)

// AssemblePDF writes Monthly_Report_<MONTH>.pdf into monthDir. Chart
// paths that do not exist on disk are omitted. Narrative text is
// required by the layout but may be the placeholder.
func (a *Assembler) AssemblePDF(summary *schema.MonthlySummary, chartPaths []string, narrativeText string, monthDir string) (string, error) {
	label := summary.Month.Label()
	out := filepath.Join(monthDir, fmt.Sprintf(PDFNamePattern, label))

	if err := os.MkdirAll(monthDir, 0o755); err != nil {
		return "", &contract.ReportAssemblyError{Month: label, Kind: "pdf", Err: err}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly Issue Report "+label, false)
	a.pdfCoverPage(pdf, summary, narrativeText)
	a.pdfChartPages(pdf, a.existingCharts(chartPaths))

	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", &contract.ReportAssemblyError{Month: label, Kind: "pdf", Err: err}
	}
	a.log.Info().Str("month", label).Str("path", out).Msg("wrote PDF report")
	return out, nil
}

// pdfCoverPage draws the title, optional logo, key metrics and the
// narrative block, paginating long narratives.
func (a *Assembler) pdfCoverPage(pdf *fpdf.Fpdf, summary *schema.MonthlySummary, narrativeText string) {
	pdf.AddPage()

	if a.logoPath != "" {
		if _, err := os.Stat(a.logoPath); err == nil {
			pageWidth, _ := pdf.GetPageSize()
			pdf.ImageOptions(a.logoPath, pageWidth-45, 10, 30, 0, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(0, 12, "Monthly Issue Report - "+summary.Month.Label(), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range highlightLines(summary) {
		pdf.SetX(pdfMarginLeft)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(0, 8, "AI Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(pdfMarginLeft)
	pdf.MultiCell(0, 6, narrativeText, "", "L", false)
}

// pdfChartPages lays charts out two per page.
func (a *Assembler) pdfChartPages(pdf *fpdf.Fpdf, charts []string) {
	if len(charts) == 0 {
		return
	}

	onPage := chartsPerPage // force a new page for the first chart
	for _, path := range charts {
		if onPage == chartsPerPage {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 16)
			pdf.SetX(pdfMarginLeft)
			pdf.CellFormat(0, 10, "Charts", "", 1, "L", false, 0, "")
			onPage = 0
		}
		y := 30.0 + float64(onPage)*(pdfChartHeight+20)
		pdf.ImageOptions(path, pdfMarginLeft, y, pdfChartWidth, pdfChartHeight, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		onPage++
	}
}
