package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/schema"
)

// AssemblePPTX writes Monthly_Issue_Insights_<MONTH>.pptx into
// monthDir: title slide, key highlights, AI summary, one slide per
// available chart, and a month-over-month slide when comparison data
// exists.
func (a *Assembler) AssemblePPTX(summary *schema.MonthlySummary, chartPaths []string, narrativeText string, monthDir string) (string, error) {
	label := summary.Month.Label()
	out := filepath.Join(monthDir, fmt.Sprintf(PPTXNamePattern, label))

	if err := os.MkdirAll(monthDir, 0o755); err != nil {
		return "", &contract.ReportAssemblyError{Month: label, Kind: "pptx", Err: err}
	}

	ppt := presentation.New()
	defer func() { _ = ppt.Close() }()

	a.pptxTitleSlide(ppt, label)
	a.pptxBulletSlide(ppt, "Key Highlights", highlightLines(summary))
	a.pptxBulletSlide(ppt, "AI Summary", wrapText(narrativeText, 90))

	for _, path := range a.existingCharts(chartPaths) {
		if err := a.pptxChartSlide(ppt, path); err != nil {
			a.log.Warn().Str("chart", path).Err(err).Msg("could not place chart on slide")
		}
	}

	if summary.Comparison != nil {
		a.pptxBulletSlide(ppt, "Month-over-Month Comparison", momLines(summary))
	}

	if err := ppt.SaveToFile(out); err != nil {
		return "", &contract.ReportAssemblyError{Month: label, Kind: "pptx", Err: err}
	}
	a.log.Info().Str("month", label).Str("path", out).Msg("wrote PPTX deck")
	return out, nil
}

// pptxTitleSlide draws the deck title and the optional logo.
func (a *Assembler) pptxTitleSlide(ppt *presentation.Presentation, label string) {
	slide := ppt.AddSlide()

	title := slide.AddTextBox()
	title.Properties().SetPosition(0.5*measurement.Inch, 1.5*measurement.Inch)
	title.Properties().SetSize(9*measurement.Inch, 1.2*measurement.Inch)
	run := title.AddParagraph().AddRun()
	run.SetText("Monthly Issue Insights - " + label)
	run.Properties().SetSize(32 * measurement.Point)
	run.Properties().SetBold(true)

	subtitle := slide.AddTextBox()
	subtitle.Properties().SetPosition(0.5*measurement.Inch, 2.9*measurement.Inch)
	subtitle.Properties().SetSize(9*measurement.Inch, 0.6*measurement.Inch)
	sub := subtitle.AddParagraph().AddRun()
	sub.SetText("Auto-generated by gensight")
	sub.Properties().SetSize(16 * measurement.Point)

	if a.logoPath != "" {
		if img, err := common.ImageFromFile(a.logoPath); err == nil {
			if iref, err := ppt.AddImage(img); err == nil {
				logo := slide.AddImage(iref)
				logo.Properties().SetPosition(8.6*measurement.Inch, 0.2*measurement.Inch)
				logo.Properties().SetSize(1.2*measurement.Inch, 0.8*measurement.Inch)
			}
		}
	}
}

// pptxBulletSlide draws a slide title and one paragraph per line.
func (a *Assembler) pptxBulletSlide(ppt *presentation.Presentation, title string, lines []string) {
	slide := ppt.AddSlide()

	header := slide.AddTextBox()
	header.Properties().SetPosition(0.5*measurement.Inch, 0.4*measurement.Inch)
	header.Properties().SetSize(9*measurement.Inch, 0.9*measurement.Inch)
	run := header.AddParagraph().AddRun()
	run.SetText(title)
	run.Properties().SetSize(26 * measurement.Point)
	run.Properties().SetBold(true)

	body := slide.AddTextBox()
	body.Properties().SetPosition(0.5*measurement.Inch, 1.5*measurement.Inch)
	body.Properties().SetSize(9*measurement.Inch, 5*measurement.Inch)
	if len(lines) == 0 {
		lines = []string{"No data available."}
	}
	for _, line := range lines {
		r := body.AddParagraph().AddRun()
		r.SetText(line)
		r.Properties().SetSize(16 * measurement.Point)
	}
}

// pptxChartSlide places one chart image on its own titled slide.
func (a *Assembler) pptxChartSlide(ppt *presentation.Presentation, path string) error {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return err
	}
	iref, err := ppt.AddImage(img)
	if err != nil {
		return err
	}

	slide := ppt.AddSlide()
	header := slide.AddTextBox()
	header.Properties().SetPosition(0.5*measurement.Inch, 0.3*measurement.Inch)
	header.Properties().SetSize(9*measurement.Inch, 0.7*measurement.Inch)
	run := header.AddParagraph().AddRun()
	run.SetText(chartTitle(path))
	run.Properties().SetSize(22 * measurement.Point)
	run.Properties().SetBold(true)

	pic := slide.AddImage(iref)
	pic.Properties().SetPosition(0.7*measurement.Inch, 1.3*measurement.Inch)
	pic.Properties().SetSize(8.6*measurement.Inch, 4.3*measurement.Inch)
	return nil
}

// momLines renders the comparison block as slide bullets.
func momLines(summary *schema.MonthlySummary) []string {
	c := summary.Comparison
	lines := []string{
		fmt.Sprintf("%s: %d issues", c.PrevMonth.Label(), c.PrevTotal),
		fmt.Sprintf("%s: %d issues (%+d)", summary.Month.Label(), summary.Total, c.TotalDelta),
	}
	for _, name := range sortedByCount(c.CategoryDeltas) {
		if delta := c.CategoryDeltas[name]; delta != 0 {
			lines = append(lines, fmt.Sprintf("%s: %+d", name, delta))
		}
	}
	return lines
}

// chartTitle derives a human slide title from a chart file name.
func chartTitle(path string) string {
	switch filepath.Base(path) {
	case "daily_trend.png":
		return "Daily Issue Trend"
	case "issue_distribution.png":
		return "Issue Distribution"
	case "engineer_workload.png":
		return "Engineer Workload"
	case "mom_comparison.png":
		return "Month-over-Month Issue Volume"
	default:
		return filepath.Base(path)
	}
}
