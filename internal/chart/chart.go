// Package chart renders monthly summary statistics into PNG bar
// charts. Each chart renders independently; one failure never blocks
// the others.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/schema"
)

// Chart image file names under <out-dir>/<MONTH>/charts/.
const (
	DailyTrendFile    = "daily_trend.png"
	DistributionFile  = "issue_distribution.png"
	WorkloadFile      = "engineer_workload.png"
	MoMComparisonFile = "mom_comparison.png"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

// Renderer writes summary charts as static images.
type Renderer struct{}

// New returns a chart renderer.
func New() *Renderer { return &Renderer{} }

// RenderMonth renders the per-month charts into chartsDir and returns
// the paths that were written. Failures are returned as
// ChartRenderError values alongside the successes, never as an abort.
func (r *Renderer) RenderMonth(summary *schema.MonthlySummary, chartsDir string) ([]string, []error) {
	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		return nil, []error{&contract.ChartRenderError{
			Month: summary.Month.Label(), Chart: "all", Err: err,
		}}
	}

	type job struct {
		file string
		bars []chart.Value
		name string
	}
	jobs := []job{
		{DailyTrendFile, dailyBars(summary), "Daily Issue Trend"},
		{DistributionFile, categoryBars(summary), "Issue Distribution"},
		{WorkloadFile, workloadBars(summary), "Engineer Workload"},
	}

	var paths []string
	var failures []error
	for _, j := range jobs {
		out := filepath.Join(chartsDir, j.file)
		if err := renderBars(j.name+" - "+summary.Month.Label(), j.bars, out); err != nil {
			failures = append(failures, &contract.ChartRenderError{
				Month: summary.Month.Label(), Chart: j.file, Err: err,
			})
			continue
		}
		paths = append(paths, out)
	}
	return paths, failures
}

// RenderMoM renders the cross-month issue volume chart used on the
// month-over-month page/slide. It needs at least two months.
func (r *Renderer) RenderMoM(summaries []*schema.MonthlySummary, chartsDir string) (string, error) {
	if len(summaries) < 2 {
		return "", fmt.Errorf("month-over-month chart needs at least two months, have %d", len(summaries))
	}
	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		return "", err
	}

	bars := make([]chart.Value, 0, len(summaries))
	for _, s := range summaries {
		bars = append(bars, chart.Value{Label: s.Month.Label(), Value: float64(s.Total)})
	}
	out := filepath.Join(chartsDir, MoMComparisonFile)
	if err := renderBars("Month-over-Month Issue Volume", bars, out); err != nil {
		return "", err
	}
	return out, nil
}

// renderBars writes one bar chart to disk. go-chart rejects empty bar
// sets with an error, which is exactly the per-chart failure we want.
func renderBars(title string, bars []chart.Value, out string) error {
	// An explicit padded y-range is required: go-chart refuses a zero
	// range, which uniform bar values would otherwise produce.
	maxVal := 0.0
	for _, b := range bars {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
		},
		Bars: bars,
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := graph.Render(chart.PNG, f); err != nil {
		// Remove the empty file so the assembler treats the chart as
		// absent rather than unreadable.
		_ = os.Remove(out)
		return err
	}
	return nil
}

// dailyBars builds the daily-trend series. Undated rows are already
// excluded upstream.
func dailyBars(summary *schema.MonthlySummary) []chart.Value {
	bars := make([]chart.Value, 0, len(summary.Daily))
	for _, dc := range summary.Daily {
		bars = append(bars, chart.Value{Label: dc.Day.Format("2006-01-02"), Value: float64(dc.Count)})
	}
	return bars
}

// categoryBars builds the issue-type distribution, highest count first.
func categoryBars(summary *schema.MonthlySummary) []chart.Value {
	return sortedBars(summary.Categories)
}

// workloadBars builds the per-engineer workload, highest count first.
func workloadBars(summary *schema.MonthlySummary) []chart.Value {
	counts := make(map[string]int, len(summary.Workload))
	for name, load := range summary.Workload {
		counts[name] = load.Count
	}
	return sortedBars(counts)
}

// sortedBars converts a count map into bars ordered by descending
// count, then alphabetically so renders are deterministic.
func sortedBars(counts map[string]int) []chart.Value {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	bars := make([]chart.Value, 0, len(names))
	for _, name := range names {
		bars = append(bars, chart.Value{Label: name, Value: float64(counts[name])})
	}
	return bars
}
