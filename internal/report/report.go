// Package report assembles monthly summary statistics, chart images
// and narrative text into a PDF report and a PPTX deck. Missing chart
// files mean "omit that visual", never a hard failure.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gensight/gensight/schema"
)

// Output file name patterns, per month.
const (
	PDFNamePattern  = "Monthly_Report_%s.pdf"
	PPTXNamePattern = "Monthly_Issue_Insights_%s.pptx"
)

// Assembler writes the per-month documents.
type Assembler struct {
	logoPath string
	log      zerolog.Logger
}

// New builds an Assembler. logoPath may be empty.
func New(logoPath string, log zerolog.Logger) *Assembler {
	return &Assembler{logoPath: logoPath, log: log}
}

// existingCharts filters chart paths down to files that are actually
// present on disk, preserving order.
func (a *Assembler) existingCharts(paths []string) []string {
	var present []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			a.log.Warn().Str("chart", p).Msg("chart file missing, omitting visual")
			continue
		}
		present = append(present, p)
	}
	return present
}

// highlightLines renders the key-metrics block shared by the PDF cover
// and the PPTX highlights slide.
func highlightLines(summary *schema.MonthlySummary) []string {
	lines := []string{
		fmt.Sprintf("Total issues: %d", summary.Total),
		fmt.Sprintf("Status: Closed %d, Open %d, Unknown %d",
			summary.Status.Closed, summary.Status.Open, summary.Status.Unknown),
		fmt.Sprintf("Issue types: %s", joinCounts(summary.Categories)),
		fmt.Sprintf("Top engineers: %s", topEngineers(summary, 3)),
	}
	if summary.Comparison != nil {
		lines = append(lines, fmt.Sprintf("Versus %s: %+d issues",
			summary.Comparison.PrevMonth.Label(), summary.Comparison.TotalDelta))
	}
	return lines
}

// joinCounts renders a count map ordered by descending count.
func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	names := sortedByCount(counts)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}

// topEngineers renders the n busiest engineers.
func topEngineers(summary *schema.MonthlySummary, n int) string {
	counts := make(map[string]int, len(summary.Workload))
	for name, load := range summary.Workload {
		counts[name] = load.Count
	}
	names := sortedByCount(counts)
	if len(names) > n {
		names = names[:n]
	}
	if len(names) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}

// sortedByCount orders map keys by descending count, then name.
func sortedByCount(counts map[string]int) []string {
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
	return names
}

// wrapText word-wraps text to lines of at most maxChars characters,
// for renderers without their own wrapping.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var cur []string
	count := 0
	for _, w := range words {
		extra := len(w)
		if len(cur) > 0 {
			extra++
		}
		if count+extra > maxChars && len(cur) > 0 {
			lines = append(lines, strings.Join(cur, " "))
			cur, count = []string{w}, len(w)
			continue
		}
		cur = append(cur, w)
		count += extra
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return lines
}
