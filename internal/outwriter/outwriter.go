// Package outwriter prints human-readable tables: the end-of-run
// summary and the inspect views.
package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/schema"
)

const minNotesWidth = 40

// WriteRunReport renders the final run summary: which months succeeded
// fully, which were degraded, and which failed, with reasons.
func WriteRunReport(w io.Writer, report *schema.RunReport) error {
	fmt.Fprintf(w, "Run %s on %s (%s)\n\n", report.RunID, report.Workbook, report.Duration.Round(10_000_000))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Month", "Status", "Outputs", "Notes"})

	notesWidth := max(contract.TerminalWidth(120)-60, minNotesWidth)

	var data [][]string
	for _, outcome := range report.Outcomes {
		data = append(data, []string{
			outcome.Label,
			contract.GetColorStatus(outcome.Status),
			strconv.Itoa(len(outcome.Outputs)),
			contract.TruncateText(strings.Join(outcome.Problems, "; "), notesWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteMonthSummary renders the inspect view for one month: totals,
// category distribution and engineer workload.
func WriteMonthSummary(w io.Writer, summary *schema.MonthlySummary) error {
	fmt.Fprintf(w, "\n%s: %d issues (closed %d, open %d, unknown %d; %d dated rows)\n",
		summary.Month.Label(), summary.Total,
		summary.Status.Closed, summary.Status.Open, summary.Status.Unknown,
		summary.DatedRows)
	if summary.Comparison != nil {
		fmt.Fprintf(w, "vs %s: %+d issues\n",
			summary.Comparison.PrevMonth.Label(), summary.Comparison.TotalDelta)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Kind", "Name", "Count"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, name := range sortedKeys(summary.Categories) {
		data = append(data, []string{"category", name, strconv.Itoa(summary.Categories[name])})
	}
	workload := make(map[string]int, len(summary.Workload))
	for name, load := range summary.Workload {
		workload[name] = load.Count
	}
	for _, name := range sortedKeys(workload) {
		data = append(data, []string{"engineer", name, strconv.Itoa(workload[name])})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// sortedKeys orders map keys by descending count, then name.
func sortedKeys(counts map[string]int) []string {
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
