package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gensight/gensight/core"
	"github.com/gensight/gensight/internal/outwriter"
)

// inspectCmd parses and aggregates only, printing summary tables.
var inspectCmd = &cobra.Command{
	Use:   "inspect <workbook.xlsx>",
	Short: "Parse and aggregate a workbook, printing per-month tables without writing files",
	Long: `Inspect a workbook without producing any output files.

Prints one table per month: total/open/closed/unknown counts, issue
category distribution, and per-engineer workload. Useful for checking
column headers, sheet names and category keyword behavior before a
full report run.

Examples:
  gensight inspect tickets.xlsx
  gensight inspect tickets.xlsx --month FEB2026`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		pipeline := core.NewPipeline(cfg, nil, nil, nil, log.Logger)
		summaries, sheetOutcomes, err := pipeline.LoadAndAggregate()
		if err != nil {
			return err
		}

		for _, outcome := range sheetOutcomes {
			fmt.Fprintf(os.Stdout, "sheet %s: %s (%v)\n", outcome.Label, outcome.Status, outcome.Problems)
		}
		if len(summaries) == 0 {
			return fmt.Errorf("no processable months found in %s", cfg.WorkbookPath)
		}
		for _, summary := range summaries {
			if err := outwriter.WriteMonthSummary(os.Stdout, summary); err != nil {
				return err
			}
		}
		return nil
	},
}
