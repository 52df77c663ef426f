package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gensight/gensight/core"
	"github.com/gensight/gensight/internal/parquet"
)

// exportCmd writes aggregated monthly data to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export <workbook.xlsx>",
	Short: "Export aggregated monthly data to Parquet for BI tools and analytics",
	Long: `Aggregate a workbook and export the results to Parquet format.

Exports two datasets:
- <output-file>.months.parquet     - one row per month (totals, status split, MoM delta)
- <output-file>.categories.parquet - one row per month and issue category

Parquet output can be queried directly with DuckDB, pandas or Spark.

Requires: --output-file

Examples:
  gensight export tickets.xlsx --output-file insights
  duckdb -c "SELECT * FROM read_parquet('insights.months.parquet')"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for export command")
		}

		pipeline := core.NewPipeline(cfg, nil, nil, nil, log.Logger)
		summaries, _, err := pipeline.LoadAndAggregate()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			return fmt.Errorf("no processable months found in %s", cfg.WorkbookPath)
		}

		months, categories := parquet.ConvertSummaries(summaries, time.Now())

		monthsFile := cfg.OutputFile + ".months.parquet"
		if err := parquet.WriteMonthsParquet(months, monthsFile); err != nil {
			return fmt.Errorf("failed to write months dataset: %w", err)
		}
		fmt.Printf("Exported %d month rows to: %s\n", len(months), monthsFile)

		categoriesFile := cfg.OutputFile + ".categories.parquet"
		if err := parquet.WriteCategoriesParquet(categories, categoriesFile); err != nil {
			return fmt.Errorf("failed to write categories dataset: %w", err)
		}
		fmt.Printf("Exported %d category rows to: %s\n", len(categories), categoriesFile)

		return nil
	},
}
