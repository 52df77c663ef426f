package cmd

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gensight/gensight/core"
	"github.com/gensight/gensight/internal/chart"
	"github.com/gensight/gensight/internal/narrative"
	"github.com/gensight/gensight/internal/outwriter"
	"github.com/gensight/gensight/internal/report"
)

// reportCmd runs the full pipeline for one workbook.
var reportCmd = &cobra.Command{
	Use:   "report <workbook.xlsx>",
	Short: "Generate charts, narrative, PDF and PPTX for every month in a workbook",
	Long: `Run the full pipeline over an Excel workbook.

Each worksheet named like JAN2026 (or a daily DD-MM-YYYY sheet) is
normalized and aggregated into a monthly summary. Per month, gensight
writes under <out-dir>/<MONTH>/:
- charts/daily_trend.png, issue_distribution.png, engineer_workload.png
- Monthly_Report_<MONTH>.pdf
- Monthly_Issue_Insights_<MONTH>.pptx

The narrative section is produced by an OpenAI-compatible provider
(--ai-endpoint / --ai-key / --ai-model / --ai-timeout). When the call
fails or times out, a placeholder narrative is used and the month is
reported as degraded rather than failed.

PPTX assembly uses unioffice, which requires a metered license key in
UNIDOC_LICENSE_API_KEY (free tier available from unidoc.com). Without
it the PPTX write fails and the month is reported as failed; the PDF
is unaffected.

Examples:
  # All months, default output layout
  gensight report tickets.xlsx

  # One month only, no provider call
  gensight report tickets.xlsx --month JAN2026 --skip-narrative`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		pipeline := core.NewPipeline(
			cfg,
			chart.New(),
			narrative.New(cfg, log.Logger),
			report.New(cfg.LogoPath, log.Logger),
			log.Logger,
		)

		runReport, err := pipeline.Run(rootCtx)
		if err != nil {
			return err
		}

		if err := outwriter.WriteRunReport(os.Stdout, runReport); err != nil {
			return err
		}
		if runReport.Failed() {
			return errors.New("no month produced usable output")
		}
		return nil
	},
}
