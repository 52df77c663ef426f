// Package core orchestrates the gensight pipeline: load workbook,
// normalize records, aggregate per-month summaries, then fan out to
// charts, narrative and document assembly with per-month failure
// isolation.
package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gensight/gensight/core/agg"
	"github.com/gensight/gensight/core/normalize"
	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/internal/narrative"
	"github.com/gensight/gensight/internal/workbook"
	"github.com/gensight/gensight/schema"
)

// ChartRenderer renders summary statistics to image files.
type ChartRenderer interface {
	RenderMonth(summary *schema.MonthlySummary, chartsDir string) ([]string, []error)
	RenderMoM(summaries []*schema.MonthlySummary, chartsDir string) (string, error)
}

// NarrativeGenerator produces prose text for one month.
type NarrativeGenerator interface {
	Summarize(ctx context.Context, summary *schema.MonthlySummary, prev *schema.MonthlySummary) (string, error)
}

// DocumentAssembler writes the per-month PDF and PPTX.
type DocumentAssembler interface {
	AssemblePDF(summary *schema.MonthlySummary, chartPaths []string, narrativeText string, monthDir string) (string, error)
	AssemblePPTX(summary *schema.MonthlySummary, chartPaths []string, narrativeText string, monthDir string) (string, error)
}

// Pipeline wires the collaborators for one run. It holds no state
// across invocations.
type Pipeline struct {
	cfg       *contract.Config
	charts    ChartRenderer
	narrative NarrativeGenerator
	assembler DocumentAssembler
	log       zerolog.Logger
}

// NewPipeline builds a pipeline from explicit collaborators.
func NewPipeline(cfg *contract.Config, charts ChartRenderer, gen NarrativeGenerator, assembler DocumentAssembler, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, charts: charts, narrative: gen, assembler: assembler, log: log}
}

// LoadAndAggregate reads the workbook and produces chronologically
// sorted monthly summaries, restricted by the month filter when one is
// set. Sheets with unrecognized names are skipped (or abort the run
// under strict-sheets); unreadable sheets and sheets with missing
// columns fail individually. Both are reported via outcomes so the run
// summary can account for every sheet.
func (p *Pipeline) LoadAndAggregate() ([]*schema.MonthlySummary, []schema.MonthOutcome, error) {
	summaries, sheetOutcomes, err := p.aggregate()
	if err != nil {
		return nil, nil, err
	}
	if !p.cfg.MonthFilter.IsZero() {
		summaries = filterMonth(summaries, p.cfg.MonthFilter)
	}
	return summaries, sheetOutcomes, nil
}

// aggregate loads and normalizes the whole workbook without applying
// the month filter.
func (p *Pipeline) aggregate() ([]*schema.MonthlySummary, []schema.MonthOutcome, error) {
	sheets, err := workbook.Load(p.cfg.WorkbookPath, p.log)
	if err != nil {
		return nil, nil, err
	}
	records, sheetOutcomes, err := p.normalizeSheets(sheets)
	if err != nil {
		return nil, nil, err
	}
	return agg.BuildSummaries(records), sheetOutcomes, nil
}

// normalizeSheets converts raw sheets into records, collecting a
// failed or skipped outcome for every sheet that produced none.
func (p *Pipeline) normalizeSheets(sheets []workbook.RawSheet) ([]schema.IssueRecord, []schema.MonthOutcome, error) {
	var records []schema.IssueRecord
	var sheetOutcomes []schema.MonthOutcome

	for _, sheet := range sheets {
		if sheet.Err != nil {
			p.log.Error().Str("sheet", sheet.Name).Err(sheet.Err).Msg("sheet unreadable")
			sheetOutcomes = append(sheetOutcomes, schema.MonthOutcome{
				Label:    sheet.Name,
				Status:   schema.StatusFailed,
				Problems: []string{sheet.Err.Error()},
			})
			continue
		}
		recs, _, err := normalize.Sheet(sheet, p.log)
		if err != nil {
			var unrec *contract.UnrecognizedSheetNameError
			if errors.As(err, &unrec) {
				if p.cfg.StrictSheets {
					return nil, nil, err
				}
				p.log.Warn().Str("sheet", sheet.Name).Msg("skipping unrecognized sheet")
				sheetOutcomes = append(sheetOutcomes, schema.MonthOutcome{
					Label:    sheet.Name,
					Status:   schema.StatusSkipped,
					Problems: []string{err.Error()},
				})
				continue
			}
			// SchemaError: abort this sheet only.
			p.log.Error().Str("sheet", sheet.Name).Err(err).Msg("sheet failed")
			sheetOutcomes = append(sheetOutcomes, schema.MonthOutcome{
				Label:    sheet.Name,
				Status:   schema.StatusFailed,
				Problems: []string{err.Error()},
			})
			continue
		}
		records = append(records, recs...)
	}
	return records, sheetOutcomes, nil
}

// Run executes the whole pipeline and returns the run report. Months
// are processed sequentially in chronological order so month-over-month
// lookups always see an already-computed predecessor.
func (p *Pipeline) Run(ctx context.Context) (*schema.RunReport, error) {
	started := time.Now()
	report := &schema.RunReport{
		RunID:     uuid.NewString(),
		Workbook:  p.cfg.WorkbookPath,
		StartedAt: started,
	}

	all, sheetOutcomes, err := p.aggregate()
	if err != nil {
		return nil, err
	}
	report.Outcomes = append(report.Outcomes, sheetOutcomes...)

	// The month filter restricts which months are processed, not which
	// months are aggregated: the full batch still feeds comparisons and
	// the month-over-month chart.
	toProcess := all
	if !p.cfg.MonthFilter.IsZero() {
		toProcess = filterMonth(all, p.cfg.MonthFilter)
	}
	p.log.Debug().Str("months", DescribeSummaries(toProcess)).Msg("aggregation complete")

	for _, summary := range toProcess {
		outcome := p.processMonth(ctx, summary, all)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.Duration = time.Since(started)
	return report, nil
}

// processMonth runs charts, narrative and assembly for one month.
// Chart and narrative problems degrade the month; assembly problems
// fail it. Nothing here aborts the rest of the batch.
func (p *Pipeline) processMonth(ctx context.Context, summary *schema.MonthlySummary, all []*schema.MonthlySummary) schema.MonthOutcome {
	label := summary.Month.Label()
	outcome := schema.MonthOutcome{Month: summary.Month, Label: label, Status: schema.StatusOK}

	monthDir := filepath.Join(p.cfg.OutDir, label)
	chartsDir := filepath.Join(monthDir, "charts")
	log := p.log.With().Str("month", label).Logger()

	// 1. Charts: each chart fails independently.
	var chartPaths []string
	if !p.cfg.SkipCharts {
		paths, failures := p.charts.RenderMonth(summary, chartsDir)
		chartPaths = paths
		for _, ferr := range failures {
			log.Warn().Err(ferr).Msg("chart failed")
			outcome.Degrade(ferr.Error())
		}
		if summary.Comparison != nil {
			momPath, err := p.charts.RenderMoM(all, chartsDir)
			if err != nil {
				cerr := &contract.ChartRenderError{Month: label, Chart: "mom_comparison", Err: err}
				log.Warn().Err(cerr).Msg("chart failed")
				outcome.Degrade(cerr.Error())
			} else {
				chartPaths = append(chartPaths, momPath)
			}
		}
	}

	// 2. Narrative: failure or timeout falls back to placeholder text.
	text := narrative.Fallback(summary)
	if !p.cfg.SkipNarrative {
		generated, err := p.narrative.Summarize(ctx, summary, previousOf(summary, all))
		if err != nil {
			nerr := &contract.NarrativeGenerationError{Month: label, Err: err}
			log.Warn().Err(nerr).Msg("narrative failed, using placeholder")
			outcome.Degrade(nerr.Error())
		} else {
			text = generated
		}
	}

	// 3. Documents: fatal for this month's output only.
	if pdfPath, err := p.assembler.AssemblePDF(summary, chartPaths, text, monthDir); err != nil {
		log.Error().Err(err).Msg("pdf assembly failed")
		outcome.Fail(err.Error())
	} else {
		outcome.Outputs = append(outcome.Outputs, pdfPath)
	}
	if pptxPath, err := p.assembler.AssemblePPTX(summary, chartPaths, text, monthDir); err != nil {
		log.Error().Err(err).Msg("pptx assembly failed")
		outcome.Fail(err.Error())
	} else {
		outcome.Outputs = append(outcome.Outputs, pptxPath)
	}

	outcome.Outputs = append(outcome.Outputs, chartPaths...)
	return outcome
}

// previousOf finds the calendar-preceding summary in the batch, or nil.
func previousOf(summary *schema.MonthlySummary, all []*schema.MonthlySummary) *schema.MonthlySummary {
	prevKey := summary.Month.Prev()
	for _, s := range all {
		if s.Month == prevKey {
			return s
		}
	}
	return nil
}

// filterMonth keeps only the summary matching the requested month. The
// full batch is still aggregated first so the kept month retains its
// comparison block.
func filterMonth(summaries []*schema.MonthlySummary, key schema.MonthKey) []*schema.MonthlySummary {
	for _, s := range summaries {
		if s.Month == key {
			return []*schema.MonthlySummary{s}
		}
	}
	return nil
}

// DescribeSummaries is a convenience for logs: "JAN2026(3) FEB2026(5)".
func DescribeSummaries(summaries []*schema.MonthlySummary) string {
	out := ""
	for i, s := range summaries {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s(%d)", s.Month.Label(), s.Total)
	}
	return out
}
