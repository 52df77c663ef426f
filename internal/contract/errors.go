package contract

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from a worksheet header
// row. It is fatal for that sheet only.
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}

// UnrecognizedSheetNameError reports a worksheet whose name matches
// neither the MMMYYYY monthly pattern nor a daily date pattern. The
// caller decides whether to skip the sheet or abort the run.
type UnrecognizedSheetNameError struct {
	Sheet string
}

func (e *UnrecognizedSheetNameError) Error() string {
	return fmt.Sprintf("sheet %q matches neither MMMYYYY (e.g. JAN2026) nor DD-MM-YYYY", e.Sheet)
}

// ChartRenderError reports a single chart that could not be rendered.
// Chart failures are collected and reported; they never abort the month.
type ChartRenderError struct {
	Month string
	Chart string
	Err   error
}

func (e *ChartRenderError) Error() string {
	return fmt.Sprintf("chart %s for %s: %v", e.Chart, e.Month, e.Err)
}

func (e *ChartRenderError) Unwrap() error { return e.Err }

// NarrativeGenerationError reports a failed or timed-out narrative
// call. The pipeline substitutes placeholder text and continues.
type NarrativeGenerationError struct {
	Month string
	Err   error
}

func (e *NarrativeGenerationError) Error() string {
	return fmt.Sprintf("narrative for %s: %v", e.Month, e.Err)
}

func (e *NarrativeGenerationError) Unwrap() error { return e.Err }

// ReportAssemblyError reports a failed document write. It is fatal for
// that month's output only; other months in the batch continue.
type ReportAssemblyError struct {
	Month string
	Kind  string // "pdf" or "pptx"
	Err   error
}

func (e *ReportAssemblyError) Error() string {
	return fmt.Sprintf("%s assembly for %s: %v", e.Kind, e.Month, e.Err)
}

func (e *ReportAssemblyError) Unwrap() error { return e.Err }
