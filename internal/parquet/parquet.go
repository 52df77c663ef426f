// Package parquet exports monthly summary data to Parquet files using
// github.com/parquet-go/parquet-go, for analysis in DuckDB, pandas or
// Spark.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gensight/gensight/schema"
)

// MonthRow is one exported row per month.
type MonthRow struct {
	// MonthLabel is the MMMYYYY label, e.g. JAN2026
	MonthLabel string `parquet:"month_label,snappy"`

	// Year and Month identify the calendar bucket numerically
	Year  int32 `parquet:"year,snappy"`
	Month int32 `parquet:"month,snappy"`

	// TotalIssues is the full row count including undated rows
	TotalIssues int32 `parquet:"total_issues,snappy"`

	OpenIssues    int32 `parquet:"open_issues,snappy"`
	ClosedIssues  int32 `parquet:"closed_issues,snappy"`
	UnknownIssues int32 `parquet:"unknown_issues,snappy"`

	// DatedRows is the count of rows contributing to the daily trend
	DatedRows int32 `parquet:"dated_rows,snappy"`

	// TotalDelta is the month-over-month change (nullable: absent for
	// the first month in a batch)
	TotalDelta *int32 `parquet:"total_delta,optional,snappy"`

	// ExportedAt is when this export ran
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// CategoryRow is one exported row per month and category.
type CategoryRow struct {
	MonthLabel string `parquet:"month_label,snappy"`
	Category   string `parquet:"category,snappy"`
	IssueCount int32  `parquet:"issue_count,snappy"`

	// Delta is the change versus the preceding month (nullable)
	Delta *int32 `parquet:"delta,optional,snappy"`
}

// ConvertSummaries flattens monthly summaries into the two exported
// datasets.
func ConvertSummaries(summaries []*schema.MonthlySummary, exportedAt time.Time) ([]MonthRow, []CategoryRow) {
	months := make([]MonthRow, 0, len(summaries))
	var categories []CategoryRow

	for _, s := range summaries {
		row := MonthRow{
			MonthLabel:    s.Month.Label(),
			Year:          int32(s.Month.Year),
			Month:         int32(s.Month.Month),
			TotalIssues:   int32(s.Total),
			OpenIssues:    int32(s.Status.Open),
			ClosedIssues:  int32(s.Status.Closed),
			UnknownIssues: int32(s.Status.Unknown),
			DatedRows:     int32(s.DatedRows),
			ExportedAt:    exportedAt,
		}
		if s.Comparison != nil {
			delta := int32(s.Comparison.TotalDelta)
			row.TotalDelta = &delta
		}
		months = append(months, row)

		for category, count := range s.Categories {
			crow := CategoryRow{
				MonthLabel: s.Month.Label(),
				Category:   category,
				IssueCount: int32(count),
			}
			if s.Comparison != nil {
				if d, ok := s.Comparison.CategoryDeltas[category]; ok {
					delta := int32(d)
					crow.Delta = &delta
				}
			}
			categories = append(categories, crow)
		}
	}
	return months, categories
}

// WriteMonthsParquet writes the per-month dataset.
func WriteMonthsParquet(rows []MonthRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// WriteCategoriesParquet writes the per-month per-category dataset.
func WriteCategoriesParquet(rows []CategoryRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// writeRows writes any parquet-taggable row slice, inferring the
// schema from struct tags.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
