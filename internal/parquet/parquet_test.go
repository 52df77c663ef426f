package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gensight/gensight/schema"
)

func summaries() []*schema.MonthlySummary {
	jan := &schema.MonthlySummary{
		Month:      schema.MonthKey{Year: 2026, Month: time.January},
		Total:      4,
		Status:     schema.StatusBreakdown{Open: 1, Closed: 3},
		Categories: map[string]int{"Citrix": 3, "MFA": 1},
		DatedRows:  3,
	}
	feb := &schema.MonthlySummary{
		Month:      schema.MonthKey{Year: 2026, Month: time.February},
		Total:      6,
		Status:     schema.StatusBreakdown{Open: 4, Closed: 2},
		Categories: map[string]int{"Citrix": 2, "Network/VPN": 4},
		DatedRows:  6,
		Comparison: &schema.Comparison{
			PrevMonth:  schema.MonthKey{Year: 2026, Month: time.January},
			PrevTotal:  4,
			TotalDelta: 2,
			CategoryDeltas: map[string]int{
				"Citrix":      -1,
				"MFA":         -1,
				"Network/VPN": 4,
			},
		},
	}
	return []*schema.MonthlySummary{jan, feb}
}

func TestConvertSummaries(t *testing.T) {
	exportedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	months, categories := ConvertSummaries(summaries(), exportedAt)

	require.Len(t, months, 2)
	jan := months[0]
	assert.Equal(t, "JAN2026", jan.MonthLabel)
	assert.Equal(t, int32(2026), jan.Year)
	assert.Equal(t, int32(1), jan.Month)
	assert.Equal(t, int32(4), jan.TotalIssues)
	assert.Equal(t, int32(3), jan.DatedRows)
	assert.Nil(t, jan.TotalDelta, "first month has no delta")
	assert.Equal(t, exportedAt, jan.ExportedAt)

	feb := months[1]
	require.NotNil(t, feb.TotalDelta)
	assert.Equal(t, int32(2), *feb.TotalDelta)

	// One category row per month/category pair; deltas only where a
	// comparison exists.
	require.Len(t, categories, 4)
	byKey := map[string]CategoryRow{}
	for _, row := range categories {
		byKey[row.MonthLabel+"/"+row.Category] = row
	}
	assert.Nil(t, byKey["JAN2026/Citrix"].Delta)
	require.NotNil(t, byKey["FEB2026/Citrix"].Delta)
	assert.Equal(t, int32(-1), *byKey["FEB2026/Citrix"].Delta)
	require.NotNil(t, byKey["FEB2026/Network/VPN"].Delta)
	assert.Equal(t, int32(4), *byKey["FEB2026/Network/VPN"].Delta)
}

func TestConvertSummariesEmpty(t *testing.T) {
	months, categories := ConvertSummaries(nil, time.Now())
	assert.Empty(t, months)
	assert.Empty(t, categories)
}

func TestWriteParquetFiles(t *testing.T) {
	months, categories := ConvertSummaries(summaries(), time.Now().UTC())
	dir := t.TempDir()

	monthsPath := filepath.Join(dir, "export.months.parquet")
	require.NoError(t, WriteMonthsParquet(months, monthsPath))

	categoriesPath := filepath.Join(dir, "export.categories.parquet")
	require.NoError(t, WriteCategoriesParquet(categories, categoriesPath))

	for _, path := range []string{monthsPath, categoriesPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteMonthsParquet(nil, filepath.Join(t.TempDir(), "no", "such", "dir.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
