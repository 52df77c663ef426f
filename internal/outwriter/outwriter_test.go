package outwriter

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gensight/gensight/schema"
)

func TestWriteRunReport(t *testing.T) {
	color.NoColor = true

	report := &schema.RunReport{
		RunID:    "run-1234",
		Workbook: "/data/tickets.xlsx",
		Duration: 1500 * time.Millisecond,
		Outcomes: []schema.MonthOutcome{
			{
				Label:   "JAN2026",
				Status:  schema.StatusOK,
				Outputs: []string{"a.pdf", "a.pptx", "c1.png"},
			},
			{
				Label:    "FEB2026",
				Status:   schema.StatusDegraded,
				Outputs:  []string{"b.pdf", "b.pptx"},
				Problems: []string{"chart daily_trend.png for FEB2026: no bars"},
			},
			{
				Label:    "SOMETHING2026",
				Status:   schema.StatusSkipped,
				Problems: []string{`sheet "SOMETHING2026" matches neither MMMYYYY (e.g. JAN2026) nor DD-MM-YYYY`},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRunReport(&buf, report))
	out := buf.String()

	assert.Contains(t, out, "run-1234")
	assert.Contains(t, out, "/data/tickets.xlsx")
	assert.Contains(t, out, "JAN2026")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "DEGRADED")
	assert.Contains(t, out, "SKIPPED")
	assert.Contains(t, out, "no bars")
}

func TestWriteMonthSummary(t *testing.T) {
	summary := &schema.MonthlySummary{
		Month:      schema.MonthKey{Year: 2026, Month: time.February},
		Total:      5,
		Status:     schema.StatusBreakdown{Open: 2, Closed: 3},
		DatedRows:  4,
		Categories: map[string]int{"Citrix": 3, "MFA": 2},
		Workload: map[string]schema.EngineerLoad{
			"Sam":  {Count: 3},
			"Alex": {Count: 2},
		},
		Comparison: &schema.Comparison{
			PrevMonth:  schema.MonthKey{Year: 2026, Month: time.January},
			TotalDelta: -1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMonthSummary(&buf, summary))
	out := buf.String()

	assert.Contains(t, out, "FEB2026: 5 issues")
	assert.Contains(t, out, "vs JAN2026: -1 issues")
	assert.Contains(t, out, "Citrix")
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "engineer")
}

func TestSortedKeysOrdering(t *testing.T) {
	got := sortedKeys(map[string]int{"B": 1, "A": 1, "C": 9})
	assert.Equal(t, []string{"C", "A", "B"}, got)
}
