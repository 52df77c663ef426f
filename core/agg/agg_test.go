package agg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gensight/gensight/core/normalize"
	"github.com/gensight/gensight/schema"
)

func ts(day, hour int) *time.Time {
	t := time.Date(2026, time.January, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func record(engineer, description, status, ticket string, start *time.Time, month schema.MonthKey) schema.IssueRecord {
	return schema.IssueRecord{
		Engineer:    engineer,
		Description: description,
		Status:      status,
		TicketID:    ticket,
		Start:       start,
		Month:       month,
	}
}

var jan = schema.MonthKey{Year: 2026, Month: time.January}
var feb = schema.MonthKey{Year: 2026, Month: time.February}
var mar = schema.MonthKey{Year: 2026, Month: time.March}

// Scenario from the workbook contract: one JAN2026 sheet with 3 rows,
// 2 closed, 1 open, one of them with an unparsable start date.
func TestBuildSummariesBasicScenario(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "citrix frozen", "closed", "T-1", ts(5, 9), jan),
		record("Alex", "mfa loop", "closed", "T-2", ts(6, 10), jan),
		record("Sam", "vpn drop", "open", "T-3", nil, jan), // unparsable date
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 1)
	s := summaries[0]

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Status.Open)
	assert.Equal(t, 2, s.Status.Closed)
	assert.Equal(t, 0, s.Status.Unknown)

	// The dateless row is excluded from the daily trend only.
	assert.Len(t, s.Daily, 2)
	assert.Equal(t, 2, s.DatedRows)

	// ...but still counted in category and workload breakdowns.
	assert.Equal(t, 3, sumCounts(s.Categories))
	assert.Equal(t, 2, s.Workload["Sam"].Count)
	assert.Equal(t, []string{"T-1", "T-3"}, s.Workload["Sam"].TicketIDs)

	// First (and only) month: no comparison block.
	assert.Nil(t, s.Comparison)
}

// Count invariant: total == sum(category counts) == sum(workload
// counts), independent of date validity.
func TestBuildSummariesCountInvariant(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "citrix", "closed", "T-1", ts(5, 9), jan),
		record("", "mystery", "weird-status", "T-2", nil, jan),
		record("Alex", "vpn", "open", "", ts(7, 8), jan),
		record("Alex", "mfa", "Closed?", "T-4", nil, jan),
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 1)
	s := summaries[0]

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, s.Total, sumCounts(s.Categories))

	workloadTotal := 0
	for _, load := range s.Workload {
		workloadTotal += load.Count
	}
	assert.Equal(t, s.Total, workloadTotal)
}

func TestBuildSummariesUnknownStatusBucket(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "vpn", "closed", "T-1", ts(5, 9), jan),
		record("Sam", "vpn", "in progress", "T-2", ts(5, 10), jan),
		record("Sam", "vpn", "", "T-3", ts(5, 11), jan),
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 1)
	s := summaries[0]

	// Anything that isn't exactly open/closed lands in unknown; it is
	// never silently merged into either side.
	assert.Equal(t, 1, s.Status.Closed)
	assert.Equal(t, 0, s.Status.Open)
	assert.Equal(t, 2, s.Status.Unknown)
}

func TestBuildSummariesUnassignedBucket(t *testing.T) {
	records := []schema.IssueRecord{
		record("", "vpn", "open", "T-1", ts(5, 9), jan),
	}
	summaries := BuildSummaries(records)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Workload[normalize.Unassigned].Count)
}

func TestBuildSummariesComparisons(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "citrix", "closed", "T-1", ts(5, 9), jan),
		record("Sam", "citrix", "closed", "T-2", ts(6, 9), jan),
		record("Sam", "mfa", "open", "T-3", nil, feb),
		record("Alex", "citrix", "open", "T-4", nil, feb),
		record("Alex", "vpn", "open", "T-5", nil, feb),
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 2)

	// Chronological order, regardless of input order.
	assert.Equal(t, jan, summaries[0].Month)
	assert.Equal(t, feb, summaries[1].Month)

	// First month has no predecessor; second compares against it.
	assert.Nil(t, summaries[0].Comparison)
	require.NotNil(t, summaries[1].Comparison)

	c := summaries[1].Comparison
	assert.Equal(t, jan, c.PrevMonth)
	assert.Equal(t, 2, c.PrevTotal)
	assert.Equal(t, 1, c.TotalDelta)
	assert.Equal(t, -1, c.CategoryDeltas["Citrix"])
	assert.Equal(t, 1, c.CategoryDeltas["MFA"])
	assert.Equal(t, 1, c.CategoryDeltas["Network/VPN"])
}

// A gap month breaks the chain: MAR has no FEB in the batch, so no
// comparison, even though JAN is present.
func TestBuildSummariesComparisonGap(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "citrix", "closed", "T-1", ts(5, 9), jan),
		record("Sam", "citrix", "closed", "T-2", nil, mar),
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 2)
	assert.Nil(t, summaries[0].Comparison)
	assert.Nil(t, summaries[1].Comparison)
}

// Records sharing a MonthKey merge into one summary even when they came
// from different sheets.
func TestBuildSummariesDuplicateMonthMerge(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "citrix", "closed", "T-1", ts(5, 9), jan),
		record("Alex", "vpn", "open", "T-2", ts(20, 9), jan),
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].Total)
	assert.Len(t, summaries[0].Workload, 2)
}

func TestBuildSummariesDailyOrderedAndBucketed(t *testing.T) {
	records := []schema.IssueRecord{
		record("Sam", "vpn", "open", "T-1", ts(20, 9), jan),
		record("Sam", "vpn", "open", "T-2", ts(5, 9), jan),
		record("Sam", "vpn", "open", "T-3", ts(5, 17), jan), // same day, later hour
	}

	summaries := BuildSummaries(records)
	require.Len(t, summaries, 1)
	daily := summaries[0].Daily
	require.Len(t, daily, 2)
	assert.Equal(t, 5, daily[0].Day.Day())
	assert.Equal(t, 2, daily[0].Count)
	assert.Equal(t, 20, daily[1].Day.Day())
	assert.Equal(t, 1, daily[1].Count)
}

func TestBuildSummariesEmpty(t *testing.T) {
	assert.Empty(t, BuildSummaries(nil))
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
