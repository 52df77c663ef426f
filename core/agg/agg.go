// Package agg folds normalized issue records into per-month summary
// statistics, including category distribution, engineer workload,
// daily trend and month-over-month deltas.
package agg

import (
	"sort"
	"time"

	"github.com/gensight/gensight/core/normalize"
	"github.com/gensight/gensight/schema"
)

// BuildSummaries produces one MonthlySummary per distinct MonthKey in
// records, sorted chronologically. Records sharing a MonthKey are
// merged regardless of which sheet they came from. Comparison blocks
// are attached wherever the calendar-preceding month is present in the
// same batch; the first month has none.
func BuildSummaries(records []schema.IssueRecord) []*schema.MonthlySummary {
	byMonth := make(map[schema.MonthKey]*schema.MonthlySummary)
	dayCounts := make(map[schema.MonthKey]map[time.Time]int)

	for _, rec := range records {
		summary, ok := byMonth[rec.Month]
		if !ok {
			summary = &schema.MonthlySummary{
				Month:      rec.Month,
				Categories: make(map[string]int),
				Workload:   make(map[string]schema.EngineerLoad),
			}
			byMonth[rec.Month] = summary
			dayCounts[rec.Month] = make(map[time.Time]int)
		}
		foldRecord(summary, dayCounts[rec.Month], rec)
	}

	summaries := make([]*schema.MonthlySummary, 0, len(byMonth))
	for key, summary := range byMonth {
		summary.Daily = orderedDaily(dayCounts[key])
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Month.Before(summaries[j].Month)
	})

	attachComparisons(summaries, byMonth)
	return summaries
}

// foldRecord updates every breakdown for one record. Undated rows are
// excluded from the daily series only; they still count toward Total,
// Categories and Workload.
func foldRecord(summary *schema.MonthlySummary, days map[time.Time]int, rec schema.IssueRecord) {
	summary.Total++

	switch rec.Status {
	case "open":
		summary.Status.Open++
	case "closed":
		summary.Status.Closed++
	default:
		summary.Status.Unknown++
	}

	summary.Categories[Classify(rec.Description)]++

	engineer := rec.Engineer
	if engineer == "" {
		engineer = normalize.Unassigned
	}
	load := summary.Workload[engineer]
	load.Count++
	if rec.TicketID != "" {
		load.TicketIDs = append(load.TicketIDs, rec.TicketID)
	}
	summary.Workload[engineer] = load

	if rec.Start != nil {
		day := rec.Start.Truncate(24 * time.Hour)
		days[day]++
		summary.DatedRows++
	}
}

// orderedDaily flattens the day map into a series sorted by day.
func orderedDaily(days map[time.Time]int) []schema.DayCount {
	series := make([]schema.DayCount, 0, len(days))
	for day, count := range days {
		series = append(series, schema.DayCount{Day: day, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Day.Before(series[j].Day)
	})
	return series
}

// attachComparisons fills Comparison blocks using calendar arithmetic,
// not sheet order. A month whose predecessor is absent from the batch
// simply has no comparison.
func attachComparisons(summaries []*schema.MonthlySummary, byMonth map[schema.MonthKey]*schema.MonthlySummary) {
	for _, summary := range summaries {
		prev, ok := byMonth[summary.Month.Prev()]
		if !ok {
			continue
		}

		deltas := make(map[string]int)
		for category, count := range summary.Categories {
			deltas[category] = count - prev.Categories[category]
		}
		for category, count := range prev.Categories {
			if _, seen := summary.Categories[category]; !seen {
				deltas[category] = -count
			}
		}

		summary.Comparison = &schema.Comparison{
			PrevMonth:      prev.Month,
			PrevTotal:      prev.Total,
			TotalDelta:     summary.Total - prev.Total,
			CategoryDeltas: deltas,
		}
	}
}
