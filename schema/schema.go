// Package schema defines the shared data structures for gensight.
package schema

import "time"

// IssueRecord is one normalized support-ticket row from a worksheet.
// Start and End are nil when the source cell did not match a known
// date layout; such rows are retained, so total row counts and dated
// row counts can legitimately diverge.
type IssueRecord struct {
	Project       string     `json:"project"`
	Engineer      string     `json:"engineer"`
	AssociateID   string     `json:"associate_id"`
	AssociateName string     `json:"associate_name"`
	Description   string     `json:"description"`
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	Status        string     `json:"status"` // trimmed + lower-cased
	TicketID      string     `json:"ticket_id"`
	Remarks       string     `json:"remarks"`

	// Month is the aggregation bucket for this record. The row's own
	// start date wins over the sheet label when both are available.
	Month MonthKey `json:"month"`
}

// MonthKey identifies one calendar (year, month) aggregation bucket.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// StatusBreakdown counts records by normalized status. Anything that is
// not exactly "open" or "closed" lands in Unknown and is never folded
// into either side.
type StatusBreakdown struct {
	Open    int `json:"open"`
	Closed  int `json:"closed"`
	Unknown int `json:"unknown"`
}

// EngineerLoad is the per-engineer workload within one month. TicketIDs
// keeps duplicates as seen; ticket-id uniqueness is not assumed.
type EngineerLoad struct {
	Count     int      `json:"count"`
	TicketIDs []string `json:"ticket_ids"`
}

// DayCount is one point in the daily trend series.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// Comparison holds month-over-month deltas against the chronologically
// preceding month in the same run.
type Comparison struct {
	PrevMonth      MonthKey       `json:"prev_month"`
	PrevTotal      int            `json:"prev_total"`
	TotalDelta     int            `json:"total_delta"`
	CategoryDeltas map[string]int `json:"category_deltas"`
}

// MonthlySummary holds the computed statistics for one MonthKey.
// It is produced fresh on every run and never persisted.
type MonthlySummary struct {
	Month  MonthKey        `json:"month"`
	Total  int             `json:"total"`
	Status StatusBreakdown `json:"status"`

	// Categories maps inferred issue type to count. The sum over all
	// categories always equals Total.
	Categories map[string]int `json:"categories"`

	// Workload maps engineer name (or "Unassigned") to load. The sum
	// of counts always equals Total.
	Workload map[string]EngineerLoad `json:"workload"`

	// Daily is ordered by day and covers only rows with a parsed start
	// date; rows with a nil date are excluded here but still counted in
	// Total, Categories and Workload.
	Daily []DayCount `json:"daily"`

	// DatedRows is the number of rows contributing to Daily.
	DatedRows int `json:"dated_rows"`

	// Comparison is nil for the chronologically first month in a run.
	Comparison *Comparison `json:"comparison,omitempty"`
}

// TopCategory returns the most frequent issue type and its count.
// Ties break alphabetically so output stays deterministic.
func (s *MonthlySummary) TopCategory() (string, int) {
	return topEntry(s.Categories)
}

// TopEngineer returns the busiest engineer and their issue count.
func (s *MonthlySummary) TopEngineer() (string, int) {
	counts := make(map[string]int, len(s.Workload))
	for name, load := range s.Workload {
		counts[name] = load.Count
	}
	return topEntry(counts)
}

// topEntry picks the highest-count key, breaking ties alphabetically.
func topEntry(counts map[string]int) (string, int) {
	bestName, bestCount := "", 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && bestName != "" && name < bestName) {
			bestName, bestCount = name, count
		}
	}
	return bestName, bestCount
}
