package schema

import "time"

// MonthStatus describes how a single month's processing ended.
type MonthStatus string

// Month outcome states surfaced in the final run summary.
const (
	StatusOK       MonthStatus = "OK"       // all outputs produced
	StatusDegraded MonthStatus = "DEGRADED" // outputs produced with gaps (missing chart/narrative)
	StatusFailed   MonthStatus = "FAILED"   // no usable outputs for this month
	StatusSkipped  MonthStatus = "SKIPPED"  // sheet skipped before aggregation
)

// MonthOutcome records everything the run summary needs to say about
// one month: final status, what was written, and why anything degraded
// or failed.
type MonthOutcome struct {
	Month    MonthKey    `json:"month"`
	Label    string      `json:"label"`
	Status   MonthStatus `json:"status"`
	Outputs  []string    `json:"outputs,omitempty"`
	Problems []string    `json:"problems,omitempty"`
}

// Degrade marks the outcome as degraded (unless it already failed) and
// records the reason.
func (o *MonthOutcome) Degrade(reason string) {
	if o.Status != StatusFailed {
		o.Status = StatusDegraded
	}
	o.Problems = append(o.Problems, reason)
}

// Fail marks the outcome as failed and records the reason.
func (o *MonthOutcome) Fail(reason string) {
	o.Status = StatusFailed
	o.Problems = append(o.Problems, reason)
}

// RunReport is the end-of-run account of a whole workbook: one outcome
// per month plus skipped sheets, in processing order.
type RunReport struct {
	RunID     string         `json:"run_id"`
	Workbook  string         `json:"workbook"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	Outcomes  []MonthOutcome `json:"outcomes"`
}

// Failed reports whether every month in the run failed outright.
func (r *RunReport) Failed() bool {
	if len(r.Outcomes) == 0 {
		return true
	}
	for _, o := range r.Outcomes {
		if o.Status == StatusOK || o.Status == StatusDegraded {
			return false
		}
	}
	return true
}
