package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopCategory(t *testing.T) {
	s := &MonthlySummary{Categories: map[string]int{"MFA": 3, "Citrix": 1, "Other": 3}}
	name, count := s.TopCategory()
	// Ties break alphabetically.
	assert.Equal(t, "MFA", name)
	assert.Equal(t, 3, count)
}

func TestTopEngineerEmpty(t *testing.T) {
	s := &MonthlySummary{Workload: map[string]EngineerLoad{}}
	name, count := s.TopEngineer()
	assert.Equal(t, "", name)
	assert.Equal(t, 0, count)
}

func TestMonthOutcomeTransitions(t *testing.T) {
	o := MonthOutcome{Status: StatusOK}

	o.Degrade("chart failed")
	assert.Equal(t, StatusDegraded, o.Status)

	o.Fail("pdf failed")
	assert.Equal(t, StatusFailed, o.Status)

	// A failed month never goes back to degraded.
	o.Degrade("narrative failed")
	assert.Equal(t, StatusFailed, o.Status)
	assert.Len(t, o.Problems, 3)
}

func TestRunReportFailed(t *testing.T) {
	empty := &RunReport{StartedAt: time.Now()}
	assert.True(t, empty.Failed())

	degraded := &RunReport{Outcomes: []MonthOutcome{
		{Status: StatusFailed},
		{Status: StatusDegraded},
	}}
	assert.False(t, degraded.Failed())

	allFailed := &RunReport{Outcomes: []MonthOutcome{
		{Status: StatusFailed},
		{Status: StatusSkipped},
	}}
	assert.True(t, allFailed.Failed())
}
