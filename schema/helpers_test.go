package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthLabel(t *testing.T) {
	tests := []struct {
		label   string
		want    MonthKey
		wantErr bool
	}{
		{"JAN2026", MonthKey{2026, time.January}, false},
		{"DEC2025", MonthKey{2025, time.December}, false},
		{"jan2026", MonthKey{2026, time.January}, false}, // case-insensitive
		{" FEB2026 ", MonthKey{2026, time.February}, false},
		{"SOMETHING2026", MonthKey{}, true},
		{"XXX2026", MonthKey{}, true},
		{"JAN26", MonthKey{}, true},
		{"JANUARY2026", MonthKey{}, true},
		{"", MonthKey{}, true},
	}
	for _, tt := range tests {
		got, err := ParseMonthLabel(tt.label)
		if tt.wantErr {
			assert.Error(t, err, "label %q", tt.label)
			continue
		}
		assert.NoError(t, err, "label %q", tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestMonthKeyLabelRoundTrip(t *testing.T) {
	key := MonthKey{Year: 2026, Month: time.March}
	assert.Equal(t, "MAR2026", key.Label())

	parsed, err := ParseMonthLabel(key.Label())
	assert.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestMonthKeyPrev(t *testing.T) {
	assert.Equal(t, MonthKey{2026, time.January}, MonthKey{2026, time.February}.Prev())
	// Year boundary goes by calendar arithmetic, not label order.
	assert.Equal(t, MonthKey{2025, time.December}, MonthKey{2026, time.January}.Prev())
}

func TestMonthKeyBefore(t *testing.T) {
	jan := MonthKey{2026, time.January}
	dec := MonthKey{2025, time.December}
	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.False(t, jan.Before(jan))
}

func TestMonthKeyFor(t *testing.T) {
	ts := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, MonthKey{2026, time.January}, MonthKeyFor(ts))
}
