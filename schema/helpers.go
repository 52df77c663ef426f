package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthAbbrevs maps the three-letter labels used in worksheet names
// (JAN2026, DEC2025) to calendar months.
var monthAbbrevs = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// monthLabels is the reverse of monthAbbrevs, indexed by time.Month.
var monthLabels = [13]string{
	"", "JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// MonthKeyFor derives the bucket for a point in time.
func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthLabel parses a MMMYYYY label like "JAN2026". It returns an
// error for anything else, including unknown month abbreviations.
func ParseMonthLabel(label string) (MonthKey, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if len(s) != 7 {
		return MonthKey{}, fmt.Errorf("label %q is not in MMMYYYY form", label)
	}
	month, ok := monthAbbrevs[s[:3]]
	if !ok {
		return MonthKey{}, fmt.Errorf("label %q has unknown month %q", label, s[:3])
	}
	year, err := strconv.Atoi(s[3:])
	if err != nil || year < 1000 || year > 9999 {
		return MonthKey{}, fmt.Errorf("label %q has invalid year %q", label, s[3:])
	}
	return MonthKey{Year: year, Month: month}, nil
}

// Label renders the key in worksheet form, e.g. "JAN2026".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s%04d", monthLabels[k.Month], k.Year)
}

// IsZero reports whether the key is unset.
func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Prev returns the chronologically preceding month, by calendar
// arithmetic rather than by sheet order.
func (k MonthKey) Prev() MonthKey {
	if k.Month == time.January {
		return MonthKey{Year: k.Year - 1, Month: time.December}
	}
	return MonthKey{Year: k.Year, Month: k.Month - 1}
}

// Before reports whether k is chronologically earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}
