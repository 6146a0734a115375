package enums

import "fmt"

// RangeKey names a preset reporting window on the admin dashboard.
type RangeKey string

const (
	RangeLast7Days   RangeKey = "last_7_days"
	RangeLast30Days  RangeKey = "last_30_days"
	RangeLast90Days  RangeKey = "last_90_days"
	RangeLast365Days RangeKey = "last_365_days"
	RangeYearToDate  RangeKey = "year_to_date"
	RangeAllTime     RangeKey = "all_time"
)

var validRangeKeys = []RangeKey{
	RangeLast7Days,
	RangeLast30Days,
	RangeLast90Days,
	RangeLast365Days,
	RangeYearToDate,
	RangeAllTime,
}

var rangeKeyLabels = map[RangeKey]string{
	RangeLast7Days:   "Last 7 Days",
	RangeLast30Days:  "Last 30 Days",
	RangeLast90Days:  "Last 90 Days",
	RangeLast365Days: "Last 365 Days",
	RangeYearToDate:  "Year To Date",
	RangeAllTime:     "All Time",
}

// String implements fmt.Stringer.
func (r RangeKey) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RangeKey.
func (r RangeKey) IsValid() bool {
	for _, candidate := range validRangeKeys {
		if candidate == r {
			return true
		}
	}
	return false
}

// Label returns the human-readable name shown on dashboard charts.
func (r RangeKey) Label() string {
	if label, ok := rangeKeyLabels[r]; ok {
		return label
	}
	return "Custom Range"
}

// ParseRangeKey converts raw query input into a RangeKey.
func ParseRangeKey(value string) (RangeKey, error) {
	for _, candidate := range validRangeKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid range key %q", value)
}
