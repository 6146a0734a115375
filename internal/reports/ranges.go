package reports

import (
	"time"

	"github.com/avellaneda-dev/storefront-backend/pkg/enums"
)

// Range is a resolved reporting window. Start is nil for unbounded windows
// (all time); callers substitute the earliest relevant record.
type Range struct {
	Start *time.Time
	End   time.Time
	Label string
}

// RangeParams carries the raw selection from the query string.
type RangeParams struct {
	Key  string
	From *time.Time
	To   *time.Time
}

// DefaultRangeKey is used when the request carries no usable selection.
const DefaultRangeKey = enums.RangeLast7Days

// ResolveRange turns raw query input into a concrete window.
//
// An explicit from/to pair wins over any named key, but only when both ends
// are present; a half-open custom range falls back to the named key, and an
// unknown key falls back to the default. Resolution never fails.
func ResolveRange(params RangeParams, now time.Time, loc *time.Location) Range {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	if params.From != nil && params.To != nil {
		return Range{
			Start: timePtr(startOfDay(params.From.In(loc))),
			End:   endOfDay(params.To.In(loc)),
			Label: "Custom Range",
		}
	}

	key, err := enums.ParseRangeKey(params.Key)
	if err != nil {
		key = DefaultRangeKey
	}
	return rangeForKey(key, now, loc)
}

func rangeForKey(key enums.RangeKey, now time.Time, loc *time.Location) Range {
	end := endOfDay(now)

	var start time.Time
	switch key {
	case enums.RangeLast7Days:
		start = startOfDay(now.AddDate(0, 0, -6))
	case enums.RangeLast30Days:
		start = startOfDay(now.AddDate(0, 0, -29))
	case enums.RangeLast90Days:
		start = startOfDay(now.AddDate(0, 0, -89))
	case enums.RangeLast365Days:
		start = startOfDay(now.AddDate(0, 0, -364))
	case enums.RangeYearToDate:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	case enums.RangeAllTime:
		return Range{Start: nil, End: end, Label: key.Label()}
	default:
		return rangeForKey(DefaultRangeKey, now, loc)
	}

	return Range{Start: timePtr(start), End: end, Label: key.Label()}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
