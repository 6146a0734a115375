package reports

import "time"

const bucketDateLayout = "2006-01-02"

// DayBucket accumulates order activity for one calendar day.
type DayBucket struct {
	Date       string
	TotalCents int64
	OrderCount int
}

// DayBuckets is an ordered, gap-free series of daily buckets plus an index
// for date lookup.
type DayBuckets struct {
	Buckets []DayBucket
	index   map[string]int
}

// BuildDayBuckets returns one bucket per calendar day between start and end,
// inclusive on both ends. A start after end collapses to a single bucket at
// start so malformed windows still render a chart.
func BuildDayBuckets(start, end time.Time) *DayBuckets {
	start = startOfDay(start)
	endDay := startOfDay(end)

	days := make([]DayBucket, 0)
	index := make(map[string]int)

	if start.After(endDay) {
		key := start.Format(bucketDateLayout)
		days = append(days, DayBucket{Date: key})
		index[key] = 0
		return &DayBuckets{Buckets: days, index: index}
	}

	for day := start; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(bucketDateLayout)
		index[key] = len(days)
		days = append(days, DayBucket{Date: key})
	}

	return &DayBuckets{Buckets: days, index: index}
}

// Add accumulates an order into the bucket for its day. Timestamps outside
// the built window are ignored.
func (d *DayBuckets) Add(at time.Time, amountCents int64) {
	key := at.Format(bucketDateLayout)
	i, ok := d.index[key]
	if !ok {
		return
	}
	d.Buckets[i].TotalCents += amountCents
	d.Buckets[i].OrderCount++
}

// Len returns the number of day buckets.
func (d *DayBuckets) Len() int {
	return len(d.Buckets)
}
