// Package aggregate builds the per-day accident count tables behind the dashboard
// and answers the "most dangerous combination" query over them.
package aggregate

import (
	"math"
	"strconv"
	"strings"
)

// TimeBucket is a coarse time-of-day bucket derived from the accident hour.
type TimeBucket int

const (
	Morning TimeBucket = iota
	Afternoon
	Evening
)

// Buckets lists every bucket in display order.
var Buckets = []TimeBucket{Morning, Afternoon, Evening}

// NumBuckets is len(Buckets).
const NumBuckets = 3

func (b TimeBucket) String() string {
	switch b {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	}
	return "TimeBucket(" + strconv.Itoa(int(b)) + ")"
}

// Range is the human readable hour span used in legends.
func (b TimeBucket) Range() string {
	switch b {
	case Morning:
		return "(12am-11am)"
	case Afternoon:
		return "(12pm-5pm)"
	case Evening:
		return "(6pm-11pm)"
	}
	return ""
}

// Valid reports whether b is one of the three buckets.
func (b TimeBucket) Valid() bool { return b >= Morning && b <= Evening }

// ParseBucket maps a bucket name (case-insensitive) back to its value.
func ParseBucket(s string) (TimeBucket, bool) {
	for _, b := range Buckets {
		if strings.EqualFold(strings.TrimSpace(s), b.String()) {
			return b, true
		}
	}
	return 0, false
}

// BucketOf returns the bucket for an hour in 0..23. ok is false outside that range.
func BucketOf(hour int) (b TimeBucket, ok bool) {
	switch {
	case hour < 0 || hour > 23:
		return 0, false
	case hour <= 11:
		return Morning, true
	case hour <= 17:
		return Afternoon, true
	default:
		return Evening, true
	}
}

// ParseHour accepts integer or integral float text ("7", " 7 ", "7.0").
// Anything else, including fractional hours, is unparseable.
func ParseHour(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
