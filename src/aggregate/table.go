package aggregate

import (
	"github.com/iafilius/HighwayAccidents/src/accidents"
)

// NumHighways is the size of the highway whitelist.
const NumHighways = 8

// Combo is a (highway, bucket) pair: the unit of highlighting and ranking.
type Combo struct {
	Highway string
	Bucket  TimeBucket
}

func (c Combo) String() string { return c.Highway + " - " + c.Bucket.String() }

// Valid reports whether both halves belong to the closed whitelist and bucket set.
func (c Combo) Valid() bool {
	return accidents.HighwayIndex(c.Highway) >= 0 && c.Bucket.Valid()
}

// CountTable holds one day's counts for every highway × bucket cell.
type CountTable struct {
	cells [NumHighways][NumBuckets]int
}

// Count returns the cell for (highway, bucket); references outside the
// whitelist read as zero.
func (t *CountTable) Count(highway string, b TimeBucket) int {
	if t == nil {
		return 0
	}
	hi := accidents.HighwayIndex(highway)
	if hi < 0 || !b.Valid() {
		return 0
	}
	return t.cells[hi][b]
}

// At is Count by whitelist position.
func (t *CountTable) At(highwayIdx int, b TimeBucket) int {
	if t == nil || highwayIdx < 0 || highwayIdx >= NumHighways || !b.Valid() {
		return 0
	}
	return t.cells[highwayIdx][b]
}

// Sum is the total over all cells.
func (t *CountTable) Sum() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, row := range t.cells {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Max is the largest single cell.
func (t *CountTable) Max() int {
	if t == nil {
		return 0
	}
	m := 0
	for _, row := range t.cells {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Tables is the immutable set of per-day count tables.
type Tables struct {
	// Days lists the days that have at least one counted record, in weekday order.
	Days []string
	// GlobalMax is the largest cell across every day; charts share [0, GlobalMax+1].
	GlobalMax int
	// Dropped counts records left out of every table: bad hour, or a highway or
	// day outside the fixed sets.
	Dropped int

	byDay map[string]*CountTable
}

// Build aggregates records into one CountTable per present day. Records with an
// unusable hour (or a highway/day outside the fixed sets) are excluded from
// every table.
func Build(records []accidents.Record) *Tables {
	var perDay [7]*CountTable
	t := &Tables{byDay: make(map[string]*CountTable)}
	for _, r := range records {
		di := accidents.DayIndex(r.Day)
		hi := accidents.HighwayIndex(r.Highway)
		hour, ok := ParseHour(r.Hour)
		var b TimeBucket
		if ok {
			b, ok = BucketOf(hour)
		}
		if !ok || di < 0 || hi < 0 {
			t.Dropped++
			continue
		}
		if perDay[di] == nil {
			perDay[di] = &CountTable{}
		}
		perDay[di].cells[hi][b]++
	}
	for i, ct := range perDay {
		if ct == nil {
			continue
		}
		day := accidents.Days[i]
		t.Days = append(t.Days, day)
		t.byDay[day] = ct
		if m := ct.Max(); m > t.GlobalMax {
			t.GlobalMax = m
		}
	}
	return t
}

// Table returns the table for day, or nil when the day has no records.
func (t *Tables) Table(day string) *CountTable {
	if t == nil {
		return nil
	}
	return t.byDay[day]
}

// Count is a shortcut for Table(day).Count(c.Highway, c.Bucket).
func (t *Tables) Count(day string, c Combo) int {
	return t.Table(day).Count(c.Highway, c.Bucket)
}

// DayIndex returns the position of day within Days, or -1.
func (t *Tables) DayIndex(day string) int {
	for i, d := range t.Days {
		if d == day {
			return i
		}
	}
	return -1
}

// YMax is the shared upper bound of the y-axis.
func (t *Tables) YMax() int { return t.GlobalMax + 1 }
