package aggregate

import (
	"github.com/iafilius/HighwayAccidents/src/accidents"
)

// MostDangerous sums every combination over the given days and returns all
// combinations tied at the maximum, in whitelist × bucket order. With no days
// the result is empty and the total zero. Unknown day names contribute nothing,
// and a day named more than once is counted once.
func (t *Tables) MostDangerous(days []string) ([]Combo, int) {
	if len(days) == 0 {
		return nil, 0
	}
	var totals [NumHighways][NumBuckets]int
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		ct := t.Table(d)
		if ct == nil || seen[d] {
			continue
		}
		seen[d] = true
		for hi := range totals {
			for b := range totals[hi] {
				totals[hi][b] += ct.cells[hi][b]
			}
		}
	}
	best := 0
	for hi := range totals {
		for b := range totals[hi] {
			if totals[hi][b] > best {
				best = totals[hi][b]
			}
		}
	}
	var out []Combo
	for hi := range totals {
		for b := range totals[hi] {
			if totals[hi][b] == best {
				out = append(out, Combo{Highway: accidents.Highways[hi], Bucket: TimeBucket(b)})
			}
		}
	}
	return out, best
}

// IsMostDangerous reports whether c is in set.
func IsMostDangerous(set []Combo, c Combo) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// HighwayTotal is one line of the per-highway report.
type HighwayTotal struct {
	Highway string
	Count   int
}

// HighwayTotals returns the all-days total per highway in whitelist order and
// the grand total.
func (t *Tables) HighwayTotals() ([]HighwayTotal, int) {
	out := make([]HighwayTotal, NumHighways)
	grand := 0
	for hi, h := range accidents.Highways {
		out[hi].Highway = h
		for _, d := range t.Days {
			ct := t.byDay[d]
			for b := 0; b < NumBuckets; b++ {
				out[hi].Count += ct.cells[hi][b]
			}
		}
		grand += out[hi].Count
	}
	return out, grand
}
