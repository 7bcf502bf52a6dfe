// Package accidents loads fatality records from FARS-style accident CSV files and
// reduces them to the three fields the dashboard needs.
//
// Filtering (state, county, highway whitelist) and column normalization happen
// here; the aggregation layer only ever sees whitelisted highways and known day
// names. Hours are kept raw because deciding what counts as a usable hour is part
// of aggregation.
package accidents

import (
	"regexp"
	"strings"
)

// Highways is the fixed, ordered whitelist of routes considered in scope.
var Highways = []string{"I-5", "I-10", "I-405", "US-101", "I-110", "I-105", "I-605", "I-710"}

// Days is the fixed weekday display order.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Record is one accident row after filtering.
type Record struct {
	Highway string // member of Highways
	Day     string // member of Days
	Hour    string // raw hour cell, may be unparseable
}

// HighwayIndex returns the whitelist position of h, or -1.
func HighwayIndex(h string) int {
	for i, v := range Highways {
		if v == h {
			return i
		}
	}
	return -1
}

// DayIndex returns the weekday position of d, or -1.
func DayIndex(d string) int {
	for i, v := range Days {
		if v == d {
			return i
		}
	}
	return -1
}

var routeRe = regexp.MustCompile(`^(I-\d+|US-\d+|SR-\d+)\b`)

// NormalizeHighway reduces TWAY_ID variants ("i-5 sb", " US-101 ") to the base
// route code. The result is empty when no route code can be extracted.
func NormalizeHighway(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	m := routeRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// NormalizeDay title-cases a weekday name; unknown names come back empty.
func NormalizeDay(s string) string {
	s = strings.TrimSpace(s)
	for _, d := range Days {
		if strings.EqualFold(d, s) {
			return d
		}
	}
	return ""
}
