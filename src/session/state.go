// Package session holds the interactive dashboard state and the fixed table of
// transitions applied to it.
package session

import (
	"slices"

	"github.com/iafilius/HighwayAccidents/src/aggregate"
)

// Mode selects between the single-day chart and the all-days grid.
type Mode int

const (
	Collapsed Mode = iota
	Expanded
)

func (m Mode) String() string {
	if m == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// State is the whole session. Values are treated as immutable: Apply returns a
// new State and never writes through the receiver's slices.
type State struct {
	// Days are the present days in weekday order. Shared, never modified.
	Days       []string
	CurrentDay int
	Mode       Mode

	Highlighted  aggregate.Combo
	HasHighlight bool

	// Filter[i] scopes the most-dangerous query and the tooltip day list to Days[i].
	Filter []bool
}

// New returns the startup state: first day, collapsed, nothing highlighted,
// every day enabled.
func New(days []string) State {
	d := append([]string(nil), days...)
	f := make([]bool, len(d))
	for i := range f {
		f[i] = true
	}
	return State{Days: d, Filter: f}
}

// CurrentDayName is the day shown in collapsed mode, or "" with no days.
func (s State) CurrentDayName() string {
	if s.CurrentDay < 0 || s.CurrentDay >= len(s.Days) {
		return ""
	}
	return s.Days[s.CurrentDay]
}

// Highlight returns the highlighted combination if one is set.
func (s State) Highlight() (aggregate.Combo, bool) {
	return s.Highlighted, s.HasHighlight
}

// IsHighlighted reports whether c is the highlighted combination.
func (s State) IsHighlighted(c aggregate.Combo) bool {
	return s.HasHighlight && s.Highlighted == c
}

// Enabled reports the filter flag for day; unknown days are disabled.
func (s State) Enabled(day string) bool {
	i := s.dayIndex(day)
	return i >= 0 && i < len(s.Filter) && s.Filter[i]
}

// SelectedDays lists the enabled days in weekday order.
func (s State) SelectedDays() []string {
	var out []string
	for i, d := range s.Days {
		if i < len(s.Filter) && s.Filter[i] {
			out = append(out, d)
		}
	}
	return out
}

func (s State) dayIndex(day string) int {
	for i, d := range s.Days {
		if d == day {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	s.Filter = slices.Clone(s.Filter)
	return s
}
