package session

import (
	"fmt"

	"github.com/iafilius/HighwayAccidents/src/aggregate"
)

// EventKind names a discrete state transition.
type EventKind int

const (
	// Select toggles the highlight on Combo (collapsed mode only).
	Select EventKind = iota
	// ClearHighlight drops any highlight.
	ClearHighlight
	// ToggleDay flips the filter flag of Day.
	ToggleDay
	// NextDay advances the current day with wrap-around (collapsed mode only).
	NextDay
	Expand
	Collapse
)

var kindNames = [...]string{"select", "clear-highlight", "toggle-day", "next-day", "expand", "collapse"}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one user action. Only the field relevant to Kind is read.
type Event struct {
	Kind  EventKind
	Combo aggregate.Combo
	Day   string
}

type handler func(State, Event) State

var handlers = map[EventKind]handler{
	Select:         selectCombo,
	ClearHighlight: clearHighlight,
	ToggleDay:      toggleDay,
	NextDay:        nextDay,
	Expand:         expand,
	Collapse:       collapse,
}

// Apply returns the state after ev. Unknown kinds, invalid combinations and
// unknown days leave the state unchanged.
func Apply(s State, ev Event) State {
	h, ok := handlers[ev.Kind]
	if !ok {
		return s
	}
	return h(s.clone(), ev)
}

func selectCombo(s State, ev Event) State {
	if s.Mode != Collapsed || !ev.Combo.Valid() {
		return s
	}
	if s.IsHighlighted(ev.Combo) {
		s.Highlighted, s.HasHighlight = aggregate.Combo{}, false
		return s
	}
	s.Highlighted, s.HasHighlight = ev.Combo, true
	return s
}

func clearHighlight(s State, _ Event) State {
	s.Highlighted, s.HasHighlight = aggregate.Combo{}, false
	return s
}

func toggleDay(s State, ev Event) State {
	i := s.dayIndex(ev.Day)
	if i < 0 || i >= len(s.Filter) {
		return s
	}
	s.Filter[i] = !s.Filter[i]
	return s
}

func nextDay(s State, _ Event) State {
	if s.Mode != Collapsed || len(s.Days) == 0 {
		return s
	}
	s.CurrentDay = (s.CurrentDay + 1) % len(s.Days)
	return s
}

func expand(s State, _ Event) State {
	s.Mode = Expanded
	return s
}

func collapse(s State, _ Event) State {
	s.Mode = Collapsed
	return s
}
