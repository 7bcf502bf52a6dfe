package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/HighwayAccidents/src/aggregate"
)

var week = []string{"Monday", "Tuesday", "Friday"}

func TestNew(t *testing.T) {
	s := New(week)
	assert.Equal(t, 0, s.CurrentDay)
	assert.Equal(t, Collapsed, s.Mode)
	assert.False(t, s.HasHighlight)
	assert.Equal(t, []bool{true, true, true}, s.Filter)
	assert.Equal(t, week, s.SelectedDays())
	assert.Equal(t, "Monday", s.CurrentDayName())
	assert.Equal(t, "", New(nil).CurrentDayName())
}

func TestSelect_TogglesAndReplaces(t *testing.T) {
	c := aggregate.Combo{Highway: "I-5", Bucket: aggregate.Evening}
	other := aggregate.Combo{Highway: "I-10", Bucket: aggregate.Morning}
	s0 := New(week)

	s1 := Apply(s0, Event{Kind: Select, Combo: c})
	require.True(t, s1.IsHighlighted(c))

	s2 := Apply(s1, Event{Kind: Select, Combo: other})
	assert.True(t, s2.IsHighlighted(other))
	assert.False(t, s2.IsHighlighted(c))

	back := Apply(Apply(s0, Event{Kind: Select, Combo: c}), Event{Kind: Select, Combo: c})
	assert.Equal(t, s0, back)
}

func TestSelect_IgnoredOutsideCollapsedOrInvalid(t *testing.T) {
	s := New(week)
	bad := Apply(s, Event{Kind: Select, Combo: aggregate.Combo{Highway: "SR-14", Bucket: aggregate.Morning}})
	assert.Equal(t, s, bad)

	ex := Apply(s, Event{Kind: Expand})
	after := Apply(ex, Event{Kind: Select, Combo: aggregate.Combo{Highway: "I-5", Bucket: aggregate.Morning}})
	assert.False(t, after.HasHighlight)
}

func TestClearHighlight(t *testing.T) {
	s := Apply(New(week), Event{Kind: Select, Combo: aggregate.Combo{Highway: "I-405", Bucket: aggregate.Afternoon}})
	s = Apply(s, Event{Kind: Expand})
	s = Apply(s, Event{Kind: ClearHighlight})
	_, ok := s.Highlight()
	assert.False(t, ok)
}

func TestToggleDay_DoesNotAliasPreviousState(t *testing.T) {
	s0 := New(week)
	s1 := Apply(s0, Event{Kind: ToggleDay, Day: "Tuesday"})
	assert.Equal(t, []bool{true, true, true}, s0.Filter)
	assert.Equal(t, []bool{true, false, true}, s1.Filter)
	assert.False(t, s1.Enabled("Tuesday"))
	assert.Equal(t, []string{"Monday", "Friday"}, s1.SelectedDays())

	s2 := Apply(s1, Event{Kind: ToggleDay, Day: "Tuesday"})
	assert.Equal(t, s0, s2)

	assert.Equal(t, s1, Apply(s1, Event{Kind: ToggleDay, Day: "Sunday"}))
	assert.False(t, s1.Enabled("Sunday"))
}

func TestNextDay_Wraps(t *testing.T) {
	s := New(week)
	var seen []string
	for i := 0; i < 4; i++ {
		seen = append(seen, s.CurrentDayName())
		s = Apply(s, Event{Kind: NextDay})
	}
	assert.Equal(t, []string{"Monday", "Tuesday", "Friday", "Monday"}, seen)

	ex := Apply(New(week), Event{Kind: Expand})
	assert.Equal(t, 0, Apply(ex, Event{Kind: NextDay}).CurrentDay)

	empty := New(nil)
	assert.Equal(t, empty, Apply(empty, Event{Kind: NextDay}))
}

func TestExpandCollapse_RoundTrip(t *testing.T) {
	s := New(week)
	s = Apply(s, Event{Kind: NextDay})
	s = Apply(s, Event{Kind: Select, Combo: aggregate.Combo{Highway: "US-101", Bucket: aggregate.Morning}})
	s = Apply(s, Event{Kind: ToggleDay, Day: "Friday"})

	ex := Apply(s, Event{Kind: Expand})
	assert.Equal(t, Expanded, ex.Mode)
	assert.Equal(t, s.Filter, ex.Filter)

	back := Apply(ex, Event{Kind: Collapse})
	assert.Equal(t, s, back)
}

func TestApply_UnknownKind(t *testing.T) {
	s := New(week)
	assert.Equal(t, s, Apply(s, Event{Kind: EventKind(42)}))
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
	assert.Equal(t, "next-day", NextDay.String())
	assert.Equal(t, "expanded", Expanded.String())
}
