package scene

import (
	"fmt"

	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/session"
)

// TooltipRow is one enabled day's count for the hovered combination.
type TooltipRow struct {
	Day     string
	Count   int
	Current bool
}

func (r TooltipRow) String() string { return fmt.Sprintf("%s: %d", r.Day, r.Count) }

// Tooltip is the hover box for a combination.
type Tooltip struct {
	Combo     aggregate.Combo
	Title     string
	Dangerous bool
	Rows      []TooltipRow
	Total     int
	// Rect is the box in image pixels, already clamped to the plot.
	Rect Rect
}

// TotalLine is the footer text.
func (tt Tooltip) TotalLine() string { return fmt.Sprintf("Total: %d", tt.Total) }

const (
	tooltipLineH = 15.0
	tooltipPad   = 8.0
	tooltipCharW = 6.5
	tooltipGap   = 12.0
)

// NewTooltip lists c's count for every enabled day plus the total, and marks
// the title when c is among the most dangerous combinations over those days.
// The box sits to the right of and above (px, py) and is shifted to stay
// inside bounds.
func NewTooltip(t *aggregate.Tables, s session.State, c aggregate.Combo, px, py float64, bounds Rect) Tooltip {
	days := s.SelectedDays()
	set, _ := t.MostDangerous(days)
	tt := Tooltip{Combo: c, Title: c.String(), Dangerous: aggregate.IsMostDangerous(set, c)}
	if tt.Dangerous {
		tt.Title += " (Dangerous)"
	}
	current := s.CurrentDayName()
	for _, d := range days {
		n := t.Count(d, c)
		tt.Rows = append(tt.Rows, TooltipRow{Day: d, Count: n, Current: d == current})
		tt.Total += n
	}

	longest := len(tt.Title)
	for _, r := range tt.Rows {
		if l := len(r.String()); l > longest {
			longest = l
		}
	}
	if l := len(tt.TotalLine()); l > longest {
		longest = l
	}
	w := float64(longest)*tooltipCharW + 2*tooltipPad
	h := float64(len(tt.Rows)+2)*tooltipLineH + 2*tooltipPad
	tt.Rect = place(px, py, w, h, bounds)
	return tt
}

func place(px, py, w, h float64, bounds Rect) Rect {
	x := px + tooltipGap
	if x+w > bounds.Right() {
		x = px - tooltipGap - w
	}
	if x < bounds.X {
		x = bounds.X
	}
	y := py - h - tooltipGap
	if y+h > bounds.Bottom() {
		y = bounds.Bottom() - h
	}
	if y < bounds.Y {
		y = bounds.Y
	}
	return Rect{x, y, w, h}
}
