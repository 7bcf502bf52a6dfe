// Package dashboard is the single owner of the session: it turns pointer and
// control events into session transitions and keeps the rendered scene and the
// transient hover tooltip in step with them.
package dashboard

import (
	"fmt"
	"image"
	"strings"

	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/applog"
	"github.com/iafilius/HighwayAccidents/src/scene"
	"github.com/iafilius/HighwayAccidents/src/session"
)

// Button identifies the pointer button of a click.
type Button int

const (
	Primary Button = iota
	Secondary
)

// Dashboard is not safe for concurrent use; callers run every event on one
// goroutine (the UI thread).
type Dashboard struct {
	tables *aggregate.Tables
	state  session.State
	opts   scene.Options

	scene   scene.Scene
	tooltip *scene.Tooltip
	hover   *aggregate.Combo
}

// New starts a session over t and builds the first scene.
func New(t *aggregate.Tables, opts scene.Options) *Dashboard {
	var days []string
	if t != nil {
		days = t.Days
	}
	d := &Dashboard{tables: t, state: session.New(days), opts: opts}
	d.rebuild()
	return d
}

func (d *Dashboard) Tables() *aggregate.Tables { return d.tables }
func (d *Dashboard) State() session.State       { return d.state }
func (d *Dashboard) Scene() scene.Scene         { return d.scene }

// Tooltip returns the open tooltip, if any.
func (d *Dashboard) Tooltip() (scene.Tooltip, bool) {
	if d.tooltip == nil {
		return scene.Tooltip{}, false
	}
	return *d.tooltip, true
}

// Hover returns the combination under the pointer, if any.
func (d *Dashboard) Hover() (aggregate.Combo, bool) {
	if d.hover == nil {
		return aggregate.Combo{}, false
	}
	return *d.hover, true
}

// Render paints the current scene and tooltip.
func (d *Dashboard) Render() (image.Image, error) {
	return scene.Render(d.scene, d.tooltip)
}

// Resize rebuilds the scene for a new canvas size. It reports whether the size changed.
func (d *Dashboard) Resize(w, h int) bool {
	if w == d.opts.Width && h == d.opts.Height {
		return false
	}
	d.opts.Width, d.opts.Height = w, h
	d.rebuild()
	return true
}

// Dispatch applies ev and re-renders. Any open tooltip is dropped.
func (d *Dashboard) Dispatch(ev session.Event) {
	d.state = session.Apply(d.state, ev)
	applog.Debugf("[dashboard] %s day=%q combo=%s -> day=%s mode=%s", ev.Kind, ev.Day, ev.Combo, d.state.CurrentDayName(), d.state.Mode)
	d.rebuild()
}

func (d *Dashboard) ToggleDay(day string) { d.Dispatch(session.Event{Kind: session.ToggleDay, Day: day}) }
func (d *Dashboard) NextDay()             { d.Dispatch(session.Event{Kind: session.NextDay}) }
func (d *Dashboard) Expand()              { d.Dispatch(session.Event{Kind: session.Expand}) }
func (d *Dashboard) Collapse()            { d.Dispatch(session.Event{Kind: session.Collapse}) }
func (d *Dashboard) ClearHighlight()      { d.Dispatch(session.Event{Kind: session.ClearHighlight}) }

// ToggleMode switches between collapsed and expanded.
func (d *Dashboard) ToggleMode() {
	if d.state.Mode == session.Expanded {
		d.Collapse()
		return
	}
	d.Expand()
}

// PointerMove updates the hover target and tooltip for a pointer at (x, y)
// in image pixels. Only collapsed mode has tooltips. It reports whether the
// visible output changed.
func (d *Dashboard) PointerMove(x, y float64) bool {
	if d.state.Mode != session.Collapsed {
		return d.clearTooltip()
	}
	hit, ok := d.scene.HitTest(x, y)
	if !ok {
		return d.clearTooltip()
	}
	c := hit.Bar.Combo
	tt := scene.NewTooltip(d.tables, d.state, c, x, y, d.scene.Charts[hit.Chart].Plot)
	d.hover = &c
	d.tooltip = &tt
	return true
}

// PointerLeave drops the tooltip when the pointer leaves the chart.
func (d *Dashboard) PointerLeave() bool { return d.clearTooltip() }

// PointerClick handles a click at (x, y) in image pixels. In collapsed mode
// a primary click on a bar toggles its highlight; elsewhere it does nothing.
// In expanded mode a primary click anywhere on the image except the legend
// clears the highlight. It reports whether the state changed.
func (d *Dashboard) PointerClick(x, y float64, b Button) bool {
	if b != Primary {
		return false
	}
	switch d.state.Mode {
	case session.Collapsed:
		hit, ok := d.scene.HitTest(x, y)
		if !ok {
			return false
		}
		d.Dispatch(session.Event{Kind: session.Select, Combo: hit.Bar.Combo})
		return true
	case session.Expanded:
		if !d.scene.InImage(x, y) || d.scene.InLegend(x, y) || !d.state.HasHighlight {
			return false
		}
		d.ClearHighlight()
		return true
	}
	return false
}

// MostDangerous runs the most-dangerous query over the enabled days.
func (d *Dashboard) MostDangerous() ([]aggregate.Combo, int) {
	return d.tables.MostDangerous(d.state.SelectedDays())
}

// Status is a one-line summary of the session for the status bar.
func (d *Dashboard) Status() string {
	var parts []string
	if d.state.Mode == session.Expanded {
		parts = append(parts, fmt.Sprintf("All days (%d)", len(d.state.Days)))
	} else if day := d.state.CurrentDayName(); day != "" {
		parts = append(parts, fmt.Sprintf("%s (%d/%d)", day, d.state.CurrentDay+1, len(d.state.Days)))
	} else {
		parts = append(parts, "No data")
	}
	if c, ok := d.state.Highlight(); ok {
		parts = append(parts, "Highlighted: "+c.String())
	}
	set, total := d.MostDangerous()
	switch {
	case len(d.state.SelectedDays()) == 0:
		parts = append(parts, "Most dangerous: no days selected")
	case len(set) > 0:
		names := make([]string, len(set))
		for i, c := range set {
			names[i] = c.String()
		}
		if len(names) > 3 {
			names = append(names[:3], fmt.Sprintf("+%d more", len(set)-3))
		}
		parts = append(parts, fmt.Sprintf("Most dangerous: %s (%d)", strings.Join(names, ", "), total))
	}
	return strings.Join(parts, "  |  ")
}

func (d *Dashboard) rebuild() {
	d.scene = scene.Build(d.tables, d.state, d.opts)
	d.tooltip = nil
	d.hover = nil
}

func (d *Dashboard) clearTooltip() bool {
	changed := d.tooltip != nil
	d.tooltip = nil
	d.hover = nil
	return changed
}
