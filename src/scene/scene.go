// Package scene turns the count tables and the session state into a drawable
// description of the dashboard: chart frames, bar rectangles, colors, legend and
// tooltip. Everything here is a pure function of its inputs; painting lives in
// paint.go.
package scene

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/HighwayAccidents/src/accidents"
	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/session"
)

// Palette is the default bar color per bucket, indexed by TimeBucket.
var Palette = [aggregate.NumBuckets]drawing.Color{
	{R: 135, G: 206, B: 235, A: 255}, // skyblue
	{R: 255, G: 255, B: 0, A: 255},   // yellow
	{R: 255, G: 165, B: 0, A: 255},   // orange
}

// HighlightColor marks the highlighted combination on every day.
var HighlightColor = drawing.Color{R: 128, G: 0, B: 128, A: 255}

// ColorOf is the fill of combination c under state s.
func ColorOf(c aggregate.Combo, s session.State) drawing.Color {
	if s.IsHighlighted(c) {
		return HighlightColor
	}
	if !c.Bucket.Valid() {
		return chart.ColorLightGray
	}
	return Palette[c.Bucket]
}

// Rect is an axis-aligned rectangle in image pixels, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Contains is inclusive on every edge.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Label is a piece of text anchored at its horizontal center and baseline.
type Label struct {
	Text string
	X, Y float64
}

// Bar is one drawn bar.
type Bar struct {
	Combo       aggregate.Combo
	Count       int
	Rect        Rect
	Color       drawing.Color
	Highlighted bool
}

// Chart is one day's bar chart.
type Chart struct {
	Day   string
	Title Label
	Frame Rect
	Plot  Rect
	YMax  int
	Ticks []chart.Tick
	// Bars are ordered bucket-major, then whitelist order, matching how they are drawn.
	Bars    []Bar
	XLabels []Label
}

// Bar returns the bar for c, if this chart has one.
func (ch Chart) Bar(c aggregate.Combo) (Bar, bool) {
	for _, b := range ch.Bars {
		if b.Combo == c {
			return b, true
		}
	}
	return Bar{}, false
}

// LegendEntry is one swatch in the legend.
type LegendEntry struct {
	Text   string
	Color  drawing.Color
	Swatch Rect
}

// Legend is drawn once per scene.
type Legend struct {
	Title string
	Rect  Rect
	// Boxed legends get a frame and a title line above the entries.
	Boxed   bool
	Entries []LegendEntry
}

// Options carries the canvas size and axis captions.
type Options struct {
	Width, Height int
	XLabel        string
	YLabel        string
}

// DefaultOptions matches the viewer's initial chart size.
func DefaultOptions() Options {
	return Options{Width: 1100, Height: 520, XLabel: "Highway", YLabel: "Number of Accidents"}
}

// Scene is the complete visible state for one render.
type Scene struct {
	Mode          session.Mode
	Width, Height int
	Charts        []Chart
	Legend        Legend
	XLabel        Label
	YLabel        Label
}

// Build computes the scene for s. Collapsed mode yields one chart for the
// current day; Expanded mode yields one chart per present day in a grid of at
// most three columns, with the legend below the grid.
func Build(t *aggregate.Tables, s session.State, opts Options) Scene {
	w, h := clampSize(opts.Width, opts.Height)
	sc := Scene{Mode: s.Mode, Width: w, Height: h}
	ymax := 1
	if t != nil {
		ymax = t.YMax()
	}
	if s.Mode == session.Expanded {
		buildExpanded(&sc, t, s, ymax)
		return sc
	}
	buildCollapsed(&sc, t, s, ymax, opts)
	return sc
}

func clampSize(w, h int) (int, int) {
	if w < 320 {
		w = 320
	}
	if h < 240 {
		h = 240
	}
	return w, h
}

const (
	collapsedLeft   = 70.0
	collapsedRight  = 20.0
	collapsedTop    = 64.0
	collapsedBottom = 56.0

	expandedLegendBand = 64.0
	cellLeft           = 40.0
	cellRight          = 10.0
	cellTop            = 26.0
	cellBottom         = 24.0

	// barFraction is the share of a highway group taken by one bar.
	barFraction = 0.2
)

func buildCollapsed(sc *Scene, t *aggregate.Tables, s session.State, ymax int, opts Options) {
	w, h := float64(sc.Width), float64(sc.Height)
	day := s.CurrentDayName()
	frame := Rect{0, 0, w, h}
	plot := Rect{collapsedLeft, collapsedTop, w - collapsedLeft - collapsedRight, h - collapsedTop - collapsedBottom}
	if day != "" {
		ch := buildChart(t, s, day, frame, plot, ymax)
		ch.Title = Label{Text: day, X: w / 2, Y: 22}
		sc.Charts = []Chart{ch}
	}
	sc.Legend = layoutLegend(Rect{collapsedLeft, 32, plot.W, 22}, 1)
	sc.XLabel = Label{Text: opts.XLabel, X: plot.X + plot.W/2, Y: h - 12}
	sc.YLabel = Label{Text: opts.YLabel, X: 18, Y: plot.Y + plot.H/2}
}

func buildExpanded(sc *Scene, t *aggregate.Tables, s session.State, ymax int) {
	w, h := float64(sc.Width), float64(sc.Height)
	n := len(s.Days)
	gridH := h - expandedLegendBand
	if n > 0 {
		cols, rows := gridShape(n)
		cw, rh := w/float64(cols), gridH/float64(rows)
		for i, day := range s.Days {
			frame := Rect{float64(i%cols) * cw, float64(i/cols) * rh, cw, rh}
			plot := Rect{frame.X + cellLeft, frame.Y + cellTop, cw - cellLeft - cellRight, rh - cellTop - cellBottom}
			ch := buildChart(t, s, day, frame, plot, ymax)
			ch.Title = Label{Text: day, X: frame.X + cw/2, Y: frame.Y + 16}
			sc.Charts = append(sc.Charts, ch)
		}
	}
	sc.Legend = layoutLegend(Rect{w * 0.25, gridH + 6, w * 0.5, expandedLegendBand - 12}, 2)
}

// gridShape returns at most three columns and enough rows for n charts.
func gridShape(n int) (cols, rows int) {
	cols = n
	if cols > 3 {
		cols = 3
	}
	rows = (n + 2) / 3
	return cols, rows
}

func buildChart(t *aggregate.Tables, s session.State, day string, frame, plot Rect, ymax int) Chart {
	if plot.W < 1 {
		plot.W = 1
	}
	if plot.H < 1 {
		plot.H = 1
	}
	ch := Chart{Day: day, Frame: frame, Plot: plot, YMax: ymax, Ticks: countTicks(ymax, 6)}
	ct := t.Table(day)
	groupW := plot.W / float64(aggregate.NumHighways)
	barW := groupW * barFraction
	for _, b := range aggregate.Buckets {
		for hi, hw := range accidents.Highways {
			c := aggregate.Combo{Highway: hw, Bucket: b}
			n := ct.At(hi, b)
			center := plot.X + groupW*(float64(hi)+0.5) + (float64(b)-1)*barW
			barH := plot.H * float64(n) / float64(ymax)
			ch.Bars = append(ch.Bars, Bar{
				Combo:       c,
				Count:       n,
				Rect:        Rect{center - barW/2, plot.Bottom() - barH, barW, barH},
				Color:       ColorOf(c, s),
				Highlighted: s.IsHighlighted(c),
			})
		}
	}
	for hi, hw := range accidents.Highways {
		ch.XLabels = append(ch.XLabels, Label{Text: hw, X: plot.X + groupW*(float64(hi)+0.5), Y: plot.Bottom() + 15})
	}
	return ch
}

// approximate advance of the label font, used for layout before painting
const legendCharW = 6.5

func layoutLegend(area Rect, cols int) Legend {
	lg := Legend{Title: "Time of Day", Rect: area}
	texts := make([]string, 0, aggregate.NumBuckets+1)
	colors := make([]drawing.Color, 0, aggregate.NumBuckets+1)
	for _, b := range aggregate.Buckets {
		texts = append(texts, b.String()+" "+b.Range())
		colors = append(colors, Palette[b])
	}
	texts = append(texts, "Left Click Highlight")
	colors = append(colors, HighlightColor)

	const sw = 12.0
	if cols <= 1 {
		x := area.X
		for i, txt := range texts {
			lg.Entries = append(lg.Entries, LegendEntry{Text: txt, Color: colors[i], Swatch: Rect{x, area.Y + (area.H-sw)/2, sw, sw}})
			x += sw + 6 + float64(len(txt))*legendCharW + 18
		}
		return lg
	}
	lg.Boxed = true
	rows := (len(texts) + cols - 1) / cols
	colW := area.W / float64(cols)
	rowH := (area.H - 14) / float64(rows)
	for i, txt := range texts {
		x := area.X + 10 + float64(i%cols)*colW
		y := area.Y + 14 + float64(i/cols)*rowH + (rowH-sw)/2
		lg.Entries = append(lg.Entries, LegendEntry{Text: txt, Color: colors[i], Swatch: Rect{x, y, sw, sw}})
	}
	return lg
}
