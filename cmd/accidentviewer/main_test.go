package main

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/HighwayAccidents/src/accidents"
	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/dashboard"
	"github.com/iafilius/HighwayAccidents/src/scene"
	"github.com/iafilius/HighwayAccidents/src/session"
)

var i5Morning = aggregate.Combo{Highway: "I-5", Bucket: aggregate.Morning}

// newTestState returns a headless uiState whose image matches chartSize's default (800x400).
func newTestState(t *testing.T) *uiState {
	t.Helper()
	var rs []accidents.Record
	for i := 0; i < 3; i++ {
		rs = append(rs, accidents.Record{Highway: "I-5", Day: "Monday", Hour: "8"})
	}
	rs = append(rs, accidents.Record{Highway: "I-10", Day: "Monday", Hour: "20"})
	rs = append(rs, accidents.Record{Highway: "I-5", Day: "Tuesday", Hour: "6"}, accidents.Record{Highway: "I-5", Day: "Tuesday", Hour: "7"})
	opts := scene.DefaultOptions()
	opts.Width, opts.Height = 800, 400
	return &uiState{dash: dashboard.New(aggregate.Build(rs), opts), imgW: 800, imgH: 400}
}

func barCenter(t *testing.T, st *uiState, c aggregate.Combo) fyne.Position {
	t.Helper()
	b, ok := st.dash.Scene().Charts[0].Bar(c)
	if !ok {
		t.Fatalf("bar %s not in scene", c)
	}
	return fyne.NewPos(float32(b.Rect.X+b.Rect.W/2), float32(b.Rect.Y+b.Rect.H/2))
}

func TestTooltipSegments(t *testing.T) {
	tt := scene.Tooltip{
		Title:     "I-5 - Morning (Dangerous)",
		Dangerous: true,
		Rows: []scene.TooltipRow{
			{Day: "Monday", Count: 3, Current: true},
			{Day: "Tuesday", Count: 2},
		},
		Total: 5,
	}
	segs := tooltipSegments(tt)
	if len(segs) != 4 {
		t.Fatalf("want 4 segments, got %d", len(segs))
	}
	want := []struct {
		text  string
		color fyne.ThemeColorName
		bold  bool
	}{
		{"I-5 - Morning (Dangerous)", theme.ColorNameError, true},
		{"Monday: 3", theme.ColorNameSuccess, true},
		{"Tuesday: 2", theme.ColorNameForeground, false},
		{"Total: 5", theme.ColorNamePrimary, true},
	}
	for i, w := range want {
		seg, ok := segs[i].(*widget.TextSegment)
		if !ok {
			t.Fatalf("segment %d is %T", i, segs[i])
		}
		if seg.Text != w.text || seg.Style.ColorName != w.color || seg.Style.TextStyle.Bold != w.bold {
			t.Fatalf("segment %d = %q/%s/bold=%v want %q/%s/bold=%v", i, seg.Text, seg.Style.ColorName, seg.Style.TextStyle.Bold, w.text, w.color, w.bold)
		}
	}

	tt.Dangerous = false
	tt.Title = "I-10 - Evening"
	seg := tooltipSegments(tt)[0].(*widget.TextSegment)
	if seg.Style.ColorName != theme.ColorNameForeground {
		t.Fatalf("plain title should use the foreground colour, got %s", seg.Style.ColorName)
	}
}

func TestChartOverlay_HoverAndTap(t *testing.T) {
	test.NewTempApp(t)
	st := newTestState(t)
	ov := newChartOverlay(st)
	ov.Resize(fyne.NewSize(800, 400))
	pos := barCenter(t, st, i5Morning)

	ov.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}})
	tt, ok := st.dash.Tooltip()
	if !ok {
		t.Fatalf("hovering a bar should open the tooltip")
	}
	if !tt.Dangerous || tt.Total != 5 {
		t.Fatalf("unexpected tooltip %+v", tt)
	}
	ov.MouseOut()
	if _, ok := st.dash.Tooltip(); ok {
		t.Fatalf("leaving the chart should close the tooltip")
	}

	ov.TappedSecondary(&fyne.PointEvent{Position: pos})
	if st.dash.State().HasHighlight {
		t.Fatalf("secondary tap must not highlight")
	}
	ov.Tapped(&fyne.PointEvent{Position: pos})
	if c, ok := st.dash.State().Highlight(); !ok || c != i5Morning {
		t.Fatalf("tap should highlight %s, got %v %v", i5Morning, c, ok)
	}
	ov.Tapped(&fyne.PointEvent{Position: pos})
	if st.dash.State().HasHighlight {
		t.Fatalf("second tap should clear the highlight")
	}
}

func TestChartOverlay_Letterbox(t *testing.T) {
	test.NewTempApp(t)
	st := newTestState(t)
	ov := newChartOverlay(st)
	// twice as tall as the image: the image sits in the middle 400px band
	ov.Resize(fyne.NewSize(800, 800))
	pos := barCenter(t, st, i5Morning)

	ov.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}})
	if _, ok := st.dash.Tooltip(); ok {
		t.Fatalf("image coordinates must be offset by the letterbox")
	}
	ov.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(pos.X, pos.Y+200)}})
	if _, ok := st.dash.Tooltip(); !ok {
		t.Fatalf("shifted position should hit the bar")
	}
	ov.Tapped(&fyne.PointEvent{Position: fyne.NewPos(10, 10)})
	if st.dash.State().HasHighlight {
		t.Fatalf("tap in the letterbox must not select")
	}
}

func TestHandleKey(t *testing.T) {
	st := newTestState(t)
	handleKey(st, fyne.KeyN)
	if got := st.dash.State().CurrentDayName(); got != "Tuesday" {
		t.Fatalf("N should advance to Tuesday, got %s", got)
	}
	handleKey(st, fyne.KeyRight)
	if got := st.dash.State().CurrentDayName(); got != "Monday" {
		t.Fatalf("Right should wrap to Monday, got %s", got)
	}
	handleKey(st, fyne.KeyE)
	if st.dash.State().Mode != session.Expanded {
		t.Fatalf("E should expand")
	}
	if got := exportName(st.dash.State()); got != "accidents_all_days.png" {
		t.Fatalf("export name in expanded mode: %s", got)
	}
	handleKey(st, fyne.KeyE)
	if st.dash.State().Mode != session.Collapsed {
		t.Fatalf("E again should collapse")
	}
	if got := exportName(st.dash.State()); got != "accidents_monday.png" {
		t.Fatalf("export name: %s", got)
	}

	st.dash.Dispatch(session.Event{Kind: session.Select, Combo: i5Morning})
	handleKey(st, fyne.KeyEscape)
	if st.dash.State().HasHighlight {
		t.Fatalf("Escape should clear the highlight")
	}
	before := st.dash.State()
	handleKey(st, fyne.KeyQ)
	if st.dash.State().CurrentDay != before.CurrentDay || st.dash.State().Mode != before.Mode {
		t.Fatalf("unbound key changed the session")
	}
	// nil dashboard is tolerated
	handleKey(&uiState{}, fyne.KeyN)
}

func TestChartSizeHeadless(t *testing.T) {
	st := newTestState(t)
	w, h := chartSize(st)
	if w != 800 || h != 400 {
		t.Fatalf("headless collapsed size %dx%d", w, h)
	}
	st.dash.Expand()
	if _, eh := chartSize(st); eh <= h {
		t.Fatalf("expanded chart should be taller than collapsed (%d <= %d)", eh, h)
	}
	if w, h := chartSize(nil); w != 800 || h != 400 {
		t.Fatalf("nil state size %dx%d", w, h)
	}
}
