package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/HighwayAccidents/src/accidents"
	"github.com/iafilius/HighwayAccidents/src/aggregate"
	"github.com/iafilius/HighwayAccidents/src/scene"
	"github.com/iafilius/HighwayAccidents/src/session"
)

var i5Morning = aggregate.Combo{Highway: "I-5", Bucket: aggregate.Morning}

func scenario(t *testing.T) *Dashboard {
	t.Helper()
	var rs []accidents.Record
	for i := 0; i < 3; i++ {
		rs = append(rs, accidents.Record{Highway: "I-5", Day: "Monday", Hour: "8"})
	}
	rs = append(rs, accidents.Record{Highway: "I-10", Day: "Monday", Hour: "20"})
	for i := 0; i < 2; i++ {
		rs = append(rs, accidents.Record{Highway: "I-5", Day: "Tuesday", Hour: "6"})
	}
	opts := scene.DefaultOptions()
	opts.Width, opts.Height = 800, 480
	return New(aggregate.Build(rs), opts)
}

// barCenter returns the image position of c's bar in the visible collapsed chart.
func barCenter(t *testing.T, d *Dashboard, c aggregate.Combo) (float64, float64) {
	t.Helper()
	sc := d.Scene()
	require.Len(t, sc.Charts, 1)
	b, ok := sc.Charts[0].Bar(c)
	require.True(t, ok)
	return b.Rect.X + b.Rect.W/2, b.Rect.Y + b.Rect.H/2
}

func TestScenario_HighlightPersistsAcrossDays(t *testing.T) {
	d := scenario(t)
	assert.Equal(t, 3, d.Tables().GlobalMax)

	x, y := barCenter(t, d, i5Morning)
	b, _ := d.Scene().Charts[0].Bar(i5Morning)
	assert.Equal(t, 3, b.Count)

	require.True(t, d.PointerClick(x, y, Primary))
	c, ok := d.State().Highlight()
	require.True(t, ok)
	assert.Equal(t, i5Morning, c)

	d.NextDay()
	ch := d.Scene().Charts[0]
	assert.Equal(t, "Tuesday", ch.Day)
	b, _ = ch.Bar(i5Morning)
	assert.Equal(t, 2, b.Count)
	assert.True(t, b.Highlighted)
	assert.Equal(t, scene.HighlightColor, b.Color)
}

func TestClickTwiceRestoresDefaults(t *testing.T) {
	d := scenario(t)
	before := d.Scene()
	x, y := barCenter(t, d, i5Morning)

	d.PointerClick(x, y, Primary)
	d.PointerClick(x, y, Primary)
	assert.False(t, d.State().HasHighlight)
	assert.Equal(t, before, d.Scene())
}

func TestClickElsewhereAndSecondaryAreNoOps(t *testing.T) {
	d := scenario(t)
	s := d.State()
	assert.False(t, d.PointerClick(-10, -10, Primary))
	assert.False(t, d.PointerClick(5, 5, Primary))
	x, y := barCenter(t, d, i5Morning)
	assert.False(t, d.PointerClick(x, y, Secondary))
	assert.Equal(t, s, d.State())
}

func TestPointerMove_Tooltip(t *testing.T) {
	d := scenario(t)
	x, y := barCenter(t, d, i5Morning)

	require.True(t, d.PointerMove(x, y))
	tt, ok := d.Tooltip()
	require.True(t, ok)
	assert.True(t, tt.Dangerous)
	assert.Equal(t, 5, tt.Total)
	hv, ok := d.Hover()
	require.True(t, ok)
	assert.Equal(t, i5Morning, hv)
	plot := d.Scene().Charts[0].Plot
	assert.GreaterOrEqual(t, tt.Rect.X, plot.X)
	assert.LessOrEqual(t, tt.Rect.Bottom(), plot.Bottom())

	// moving off every bar drops it; moving again off is a no-op
	assert.True(t, d.PointerMove(1, 1))
	_, ok = d.Tooltip()
	assert.False(t, ok)
	_, ok = d.Hover()
	assert.False(t, ok)
	assert.False(t, d.PointerMove(1, 1))

	d.PointerMove(x, y)
	assert.True(t, d.PointerLeave())
}

func TestToggleDay_ScopesTooltipAndClearsIt(t *testing.T) {
	d := scenario(t)
	x, y := barCenter(t, d, i5Morning)
	d.PointerMove(x, y)

	d.ToggleDay("Monday")
	_, ok := d.Tooltip()
	assert.False(t, ok, "re-render drops the open tooltip")
	assert.False(t, d.State().Enabled("Monday"))

	d.PointerMove(x, y)
	tt, _ := d.Tooltip()
	require.Len(t, tt.Rows, 1)
	assert.Equal(t, "Tuesday", tt.Rows[0].Day)
	assert.Equal(t, 2, tt.Total)

	d.ToggleDay("Tuesday")
	set, total := d.MostDangerous()
	assert.Empty(t, set)
	assert.Equal(t, 0, total)
	assert.Contains(t, d.Status(), "no days selected")
}

func TestExpanded_NoTooltipAndClickClears(t *testing.T) {
	d := scenario(t)
	x, y := barCenter(t, d, i5Morning)
	d.PointerClick(x, y, Primary)
	d.NextDay()

	d.Expand()
	sc := d.Scene()
	require.Len(t, sc.Charts, 2)
	for _, ch := range sc.Charts {
		b, _ := ch.Bar(i5Morning)
		assert.True(t, b.Highlighted, ch.Day)
	}

	// hovering does nothing in this mode
	b, _ := sc.Charts[0].Bar(i5Morning)
	assert.False(t, d.PointerMove(b.Rect.X+b.Rect.W/2, b.Rect.Y+b.Rect.H/2))
	_, ok := d.Tooltip()
	assert.False(t, ok)

	// next is ignored while expanded
	d.NextDay()
	assert.Equal(t, 1, d.State().CurrentDay)

	// legend and outside clicks keep the highlight
	lg := sc.Legend.Rect
	assert.False(t, d.PointerClick(lg.X+lg.W/2, lg.Y+lg.H/2, Primary))
	assert.False(t, d.PointerClick(-1, -1, Primary))
	assert.True(t, d.State().HasHighlight)

	assert.True(t, d.PointerClick(5, 5, Primary))
	assert.False(t, d.State().HasHighlight)
	// nothing left to clear
	assert.False(t, d.PointerClick(5, 5, Primary))
}

func TestExpandCollapseRoundTrip(t *testing.T) {
	d := scenario(t)
	x, y := barCenter(t, d, i5Morning)
	d.PointerClick(x, y, Primary)
	d.NextDay()
	d.ToggleDay("Monday")
	before := d.State()

	d.ToggleMode()
	assert.Equal(t, session.Expanded, d.State().Mode)
	assert.Equal(t, before.Filter, d.State().Filter)
	d.ToggleMode()
	assert.Equal(t, before, d.State())
	assert.Equal(t, "Tuesday", d.Scene().Charts[0].Day)
}

func TestResize(t *testing.T) {
	d := scenario(t)
	assert.False(t, d.Resize(800, 480))
	assert.True(t, d.Resize(1000, 500))
	assert.Equal(t, 1000, d.Scene().Width)
}

func TestRenderAndStatus(t *testing.T) {
	d := scenario(t)
	img, err := d.Render()
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())

	st := d.Status()
	assert.Contains(t, st, "Monday (1/2)")
	assert.Contains(t, st, "Most dangerous: I-5 - Morning (5)")

	d.Expand()
	assert.Contains(t, d.Status(), "All days (2)")
}

func TestEmptyTables(t *testing.T) {
	d := New(aggregate.Build(nil), scene.DefaultOptions())
	assert.Empty(t, d.Scene().Charts)
	assert.False(t, d.PointerMove(100, 100))
	assert.False(t, d.PointerClick(100, 100, Primary))
	d.NextDay()
	assert.Contains(t, d.Status(), "No data")
	_, err := d.Render()
	require.NoError(t, err)
}
