package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/HighwayAccidents/cmd/accidentviewer/uihelpers"
	"github.com/iafilius/HighwayAccidents/src/dashboard"
	"github.com/iafilius/HighwayAccidents/src/scene"
)

// chartOverlay sits on top of the chart image. It is the one pointer
// subscription for the chart: hover drives the tooltip, taps go to the
// dashboard, which decides what a click means in the current mode.
type chartOverlay struct {
	widget.BaseWidget
	state *uiState
}

func newChartOverlay(state *uiState) *chartOverlay {
	c := &chartOverlay{state: state}
	c.ExtendBaseWidget(c)
	return c
}

// toImage maps an overlay position to image pixels (ImageFillContain aware).
func (c *chartOverlay) toImage(p fyne.Position) (float64, float64, bool) {
	if c.state == nil || c.state.imgW == 0 || c.state.imgH == 0 {
		return 0, 0, false
	}
	sz := c.Size()
	return uihelpers.ViewToImage(p.X, p.Y, float32(c.state.imgW), float32(c.state.imgH), sz.Width, sz.Height)
}

func (c *chartOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if c.state == nil || c.state.dash == nil {
		return
	}
	var changed bool
	if ix, iy, ok := c.toImage(ev.Position); ok {
		changed = c.state.dash.PointerMove(ix, iy)
	} else {
		changed = c.state.dash.PointerLeave()
	}
	if changed {
		c.Refresh()
	}
}

func (c *chartOverlay) MouseIn(ev *desktop.MouseEvent) { c.MouseMoved(ev) }

func (c *chartOverlay) MouseOut() {
	if c.state != nil && c.state.dash != nil && c.state.dash.PointerLeave() {
		c.Refresh()
	}
}

func (c *chartOverlay) Tapped(ev *fyne.PointEvent) {
	if c.state == nil || c.state.dash == nil {
		return
	}
	ix, iy, ok := c.toImage(ev.Position)
	if !ok {
		return
	}
	if c.state.dash.PointerClick(ix, iy, dashboard.Primary) {
		afterDispatch(c.state)
	}
}

// TappedSecondary is forwarded so the dashboard, not the widget, decides that
// secondary clicks do nothing.
func (c *chartOverlay) TappedSecondary(ev *fyne.PointEvent) {
	if c.state == nil || c.state.dash == nil {
		return
	}
	if ix, iy, ok := c.toImage(ev.Position); ok && c.state.dash.PointerClick(ix, iy, dashboard.Secondary) {
		afterDispatch(c.state)
	}
}

var (
	_ desktop.Hoverable      = (*chartOverlay)(nil)
	_ fyne.Tappable          = (*chartOverlay)(nil)
	_ fyne.SecondaryTappable = (*chartOverlay)(nil)
)

func (c *chartOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 0})
	labelBG := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	labelBG.StrokeColor = theme.Color(theme.ColorNameForeground)
	labelBG.StrokeWidth = 1
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	return &overlayRenderer{c: c, bg: bg, labelBG: labelBG, label: label, objs: []fyne.CanvasObject{bg, labelBG, label}}
}

type overlayRenderer struct {
	c       *chartOverlay
	bg      *canvas.Rectangle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *overlayRenderer) tooltip() (scene.Tooltip, bool) {
	if r.c.state == nil || r.c.state.dash == nil {
		return scene.Tooltip{}, false
	}
	return r.c.state.dash.Tooltip()
}

func (r *overlayRenderer) Destroy() {}

func (r *overlayRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	tt, ok := r.tooltip()
	if !ok {
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
		r.label.Move(fyne.NewPos(-1000, -1000))
		return
	}
	const pad = float32(4)
	ms := r.label.MinSize()
	bgW, bgH := ms.Width+2*pad, ms.Height+2*pad
	st := r.c.state
	tx, ty := uihelpers.ImageToView(tt.Rect.X, tt.Rect.Y, float32(st.imgW), float32(st.imgH), size.Width, size.Height)
	// clamp inside the view
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	if tx < 0 {
		tx = 0
	}
	if ty < 0 {
		ty = 0
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Resize(ms)
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *overlayRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *overlayRenderer) Refresh() {
	if tt, ok := r.tooltip(); ok {
		r.label.Segments = tooltipSegments(tt)
	} else {
		r.label.Segments = nil
	}
	r.label.Refresh()
	r.labelBG.FillColor = theme.Color(theme.ColorNameOverlayBackground)
	r.labelBG.StrokeColor = theme.Color(theme.ColorNameForeground)
	r.Layout(r.c.Size())
	r.bg.Refresh()
	r.labelBG.Refresh()
}

// tooltipSegments lays out the tooltip as rich text: the title (error colour
// when the combination is among the most dangerous), one row per selected day
// with the current day emphasised, then the total.
func tooltipSegments(tt scene.Tooltip) []widget.RichTextSegment {
	titleColor := theme.ColorNameForeground
	if tt.Dangerous {
		titleColor = theme.ColorNameError
	}
	segs := []widget.RichTextSegment{
		&widget.TextSegment{Text: tt.Title, Style: widget.RichTextStyle{ColorName: titleColor, TextStyle: fyne.TextStyle{Bold: true}}},
	}
	for _, row := range tt.Rows {
		style := widget.RichTextStyle{ColorName: theme.ColorNameForeground}
		if row.Current {
			style.ColorName = theme.ColorNameSuccess
			style.TextStyle.Bold = true
		}
		segs = append(segs, &widget.TextSegment{Text: row.String(), Style: style})
	}
	return append(segs, &widget.TextSegment{
		Text:  tt.TotalLine(),
		Style: widget.RichTextStyle{ColorName: theme.ColorNamePrimary, TextStyle: fyne.TextStyle{Bold: true}},
	})
}
