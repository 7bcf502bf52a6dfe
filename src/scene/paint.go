package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/HighwayAccidents/src/session"
)

var (
	axisColor     = drawing.Color{R: 60, G: 60, B: 60, A: 255}
	gridColor     = drawing.Color{R: 225, G: 225, B: 225, A: 255}
	textColor     = drawing.Color{R: 30, G: 30, B: 30, A: 255}
	dangerColor   = drawing.Color{R: 200, G: 0, B: 0, A: 255}
	currentColor  = drawing.Color{R: 0, G: 128, B: 0, A: 255}
	totalColor    = drawing.Color{R: 0, G: 0, B: 200, A: 255}
	tooltipFill   = drawing.Color{R: 255, G: 255, B: 255, A: 242}
	tooltipBorder = drawing.Color{R: 0, G: 0, B: 0, A: 255}
)

type fontSizes struct {
	title, tick, caption float64
}

func sizesFor(mode session.Mode) fontSizes {
	if mode == session.Expanded {
		return fontSizes{title: 11, tick: 7, caption: 8}
	}
	return fontSizes{title: 14, tick: 9, caption: 10}
}

// Paint draws sc, and tip when non-nil, with a renderer from provider
// (chart.PNG or chart.SVG) and writes the encoded result to out.
func Paint(out io.Writer, sc Scene, tip *Tooltip, provider chart.RendererProvider) error {
	r, err := provider(sc.Width, sc.Height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	r.SetFont(f)
	fs := sizesFor(sc.Mode)

	fillRect(r, Rect{0, 0, float64(sc.Width), float64(sc.Height)}, chart.ColorWhite)
	for _, ch := range sc.Charts {
		paintChart(r, ch, fs)
	}
	paintLegend(r, sc.Legend, fs)
	if sc.XLabel.Text != "" {
		text(r, sc.XLabel.Text, sc.XLabel.X, sc.XLabel.Y, fs.caption, textColor, alignCenter)
	}
	if sc.YLabel.Text != "" {
		r.SetFontSize(fs.caption)
		tb := r.MeasureText(sc.YLabel.Text)
		r.SetFontColor(textColor)
		r.SetTextRotation(3 * math.Pi / 2)
		r.Text(sc.YLabel.Text, int(sc.YLabel.X), int(sc.YLabel.Y)+tb.Width()/2)
		r.ClearTextRotation()
	}
	if tip != nil {
		paintTooltip(r, *tip, fs)
	}
	return r.Save(out)
}

// Render paints sc to PNG and decodes it back into an image for display.
func Render(sc Scene, tip *Tooltip) (image.Image, error) {
	var buf bytes.Buffer
	if err := Paint(&buf, sc, tip, chart.PNG); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

func paintChart(r chart.Renderer, ch Chart, fs fontSizes) {
	p := ch.Plot
	for _, tk := range ch.Ticks {
		y := p.Bottom() - p.H*tk.Value/float64(ch.YMax)
		line(r, p.X, y, p.Right(), y, gridColor)
		text(r, tk.Label, p.X-6, y+fs.tick/2, fs.tick, textColor, alignRight)
	}
	for _, b := range ch.Bars {
		if b.Rect.H <= 0 {
			continue
		}
		fillRect(r, b.Rect, b.Color)
	}
	line(r, p.X, p.Y, p.X, p.Bottom(), axisColor)
	line(r, p.X, p.Bottom(), p.Right(), p.Bottom(), axisColor)
	for _, l := range ch.XLabels {
		text(r, l.Text, l.X, l.Y, fs.tick, textColor, alignCenter)
	}
	text(r, ch.Title.Text, ch.Title.X, ch.Title.Y, fs.title, textColor, alignCenter)
}

func paintLegend(r chart.Renderer, lg Legend, fs fontSizes) {
	if len(lg.Entries) == 0 {
		return
	}
	if lg.Boxed {
		fillRect(r, lg.Rect, chart.ColorWhite)
		strokeRect(r, lg.Rect, gridColor)
		text(r, lg.Title, lg.Rect.X+lg.Rect.W/2, lg.Rect.Y+12, fs.caption, textColor, alignCenter)
	}
	for _, e := range lg.Entries {
		fillRect(r, e.Swatch, e.Color)
		text(r, e.Text, e.Swatch.Right()+6, e.Swatch.Bottom()-1, fs.caption, textColor, alignLeft)
	}
}

func paintTooltip(r chart.Renderer, tt Tooltip, fs fontSizes) {
	box := tt.Rect
	fillRect(r, box, tooltipFill)
	strokeRect(r, box, tooltipBorder)
	y := box.Y + tooltipPad + tooltipLineH - 4
	titleCol := textColor
	if tt.Dangerous {
		titleCol = dangerColor
	}
	text(r, tt.Title, box.X+box.W/2, y, fs.caption, titleCol, alignCenter)
	x := box.X + tooltipPad
	for _, row := range tt.Rows {
		y += tooltipLineH
		col := textColor
		if row.Current {
			col = currentColor
		}
		text(r, row.String(), x, y, fs.caption, col, alignLeft)
	}
	y += tooltipLineH
	text(r, tt.TotalLine(), x, y, fs.caption, totalColor, alignLeft)
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func text(r chart.Renderer, s string, x, y, size float64, col drawing.Color, a align) {
	if s == "" {
		return
	}
	r.SetFontSize(size)
	r.SetFontColor(col)
	tx := int(x)
	switch a {
	case alignCenter:
		tx -= r.MeasureText(s).Width() / 2
	case alignRight:
		tx -= r.MeasureText(s).Width()
	}
	r.Text(s, tx, int(y))
}

func rectPath(r chart.Renderer, b Rect) {
	x0, y0 := int(math.Round(b.X)), int(math.Round(b.Y))
	x1, y1 := int(math.Round(b.Right())), int(math.Round(b.Bottom()))
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
}

func fillRect(r chart.Renderer, b Rect, col drawing.Color) {
	r.SetFillColor(col)
	rectPath(r, b)
	r.Fill()
}

func strokeRect(r chart.Renderer, b Rect, col drawing.Color) {
	r.SetStrokeColor(col)
	r.SetStrokeWidth(1)
	rectPath(r, b)
	r.Stroke()
}

func line(r chart.Renderer, x0, y0, x1, y1 float64, col drawing.Color) {
	r.SetStrokeColor(col)
	r.SetStrokeWidth(1)
	r.MoveTo(int(x0), int(y0))
	r.LineTo(int(x1), int(y1))
	r.Stroke()
}

// DrawHint stamps a one-line hint onto the bottom-left corner of img.
func DrawHint(img image.Image, hint string) image.Image {
	if img == nil || strings.TrimSpace(hint) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), Face: face}
	tw := dr.MeasureString(hint).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	shadow := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180}), Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	shadow.DrawString(hint)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(hint)
	return rgba
}

// Hint is the mode-specific usage line stamped by DrawHint.
func Hint(mode session.Mode) string {
	if mode == session.Expanded {
		return "Click a chart to clear the highlight | E or Collapse to return"
	}
	return "Hover a bar for per-day counts | click to highlight | N or Right: next day | E: expand"
}
