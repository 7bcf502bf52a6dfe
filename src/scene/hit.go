package scene

// Hit identifies the bar under a point.
type Hit struct {
	Chart int
	Bar   Bar
}

// HitTest returns the bar containing (x, y) in image pixels. Points outside
// every plot area never hit, and neither do bars with no height.
func (sc Scene) HitTest(x, y float64) (Hit, bool) {
	for ci, ch := range sc.Charts {
		if !ch.Plot.Contains(x, y) {
			continue
		}
		for _, b := range ch.Bars {
			if b.Rect.H > 0 && b.Rect.Contains(x, y) {
				return Hit{Chart: ci, Bar: b}, true
			}
		}
		return Hit{}, false
	}
	return Hit{}, false
}

// PlotAt returns the index of the chart whose plot area contains (x, y), or -1.
func (sc Scene) PlotAt(x, y float64) int {
	for i, ch := range sc.Charts {
		if ch.Plot.Contains(x, y) {
			return i
		}
	}
	return -1
}

// InLegend reports whether (x, y) falls on the legend.
func (sc Scene) InLegend(x, y float64) bool {
	return sc.Legend.Rect.Contains(x, y)
}

// InImage reports whether (x, y) is inside the rendered canvas.
func (sc Scene) InImage(x, y float64) bool {
	return Rect{0, 0, float64(sc.Width), float64(sc.Height)}.Contains(x, y)
}
