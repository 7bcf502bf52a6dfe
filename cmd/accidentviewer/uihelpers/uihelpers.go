package uihelpers

import (
	"path/filepath"
)

// ComputeChartDimensions applies width/height clamp rules used for the chart image.
// Input: desired raw width (e.g., canvas width). The expanded grid gets a taller
// image so up to three rows of small charts stay readable.
func ComputeChartDimensions(rawW int, expanded bool) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	if expanded {
		h := int(float32(w) * 0.7)
		if h < 560 {
			h = 560
		}
		if h > 1000 {
			h = 1000
		}
		return w, h
	}
	h := int(float32(w) * 0.5)
	if h < 360 {
		h = 360
	}
	if h > 640 {
		h = 640
	}
	return w, h
}

// ContainRect returns where an imgW×imgH image lands inside a viewW×viewH area
// with contain-fit scaling (centered, aspect preserved), plus the scale factor.
func ContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return drawX, drawY, drawW, drawH, scale
}

// ViewToImage maps a point in view space to image pixels. ok is false when the
// point lies in the letterbox around the drawn image.
func ViewToImage(x, y, imgW, imgH, viewW, viewH float32) (ix, iy float64, ok bool) {
	drawX, drawY, drawW, drawH, scale := ContainRect(imgW, imgH, viewW, viewH)
	if x < drawX || x > drawX+drawW || y < drawY || y > drawY+drawH || scale <= 0 {
		return 0, 0, false
	}
	return float64((x - drawX) / scale), float64((y - drawY) / scale), true
}

// ImageToView is the inverse of ViewToImage.
func ImageToView(ix, iy float64, imgW, imgH, viewW, viewH float32) (float32, float32) {
	drawX, drawY, _, _, scale := ContainRect(imgW, imgH, viewW, viewH)
	return drawX + float32(ix)*scale, drawY + float32(iy)*scale
}

// TruncatePath shortens p to about n characters, keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
