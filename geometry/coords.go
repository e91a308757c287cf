// Package geometry provides the pure coordinate conversions and snap
// computations used by the interaction engine. Nothing here touches album
// state; every function is deterministic over its arguments.
package geometry

// Rect is an axis-aligned rectangle in percent units.
type Rect struct {
	X, Y, W, H float64
}

// Viewport describes the editor viewport a gesture happens in. PageCount is
// 1 for a single page (or the cover) and 2 for a spread; ContainerWidth and
// ContainerHeight are the rendered pixel size of the page area before zoom.
type Viewport struct {
	ContainerWidth  float64
	ContainerHeight float64
	Zoom            float64
	PageCount       int
}

// effectivePageWidth is the pixel width one page occupies: the container is
// halved when a spread shows two pages. Height is never halved.
func (v Viewport) effectivePageWidth() float64 {
	w := v.ContainerWidth
	if v.PageCount == 2 {
		w /= 2
	}
	return w
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// DeltaToPercent converts a pointer delta in pixels to percent units of a
// single page: Δ% = (Δpx / (W/z)) * 100.
func (v Viewport) DeltaToPercent(dxPx, dyPx float64) (float64, float64) {
	dx := dxPx / (v.effectivePageWidth() / v.zoom()) * 100
	dy := dyPx / (v.ContainerHeight / v.zoom()) * 100
	return dx, dy
}

// PointToSpread converts a pointer position in container pixels to
// spread-absolute percent. For a two-page spread the horizontal space is
// [0,200]; vertical stays [0,100].
func (v Viewport) PointToSpread(pxX, pxY float64) (float64, float64) {
	x := pxX / (v.effectivePageWidth() / v.zoom()) * 100
	y := pxY / (v.ContainerHeight / v.zoom()) * 100
	return x, y
}

// SpreadToLocal maps a spread-absolute x to (pageIndex, pageLocalX). A
// right-hand page's local x maps to absolute x+100.
func (v Viewport) SpreadToLocal(absX float64) (int, float64) {
	if v.PageCount == 2 && absX >= 100 {
		return 1, absX - 100
	}
	return 0, absX
}

// LocalToSpread maps a page-local x on the given page index back to
// spread-absolute percent.
func LocalToSpread(pageIndex int, localX float64) float64 {
	return localX + 100*float64(pageIndex)
}

// ClampToPage clamps a rect so the asset stays on its own page: x in
// [0, 100-w], y in [0, 100-h]. Oversized rects are first reduced to the page
// rather than rejected.
func ClampToPage(r Rect) Rect {
	if r.W > 100 {
		r.W = 100
	}
	if r.H > 100 {
		r.H = 100
	}
	r.X = clamp(r.X, 0, 100-r.W)
	r.Y = clamp(r.Y, 0, 100-r.H)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
