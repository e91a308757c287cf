package geometry

import "math"

// DefaultSnapTolerance is the percent distance within which an edge snaps to
// a column guide.
const DefaultSnapTolerance = 1.0

// ColumnsPerPage is the number of column intervals a single page is divided
// into for snapping.
const ColumnsPerPage = 12

// SnapResult is the snapped rect plus the guides that matched, in
// spread-absolute percent, for visual feedback.
type SnapResult struct {
	Rect   Rect
	Guides []float64
}

// SnapToColumns snaps the candidate rect's vertical edges to the column
// guides of a 1- or 2-page spread. Guides sit at i*(100/ColumnsPerPage) for
// i = 0..ColumnsPerPage*pageCount. A guide matches when either the left or
// right edge is within tolerance of it; the matching edge moves onto the
// guide. Purely advisory: callers apply the page-bounds clamp afterwards.
func SnapToColumns(rect Rect, pageCount int, tolerance float64) SnapResult {
	if pageCount != 2 {
		pageCount = 1
	}
	if tolerance <= 0 {
		tolerance = DefaultSnapTolerance
	}

	res := SnapResult{Rect: rect}
	step := 100.0 / ColumnsPerPage
	for i := 0; i <= ColumnsPerPage*pageCount; i++ {
		guide := float64(i) * step
		switch {
		case abs(res.Rect.X-guide) < tolerance:
			res.Rect.X = guide
			res.Guides = append(res.Guides, guide)
		case abs(res.Rect.X+res.Rect.W-guide) < tolerance:
			res.Rect.X = guide - res.Rect.W
			res.Guides = append(res.Guides, guide)
		}
	}
	return res
}

// SnapToGrid rounds the rect origin to the nearest multiple of step when it
// lies within tolerance of one. A step of 0 disables grid snapping.
func SnapToGrid(rect Rect, step, tolerance float64) Rect {
	if step <= 0 {
		return rect
	}
	rect.X = snapAxis(rect.X, step, tolerance)
	rect.Y = snapAxis(rect.Y, step, tolerance)
	return rect
}

func snapAxis(v, step, tolerance float64) float64 {
	nearest := math.Round(v/step) * step
	if abs(v-nearest) < tolerance {
		return nearest
	}
	return v
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
