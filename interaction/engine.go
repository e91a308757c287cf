// Package interaction drives live pointer gestures over the album store: one
// gesture moves, resizes, rotates or re-pivots a single asset. All
// intermediate updates are history-exempt; pointer-up always commits the
// gesture as one undo step. There is no cancel path: releasing the pointer
// (or losing it) commits the current state.
package interaction

import (
	"math"

	"github.com/camden-git/albumlayout/geometry"
	"github.com/camden-git/albumlayout/store"
)

// GestureMode selects what a gesture edits.
type GestureMode int

const (
	GestureMove GestureMode = iota
	GestureResize
	GestureRotate
	GesturePivot
)

// Handle is one of the eight resize grips.
type Handle string

const (
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
	HandleNW Handle = "nw"
)

const (
	// minimum asset size in percent units; resizing floors here instead of
	// collapsing the asset
	minAssetWidth  = 2.0
	minAssetHeight = 2.0

	// cross-page thresholds in spread-absolute percent. They are asymmetric
	// around the gutter at 100 so an asset cannot oscillate between pages
	// while hovering exactly on the boundary.
	crossRightThreshold = 110.0
	crossLeftThreshold  = 90.0

	rotateSnapStep = 15.0
	pivotSnapTol   = 0.05
)

// Spread names the pages currently shown. RightPageID is empty when a single
// page (or the cover) is displayed.
type Spread struct {
	LeftPageID  string
	RightPageID string
}

type gesture struct {
	mode    GestureMode
	handle  Handle
	assetID string

	pageID    string
	pageIndex int // 0 = left, 1 = right

	startGeom  startGeometry
	startPtr   Pointer
	aspect     float64
	aspectLock bool

	sess *session
}

type startGeometry struct {
	x, y, w, h float64
}

// Engine is the gesture state machine: Idle until Begin succeeds, Active
// until the matching pointer-up. At most one gesture is active at a time.
type Engine struct {
	store    *store.Store
	viewport geometry.Viewport
	spread   Spread
	snapTol  float64

	active *gesture
	guides []float64
}

// NewEngine creates an engine over the given store.
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st, snapTol: geometry.DefaultSnapTolerance}
}

// SetView updates the viewport and visible pages; called by the shell on
// zoom, resize and page navigation. Ignored while a gesture is active.
func (e *Engine) SetView(vp geometry.Viewport, spread Spread) {
	if e.active != nil {
		return
	}
	e.viewport = vp
	e.spread = spread
}

// IsActive reports whether a gesture is in flight.
func (e *Engine) IsActive() bool { return e.active != nil }

// Guides returns the column guides matched by the current move, in
// spread-absolute percent, for snap feedback.
func (e *Engine) Guides() []float64 { return e.guides }

// Begin starts a gesture on pointer-down over an asset. It refuses locked
// albums, locked assets and re-entry while another gesture is active. The
// binder, when non-nil, attaches the global pointer listeners that feed
// OnPointerMove/OnPointerUp; they are detached exactly once on gesture end.
func (e *Engine) Begin(assetID string, mode GestureMode, handle Handle, ptr Pointer, binder Binder) bool {
	if e.active != nil {
		return false
	}
	album := e.store.Album()
	if album.Config.IsLocked {
		return false
	}
	asset := e.store.Asset(assetID)
	if asset == nil || asset.IsLocked {
		return false
	}
	pageID := e.store.AssetPageID(assetID)
	pageIndex := 0
	if pageID == e.spread.RightPageID && e.spread.RightPageID != "" {
		pageIndex = 1
	}

	aspect := asset.AspectRatio
	if aspect == 0 && asset.Geometry.Height > 0 {
		aspect = asset.Geometry.Width / asset.Geometry.Height
	}

	g := &gesture{
		mode:      mode,
		handle:    handle,
		assetID:   assetID,
		pageID:    pageID,
		pageIndex: pageIndex,
		startGeom: startGeometry{
			x: asset.Geometry.X,
			y: asset.Geometry.Y,
			w: asset.Geometry.Width,
			h: asset.Geometry.Height,
		},
		startPtr:   ptr,
		aspect:     aspect,
		aspectLock: asset.AspectRatio != 0,
	}
	g.sess = newSession(binder, e.OnPointerMove, e.OnPointerUp)
	e.active = g
	e.store.StageHistory()
	return true
}

// OnPointerMove applies one history-exempt update for the active gesture.
func (e *Engine) OnPointerMove(ptr Pointer) {
	g := e.active
	if g == nil {
		return
	}
	switch g.mode {
	case GestureMove:
		e.applyMove(g, ptr)
	case GestureResize:
		e.applyResize(g, ptr)
	case GestureRotate:
		e.applyRotate(g, ptr)
	case GesturePivot:
		e.applyPivot(g, ptr)
	}
}

// OnPointerUp completes the gesture: the asset is clamped back onto its
// page, the whole gesture is committed as one undo entry, and the input
// session ends. The engine returns to Idle unconditionally.
func (e *Engine) OnPointerUp(ptr Pointer) {
	g := e.active
	if g == nil {
		return
	}
	if g.mode == GestureMove || g.mode == GestureResize {
		e.store.ClampAssetToPage(g.assetID)
	}
	e.store.CommitHistory()
	g.sess.End()
	e.active = nil
	e.guides = nil
}

func (e *Engine) applyMove(g *gesture, ptr Pointer) {
	dx, dy := e.viewport.DeltaToPercent(ptr.X-g.startPtr.X, ptr.Y-g.startPtr.Y)
	x := g.startGeom.x + dx
	y := g.startGeom.y + dy

	absX := geometry.LocalToSpread(g.pageIndex, x)
	snapped := geometry.SnapToColumns(
		geometry.Rect{X: absX, Y: y, W: g.startGeom.w, H: g.startGeom.h},
		e.viewport.PageCount, e.snapTol,
	)
	e.guides = snapped.Guides
	absX = snapped.Rect.X

	grid := e.store.Album().Config.Grid
	if grid.Enabled && grid.Step > 0 {
		r := geometry.SnapToGrid(geometry.Rect{X: absX, Y: y}, grid.Step, e.snapTol)
		absX, y = r.X, r.Y
	}

	if e.viewport.PageCount == 2 {
		if g.pageIndex == 0 && e.spread.RightPageID != "" && absX > crossRightThreshold {
			e.store.MoveAssetToPage(g.assetID, e.spread.RightPageID, absX-100, store.UpdateOptions{SkipHistory: true})
			g.pageID = e.spread.RightPageID
			g.pageIndex = 1
			g.startGeom.x -= 100
			e.patchXY(g, absX-100, y)
			return
		}
		if g.pageIndex == 1 && absX < crossLeftThreshold {
			e.store.MoveAssetToPage(g.assetID, e.spread.LeftPageID, absX, store.UpdateOptions{SkipHistory: true})
			g.pageID = e.spread.LeftPageID
			g.pageIndex = 0
			g.startGeom.x += 100
			e.patchXY(g, absX, y)
			return
		}
	}

	localX := absX - 100*float64(g.pageIndex)
	e.patchXY(g, localX, y)
}

func (e *Engine) patchXY(g *gesture, x, y float64) {
	e.store.UpdateAsset(g.assetID, store.AssetPatch{X: &x, Y: &y}, store.UpdateOptions{SkipHistory: true})
}

func (e *Engine) applyResize(g *gesture, ptr Pointer) {
	dx, dy := e.viewport.DeltaToPercent(ptr.X-g.startPtr.X, ptr.Y-g.startPtr.Y)

	x, y := g.startGeom.x, g.startGeom.y
	w, h := g.startGeom.w, g.startGeom.h

	touchesE := g.handle == HandleE || g.handle == HandleNE || g.handle == HandleSE
	touchesW := g.handle == HandleW || g.handle == HandleNW || g.handle == HandleSW
	touchesS := g.handle == HandleS || g.handle == HandleSE || g.handle == HandleSW
	touchesN := g.handle == HandleN || g.handle == HandleNE || g.handle == HandleNW

	if touchesE {
		w = g.startGeom.w + dx
	}
	if touchesW {
		w = g.startGeom.w - dx
	}
	if touchesS {
		h = g.startGeom.h + dy
	}
	if touchesN {
		h = g.startGeom.h - dy
	}
	if w < minAssetWidth {
		w = minAssetWidth
	}
	if h < minAssetHeight {
		h = minAssetHeight
	}

	if (g.aspectLock || ptr.Modifier) && g.aspect > 0 {
		h = w / g.aspect
		if h < minAssetHeight {
			h = minAssetHeight
			w = h * g.aspect
		}
	}

	// the un-grabbed corner stays fixed: handles touching the west or north
	// edge move the origin by however much the size changed
	if touchesW {
		x = g.startGeom.x + g.startGeom.w - w
	}
	if touchesN {
		y = g.startGeom.y + g.startGeom.h - h
	}

	e.store.UpdateAsset(g.assetID, store.AssetPatch{X: &x, Y: &y, Width: &w, Height: &h},
		store.UpdateOptions{SkipHistory: true})
}

func (e *Engine) applyRotate(g *gesture, ptr Pointer) {
	asset := e.store.Asset(g.assetID)
	if asset == nil {
		return
	}
	// pivot position in spread-absolute percent
	pivotX := geometry.LocalToSpread(g.pageIndex, asset.Geometry.X+asset.Geometry.Width*asset.Geometry.PivotX)
	pivotY := asset.Geometry.Y + asset.Geometry.Height*asset.Geometry.PivotY
	px, py := e.viewport.PointToSpread(ptr.X, ptr.Y)

	// 0 degrees points up
	angle := math.Atan2(py-pivotY, px-pivotX)*(180/math.Pi) + 90
	if ptr.Modifier {
		angle = math.Trunc(angle/rotateSnapStep) * rotateSnapStep
	}
	e.store.UpdateAsset(g.assetID, store.AssetPatch{Rotation: &angle}, store.UpdateOptions{SkipHistory: true})
}

func (e *Engine) applyPivot(g *gesture, ptr Pointer) {
	asset := e.store.Asset(g.assetID)
	if asset == nil || asset.Geometry.Width <= 0 || asset.Geometry.Height <= 0 {
		return
	}
	px, py := e.viewport.PointToSpread(ptr.X, ptr.Y)
	localX := px - 100*float64(g.pageIndex)

	nx := (localX - asset.Geometry.X) / asset.Geometry.Width
	ny := (py - asset.Geometry.Y) / asset.Geometry.Height
	nx = snapPivot(clamp01(nx))
	ny = snapPivot(clamp01(ny))
	e.store.UpdateAsset(g.assetID, store.AssetPatch{PivotX: &nx, PivotY: &ny}, store.UpdateOptions{SkipHistory: true})
}

// snapPivot pulls a normalized coordinate onto the edge or center anchors.
func snapPivot(v float64) float64 {
	for _, anchor := range []float64{0, 0.5, 1} {
		if math.Abs(v-anchor) <= pivotSnapTol {
			return anchor
		}
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
