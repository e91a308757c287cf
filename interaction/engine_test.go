package interaction

import (
	"math"
	"testing"

	"github.com/camden-git/albumlayout/geometry"
	"github.com/camden-git/albumlayout/models"
	"github.com/camden-git/albumlayout/store"
)

// countingBinder tracks listener attach/detach symmetry.
type countingBinder struct {
	bound   int
	unbound int
}

func (b *countingBinder) Bind(onMove func(Pointer), onUp func(Pointer)) func() {
	b.bound++
	return func() { b.unbound++ }
}

func spreadFixture(t *testing.T) (*store.Store, *Engine, *models.Page, *models.Page) {
	t.Helper()
	s := store.NewAlbum("t", models.Dimensions{Width: 1000, Height: 700})
	pair := s.AddPagePair()
	e := NewEngine(s)
	e.SetView(
		geometry.Viewport{ContainerWidth: 1000, ContainerHeight: 700, Zoom: 1, PageCount: 2},
		Spread{LeftPageID: pair[0].ID, RightPageID: pair[1].ID},
	)
	return s, e, pair[0], pair[1]
}

func addImage(s *store.Store, pageID string, x, y, w, h float64) *models.Asset {
	return s.AddAsset(pageID, &models.Asset{
		Type:     models.AssetTypeImage,
		Geometry: models.DefaultGeometry(x, y, w, h),
		ZIndex:   10,
		Image:    &models.ImageData{URL: "a.jpg"},
	}, store.UpdateOptions{})
}

func TestBeginRefusals(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 10, 10, 20, 20)

	a.IsLocked = true
	if e.Begin(a.ID, GestureMove, "", Pointer{}, nil) {
		t.Error("locked asset must not start a gesture")
	}
	a.IsLocked = false

	s.Album().Config.IsLocked = true
	if e.Begin(a.ID, GestureMove, "", Pointer{}, nil) {
		t.Error("locked album must not start a gesture")
	}
	s.Album().Config.IsLocked = false

	if !e.Begin(a.ID, GestureMove, "", Pointer{}, nil) {
		t.Fatal("gesture should start")
	}
	if e.Begin(a.ID, GestureMove, "", Pointer{}, nil) {
		t.Error("second gesture must be refused while one is active")
	}
}

func TestMoveGestureCommitsOnce(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 10, 10, 24, 20)
	depth := s.History().Depth()

	if !e.Begin(a.ID, GestureMove, "", Pointer{X: 0, Y: 0}, nil) {
		t.Fatal("gesture should start")
	}
	// 500px shows one page, so 25px is 5 percent units
	e.OnPointerMove(Pointer{X: 25, Y: 0})
	e.OnPointerMove(Pointer{X: 50, Y: 35})
	if s.History().Depth() != depth {
		t.Fatal("mid-gesture updates must be history-exempt")
	}
	e.OnPointerUp(Pointer{X: 50, Y: 35})

	if s.History().Depth() != depth+1 {
		t.Fatalf("gesture must add exactly one undo entry, got %d", s.History().Depth()-depth)
	}
	g := a.Geometry
	if g.X != 20 || g.Y != 15 {
		t.Errorf("moved to (%g, %g), want (20, 15)", g.X, g.Y)
	}

	s.Undo()
	g = s.Asset(a.ID).Geometry
	if g.X != 10 || g.Y != 10 {
		t.Errorf("undo must restore gesture start, got (%g, %g)", g.X, g.Y)
	}
}

func TestMoveCrossesToLeftPage(t *testing.T) {
	s, e, left, right := spreadFixture(t)
	a := addImage(s, right.ID, 2, 10, 24, 20)

	if !e.Begin(a.ID, GestureMove, "", Pointer{X: 0, Y: 0}, nil) {
		t.Fatal("gesture should start")
	}
	// -70px is -14 percent units: local x 2 -> -12, absolute 88, below the
	// 90 threshold
	e.OnPointerMove(Pointer{X: -70, Y: 0})

	if s.AssetPageID(a.ID) != left.ID {
		t.Fatal("asset must migrate to the left page")
	}
	if a.Geometry.X != 88 {
		t.Errorf("translated x = %g, want 88", a.Geometry.X)
	}

	e.OnPointerUp(Pointer{X: -70, Y: 0})
	if a.Geometry.X != 76 {
		t.Errorf("release must clamp onto the page, x = %g, want 76", a.Geometry.X)
	}
}

func TestMoveThresholdIsAsymmetric(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 80, 10, 24, 20)

	e.Begin(a.ID, GestureMove, "", Pointer{X: 0, Y: 0}, nil)
	// +125px is +25 percent units: absolute x 105, past the gutter but
	// under the 110 threshold
	e.OnPointerMove(Pointer{X: 125, Y: 0})
	if s.AssetPageID(a.ID) != left.ID {
		t.Error("crossing the gutter alone must not reassign the page")
	}

	// +35px more reaches absolute 112
	e.OnPointerMove(Pointer{X: 160, Y: 0})
	if s.AssetPageID(a.ID) == left.ID {
		t.Error("passing 110 must reassign to the right page")
	}
	e.OnPointerUp(Pointer{X: 160, Y: 0})
}

func TestResizeHandles(t *testing.T) {
	tests := []struct {
		name   string
		handle Handle
		dxPx   float64
		dyPx   float64
		want   geometry.Rect
	}{
		{
			name:   "EastGrowsWidth",
			handle: HandleE,
			dxPx:   25, // +5 units
			want:   geometry.Rect{X: 40, Y: 40, W: 25, H: 20},
		},
		{
			name:   "WestKeepsEastEdge",
			handle: HandleW,
			dxPx:   25, // shrink by 5, origin moves right
			want:   geometry.Rect{X: 45, Y: 40, W: 15, H: 20},
		},
		{
			name:   "NorthKeepsSouthEdge",
			handle: HandleN,
			dyPx:   -35, // grow by 5 upward
			want:   geometry.Rect{X: 40, Y: 35, W: 20, H: 25},
		},
		{
			name:   "SouthEastCorner",
			handle: HandleSE,
			dxPx:   25,
			dyPx:   35,
			want:   geometry.Rect{X: 40, Y: 40, W: 25, H: 25},
		},
		{
			name:   "FloorsBlockCollapse",
			handle: HandleSE,
			dxPx:   -500,
			dyPx:   -500,
			want:   geometry.Rect{X: 40, Y: 40, W: 2, H: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e, left, _ := spreadFixture(t)
			a := addImage(s, left.ID, 40, 40, 20, 20)
			if !e.Begin(a.ID, GestureResize, tt.handle, Pointer{X: 0, Y: 0}, nil) {
				t.Fatal("gesture should start")
			}
			e.OnPointerMove(Pointer{X: tt.dxPx, Y: tt.dyPx})
			e.OnPointerUp(Pointer{X: tt.dxPx, Y: tt.dyPx})

			g := a.Geometry
			got := geometry.Rect{X: g.X, Y: g.Y, W: g.Width, H: g.Height}
			if got != tt.want {
				t.Errorf("geometry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeAspectLock(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 10, 10, 40, 20) // aspect 2:1

	e.Begin(a.ID, GestureResize, HandleE, Pointer{X: 0, Y: 0}, nil)
	e.OnPointerMove(Pointer{X: 50, Y: 0, Modifier: true}) // width 40 -> 50
	e.OnPointerUp(Pointer{X: 50, Y: 0, Modifier: true})

	g := a.Geometry
	if g.Width != 50 || g.Height != 25 {
		t.Errorf("aspect-locked size = %gx%g, want 50x25", g.Width, g.Height)
	}
}

func TestResizeAspectLockNorthWestAnchors(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 40, 40, 40, 20)

	e.Begin(a.ID, GestureResize, HandleNW, Pointer{X: 0, Y: 0}, nil)
	e.OnPointerMove(Pointer{X: -50, Y: 0, Modifier: true}) // width 40 -> 50
	e.OnPointerUp(Pointer{X: -50, Y: 0, Modifier: true})

	g := a.Geometry
	if g.Width != 50 || g.Height != 25 {
		t.Fatalf("size = %gx%g, want 50x25", g.Width, g.Height)
	}
	// the un-grabbed south-east corner stays at (80, 60)
	if g.X+g.Width != 80 || g.Y+g.Height != 60 {
		t.Errorf("south-east corner moved to (%g, %g), want (80, 60)", g.X+g.Width, g.Y+g.Height)
	}
}

func TestRotateSnapsDown(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 40, 40, 20, 20) // pivot at (50, 50)

	e.Begin(a.ID, GestureRotate, "", Pointer{}, nil)

	// place the pointer so the raw angle is 38 degrees
	rad := (38 - 90) * math.Pi / 180
	sx := 50 + 20*math.Cos(rad)
	sy := 50 + 20*math.Sin(rad)
	ptr := Pointer{X: sx * 5, Y: sy * 7, Modifier: true} // 500px page, 700px height

	e.OnPointerMove(ptr)
	e.OnPointerUp(ptr)

	if got := a.Geometry.Rotation; math.Abs(got-30) > 1e-9 {
		t.Errorf("rotation = %g, want snapped 30", got)
	}
}

func TestRotateUnsnapped(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 40, 40, 20, 20)

	e.Begin(a.ID, GestureRotate, "", Pointer{}, nil)
	// pointer straight right of the pivot: atan2 gives 0, plus 90
	ptr := Pointer{X: 70 * 5, Y: 50 * 7}
	e.OnPointerMove(ptr)
	e.OnPointerUp(ptr)

	if got := a.Geometry.Rotation; math.Abs(got-90) > 1e-9 {
		t.Errorf("rotation = %g, want 90", got)
	}
}

func TestPivotSnapping(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 40, 40, 20, 20)

	e.Begin(a.ID, GesturePivot, "", Pointer{}, nil)
	// 0.97 of the box horizontally (within 0.05 of 1), 0.52 vertically
	// (within 0.05 of 0.5)
	ptr := Pointer{X: (40 + 20*0.97) * 5, Y: (40 + 20*0.52) * 7}
	e.OnPointerMove(ptr)
	e.OnPointerUp(ptr)

	g := a.Geometry
	if g.PivotX != 1 || g.PivotY != 0.5 {
		t.Errorf("pivot = (%g, %g), want (1, 0.5)", g.PivotX, g.PivotY)
	}
}

func TestSessionSymmetry(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 10, 10, 20, 20)
	binder := &countingBinder{}

	e.Begin(a.ID, GestureMove, "", Pointer{}, binder)
	e.OnPointerUp(Pointer{})
	// a stray late pointer-up must not double-detach
	e.OnPointerUp(Pointer{})

	if binder.bound != 1 || binder.unbound != 1 {
		t.Errorf("bind/unbind = %d/%d, want 1/1", binder.bound, binder.unbound)
	}
	if e.IsActive() {
		t.Error("engine must return to idle")
	}

	// a fresh gesture binds again
	e.Begin(a.ID, GestureMove, "", Pointer{}, binder)
	e.OnPointerUp(Pointer{})
	if binder.bound != 2 || binder.unbound != 2 {
		t.Errorf("second gesture bind/unbind = %d/%d, want 2/2", binder.bound, binder.unbound)
	}
}

func TestBoundsInvariantAfterGestures(t *testing.T) {
	s, e, left, _ := spreadFixture(t)
	a := addImage(s, left.ID, 70, 70, 24, 20)

	e.Begin(a.ID, GestureMove, "", Pointer{X: 0, Y: 0}, nil)
	e.OnPointerMove(Pointer{X: 100, Y: 150})
	e.OnPointerUp(Pointer{X: 100, Y: 150})

	g := a.Geometry
	if g.Width <= 0 || g.Height <= 0 || g.X+g.Width > 100 || g.Y+g.Height > 100 || g.X < 0 || g.Y < 0 {
		t.Errorf("bounds invariant violated: %+v", g)
	}
}
