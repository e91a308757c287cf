package geometry

import (
	"reflect"
	"testing"
)

func TestSnapToColumns(t *testing.T) {
	tests := []struct {
		name       string
		rect       Rect
		pageCount  int
		wantX      float64
		wantGuides []float64
	}{
		{
			name:       "LeftEdgeSnapsToGuide",
			rect:       Rect{X: 8.8, Y: 10, W: 20, H: 20},
			pageCount:  1,
			wantX:      100.0 / 12,
			wantGuides: []float64{100.0 / 12},
		},
		{
			name:       "RightEdgeSnapsToGuide",
			rect:       Rect{X: 29.5, Y: 10, W: 20.6, H: 20},
			pageCount:  1,
			wantX:      50 - 20.6,
			wantGuides: []float64{50},
		},
		{
			name:      "NothingNearby",
			rect:      Rect{X: 12.5, Y: 10, W: 23, H: 20},
			pageCount: 1,
			wantX:     12.5,
		},
		{
			name:       "SpreadGuidesExtendPast100",
			rect:       Rect{X: 108.7, Y: 10, W: 20, H: 20},
			pageCount:  2,
			wantX:      1300.0 / 12,
			wantGuides: []float64{1300.0 / 12},
		},
		{
			name:       "ExactMatchStays",
			rect:       Rect{X: 25, Y: 10, W: 20, H: 20},
			pageCount:  1,
			wantX:      25,
			wantGuides: []float64{25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnapToColumns(tt.rect, tt.pageCount, DefaultSnapTolerance)
			if !almostEqual(got.Rect.X, tt.wantX) {
				t.Errorf("snapped x = %g, want %g", got.Rect.X, tt.wantX)
			}
			if len(got.Guides) != len(tt.wantGuides) {
				t.Fatalf("guides = %v, want %v", got.Guides, tt.wantGuides)
			}
			for i := range got.Guides {
				if !almostEqual(got.Guides[i], tt.wantGuides[i]) {
					t.Errorf("guide[%d] = %g, want %g", i, got.Guides[i], tt.wantGuides[i])
				}
			}
		})
	}
}

func TestSnapDeterminism(t *testing.T) {
	rect := Rect{X: 8.4, Y: 12, W: 24.9, H: 30}
	first := SnapToColumns(rect, 2, DefaultSnapTolerance)
	for i := 0; i < 10; i++ {
		again := SnapToColumns(rect, 2, DefaultSnapTolerance)
		if again.Rect != first.Rect || !reflect.DeepEqual(again.Guides, first.Guides) {
			t.Fatalf("call %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestSnapToGrid(t *testing.T) {
	got := SnapToGrid(Rect{X: 11.3, Y: 19.6}, 5, 0.5)
	if !almostEqual(got.X, 11.3) {
		t.Errorf("x outside tolerance moved: %g", got.X)
	}
	if !almostEqual(got.Y, 20) {
		t.Errorf("y = %g, want 20", got.Y)
	}

	got = SnapToGrid(Rect{X: 11.3, Y: 19.6}, 0, 0.5)
	if !almostEqual(got.Y, 19.6) {
		t.Errorf("zero step must disable grid snap, got y = %g", got.Y)
	}
}
