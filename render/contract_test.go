package render

import (
	"testing"

	"github.com/camden-git/albumlayout/models"
)

func TestFromAssetVariants(t *testing.T) {
	tests := []struct {
		name     string
		asset    models.Asset
		wantURL  string
		wantText string
	}{
		{
			name: "image carries its url",
			asset: models.Asset{
				Type:  models.AssetTypeImage,
				Image: &models.ImageData{URL: "photos/a.jpg"},
			},
			wantURL: "photos/a.jpg",
		},
		{
			name: "video carries its url",
			asset: models.Asset{
				Type:  models.AssetTypeVideo,
				Video: &models.VideoData{URL: "clips/b.mp4"},
			},
			wantURL: "clips/b.mp4",
		},
		{
			name: "text carries content",
			asset: models.Asset{
				Type: models.AssetTypeText,
				Text: &models.TextData{Content: "summer 2019"},
			},
			wantText: "summer 2019",
		},
		{
			name: "map renders with no url",
			asset: models.Asset{
				Type: models.AssetTypeMap,
				Map:  &models.MapData{Latitude: 48.85, Longitude: 2.35},
			},
		},
		{
			name: "location carries its caption",
			asset: models.Asset{
				Type:     models.AssetTypeLocation,
				Location: &models.LocationData{Caption: "Paris"},
			},
			wantText: "Paris",
		},
		{
			name: "missing payload leaves content empty",
			asset: models.Asset{
				Type: models.AssetTypeImage,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromAsset(&tt.asset)
			if d.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", d.URL, tt.wantURL)
			}
			if d.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", d.Text, tt.wantText)
			}
		})
	}
}

func TestFromAssetCopiesGeometry(t *testing.T) {
	a := models.Asset{
		ID:   "a1",
		Type: models.AssetTypeImage,
		Geometry: models.Geometry{
			X: 10, Y: 20, Width: 30, Height: 40,
			Rotation: 15, PivotX: 0, PivotY: 1,
		},
		ZIndex: 12,
		Adjust: models.Adjustments{Opacity: 0.5},
		Crop:   models.Crop{X: 5, Y: 5, Zoom: 1.2},
	}
	d := FromAsset(&a)
	if d.X != 10 || d.Y != 20 || d.Width != 30 || d.Height != 40 {
		t.Errorf("geometry not copied: %+v", d)
	}
	if d.Rotation != 15 || d.PivotX != 0 || d.PivotY != 1 {
		t.Errorf("rotation/pivot not copied: %+v", d)
	}
	if d.ZIndex != 12 || d.Opacity != 0.5 || d.Crop.Zoom != 1.2 {
		t.Errorf("z/opacity/crop not copied: %+v", d)
	}
}

func TestPageDescriptorsResolvesSlotGeometry(t *testing.T) {
	slotID := "s1"
	page := &models.Page{
		ID: "p1",
		LayoutConfig: []models.LayoutBox{
			{ID: "s1", Kind: models.LayoutBoxSlot, X: 10, Y: 20, Width: 40, Height: 50, ZIndex: 10},
		},
		Assets: []*models.Asset{
			{
				ID:       "a1",
				Type:     models.AssetTypeImage,
				SlotID:   &slotID,
				Geometry: models.DefaultGeometry(0, 0, 100, 100),
				ZIndex:   10,
				Image:    &models.ImageData{URL: "x.jpg"},
			},
		},
	}

	out := PageDescriptors(page)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (slot boxes do not render themselves)", len(out))
	}
	d := out[0]
	if d.X != 10 || d.Y != 20 || d.Width != 40 || d.Height != 50 {
		t.Errorf("slot-relative geometry not resolved to page space: %+v", d)
	}
}

func TestPageDescriptorsSlotPartialCoverage(t *testing.T) {
	slotID := "s1"
	page := &models.Page{
		LayoutConfig: []models.LayoutBox{
			{ID: "s1", Kind: models.LayoutBoxSlot, X: 20, Y: 20, Width: 50, Height: 40},
		},
		Assets: []*models.Asset{
			{
				ID:       "a1",
				Type:     models.AssetTypeImage,
				SlotID:   &slotID,
				Geometry: models.DefaultGeometry(10, 25, 80, 50),
			},
		},
	}

	d := PageDescriptors(page)[0]
	// 10% across a 50-wide slot at x 20 lands at 25; 80% of 50 is 40 wide
	if d.X != 25 || d.Y != 30 || d.Width != 40 || d.Height != 20 {
		t.Errorf("partial slot coverage resolved wrong: %+v", d)
	}
}

func TestPageDescriptorsDrawOrder(t *testing.T) {
	page := &models.Page{
		LayoutConfig: []models.LayoutBox{
			{ID: "deco", Kind: models.LayoutBoxDecoration, ZIndex: 5, DecorationURL: "flower.png"},
		},
		Assets: []*models.Asset{
			{ID: "bg", Type: models.AssetTypeImage, ZIndex: 0},
			{ID: "photo", Type: models.AssetTypeImage, ZIndex: 10},
		},
		TextLayers: []models.TextLayer{
			{ID: "title", Text: models.TextData{Content: "hi"}, ZIndex: 50},
		},
	}

	out := PageDescriptors(page)
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	order := []string{"bg", "deco", "photo", "title"}
	for i, want := range order {
		if out[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, out[i].ID, want)
		}
	}
	if out[1].URL != "flower.png" || out[1].Type != models.AssetTypeSticker {
		t.Errorf("decoration descriptor wrong: %+v", out[1])
	}
}

func TestPageDescriptorsStableForEqualZ(t *testing.T) {
	page := &models.Page{
		Assets: []*models.Asset{
			{ID: "first", Type: models.AssetTypeImage, ZIndex: 10},
			{ID: "second", Type: models.AssetTypeImage, ZIndex: 10},
		},
	}
	out := PageDescriptors(page)
	if out[0].ID != "first" || out[1].ID != "second" {
		t.Error("equal z must keep insertion order")
	}
}
