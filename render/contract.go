// Package render defines the fixed descriptor contract handed to any
// external renderer. The renderer honors percent-of-page geometry and
// pivot-anchored rotation but is otherwise free in drawing technology.
package render

import (
	"sort"

	"github.com/camden-git/albumlayout/models"
)

// BorderStyle is optional decorative border information.
type BorderStyle struct {
	Width float64 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
	Style string  `json:"style,omitempty"`
}

// Descriptor is one drawable element. Exactly one of URL and Text carries
// content, depending on Type; geometry is percent of the owning page and
// rotation is anchored at the pivot.
type Descriptor struct {
	ID       string           `json:"id"`
	Type     models.AssetType `json:"type"`
	URL      string           `json:"url,omitempty"`
	Text     string           `json:"text,omitempty"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Rotation float64          `json:"rotation"`
	PivotX   float64          `json:"pivot_x"`
	PivotY   float64          `json:"pivot_y"`
	ZIndex   int              `json:"z_index"`
	Opacity  float64          `json:"opacity"`
	Crop     models.Crop      `json:"crop"`

	// ClipPolygon, when non-empty, clips the element to the polygon, in
	// percent of the element's own box.
	ClipPolygon []models.Point `json:"clip_polygon,omitempty"`

	Border *BorderStyle `json:"border,omitempty"`
}

// FromAsset maps an asset to its descriptor. Every variant is covered: url
// variants carry their media URL, text carries content, map and location
// render through their payloads with no URL.
func FromAsset(a *models.Asset) Descriptor {
	d := Descriptor{
		ID:          a.ID,
		Type:        a.Type,
		X:           a.Geometry.X,
		Y:           a.Geometry.Y,
		Width:       a.Geometry.Width,
		Height:      a.Geometry.Height,
		Rotation:    a.Geometry.Rotation,
		PivotX:      a.Geometry.PivotX,
		PivotY:      a.Geometry.PivotY,
		ZIndex:      a.ZIndex,
		Opacity:     a.Adjust.Opacity,
		Crop:        a.Crop,
		ClipPolygon: a.ClipPoints,
	}
	switch a.Type {
	case models.AssetTypeImage, models.AssetTypeFrame, models.AssetTypeSticker:
		if a.Image != nil {
			d.URL = a.Image.URL
		}
	case models.AssetTypeVideo:
		if a.Video != nil {
			d.URL = a.Video.URL
		}
	case models.AssetTypeText:
		if a.Text != nil {
			d.Text = a.Text.Content
		}
	case models.AssetTypeMap:
		// drawn by the renderer from coordinates; no media URL
	case models.AssetTypeLocation:
		if a.Location != nil {
			d.Text = a.Location.Caption
		}
	}
	return d
}

// FromLayoutBox maps a decoration box to a descriptor. Slot boxes render
// through their bound assets instead.
func FromLayoutBox(b models.LayoutBox) Descriptor {
	return Descriptor{
		ID:       b.ID,
		Type:     models.AssetTypeSticker,
		URL:      b.DecorationURL,
		X:        b.X,
		Y:        b.Y,
		Width:    b.Width,
		Height:   b.Height,
		Rotation: b.Rotation,
		PivotX:   0.5,
		PivotY:   0.5,
		ZIndex:   b.ZIndex,
		Opacity:  1,
	}
}

// FromTextLayer maps a unified-schema text layer to a descriptor.
func FromTextLayer(t models.TextLayer) Descriptor {
	return Descriptor{
		ID:       t.ID,
		Type:     models.AssetTypeText,
		Text:     t.Text.Content,
		X:        t.Geometry.X,
		Y:        t.Geometry.Y,
		Width:    t.Geometry.Width,
		Height:   t.Geometry.Height,
		Rotation: t.Geometry.Rotation,
		PivotX:   t.Geometry.PivotX,
		PivotY:   t.Geometry.PivotY,
		ZIndex:   t.ZIndex,
		Opacity:  1,
	}
}

// PageDescriptors flattens a page into draw order: decoration boxes, placed
// assets and text layers sorted ascending by z-index. Slot-bound asset
// geometry is resolved from slot-relative to page space here, so renderers
// never see slot coordinates.
func PageDescriptors(page *models.Page) []Descriptor {
	var out []Descriptor
	for _, box := range page.LayoutConfig {
		if box.Kind == models.LayoutBoxDecoration {
			out = append(out, FromLayoutBox(box))
		}
	}
	for _, a := range page.Assets {
		d := FromAsset(a)
		if a.SlotID != nil {
			if slot := page.SlotByID(*a.SlotID); slot != nil {
				d.X = slot.X + d.X/100*slot.Width
				d.Y = slot.Y + d.Y/100*slot.Height
				d.Width = d.Width / 100 * slot.Width
				d.Height = d.Height / 100 * slot.Height
			}
		}
		out = append(out, d)
	}
	for _, t := range page.TextLayers {
		out = append(out, FromTextLayer(t))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}
