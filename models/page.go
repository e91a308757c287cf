package models

// LayoutBoxKind distinguishes declared template regions.
type LayoutBoxKind string

const (
	LayoutBoxSlot       LayoutBoxKind = "slot"
	LayoutBoxDecoration LayoutBoxKind = "decoration"
)

// LayoutBox is a predeclared placement region from a layout template, distinct
// from a freeform asset. Geometry is in percent of the owning page.
type LayoutBox struct {
	ID       string        `json:"id"`
	Kind     LayoutBoxKind `json:"kind"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Rotation float64       `json:"rotation,omitempty"`
	ZIndex   int           `json:"z_index"`

	// DecorationURL is set for decoration boxes only.
	DecorationURL string `json:"decoration_url,omitempty"`
}

// Contains reports whether the page-local point (x, y) falls inside the box.
func (b LayoutBox) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// TextLayer is a unified-schema text element layered over the layout boxes.
type TextLayer struct {
	ID       string   `json:"id"`
	Geometry Geometry `json:"geometry"`
	ZIndex   int      `json:"z_index"`
	Text     TextData `json:"text"`
}

// Background holds per-page background styling.
type Background struct {
	Color    string `json:"color,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Page is one album page. Freeform pages place everything through Assets;
// unified-schema pages declare LayoutConfig boxes (slots and decorations)
// plus TextLayers, with Assets bound into slots via Asset.SlotID.
type Page struct {
	ID             string      `json:"id"`
	PageNumber     int         `json:"page_number"`
	LayoutTemplate string      `json:"layout_template,omitempty"`
	Assets         []*Asset    `json:"assets,omitempty"`
	LayoutConfig   []LayoutBox `json:"layout_config,omitempty"`
	TextLayers     []TextLayer `json:"text_layers,omitempty"`
	Background     Background  `json:"background"`
}

// IsCover reports whether the page is the album cover. The cover is the only
// page rendered outside a two-page spread.
func (p *Page) IsCover() bool {
	return p.PageNumber == 1
}

// SlotByID returns the declared slot with the given id, or nil.
func (p *Page) SlotByID(id string) *LayoutBox {
	for i := range p.LayoutConfig {
		if p.LayoutConfig[i].ID == id && p.LayoutConfig[i].Kind == LayoutBoxSlot {
			return &p.LayoutConfig[i]
		}
	}
	return nil
}

// AssetBoundToSlot returns the asset bound to slotID, or nil if the slot is
// empty.
func (p *Page) AssetBoundToSlot(slotID string) *Asset {
	for _, a := range p.Assets {
		if a.SlotID != nil && *a.SlotID == slotID {
			return a
		}
	}
	return nil
}

// Clone returns a deep copy of the page and its assets.
func (p *Page) Clone() *Page {
	dup := *p
	if p.Assets != nil {
		dup.Assets = make([]*Asset, len(p.Assets))
		for i, a := range p.Assets {
			dup.Assets[i] = a.Clone()
		}
	}
	if p.LayoutConfig != nil {
		dup.LayoutConfig = append([]LayoutBox(nil), p.LayoutConfig...)
	}
	if p.TextLayers != nil {
		dup.TextLayers = append([]TextLayer(nil), p.TextLayers...)
	}
	return &dup
}
