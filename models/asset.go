package models

// AssetType discriminates the variants of an Asset. Exactly one payload
// pointer (Image, Video, Text, Map, Location) is set for the matching type;
// frames and stickers reuse the image payload.
type AssetType string

const (
	AssetTypeImage    AssetType = "image"
	AssetTypeVideo    AssetType = "video"
	AssetTypeText     AssetType = "text"
	AssetTypeMap      AssetType = "map"
	AssetTypeLocation AssetType = "location"
	AssetTypeFrame    AssetType = "frame"
	AssetTypeSticker  AssetType = "sticker"
)

// z-index role bands. Role-changing operations must not cross bands except
// via explicit front/back promotion.
const (
	ZBandBackground = 0
	ZBandDecoration = 5
	ZBandMedia      = 10
	ZBandText       = 50
	ZBandOverlay    = 100
)

// Geometry is the shared placement envelope of every asset. X, Y, Width and
// Height are percentages of the owning page in [0,100]. PivotX/PivotY are
// normalized to [0,1] and anchor rotation and scale; they default to the
// asset center (0.5, 0.5).
type Geometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	PivotX   float64 `json:"pivot_x"`
	PivotY   float64 `json:"pivot_y"`
}

// Crop describes the visible window into the asset's media.
type Crop struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Point is a clip-polygon vertex in percent of the asset's own box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Adjustments holds per-asset visual tweaks applied at render time.
type Adjustments struct {
	Opacity    float64 `json:"opacity"`
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`
	Saturation float64 `json:"saturation,omitempty"`
}

// ImageData is the payload for image, frame and sticker assets.
type ImageData struct {
	URL           string `json:"url"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	NaturalWidth  int    `json:"natural_width,omitempty"`
	NaturalHeight int    `json:"natural_height,omitempty"`
}

// VideoData is the payload for video assets.
type VideoData struct {
	URL           string  `json:"url"`
	PosterURL     string  `json:"poster_url,omitempty"`
	NaturalWidth  int     `json:"natural_width,omitempty"`
	NaturalHeight int     `json:"natural_height,omitempty"`
	Duration      float64 `json:"duration,omitempty"`
	Muted         bool    `json:"muted,omitempty"`
}

// TextData is the payload for text assets.
type TextData struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"font_family,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	Color      string  `json:"color,omitempty"`
	Align      string  `json:"align,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
}

// MapData is the payload for map assets.
type MapData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Style     string  `json:"style,omitempty"`
}

// LocationMarker is a labelled pin on a location asset.
type LocationMarker struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationData is the payload for location assets (a text caption backed by
// one or more geographic markers).
type LocationData struct {
	Caption string           `json:"caption,omitempty"`
	Markers []LocationMarker `json:"markers"`
}

// Asset is one placed element on a page. The Type field selects the active
// payload; the envelope fields are common to all variants.
type Asset struct {
	ID       string      `json:"id"`
	Type     AssetType   `json:"type"`
	Geometry Geometry    `json:"geometry"`
	ZIndex   int         `json:"z_index"`
	Adjust   Adjustments `json:"adjustments"`
	Crop     Crop        `json:"crop"`

	// ClipPoints, when non-empty, define a clip polygon in percent of the
	// asset's own box.
	ClipPoints []Point `json:"clip_points,omitempty"`

	// SlotID binds the asset to exactly one layoutConfig slot on its page.
	// At most one asset on a page binds to a given slot.
	SlotID *string `json:"slot_id,omitempty"`

	// IsPlaceholder marks an asset with no resolved media, rendered as an
	// upload target. Placeholder promotion preserves identity: only media
	// fields change when it is filled.
	IsPlaceholder bool `json:"is_placeholder"`
	IsLocked      bool `json:"is_locked"`

	// AspectRatio, when non-zero, locks resize to width/height = AspectRatio.
	AspectRatio float64 `json:"aspect_ratio,omitempty"`

	Image    *ImageData    `json:"image,omitempty"`
	Video    *VideoData    `json:"video,omitempty"`
	Text     *TextData     `json:"text,omitempty"`
	Map      *MapData      `json:"map,omitempty"`
	Location *LocationData `json:"location,omitempty"`
}

// MediaURL returns the asset's primary media URL, or "" for variants that
// carry no URL (text, map, location).
func (a *Asset) MediaURL() string {
	switch a.Type {
	case AssetTypeImage, AssetTypeFrame, AssetTypeSticker:
		if a.Image != nil {
			return a.Image.URL
		}
	case AssetTypeVideo:
		if a.Video != nil {
			return a.Video.URL
		}
	}
	return ""
}

// DefaultGeometry returns a geometry with the standard center pivot.
func DefaultGeometry(x, y, width, height float64) Geometry {
	return Geometry{X: x, Y: y, Width: width, Height: height, PivotX: 0.5, PivotY: 0.5}
}

// Clone returns a deep copy of the asset, including payload and clip points.
func (a *Asset) Clone() *Asset {
	dup := *a
	if a.ClipPoints != nil {
		dup.ClipPoints = append([]Point(nil), a.ClipPoints...)
	}
	if a.SlotID != nil {
		s := *a.SlotID
		dup.SlotID = &s
	}
	if a.Image != nil {
		img := *a.Image
		dup.Image = &img
	}
	if a.Video != nil {
		v := *a.Video
		dup.Video = &v
	}
	if a.Text != nil {
		t := *a.Text
		dup.Text = &t
	}
	if a.Map != nil {
		m := *a.Map
		dup.Map = &m
	}
	if a.Location != nil {
		loc := *a.Location
		loc.Markers = append([]LocationMarker(nil), a.Location.Markers...)
		dup.Location = &loc
	}
	return &dup
}
