package models

// Dimensions is the page size in layout units (e.g. 1000x700). Percent
// geometry is resolved against these when converting natural media sizes.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GridSettings controls the snap grid shown in the editor.
type GridSettings struct {
	Enabled bool    `json:"enabled"`
	Columns int     `json:"columns"` // column guides per page, typically 12
	Step    float64 `json:"step,omitempty"`
}

// AlbumConfig is album-wide editor configuration.
type AlbumConfig struct {
	Dimensions Dimensions   `json:"dimensions"`
	IsLocked   bool         `json:"is_locked"`
	Grid       GridSettings `json:"grid"`
}

// MediaItem is an uploaded file sitting in the unplaced-media tray, waiting
// to be dropped onto a page.
type MediaItem struct {
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	URL      string    `json:"url"`
	Type     AssetType `json:"type"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
}

// Album is the root aggregate: ordered pages plus the unplaced-media tray.
type Album struct {
	ID            string      `json:"id"`
	Title         string      `json:"title,omitempty"`
	Pages         []*Page     `json:"pages"`
	UnplacedMedia []MediaItem `json:"unplaced_media,omitempty"`
	Config        AlbumConfig `json:"config"`
}

// PageByID returns the page with the given id, or nil.
func (al *Album) PageByID(id string) *Page {
	for _, p := range al.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AssetByID returns the asset and its owning page, or (nil, nil).
func (al *Album) AssetByID(id string) (*Asset, *Page) {
	for _, p := range al.Pages {
		for _, a := range p.Assets {
			if a.ID == id {
				return a, p
			}
		}
	}
	return nil, nil
}

// Clone returns a deep copy of the album, suitable for history snapshots.
func (al *Album) Clone() *Album {
	dup := *al
	dup.Pages = make([]*Page, len(al.Pages))
	for i, p := range al.Pages {
		dup.Pages[i] = p.Clone()
	}
	if al.UnplacedMedia != nil {
		dup.UnplacedMedia = append([]MediaItem(nil), al.UnplacedMedia...)
	}
	return &dup
}
