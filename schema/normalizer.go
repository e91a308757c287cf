// Package schema reconciles the two persisted page shapes into canonical
// models.Page values. The "unified" shape stores a layout-box array plus text
// layers and placed assets as JSON blobs on the page row; the "legacy" shape
// stores flat per-asset rows with a JSON config column. Everything here is a
// pure function of the raw rows: no I/O, no album state.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/camden-git/albumlayout/models"
)

// LegacyPageRow is the pre-unified page record.
type LegacyPageRow struct {
	ID              string
	AlbumID         string
	PageNumber      int
	LayoutTemplate  string
	BackgroundColor string
	BackgroundURL   string
}

// LegacyAssetRow is one flat asset record of the legacy shape. ConfigJSON
// carries everything the flat columns do not: media URLs, text content, map
// configuration, location markers, crop, pivot, clip points.
type LegacyAssetRow struct {
	ID           string
	PageID       string
	RawType      string
	OriginalType *string
	X            float64
	Y            float64
	Width        float64
	Height       float64
	Rotation     float64
	ZIndex       int
	ConfigJSON   string
}

// legacyConfig mirrors the ad hoc JSON config blob of a legacy row. All
// fields are optional; unknown fields are ignored.
type legacyConfig struct {
	URL           string                  `json:"url,omitempty"`
	ThumbnailURL  string                  `json:"thumbnailUrl,omitempty"`
	NaturalWidth  int                     `json:"naturalWidth,omitempty"`
	NaturalHeight int                     `json:"naturalHeight,omitempty"`
	Text          *models.TextData        `json:"text,omitempty"`
	MapConfig     *models.MapData         `json:"mapConfig,omitempty"`
	Markers       []models.LocationMarker `json:"markers,omitempty"`
	Caption       string                  `json:"caption,omitempty"`
	Crop          *models.Crop            `json:"crop,omitempty"`
	PivotX        *float64                `json:"pivotX,omitempty"`
	PivotY        *float64                `json:"pivotY,omitempty"`
	ClipPoints    []models.Point          `json:"clipPoints,omitempty"`
	SlotID        *string                 `json:"slotId,omitempty"`
	IsPlaceholder bool                    `json:"isPlaceholder,omitempty"`
	IsLocked      bool                    `json:"isLocked,omitempty"`
	Opacity       *float64                `json:"opacity,omitempty"`
}

// IsUnified reports whether a persisted page row uses the unified shape,
// detected by the presence of a layout-box array.
func IsUnified(row models.PageRow) bool {
	blob := strings.TrimSpace(row.LayoutJSON)
	return blob != "" && blob != "null"
}

// NormalizePage maps a unified-shape page row to a canonical Page. Each JSON
// blob is parsed independently; a corrupt blob degrades to an empty slice so
// one bad column never blocks loading the rest of the album.
func NormalizePage(row models.PageRow) *models.Page {
	page := &models.Page{
		ID:             row.ID,
		PageNumber:     row.PageNumber,
		LayoutTemplate: row.LayoutTemplate,
		Background: models.Background{
			Color:    row.BackgroundColor,
			ImageURL: row.BackgroundURL,
		},
	}
	page.LayoutConfig = parseBoxes(row.LayoutJSON)
	page.TextLayers = parseTextLayers(row.TextLayersJSON)
	page.Assets = parseAssets(row.AssetsJSON)
	for _, a := range page.Assets {
		clampAssetGeometry(a)
	}
	return page
}

// NormalizeLegacyPage maps a legacy page row and its flat asset rows to a
// canonical Page. Asset types are recovered via RecoverLegacyType.
func NormalizeLegacyPage(row LegacyPageRow, assets []LegacyAssetRow) *models.Page {
	page := &models.Page{
		ID:             row.ID,
		PageNumber:     row.PageNumber,
		LayoutTemplate: row.LayoutTemplate,
		Background: models.Background{
			Color:    row.BackgroundColor,
			ImageURL: row.BackgroundURL,
		},
	}
	for _, raw := range assets {
		page.Assets = append(page.Assets, normalizeLegacyAsset(raw))
	}
	return page
}

// RecoverLegacyType resolves the true asset type of a legacy row through a
// priority chain: the explicitly stored original type wins; otherwise the
// config structure is inspected (a map config means a map asset, location
// markers on a text row mean a location asset); otherwise the stored raw
// type is trusted as-is.
func RecoverLegacyType(row LegacyAssetRow) models.AssetType {
	if row.OriginalType != nil && *row.OriginalType != "" {
		return models.AssetType(*row.OriginalType)
	}

	var cfg legacyConfig
	if err := json.Unmarshal([]byte(row.ConfigJSON), &cfg); err == nil {
		if cfg.MapConfig != nil {
			return models.AssetTypeMap
		}
		if row.RawType == string(models.AssetTypeText) && len(cfg.Markers) > 0 {
			return models.AssetTypeLocation
		}
	}

	return models.AssetType(row.RawType)
}

func normalizeLegacyAsset(row LegacyAssetRow) *models.Asset {
	var cfg legacyConfig
	// a corrupt config blob leaves cfg zero-valued; the flat columns still
	// produce a usable asset
	_ = json.Unmarshal([]byte(row.ConfigJSON), &cfg)

	geom := models.Geometry{
		X:        row.X,
		Y:        row.Y,
		Width:    row.Width,
		Height:   row.Height,
		Rotation: row.Rotation,
		PivotX:   0.5,
		PivotY:   0.5,
	}
	if cfg.PivotX != nil {
		geom.PivotX = *cfg.PivotX
	}
	if cfg.PivotY != nil {
		geom.PivotY = *cfg.PivotY
	}

	asset := &models.Asset{
		ID:            row.ID,
		Type:          RecoverLegacyType(row),
		Geometry:      geom,
		ZIndex:        row.ZIndex,
		Adjust:        models.Adjustments{Opacity: 1},
		ClipPoints:    cfg.ClipPoints,
		SlotID:        cfg.SlotID,
		IsPlaceholder: cfg.IsPlaceholder,
		IsLocked:      cfg.IsLocked,
	}
	if cfg.Opacity != nil {
		asset.Adjust.Opacity = *cfg.Opacity
	}
	if cfg.Crop != nil {
		asset.Crop = *cfg.Crop
	}

	switch asset.Type {
	case models.AssetTypeImage, models.AssetTypeFrame, models.AssetTypeSticker:
		asset.Image = &models.ImageData{
			URL:           cfg.URL,
			ThumbnailURL:  cfg.ThumbnailURL,
			NaturalWidth:  cfg.NaturalWidth,
			NaturalHeight: cfg.NaturalHeight,
		}
	case models.AssetTypeVideo:
		asset.Video = &models.VideoData{
			URL:           cfg.URL,
			NaturalWidth:  cfg.NaturalWidth,
			NaturalHeight: cfg.NaturalHeight,
		}
	case models.AssetTypeText:
		if cfg.Text != nil {
			asset.Text = cfg.Text
		} else {
			asset.Text = &models.TextData{}
		}
	case models.AssetTypeMap:
		if cfg.MapConfig != nil {
			asset.Map = cfg.MapConfig
		} else {
			asset.Map = &models.MapData{}
		}
	case models.AssetTypeLocation:
		asset.Location = &models.LocationData{Caption: cfg.Caption, Markers: cfg.Markers}
	}

	clampAssetGeometry(asset)
	return asset
}

// SerializePage maps a canonical Page back to a unified-shape row such that
// NormalizePage(SerializePage(p)) reproduces p.
func SerializePage(albumID string, page *models.Page) models.PageRow {
	row := models.PageRow{
		ID:              page.ID,
		AlbumID:         albumID,
		PageNumber:      page.PageNumber,
		LayoutTemplate:  page.LayoutTemplate,
		BackgroundColor: page.Background.Color,
		BackgroundURL:   page.Background.ImageURL,
	}
	// a nil LayoutConfig marks a freeform page; only unified pages persist a
	// layout-box array (the shape discriminator on load)
	if page.LayoutConfig != nil {
		row.LayoutJSON = marshalOrEmpty(page.LayoutConfig, "[]")
	}
	if len(page.TextLayers) > 0 {
		row.TextLayersJSON = marshalOrEmpty(page.TextLayers, "")
	}
	if len(page.Assets) > 0 {
		row.AssetsJSON = marshalOrEmpty(page.Assets, "")
	}
	return row
}

func marshalOrEmpty(v interface{}, fallback string) string {
	blob, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(blob)
}

func parseBoxes(blob string) []models.LayoutBox {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	var boxes []models.LayoutBox
	if err := json.Unmarshal([]byte(blob), &boxes); err != nil {
		return []models.LayoutBox{}
	}
	return boxes
}

func parseTextLayers(blob string) []models.TextLayer {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	var layers []models.TextLayer
	if err := json.Unmarshal([]byte(blob), &layers); err != nil {
		return []models.TextLayer{}
	}
	return layers
}

func parseAssets(blob string) []*models.Asset {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	var assets []*models.Asset
	if err := json.Unmarshal([]byte(blob), &assets); err != nil {
		return []*models.Asset{}
	}
	return assets
}

// clampAssetGeometry clamps out-of-range numeric geometry instead of
// rejecting it.
func clampAssetGeometry(a *models.Asset) {
	g := &a.Geometry
	if g.Width < 0 {
		g.Width = 0
	}
	if g.Width > 100 {
		g.Width = 100
	}
	if g.Height < 0 {
		g.Height = 0
	}
	if g.Height > 100 {
		g.Height = 100
	}
	g.X = clampFloat(g.X, 0, 100-g.Width)
	g.Y = clampFloat(g.Y, 0, 100-g.Height)
	g.PivotX = clampFloat(g.PivotX, 0, 1)
	g.PivotY = clampFloat(g.PivotY, 0, 1)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
