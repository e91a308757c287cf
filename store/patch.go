package store

import "github.com/camden-git/albumlayout/models"

// AssetPatch is a partial update applied to one asset. Nil fields are left
// untouched. Media payload fields replace the whole payload when set, which
// is how placeholder promotion swaps media in without touching identity or
// geometry.
type AssetPatch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	PivotX   *float64
	PivotY   *float64

	ZIndex      *int
	Opacity     *float64
	Crop        *models.Crop
	ClipPoints  *[]models.Point
	AspectRatio *float64

	Type          *models.AssetType
	Image         *models.ImageData
	Video         *models.VideoData
	Text          *models.TextData
	Map           *models.MapData
	Location      *models.LocationData
	IsPlaceholder *bool
	IsLocked      *bool
}

// apply copies the set fields of the patch onto the asset.
func (p AssetPatch) apply(a *models.Asset) {
	if p.X != nil {
		a.Geometry.X = *p.X
	}
	if p.Y != nil {
		a.Geometry.Y = *p.Y
	}
	if p.Width != nil {
		a.Geometry.Width = *p.Width
	}
	if p.Height != nil {
		a.Geometry.Height = *p.Height
	}
	if p.Rotation != nil {
		a.Geometry.Rotation = *p.Rotation
	}
	if p.PivotX != nil {
		a.Geometry.PivotX = *p.PivotX
	}
	if p.PivotY != nil {
		a.Geometry.PivotY = *p.PivotY
	}
	if p.ZIndex != nil {
		a.ZIndex = *p.ZIndex
	}
	if p.Opacity != nil {
		a.Adjust.Opacity = *p.Opacity
	}
	if p.Crop != nil {
		a.Crop = *p.Crop
	}
	if p.ClipPoints != nil {
		a.ClipPoints = *p.ClipPoints
	}
	if p.AspectRatio != nil {
		a.AspectRatio = *p.AspectRatio
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Image != nil {
		a.Image = p.Image
	}
	if p.Video != nil {
		a.Video = p.Video
	}
	if p.Text != nil {
		a.Text = p.Text
	}
	if p.Map != nil {
		a.Map = p.Map
	}
	if p.Location != nil {
		a.Location = p.Location
	}
	if p.IsPlaceholder != nil {
		a.IsPlaceholder = *p.IsPlaceholder
	}
	if p.IsLocked != nil {
		a.IsLocked = *p.IsLocked
	}
}

// PagePatch is a partial update applied to one page.
type PagePatch struct {
	LayoutTemplate  *string
	BackgroundColor *string
	BackgroundURL   *string
	LayoutConfig    *[]models.LayoutBox
	TextLayers      *[]models.TextLayer
}

func (p PagePatch) apply(pg *models.Page) {
	if p.LayoutTemplate != nil {
		pg.LayoutTemplate = *p.LayoutTemplate
	}
	if p.BackgroundColor != nil {
		pg.Background.Color = *p.BackgroundColor
	}
	if p.BackgroundURL != nil {
		pg.Background.ImageURL = *p.BackgroundURL
	}
	if p.LayoutConfig != nil {
		pg.LayoutConfig = *p.LayoutConfig
	}
	if p.TextLayers != nil {
		pg.TextLayers = *p.TextLayers
	}
}
