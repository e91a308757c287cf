package models

import "gorm.io/gorm"

// AlbumRow represents an album record in the database using GORM.
// It corresponds to the 'albums' table.
type AlbumRow struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"" json:"title"`
	PageWidth  float64        `gorm:"not null;default:1000" json:"page_width"`
	PageHeight float64        `gorm:"not null;default:700" json:"page_height"`
	IsLocked   bool           `gorm:"not null;default:false" json:"is_locked"`
	GridJSON   string         `gorm:"" json:"grid_json,omitempty"`
	CreatedAt  int64          `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt  int64          `gorm:"not null" json:"updated_at"` // Unix timestamp
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (AlbumRow) TableName() string {
	return "albums"
}

// PageRow represents a unified-schema page record. Layout boxes, text layers
// and placed assets are stored as JSON blobs; a corrupt blob degrades to an
// empty array on load rather than failing the page.
// It corresponds to the 'pages' table.
type PageRow struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	AlbumID         string         `gorm:"not null;index" json:"album_id"`
	PageNumber      int            `gorm:"not null" json:"page_number"`
	LayoutTemplate  string         `gorm:"" json:"layout_template,omitempty"`
	LayoutJSON      string         `gorm:"" json:"layout_json,omitempty"` // layout-box array; presence marks the unified shape
	TextLayersJSON  string         `gorm:"" json:"text_layers_json,omitempty"`
	AssetsJSON      string         `gorm:"" json:"assets_json,omitempty"`
	BackgroundColor string         `gorm:"" json:"background_color,omitempty"`
	BackgroundURL   string         `gorm:"" json:"background_url,omitempty"`
	UpdatedAt       int64          `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (PageRow) TableName() string {
	return "pages"
}

// MediaItemRow represents one unplaced-media tray entry.
// It corresponds to the 'unplaced_media' table.
type MediaItemRow struct {
	ID       string `gorm:"primaryKey" json:"id"`
	AlbumID  string `gorm:"not null;index" json:"album_id"`
	Filename string `gorm:"not null" json:"filename"`
	URL      string `gorm:"not null" json:"url"`
	Type     string `gorm:"not null" json:"type"`
	Width    int    `gorm:"" json:"width,omitempty"`
	Height   int    `gorm:"" json:"height,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (MediaItemRow) TableName() string {
	return "unplaced_media"
}
