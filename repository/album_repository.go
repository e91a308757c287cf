package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/albumlayout/media"
	"github.com/camden-git/albumlayout/models"
	"github.com/camden-git/albumlayout/schema"
)

// AlbumRepository handles database operations for Album aggregates
type AlbumRepository struct {
	DB *gorm.DB
}

// NewAlbumRepository creates a new instance of AlbumRepository
func NewAlbumRepository(db *gorm.DB) *AlbumRepository {
	return &AlbumRepository{DB: db}
}

// Create persists a new album and its pages
func (r *AlbumRepository) Create(album *models.Album) error {
	now := time.Now().Unix()
	row := albumToRow(album)
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return savePages(tx, album)
	})
	if err != nil {
		return fmt.Errorf("failed to create album %s: %w", album.ID, err)
	}
	return nil
}

// Save upserts the album row, replaces its page rows with the serialized
// canonical pages, and rewrites the unplaced-media tray
func (r *AlbumRepository) Save(album *models.Album) error {
	now := time.Now().Unix()
	row := albumToRow(album)
	row.UpdatedAt = now

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		// the page rows are rewritten wholesale; the delete must be unscoped
		// or the soft-deleted rows collide with the recreated primary keys
		if err := tx.Unscoped().Where("album_id = ?", album.ID).Delete(&models.PageRow{}).Error; err != nil {
			return err
		}
		if err := savePages(tx, album); err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", album.ID).Delete(&models.MediaItemRow{}).Error; err != nil {
			return err
		}
		return saveTray(tx, album)
	})
	if err != nil {
		return fmt.Errorf("failed to save album %s: %w", album.ID, err)
	}
	return nil
}

// Load reads an album's rows and routes every page through the schema
// normalizer, so both persisted shapes come back canonical
func (r *AlbumRepository) Load(albumID string) (*models.Album, error) {
	var row models.AlbumRow
	err := r.DB.First(&row, "id = ?", albumID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get album by ID %s: %w", albumID, err)
	}

	var pageRows []models.PageRow
	err = r.DB.Where("album_id = ?", albumID).Order("page_number ASC").Find(&pageRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pages for album %s: %w", albumID, err)
	}

	album := rowToAlbum(row)
	for _, pr := range pageRows {
		album.Pages = append(album.Pages, schema.NormalizePage(pr))
	}

	var trayRows []models.MediaItemRow
	err = r.DB.Where("album_id = ?", albumID).Find(&trayRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unplaced media for album %s: %w", albumID, err)
	}
	for _, tr := range trayRows {
		album.UnplacedMedia = append(album.UnplacedMedia, models.MediaItem{
			ID:       tr.ID,
			Filename: tr.Filename,
			URL:      tr.URL,
			Type:     models.AssetType(tr.Type),
			Width:    tr.Width,
			Height:   tr.Height,
		})
	}
	media.SortTrayNatural(album.UnplacedMedia)

	return album, nil
}

// ListAll retrieves all album rows
func (r *AlbumRepository) ListAll() ([]models.AlbumRow, error) {
	var rows []models.AlbumRow
	err := r.DB.Order("title ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return rows, nil
}

// Delete removes an album and its pages by ID
// this will perform a soft delete because the rows have gorm.DeletedAt
func (r *AlbumRepository) Delete(albumID string) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.AlbumRow{}, "id = ?", albumID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("album_id = ?", albumID).Delete(&models.PageRow{}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return err
		}
		return fmt.Errorf("failed to delete album ID %s: %w", albumID, err)
	}
	return nil
}

func savePages(tx *gorm.DB, album *models.Album) error {
	now := time.Now().Unix()
	for _, page := range album.Pages {
		row := schema.SerializePage(album.ID, page)
		row.UpdatedAt = now
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save page %s: %w", page.ID, err)
		}
	}
	return nil
}

func saveTray(tx *gorm.DB, album *models.Album) error {
	for _, item := range album.UnplacedMedia {
		row := models.MediaItemRow{
			ID:       item.ID,
			AlbumID:  album.ID,
			Filename: item.Filename,
			URL:      item.URL,
			Type:     string(item.Type),
			Width:    item.Width,
			Height:   item.Height,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save unplaced media %s: %w", item.ID, err)
		}
	}
	return nil
}

func albumToRow(album *models.Album) models.AlbumRow {
	gridJSON, _ := json.Marshal(album.Config.Grid)
	return models.AlbumRow{
		ID:         album.ID,
		Title:      album.Title,
		PageWidth:  album.Config.Dimensions.Width,
		PageHeight: album.Config.Dimensions.Height,
		IsLocked:   album.Config.IsLocked,
		GridJSON:   string(gridJSON),
	}
}

func rowToAlbum(row models.AlbumRow) *models.Album {
	album := &models.Album{
		ID:    row.ID,
		Title: row.Title,
		Config: models.AlbumConfig{
			Dimensions: models.Dimensions{Width: row.PageWidth, Height: row.PageHeight},
			IsLocked:   row.IsLocked,
		},
	}
	// a corrupt grid blob falls back to defaults rather than failing the load
	if err := json.Unmarshal([]byte(row.GridJSON), &album.Config.Grid); err != nil {
		album.Config.Grid = models.GridSettings{Enabled: true, Columns: 12}
	}
	return album
}
