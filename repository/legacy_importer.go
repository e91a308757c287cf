package repository

import (
	"database/sql"
	"fmt"

	"github.com/camden-git/albumlayout/database"
	"github.com/camden-git/albumlayout/models"
	"github.com/camden-git/albumlayout/schema"
)

// ImportLegacyAlbum reads an album persisted in the legacy flat-row shape
// and normalizes it into a canonical aggregate. Saving the result writes the
// unified shape, completing the migration.
func ImportLegacyAlbum(db *sql.DB, albumID string, dims models.Dimensions) (*models.Album, error) {
	pageRows, err := database.ListLegacyPages(db, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy pages for album %s: %w", albumID, err)
	}

	album := &models.Album{
		ID: albumID,
		Config: models.AlbumConfig{
			Dimensions: dims,
			Grid:       models.GridSettings{Enabled: true, Columns: 12},
		},
	}

	for _, pr := range pageRows {
		assetRows, err := database.ListLegacyAssets(db, pr.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read legacy assets for page %s: %w", pr.ID, err)
		}
		album.Pages = append(album.Pages, schema.NormalizeLegacyPage(pr, assetRows))
	}

	return album, nil
}
