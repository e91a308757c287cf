package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/albumlayout/database"
	"github.com/camden-git/albumlayout/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testAlbum() *models.Album {
	return &models.Album{
		ID:    "al1",
		Title: "summer",
		Config: models.AlbumConfig{
			Dimensions: models.Dimensions{Width: 1000, Height: 700},
			Grid:       models.GridSettings{Enabled: true, Columns: 12},
		},
		Pages: []*models.Page{
			{
				ID:         "p1",
				PageNumber: 1,
				Assets: []*models.Asset{
					{
						ID:       "a1",
						Type:     models.AssetTypeImage,
						Geometry: models.DefaultGeometry(10, 10, 30, 20),
						ZIndex:   10,
						Adjust:   models.Adjustments{Opacity: 1},
						Image:    &models.ImageData{URL: "x.jpg"},
					},
				},
			},
		},
		UnplacedMedia: []models.MediaItem{
			{ID: "m1", Filename: "IMG_1.jpg", URL: "IMG_1.jpg", Type: models.AssetTypeImage},
		},
	}
}

func TestSaveIsRepeatable(t *testing.T) {
	repo := NewAlbumRepository(testDB(t))
	album := testAlbum()

	if err := repo.Create(album); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Save(album); err != nil {
		t.Fatalf("first save after create: %v", err)
	}

	// mutate and save again: the page rows must be rewritten, not collide
	// with their previous versions
	album.Pages[0].Assets[0].Geometry.X = 42
	if err := repo.Save(album); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := repo.Load("al1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Pages) != 1 {
		t.Fatalf("pages = %d, want 1 (stale rows must not resurface)", len(loaded.Pages))
	}
	if got := loaded.Pages[0].Assets[0].Geometry.X; got != 42 {
		t.Errorf("asset x = %g, want the re-saved 42", got)
	}
	if len(loaded.UnplacedMedia) != 1 || loaded.UnplacedMedia[0].ID != "m1" {
		t.Errorf("tray did not round-trip: %+v", loaded.UnplacedMedia)
	}
}

func TestLoadSortsTrayNaturally(t *testing.T) {
	repo := NewAlbumRepository(testDB(t))
	album := testAlbum()
	album.UnplacedMedia = []models.MediaItem{
		{ID: "m1", Filename: "IMG_10.jpg", URL: "IMG_10.jpg", Type: models.AssetTypeImage},
		{ID: "m2", Filename: "IMG_2.jpg", URL: "IMG_2.jpg", Type: models.AssetTypeImage},
	}
	if err := repo.Create(album); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Save(album); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load("al1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.UnplacedMedia) != 2 {
		t.Fatalf("tray len = %d, want 2", len(loaded.UnplacedMedia))
	}
	if loaded.UnplacedMedia[0].Filename != "IMG_2.jpg" {
		t.Errorf("tray order = %s first, want IMG_2.jpg", loaded.UnplacedMedia[0].Filename)
	}
}
