package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultUploadsSubDir    = "uploads"
	DefaultThumbnailsSubDir = "thumbnails"
)

const (
	defaultPageWidth      = 1000.0
	defaultPageHeight     = 700.0
	defaultGridColumns    = 12
	defaultSnapTolerance  = 1.0
	defaultHistoryLimit   = 50
	defaultThumbnailSize  = 300
	defaultFallbackWidth  = 800
	defaultFallbackHeight = 600
)

type Config struct {
	// database path (unified schema)
	DatabasePath string

	// optional legacy database to import from
	LegacyDatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for uploads and generated thumbnails
	UploadsPath      string // full-calculated path for uploads
	ThumbnailsPath   string // full-calculated path for thumbnails

	// editor defaults
	PageWidth     float64
	PageHeight    float64
	GridColumns   int
	SnapTolerance float64
	HistoryLimit  int

	// thumbnail generation settings
	ThumbnailMaxSize int

	// fallback dimensions when probing media fails
	FallbackMediaWidth  int
	FallbackMediaHeight int
}

// fileConfig is the optional TOML overlay; any set field overrides the
// environment-derived value.
type fileConfig struct {
	DatabasePath     *string  `toml:"database_path"`
	MediaStoragePath *string  `toml:"media_storage_path"`
	PageWidth        *float64 `toml:"page_width"`
	PageHeight       *float64 `toml:"page_height"`
	GridColumns      *int     `toml:"grid_columns"`
	SnapTolerance    *float64 `toml:"snap_tolerance"`
	HistoryLimit     *int     `toml:"history_limit"`
	ThumbnailMaxSize *int     `toml:"thumbnail_max_size"`
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvFloatOrDefault(envVar string, defaultVal float64) float64 {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %g. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

// LoadConfig builds the configuration from the environment (with .env
// support), then applies the optional TOML overlay named by CONFIG_FILE.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}

	dbPath := getEnvOrDefault("DATABASE_PATH", "albums.db")
	legacyDBPath := os.Getenv("LEGACY_DATABASE_PATH")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))

	cfg := Config{
		DatabasePath:        dbPath,
		LegacyDatabasePath:  legacyDBPath,
		MediaStoragePath:    mediaStorage,
		PageWidth:           getEnvFloatOrDefault("PAGE_WIDTH", defaultPageWidth),
		PageHeight:          getEnvFloatOrDefault("PAGE_HEIGHT", defaultPageHeight),
		GridColumns:         getEnvIntOrDefault("GRID_COLUMNS", defaultGridColumns),
		SnapTolerance:       getEnvFloatOrDefault("SNAP_TOLERANCE", defaultSnapTolerance),
		HistoryLimit:        getEnvIntOrDefault("HISTORY_LIMIT", defaultHistoryLimit),
		ThumbnailMaxSize:    getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailSize),
		FallbackMediaWidth:  getEnvIntOrDefault("FALLBACK_MEDIA_WIDTH", defaultFallbackWidth),
		FallbackMediaHeight: getEnvIntOrDefault("FALLBACK_MEDIA_HEIGHT", defaultFallbackHeight),
	}

	if overlayPath := os.Getenv("CONFIG_FILE"); overlayPath != "" {
		if err := applyOverlay(&cfg, overlayPath); err != nil {
			return Config{}, err
		}
	}

	absMediaStorage, err := filepath.Abs(cfg.MediaStoragePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", cfg.MediaStoragePath, err)
	}
	cfg.MediaStoragePath = absMediaStorage
	cfg.UploadsPath = filepath.Join(absMediaStorage, getEnvOrDefault("UPLOADS_SUBDIR", DefaultUploadsSubDir))
	cfg.ThumbnailsPath = filepath.Join(absMediaStorage, getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir))

	return cfg, nil
}

func applyOverlay(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.MediaStoragePath != nil {
		cfg.MediaStoragePath = *fc.MediaStoragePath
	}
	if fc.PageWidth != nil {
		cfg.PageWidth = *fc.PageWidth
	}
	if fc.PageHeight != nil {
		cfg.PageHeight = *fc.PageHeight
	}
	if fc.GridColumns != nil {
		cfg.GridColumns = *fc.GridColumns
	}
	if fc.SnapTolerance != nil {
		cfg.SnapTolerance = *fc.SnapTolerance
	}
	if fc.HistoryLimit != nil {
		cfg.HistoryLimit = *fc.HistoryLimit
	}
	if fc.ThumbnailMaxSize != nil {
		cfg.ThumbnailMaxSize = *fc.ThumbnailMaxSize
	}
	return nil
}
