// media/types.go
package media

import (
	"path/filepath"
	"strings"

	"github.com/camden-git/albumlayout/models"
)

// StorageClass partitions stored files by purpose.
type StorageClass string

const (
	StorageClassUpload    StorageClass = "uploads"
	StorageClassThumbnail StorageClass = "thumbnails"
	StorageClassUnknown   StorageClass = "unknown"
)

var supportedImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// IsRasterImage checks if the filename has a common raster image extension
func IsRasterImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedImageExtensions[ext]
}

// TypeFromMIME derives the asset type tag from an upload's MIME type. The
// core only ever consumes this tag and the resulting URL; anything
// unrecognized lands as an image so the drop can still resolve.
func TypeFromMIME(mimeType string) models.AssetType {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return models.AssetTypeVideo
	case strings.HasPrefix(mimeType, "image/"):
		return models.AssetTypeImage
	default:
		return models.AssetTypeImage
	}
}
