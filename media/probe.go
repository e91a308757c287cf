package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// FileProber resolves the natural pixel dimensions of stored media through a
// Store. It satisfies the layout package's Prober interface.
type FileProber struct {
	Store Store
}

// Probe decodes just the image header to get dimensions, then corrects for
// EXIF orientation: orientations 5 through 8 are rotated a quarter turn, so
// width and height swap.
func (p *FileProber) Probe(url string) (int, int, error) {
	fullPath, err := p.Store.GetFullPath(url)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to resolve media path for '%s': %w", url, err)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open media '%s': %w", url, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode media header '%s': %w", url, err)
	}
	width, height := cfg.Width, cfg.Height

	if _, err := f.Seek(0, 0); err == nil {
		if orient := readOrientation(f); orient >= 5 && orient <= 8 {
			width, height = height, width
		}
	}

	return width, height, nil
}

// readOrientation extracts the EXIF orientation tag, returning 0 when the
// file carries none.
func readOrientation(f *os.File) int {
	exifData, err := exif.Decode(f)
	if err != nil {
		return 0
	}
	tag, err := exifData.Get(exif.Orientation)
	if err != nil || tag == nil {
		return 0
	}
	val, err := tag.Int(0)
	if err != nil {
		log.Printf("media.probe: error converting orientation tag: %v", err)
		return 0
	}
	return val
}
