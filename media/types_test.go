package media

import (
	"testing"

	"github.com/camden-git/albumlayout/models"
)

func TestTypeFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want models.AssetType
	}{
		{"image/jpeg", models.AssetTypeImage},
		{"image/png", models.AssetTypeImage},
		{"video/mp4", models.AssetTypeVideo},
		{"video/quicktime", models.AssetTypeVideo},
		{"application/octet-stream", models.AssetTypeImage},
		{"", models.AssetTypeImage},
	}
	for _, tt := range tests {
		if got := TypeFromMIME(tt.mime); got != tt.want {
			t.Errorf("TypeFromMIME(%q) = %s, want %s", tt.mime, got, tt.want)
		}
	}
}

func TestIsRasterImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"PHOTO.JPEG", true},
		{"scan.tiff", true},
		{"clip.mp4", false},
		{"archive.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsRasterImage(tt.name); got != tt.want {
			t.Errorf("IsRasterImage(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSortTrayNatural(t *testing.T) {
	items := []models.MediaItem{
		{ID: "1", Filename: "IMG_10.jpg"},
		{ID: "2", Filename: "IMG_2.jpg"},
		{ID: "3", Filename: "IMG_1.jpg"},
	}
	SortTrayNatural(items)
	want := []string{"IMG_1.jpg", "IMG_2.jpg", "IMG_10.jpg"}
	for i, w := range want {
		if items[i].Filename != w {
			t.Errorf("position %d = %s, want %s", i, items[i].Filename, w)
		}
	}
}
