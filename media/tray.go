package media

import (
	"sort"

	"github.com/facette/natsort"

	"github.com/camden-git/albumlayout/models"
)

// SortTrayNatural orders unplaced-media items by filename using natural
// sorting, so IMG_2 sorts before IMG_10. The sort is stable for equal names.
func SortTrayNatural(items []models.MediaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return natsort.Compare(items[i].Filename, items[j].Filename)
	})
}
