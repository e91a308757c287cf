// Package layout resolves drops onto album pages. A drop lands, in priority
// order, on an occupied placeholder (filled in place), an empty declared
// slot (a new asset bound to it), or freeform (sized from the media's
// natural dimensions and centered on the drop point).
package layout

import (
	"log"

	"github.com/camden-git/albumlayout/geometry"
	"github.com/camden-git/albumlayout/models"
	"github.com/camden-git/albumlayout/store"
)

// maxFootprint caps the larger side of a freeform drop, in percent units.
const maxFootprint = 60.0

// Fallback natural dimensions when probing fails; a failed probe must never
// abort the drop.
const (
	FallbackNaturalWidth  = 800
	FallbackNaturalHeight = 600
)

// Freeform z bands for category drops.
const (
	zBackground = 0
	zFrame      = 50
)

// MediaCategory marks drops with special sizing rules.
type MediaCategory string

const (
	CategoryNone       MediaCategory = ""
	CategoryBackground MediaCategory = "background"
	CategoryFrame      MediaCategory = "frame"
)

// DroppedMedia describes the media being dropped. TrayItemID is set when the
// drop consumes an unplaced-media tray entry.
type DroppedMedia struct {
	URL           string
	Type          models.AssetType
	Filename      string
	Category      MediaCategory
	NaturalWidth  int
	NaturalHeight int
	TrayItemID    string
}

// Prober reports the natural pixel dimensions of a media URL or path.
type Prober interface {
	Probe(url string) (width, height int, err error)
}

// Resolver turns drops into store mutations.
type Resolver struct {
	Store  *store.Store
	Prober Prober
}

// NewResolver creates a resolver over the given store. The prober may be
// nil, in which case unprobed drops use the fallback dimensions.
func NewResolver(st *store.Store, prober Prober) *Resolver {
	return &Resolver{Store: st, Prober: prober}
}

// ResolveDrop places media at the page-local point (x, y) and returns the
// affected asset, or nil when the album is locked or the page unknown.
func (r *Resolver) ResolveDrop(pageID string, x, y float64, media DroppedMedia) *models.Asset {
	page := r.Store.Page(pageID)
	if page == nil || r.Store.Album().Config.IsLocked {
		return nil
	}
	// the snapshot is staged before the tray item is consumed, so undoing the
	// drop restores the item along with the removed asset
	r.Store.StageHistory()
	defer r.Store.CommitHistory()
	if media.TrayItemID != "" {
		r.Store.TakeUnplacedMedia(media.TrayItemID)
	}

	if target := placeholderAt(page, x, y); target != nil {
		return r.fillPlaceholder(target, media)
	}
	if slot := emptySlotAt(page, x, y); slot != nil {
		return r.fillSlot(pageID, slot, media)
	}
	return r.insertFreeform(page, x, y, media)
}

// FillSlot binds media into a named empty slot directly, bypassing point
// resolution. Used by the slot-fill intent; a no-op when the slot is unknown
// or already occupied.
func (r *Resolver) FillSlot(pageID, slotID string, media DroppedMedia) *models.Asset {
	page := r.Store.Page(pageID)
	if page == nil {
		return nil
	}
	slot := page.SlotByID(slotID)
	if slot == nil || page.AssetBoundToSlot(slotID) != nil {
		return nil
	}
	r.Store.StageHistory()
	defer r.Store.CommitHistory()
	if media.TrayItemID != "" {
		r.Store.TakeUnplacedMedia(media.TrayItemID)
	}
	return r.fillSlot(pageID, slot, media)
}

// placeholderAt finds a placeholder asset whose box contains the point.
func placeholderAt(page *models.Page, x, y float64) *models.Asset {
	for _, a := range page.Assets {
		if !a.IsPlaceholder {
			continue
		}
		g := a.Geometry
		if x >= g.X && x <= g.X+g.Width && y >= g.Y && y <= g.Y+g.Height {
			return a
		}
	}
	return nil
}

// emptySlotAt finds a declared slot containing the point with no bound asset.
func emptySlotAt(page *models.Page, x, y float64) *models.LayoutBox {
	for i := range page.LayoutConfig {
		box := &page.LayoutConfig[i]
		if box.Kind != models.LayoutBoxSlot || !box.Contains(x, y) {
			continue
		}
		if page.AssetBoundToSlot(box.ID) == nil {
			return box
		}
	}
	return nil
}

// fillPlaceholder swaps media into an existing placeholder. Identity,
// position and size are preserved; only the media fields change.
func (r *Resolver) fillPlaceholder(target *models.Asset, media DroppedMedia) *models.Asset {
	placed := false
	patch := store.AssetPatch{IsPlaceholder: &placed}
	r.applyMediaPayload(&patch, media)
	r.Store.UpdateAsset(target.ID, patch, store.UpdateOptions{})
	return r.Store.Asset(target.ID)
}

// fillSlot creates an asset bound to the slot. Its geometry is relative to
// the slot box: full coverage at origin.
func (r *Resolver) fillSlot(pageID string, slot *models.LayoutBox, media DroppedMedia) *models.Asset {
	z := slot.ZIndex
	if z < models.ZBandMedia {
		z = models.ZBandMedia
	}
	slotID := slot.ID
	asset := &models.Asset{
		Type:     media.Type,
		Geometry: models.DefaultGeometry(0, 0, 100, 100),
		ZIndex:   z,
		SlotID:   &slotID,
	}
	setMediaPayload(asset, media)
	return r.Store.AddAsset(pageID, asset, store.UpdateOptions{})
}

// insertFreeform sizes the media from its natural dimensions, caps its
// footprint, centers it on the drop point and clamps it to the page.
// Background and frame drops bypass sizing and cover the whole page at their
// fixed z bands.
func (r *Resolver) insertFreeform(page *models.Page, x, y float64, media DroppedMedia) *models.Asset {
	switch media.Category {
	case CategoryBackground, CategoryFrame:
		z := zBackground
		typ := media.Type
		if media.Category == CategoryFrame {
			z = zFrame
			typ = models.AssetTypeFrame
		}
		asset := &models.Asset{
			Type:     typ,
			Geometry: models.DefaultGeometry(0, 0, 100, 100),
			ZIndex:   z,
		}
		setMediaPayload(asset, media)
		return r.Store.AddAsset(page.ID, asset, store.UpdateOptions{})
	}

	natW, natH := r.naturalDimensions(media)
	dims := r.Store.Album().Config.Dimensions
	pageW, pageH := dims.Width, dims.Height
	if pageW <= 0 || pageH <= 0 {
		pageW, pageH = 100, 100
	}

	// normalize against the page, then cap the larger side at the maximum
	// footprint preserving aspect ratio
	w := float64(natW) / pageW * 100
	h := float64(natH) / pageH * 100
	larger := w
	if h > larger {
		larger = h
	}
	if larger > maxFootprint {
		scale := maxFootprint / larger
		w *= scale
		h *= scale
	}

	rect := geometry.ClampToPage(geometry.Rect{X: x - w/2, Y: y - h/2, W: w, H: h})
	asset := &models.Asset{
		Type:        media.Type,
		Geometry:    models.DefaultGeometry(rect.X, rect.Y, rect.W, rect.H),
		ZIndex:      nextMediaZ(page),
		AspectRatio: float64(natW) / float64(natH),
	}
	setMediaPayload(asset, media)
	return r.Store.AddAsset(page.ID, asset, store.UpdateOptions{})
}

// naturalDimensions resolves the media's pixel size: carried dimensions win,
// then the prober, then the fixed fallback.
func (r *Resolver) naturalDimensions(media DroppedMedia) (int, int) {
	if media.NaturalWidth > 0 && media.NaturalHeight > 0 {
		return media.NaturalWidth, media.NaturalHeight
	}
	if r.Prober != nil {
		w, h, err := r.Prober.Probe(media.URL)
		if err == nil && w > 0 && h > 0 {
			return w, h
		}
		if err != nil {
			log.Printf("layout: dimension probe failed for %s, using fallback: %v", media.URL, err)
		}
	}
	return FallbackNaturalWidth, FallbackNaturalHeight
}

// nextMediaZ stacks a new freeform asset above everything already on the
// page, never below the media band floor.
func nextMediaZ(page *models.Page) int {
	z := models.ZBandMedia
	for _, a := range page.Assets {
		if a.ZIndex >= z {
			z = a.ZIndex + 1
		}
	}
	return z
}

func setMediaPayload(asset *models.Asset, media DroppedMedia) {
	switch media.Type {
	case models.AssetTypeVideo:
		asset.Video = &models.VideoData{
			URL:           media.URL,
			NaturalWidth:  media.NaturalWidth,
			NaturalHeight: media.NaturalHeight,
		}
	default:
		asset.Image = &models.ImageData{
			URL:           media.URL,
			NaturalWidth:  media.NaturalWidth,
			NaturalHeight: media.NaturalHeight,
		}
	}
}

// applyMediaPayload fills the patch used for placeholder promotion.
func (r *Resolver) applyMediaPayload(patch *store.AssetPatch, media DroppedMedia) {
	typ := media.Type
	patch.Type = &typ
	switch media.Type {
	case models.AssetTypeVideo:
		patch.Video = &models.VideoData{
			URL:           media.URL,
			NaturalWidth:  media.NaturalWidth,
			NaturalHeight: media.NaturalHeight,
		}
	default:
		patch.Image = &models.ImageData{
			URL:           media.URL,
			NaturalWidth:  media.NaturalWidth,
			NaturalHeight: media.NaturalHeight,
		}
	}
}
