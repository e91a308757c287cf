// Package store holds the canonical Album aggregate and every mutator the
// editor applies to it, together with the undo/redo history. Mutators are
// total: locked albums and locked assets make them silent no-ops, and
// out-of-range input is clamped rather than rejected.
package store

import (
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/camden-git/albumlayout/geometry"
	"github.com/camden-git/albumlayout/media"
	"github.com/camden-git/albumlayout/models"
)

// duplicateOffset is the percent offset applied to a duplicated asset so the
// copy does not perfectly cover the original.
const duplicateOffset = 20.0

// ZOrderOp selects an updateAssetZIndex movement.
type ZOrderOp string

const (
	ZFront    ZOrderOp = "front"
	ZBack     ZOrderOp = "back"
	ZForward  ZOrderOp = "forward"
	ZBackward ZOrderOp = "backward"
)

// UpdateOptions modifies how a mutation is recorded. SkipHistory marks the
// mutation history-exempt; it is used for the fine-grained updates of a live
// gesture, which are folded into one undo step by a later CommitHistory.
type UpdateOptions struct {
	SkipHistory bool
}

// Store is an id-indexed arena over a single Album aggregate. Lookup maps
// are rebuilt whenever the album is swapped wholesale (undo/redo); ordinary
// mutations maintain them incrementally.
type Store struct {
	album   *models.Album
	history *History

	pages     map[string]*models.Page
	assets    map[string]*models.Asset
	assetPage map[string]string // asset id -> owning page id

	// staged holds the pre-gesture snapshot between StageHistory and
	// CommitHistory; nil outside a gesture.
	staged *models.Album
}

// NewStore wraps an existing album. historyLimit <= 0 uses the default cap.
func NewStore(album *models.Album, historyLimit int) *Store {
	s := &Store{
		album:   album,
		history: NewHistory(historyLimit),
	}
	s.reindex()
	return s
}

// NewAlbum builds an empty album with a cover page and the standard config,
// and returns a store over it.
func NewAlbum(title string, dims models.Dimensions) *Store {
	album := &models.Album{
		ID:    uuid.NewString(),
		Title: title,
		Config: models.AlbumConfig{
			Dimensions: dims,
			Grid:       models.GridSettings{Enabled: true, Columns: geometry.ColumnsPerPage},
		},
	}
	cover := &models.Page{ID: uuid.NewString(), PageNumber: 1}
	album.Pages = append(album.Pages, cover)
	return NewStore(album, 0)
}

// Album exposes the aggregate for reading. Callers must treat it as
// immutable and mutate only through store methods.
func (s *Store) Album() *models.Album { return s.album }

// History exposes the undo/redo stack state.
func (s *Store) History() *History { return s.history }

// Page returns the page with the given id, or nil.
func (s *Store) Page(id string) *models.Page { return s.pages[id] }

// Asset returns the asset with the given id, or nil.
func (s *Store) Asset(id string) *models.Asset { return s.assets[id] }

// AssetPageID returns the id of the page owning the asset, or "".
func (s *Store) AssetPageID(assetID string) string { return s.assetPage[assetID] }

func (s *Store) reindex() {
	s.pages = make(map[string]*models.Page)
	s.assets = make(map[string]*models.Asset)
	s.assetPage = make(map[string]string)
	for _, p := range s.album.Pages {
		s.pages[p.ID] = p
		for _, a := range p.Assets {
			s.assets[a.ID] = a
			s.assetPage[a.ID] = p.ID
		}
	}
}

// record snapshots the pre-mutation album unless the mutation is
// history-exempt or part of a staged gesture batch.
func (s *Store) record(opts UpdateOptions) {
	if opts.SkipHistory || s.staged != nil {
		return
	}
	s.history.Record(s.album.Clone())
}

func (s *Store) locked() bool { return s.album.Config.IsLocked }

// StageHistory captures the current album as the pending undo entry for a
// gesture. The following history-exempt mutations leave history untouched;
// CommitHistory folds them all into this one snapshot.
func (s *Store) StageHistory() {
	if s.locked() || s.staged != nil {
		return
	}
	s.staged = s.album.Clone()
}

// CommitHistory pushes the staged pre-gesture snapshot onto the undo stack.
// A no-op when nothing is staged, so stray commits are harmless.
func (s *Store) CommitHistory() {
	if s.staged == nil {
		return
	}
	s.history.Record(s.staged)
	s.staged = nil
}

// Undo restores the most recent snapshot. No-op on an empty stack or a
// locked album.
func (s *Store) Undo() {
	if s.locked() {
		return
	}
	prev, ok := s.history.Undo(s.album)
	if !ok {
		return
	}
	s.album = prev
	s.reindex()
}

// Redo restores the most recently undone snapshot. No-op on an empty stack
// or a locked album.
func (s *Store) Redo() {
	if s.locked() {
		return
	}
	next, ok := s.history.Redo(s.album)
	if !ok {
		return
	}
	s.album = next
	s.reindex()
}

// AddPagePair appends two new pages. Pages beyond the cover always come in
// facing pairs so every spread stays complete.
func (s *Store) AddPagePair() []*models.Page {
	if s.locked() {
		return nil
	}
	s.record(UpdateOptions{})
	next := len(s.album.Pages) + 1
	pair := []*models.Page{
		{ID: uuid.NewString(), PageNumber: next},
		{ID: uuid.NewString(), PageNumber: next + 1},
	}
	for _, p := range pair {
		s.album.Pages = append(s.album.Pages, p)
		s.pages[p.ID] = p
	}
	return pair
}

// RemovePage deletes a page and, cascading, every asset on it. Removal is
// blocked when it would leave the album without a page.
func (s *Store) RemovePage(pageID string) {
	if s.locked() {
		return
	}
	if len(s.album.Pages) <= 1 {
		log.Printf("store: refusing to remove last page %s", pageID)
		return
	}
	idx := -1
	for i, p := range s.album.Pages {
		if p.ID == pageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.record(UpdateOptions{})
	removed := s.album.Pages[idx]
	for _, a := range removed.Assets {
		delete(s.assets, a.ID)
		delete(s.assetPage, a.ID)
	}
	delete(s.pages, pageID)
	s.album.Pages = append(s.album.Pages[:idx], s.album.Pages[idx+1:]...)
	for i, p := range s.album.Pages {
		p.PageNumber = i + 1
	}
}

// UpdatePage applies a partial page update.
func (s *Store) UpdatePage(pageID string, patch PagePatch) {
	if s.locked() {
		return
	}
	page := s.pages[pageID]
	if page == nil {
		return
	}
	s.record(UpdateOptions{})
	patch.apply(page)
}

// DuplicatePage appends a deep copy of a page with fresh page and asset ids.
func (s *Store) DuplicatePage(pageID string) *models.Page {
	if s.locked() {
		return nil
	}
	src := s.pages[pageID]
	if src == nil {
		return nil
	}
	s.record(UpdateOptions{})
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.PageNumber = len(s.album.Pages) + 1
	for _, a := range dup.Assets {
		a.ID = uuid.NewString()
	}
	s.album.Pages = append(s.album.Pages, dup)
	s.pages[dup.ID] = dup
	for _, a := range dup.Assets {
		s.assets[a.ID] = a
		s.assetPage[a.ID] = dup.ID
	}
	return dup
}

// AddAsset places an asset onto a page. The asset id is generated when
// empty; a zero pivot defaults to the center.
func (s *Store) AddAsset(pageID string, asset *models.Asset, opts UpdateOptions) *models.Asset {
	if s.locked() {
		return nil
	}
	page := s.pages[pageID]
	if page == nil {
		return nil
	}
	s.record(opts)
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	if asset.Geometry.PivotX == 0 && asset.Geometry.PivotY == 0 {
		asset.Geometry.PivotX = 0.5
		asset.Geometry.PivotY = 0.5
	}
	if asset.Adjust.Opacity == 0 {
		asset.Adjust.Opacity = 1
	}
	page.Assets = append(page.Assets, asset)
	s.assets[asset.ID] = asset
	s.assetPage[asset.ID] = pageID
	return asset
}

// UpdateAsset applies a partial update. Locked assets ignore every patch
// except one that only clears the lock flag, which would otherwise be
// unreachable. Direct updates clamp the resulting geometry onto the page;
// history-exempt gesture updates keep their transient out-of-bounds excursion
// until pointer-up clamps them.
func (s *Store) UpdateAsset(assetID string, patch AssetPatch, opts UpdateOptions) {
	if s.locked() {
		return
	}
	asset := s.assets[assetID]
	if asset == nil {
		return
	}
	if asset.IsLocked && patch.IsLocked == nil {
		return
	}
	s.record(opts)
	patch.apply(asset)
	if !opts.SkipHistory {
		s.clampAsset(asset)
	}
}

func (s *Store) clampAsset(asset *models.Asset) {
	r := geometry.ClampToPage(geometry.Rect{
		X: asset.Geometry.X,
		Y: asset.Geometry.Y,
		W: asset.Geometry.Width,
		H: asset.Geometry.Height,
	})
	asset.Geometry.X = r.X
	asset.Geometry.Y = r.Y
	asset.Geometry.Width = r.W
	asset.Geometry.Height = r.H
}

// RemoveAsset deletes an asset from its page. Locked assets stay.
func (s *Store) RemoveAsset(assetID string) {
	if s.locked() {
		return
	}
	asset := s.assets[assetID]
	if asset == nil || asset.IsLocked {
		return
	}
	page := s.pages[s.assetPage[assetID]]
	s.record(UpdateOptions{})
	for i, a := range page.Assets {
		if a.ID == assetID {
			page.Assets = append(page.Assets[:i], page.Assets[i+1:]...)
			break
		}
	}
	delete(s.assets, assetID)
	delete(s.assetPage, assetID)
}

// DuplicateAsset clones an asset onto the same page, offset by 20 percent
// units and stacked one z step above the original. Slot bindings are not
// copied: a slot holds at most one asset.
func (s *Store) DuplicateAsset(assetID string) *models.Asset {
	if s.locked() {
		return nil
	}
	src := s.assets[assetID]
	if src == nil {
		return nil
	}
	pageID := s.assetPage[assetID]
	s.record(UpdateOptions{})
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.SlotID = nil
	dup.IsLocked = false
	dup.ZIndex = src.ZIndex + 1
	r := geometry.ClampToPage(geometry.Rect{
		X: src.Geometry.X + duplicateOffset,
		Y: src.Geometry.Y + duplicateOffset,
		W: src.Geometry.Width,
		H: src.Geometry.Height,
	})
	dup.Geometry.X = r.X
	dup.Geometry.Y = r.Y
	page := s.pages[pageID]
	page.Assets = append(page.Assets, dup)
	s.assets[dup.ID] = dup
	s.assetPage[dup.ID] = pageID
	return dup
}

// UpdatePageAssets replaces a page's asset list wholesale (template apply,
// bulk reflow).
func (s *Store) UpdatePageAssets(pageID string, assets []*models.Asset, opts UpdateOptions) {
	if s.locked() {
		return
	}
	page := s.pages[pageID]
	if page == nil {
		return
	}
	s.record(opts)
	for _, a := range page.Assets {
		delete(s.assets, a.ID)
		delete(s.assetPage, a.ID)
	}
	for _, a := range assets {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Geometry.PivotX == 0 && a.Geometry.PivotY == 0 {
			a.Geometry.PivotX = 0.5
			a.Geometry.PivotY = 0.5
		}
		if a.Adjust.Opacity == 0 {
			a.Adjust.Opacity = 1
		}
		s.assets[a.ID] = a
		s.assetPage[a.ID] = pageID
	}
	page.Assets = assets
}

// MoveAssetToPage migrates an asset to another page, replacing its x with
// the translated page-local value. The page-bounds clamp is deliberately not
// applied here: mid-drag the asset may hang over the gutter until the
// gesture ends.
func (s *Store) MoveAssetToPage(assetID, targetPageID string, newX float64, opts UpdateOptions) {
	if s.locked() {
		return
	}
	asset := s.assets[assetID]
	target := s.pages[targetPageID]
	if asset == nil || target == nil || asset.IsLocked {
		return
	}
	sourceID := s.assetPage[assetID]
	if sourceID == targetPageID {
		return
	}
	s.record(opts)
	source := s.pages[sourceID]
	for i, a := range source.Assets {
		if a.ID == assetID {
			source.Assets = append(source.Assets[:i], source.Assets[i+1:]...)
			break
		}
	}
	asset.Geometry.X = newX
	asset.SlotID = nil // slot bindings never survive a page change
	target.Assets = append(target.Assets, asset)
	s.assetPage[assetID] = targetPageID
}

// UpdateAssetZIndex moves an asset within its page's stacking order. back
// and backward clamp at 0 for assets currently at or above the baseline, so
// a foreground element is never pushed into the background band.
func (s *Store) UpdateAssetZIndex(assetID string, op ZOrderOp) {
	if s.locked() {
		return
	}
	asset := s.assets[assetID]
	if asset == nil || asset.IsLocked {
		return
	}
	page := s.pages[s.assetPage[assetID]]
	sorted := append([]*models.Asset(nil), page.Assets...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ZIndex < sorted[j].ZIndex })
	idx := -1
	for i, a := range sorted {
		if a.ID == assetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	s.record(UpdateOptions{})
	switch op {
	case ZFront:
		asset.ZIndex = sorted[len(sorted)-1].ZIndex + 1
	case ZBack:
		z := sorted[0].ZIndex - 1
		if asset.ZIndex >= 0 && z < 0 {
			z = 0
		}
		asset.ZIndex = z
	case ZForward:
		if idx < len(sorted)-1 {
			asset.ZIndex, sorted[idx+1].ZIndex = sorted[idx+1].ZIndex, asset.ZIndex
		}
	case ZBackward:
		if idx > 0 {
			neighbor := sorted[idx-1]
			z := neighbor.ZIndex
			if asset.ZIndex >= 0 && z < 0 {
				z = 0
			}
			neighbor.ZIndex = asset.ZIndex
			asset.ZIndex = z
		}
	}
}

// AddUnplacedMedia adds an item to the unplaced-media tray, which keeps
// natural filename order (IMG_2 before IMG_10).
func (s *Store) AddUnplacedMedia(item models.MediaItem) {
	if s.locked() {
		return
	}
	s.record(UpdateOptions{})
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.album.UnplacedMedia = append(s.album.UnplacedMedia, item)
	media.SortTrayNatural(s.album.UnplacedMedia)
}

// RemoveUnplacedMedia deletes a tray item outright.
func (s *Store) RemoveUnplacedMedia(id string) {
	if s.locked() {
		return
	}
	for i, item := range s.album.UnplacedMedia {
		if item.ID == id {
			s.record(UpdateOptions{})
			s.album.UnplacedMedia = append(s.album.UnplacedMedia[:i], s.album.UnplacedMedia[i+1:]...)
			return
		}
	}
}

// TakeUnplacedMedia removes and returns a tray item, typically because it
// was dropped onto a page. The removal itself is history-exempt: the drop
// that consumes it owns the undo entry.
func (s *Store) TakeUnplacedMedia(id string) (models.MediaItem, bool) {
	if s.locked() {
		return models.MediaItem{}, false
	}
	for i, item := range s.album.UnplacedMedia {
		if item.ID == id {
			s.album.UnplacedMedia = append(s.album.UnplacedMedia[:i], s.album.UnplacedMedia[i+1:]...)
			return item, true
		}
	}
	return models.MediaItem{}, false
}

// ClampAssetToPage applies the page-bounds clamp to one asset, used when a
// gesture ends after a transient out-of-bounds excursion.
func (s *Store) ClampAssetToPage(assetID string) {
	asset := s.assets[assetID]
	if asset == nil {
		return
	}
	s.clampAsset(asset)
}
