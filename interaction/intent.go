package interaction

import (
	"github.com/camden-git/albumlayout/layout"
	"github.com/camden-git/albumlayout/models"
)

// Intent is a typed editor command. Gesture capture produces intents; the
// Dispatcher is the single place they turn into mutations, so render layers
// never thread mutation callbacks through to each other.
type Intent interface {
	isIntent()
}

// MoveAsset drags an asset. The first intent of a gesture starts it; later
// ones feed the active gesture.
type MoveAsset struct {
	AssetID string
	Ptr     Pointer
}

// ResizeAsset drags one of the eight resize handles.
type ResizeAsset struct {
	AssetID string
	Handle  Handle
	Ptr     Pointer
}

// RotateAsset drags the rotation handle.
type RotateAsset struct {
	AssetID string
	Ptr     Pointer
}

// SetPivot repositions the rotation/scale anchor.
type SetPivot struct {
	AssetID string
	Ptr     Pointer
}

// EndGesture is the pointer-up of whatever gesture is active.
type EndGesture struct {
	Ptr Pointer
}

// FillSlot drops media into a declared empty slot.
type FillSlot struct {
	PageID string
	SlotID string
	Media  layout.DroppedMedia
}

// CreateAsset drops media at a page-local point, resolving placeholder,
// slot or freeform placement.
type CreateAsset struct {
	PageID string
	X, Y   float64
	Media  layout.DroppedMedia
}

func (MoveAsset) isIntent()   {}
func (ResizeAsset) isIntent() {}
func (RotateAsset) isIntent() {}
func (SetPivot) isIntent()    {}
func (EndGesture) isIntent()  {}
func (FillSlot) isIntent()    {}
func (CreateAsset) isIntent() {}

// Dispatcher consumes intents against one engine and one drop resolver.
type Dispatcher struct {
	Engine   *Engine
	Resolver *layout.Resolver

	// Binder, when set, scopes pointer capture for gestures started through
	// the dispatcher.
	Binder Binder
}

// Dispatch applies one intent. The returned asset is the one affected by a
// drop intent; gesture intents return nil.
func (d *Dispatcher) Dispatch(it Intent) *models.Asset {
	switch v := it.(type) {
	case MoveAsset:
		d.gesture(v.AssetID, GestureMove, "", v.Ptr)
	case ResizeAsset:
		d.gesture(v.AssetID, GestureResize, v.Handle, v.Ptr)
	case RotateAsset:
		d.gesture(v.AssetID, GestureRotate, "", v.Ptr)
	case SetPivot:
		d.gesture(v.AssetID, GesturePivot, "", v.Ptr)
	case EndGesture:
		d.Engine.OnPointerUp(v.Ptr)
	case FillSlot:
		return d.Resolver.FillSlot(v.PageID, v.SlotID, v.Media)
	case CreateAsset:
		return d.Resolver.ResolveDrop(v.PageID, v.X, v.Y, v.Media)
	}
	return nil
}

func (d *Dispatcher) gesture(assetID string, mode GestureMode, handle Handle, ptr Pointer) {
	if d.Engine.IsActive() {
		d.Engine.OnPointerMove(ptr)
		return
	}
	d.Engine.Begin(assetID, mode, handle, ptr, d.Binder)
}
