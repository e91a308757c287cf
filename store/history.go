package store

import "github.com/camden-git/albumlayout/models"

// DefaultHistoryLimit caps the undo stack depth.
const DefaultHistoryLimit = 50

// History is a linear undo/redo stack of full Album snapshots. Snapshots are
// deep copies taken before a mutation; restoring one replaces the working
// album wholesale. Any new recorded mutation clears the redo stack.
type History struct {
	undo  []*models.Album
	redo  []*models.Album
	limit int
}

// NewHistory creates a history with the given snapshot cap; a non-positive
// limit falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record pushes a pre-mutation snapshot onto the undo stack and clears redo.
// The oldest entry is dropped once the cap is reached.
func (h *History) Record(snapshot *models.Album) {
	h.undo = append(h.undo, snapshot)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo exchanges the current state for the most recent snapshot. It returns
// (nil, false) when the undo stack is empty.
func (h *History) Undo(current *models.Album) (*models.Album, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return last, true
}

// Redo exchanges the current state for the most recently undone snapshot. It
// returns (nil, false) when the redo stack is empty.
func (h *History) Redo(current *models.Album) (*models.Album, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return last, true
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the current undo stack depth.
func (h *History) Depth() int { return len(h.undo) }
