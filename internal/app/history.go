package app

import (
	"multicell/internal/network"
)

// DefaultHistoryLimit caps the undo stack; oldest entries are evicted first.
const DefaultHistoryLimit = 50

// HistoryEntry is an immutable deep snapshot of the editable state triple.
type HistoryEntry struct {
	Cells  []*network.Cell       `json:"cells"`
	Config *network.Config       `json:"config"`
	Colors *network.ColorScheme  `json:"colors"`
}

// History is a bounded linear undo stack with a cursor. Pushing truncates
// any redo tail, appends, then evicts the oldest entry past the cap.
type History struct {
	entries []*HistoryEntry
	cursor  int
	limit   int
}

// NewHistory creates an empty history bounded to limit entries.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{cursor: -1, limit: limit}
}

// Push records a pre-mutation snapshot. Entries past the cursor (the redo
// tail) are discarded first.
func (h *History) Push(e *HistoryEntry) {
	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns the snapshot to restore. When the
// cursor sits at the top of the stack, the caller's current state is pushed
// first so it survives being undone past (and remains reachable via Redo).
func (h *History) Undo(current *HistoryEntry) (*HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return nil, false
	}
	if h.cursor == len(h.entries)-1 {
		h.entries = append(h.entries, current)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
		h.cursor = len(h.entries) - 1
	}
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo advances the cursor and returns the snapshot to restore, if the
// cursor is not already at the last entry.
func (h *History) Redo() (*HistoryEntry, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// CanUndo reports whether stepping back is possible.
func (h *History) CanUndo() bool {
	if len(h.entries) == 0 {
		return false
	}
	if h.cursor == len(h.entries)-1 {
		// An undo from the top would first push current state, then
		// step back onto the existing top.
		return true
	}
	return h.cursor > 0
}

// CanRedo reports whether stepping forward is possible.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}
