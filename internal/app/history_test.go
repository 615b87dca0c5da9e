package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicell/internal/network"
	"multicell/pkg/geometry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.SetPresetsDir(t.TempDir())
	return s
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newTestStore(t)

	before, err := s.ExportJSON()
	require.NoError(t, err)

	s.SetWeight(network.CategoryWater, 1.8)
	after, err := s.ExportJSON()
	require.NoError(t, err)
	require.NotEqual(t, string(before), string(after))

	require.True(t, s.Undo())
	undone, err := s.ExportJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(undone), "undo should restore the pre-mutation state")

	require.True(t, s.Redo())
	redone, err := s.ExportJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(after), string(redone), "redo should restore the post-mutation state")
}

func TestUndoRestoresDeepCopies(t *testing.T) {
	s := newTestStore(t)
	s.SetWeight(network.CategoryTree, 1.5)

	require.True(t, s.Undo())

	// Mutating the restored live state must not leak into history.
	s.Cells()[0].Center = geometry.NewPoint(-1, -1)
	require.True(t, s.Redo())
	require.True(t, s.Undo())
	assert.NotEqual(t, geometry.NewPoint(-1, -1), s.Cells()[0].Center,
		"history entry was aliased by live state")
}

func TestHistoryCap(t *testing.T) {
	h := NewHistory(5)
	mk := func(count int) *HistoryEntry {
		return &HistoryEntry{
			Cells:  nil,
			Config: &network.Config{CellCount: count},
			Colors: network.DarkScheme(),
		}
	}

	for i := 0; i < 20; i++ {
		h.Push(mk(i))
	}
	assert.Equal(t, 5, h.Len(), "stack must never exceed its cap")

	// Oldest entries evicted first: the remaining stack holds 15..19.
	entry, ok := h.Undo(mk(20))
	require.True(t, ok)
	assert.Equal(t, 19, entry.Config.CellCount)
}

func TestRedoTailDiscardedOnPush(t *testing.T) {
	h := NewHistory(10)
	mk := func(count int) *HistoryEntry {
		return &HistoryEntry{Config: &network.Config{CellCount: count}, Colors: network.DarkScheme()}
	}

	h.Push(mk(1))
	h.Push(mk(2))
	_, ok := h.Undo(mk(3))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	// A new push after an undo must truncate the redo tail.
	h.Push(mk(4))
	assert.False(t, h.CanRedo())
}

func TestUndoEmptyHistory(t *testing.T) {
	h := NewHistory(5)
	_, ok := h.Undo(&HistoryEntry{})
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}
