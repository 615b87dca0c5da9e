// Package app owns the authoritative editor state: the live cell
// collection, configuration, colors, selection, undo history, presets, and
// the view transform. Every state transition goes through the Store, which
// notifies registered listeners after each mutation.
package app

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"multicell/internal/layout"
	"multicell/internal/network"
	"multicell/pkg/geometry"
)

// EventType identifies the state changes listeners can subscribe to.
type EventType int

const (
	EventCellsChanged EventType = iota
	EventConfigChanged
	EventColorsChanged
	EventSelectionChanged
	EventHistoryChanged
	EventViewChanged
	EventPresetsChanged
)

// EventListener is called after the store mutation that triggered it has
// fully committed.
type EventListener func(data interface{})

// Store is the central state manager. All methods are safe for use from
// the UI event loop and background export goroutines; mutations are
// serialized by the internal mutex.
type Store struct {
	mu sync.RWMutex

	cells     []*network.Cell
	config    *network.Config
	colors    *network.ColorScheme
	selection []int

	history *History
	view    View
	rng     *rand.Rand

	presetsDir string

	// Suppresses per-delta history pushes during an interactive drag.
	dragging bool

	listeners map[EventType][]EventListener
}

// NewStore creates a store with default config and colors and an initial
// random layout.
func NewStore() *Store {
	s := &Store{
		config:    network.DefaultConfig(),
		colors:    network.DarkScheme(),
		history:   NewHistory(DefaultHistoryLimit),
		view:      NewView(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		listeners: make(map[EventType][]EventListener),
	}
	s.presetsDir = defaultPresetsDir()
	s.regenerateLocked()
	return s
}

// On registers an event listener for the specified event type.
func (s *Store) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

func (s *Store) emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Cells returns the live cell collection. Callers must treat the result as
// read-only; all mutation goes through store operations.
func (s *Store) Cells() []*network.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*network.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Config returns the live configuration (read-only for callers).
func (s *Store) Config() *network.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Colors returns the live color scheme (read-only for callers).
func (s *Store) Colors() *network.ColorScheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.colors
}

// Selection returns the selected cell ids.
func (s *Store) Selection() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.selection))
	copy(out, s.selection)
	return out
}

// snapshotLocked deep-copies the current (cells, config, colors) triple.
// Callers must hold at least the read lock.
func (s *Store) snapshotLocked() *HistoryEntry {
	return &HistoryEntry{
		Cells:  network.CloneCells(s.cells),
		Config: s.config.Clone(),
		Colors: s.colors.Clone(),
	}
}

// saveToHistory captures the pre-mutation state. Every mutating high-level
// operation calls this before touching state.
func (s *Store) saveToHistory() {
	s.history.Push(s.snapshotLocked())
}

// restore replaces live state with deep copies of a snapshot, so repeated
// undo/redo cycles cannot alias or mutate history entries.
func (s *Store) restoreLocked(e *HistoryEntry) {
	s.cells = network.CloneCells(e.Cells)
	s.config = e.Config.Clone()
	s.colors = e.Colors.Clone()
}

// SetCells replaces the whole cell collection.
func (s *Store) SetCells(cells []*network.Cell) {
	s.mu.Lock()
	s.saveToHistory()
	s.cells = cells
	s.config.CellCount = len(cells)
	s.mu.Unlock()

	s.emit(EventCellsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// Regenerate rebuilds the cell collection with the configured layout
// strategy.
func (s *Store) Regenerate() {
	s.mu.Lock()
	s.saveToHistory()
	s.regenerateLocked()
	s.mu.Unlock()

	s.emit(EventCellsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

func (s *Store) regenerateLocked() {
	cfg := s.config
	minSpacing := geometry.MinSpacing(cfg.LivingRadius, cfg.FunctionRadius, cfg.CellSpacing, cfg.WeightValues())
	centers := layout.Generate(cfg.Layout, cfg.CellCount, network.PlacementBounds(), minSpacing, s.rng)

	s.cells = make([]*network.Cell, len(centers))
	for i, center := range centers {
		s.cells[i] = network.BuildCell(i+1, cellLabel(i+1), center, cfg, s.rng)
	}
	s.selection = nil

	stats := layout.Quality(centers)
	log.Printf("layout %s: %d cells, nearest-neighbor mean=%.1f min=%.1f (min spacing %.1f)",
		cfg.Layout, len(centers), stats.MeanNearest, stats.MinNearest, minSpacing)
}

func cellLabel(id int) string {
	return fmt.Sprintf("cell %d", id)
}

// SetConfig merges a partial configuration update and recomputes geometry
// for the fields that affect it.
func (s *Store) SetConfig(update func(*network.Config)) {
	s.mu.Lock()
	s.saveToHistory()
	update(s.config)
	s.config.Normalize()
	for _, c := range s.cells {
		c.Recompute(s.config)
	}
	s.mu.Unlock()

	s.emit(EventConfigChanged, nil)
	s.emit(EventCellsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// SetWeight changes one category's weight. Because ring and border radii
// depend on the maximum weight across categories, every cell's geometry is
// recomputed.
func (s *Store) SetWeight(cat network.Category, w float64) {
	s.mu.Lock()
	s.saveToHistory()
	s.config.Weights[cat] = network.ClampWeight(w)
	for _, c := range s.cells {
		c.Recompute(s.config)
	}
	s.mu.Unlock()

	s.emit(EventConfigChanged, nil)
	s.emit(EventCellsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// SetLabel changes one category's display label.
func (s *Store) SetLabel(cat network.Category, label string) {
	s.mu.Lock()
	s.saveToHistory()
	s.config.Labels[cat] = label
	s.mu.Unlock()

	s.emit(EventConfigChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// SetVisibility shows or hides one category.
func (s *Store) SetVisibility(cat network.Category, visible bool) {
	s.mu.Lock()
	s.saveToHistory()
	s.config.Visibility[cat] = visible
	s.mu.Unlock()

	s.emit(EventConfigChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// SetCategoryColor overrides one category's colors.
func (s *Store) SetCategoryColor(cat network.Category, c network.CategoryColor) {
	s.mu.Lock()
	s.saveToHistory()
	s.colors.Categories[cat] = c
	s.mu.Unlock()

	s.emit(EventColorsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// SetColors merges a partial color-scheme update.
func (s *Store) SetColors(update func(*network.ColorScheme)) {
	s.mu.Lock()
	s.saveToHistory()
	update(s.colors)
	s.colors.Normalize()
	s.mu.Unlock()

	s.emit(EventColorsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// ToggleTheme swaps between the two built-in palettes and nothing else.
func (s *Store) ToggleTheme() {
	s.mu.Lock()
	s.saveToHistory()
	if s.config.Theme == network.ThemeDark {
		s.config.Theme = network.ThemeLight
	} else {
		s.config.Theme = network.ThemeDark
	}
	s.colors = network.SchemeForTheme(s.config.Theme)
	s.mu.Unlock()

	s.emit(EventConfigChanged, nil)
	s.emit(EventColorsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

// Select replaces the selection with a single cell id.
func (s *Store) Select(id int) {
	s.mu.Lock()
	s.selection = []int{id}
	s.mu.Unlock()
	s.emit(EventSelectionChanged, nil)
}

// SetSelection replaces the selection with an explicit id list.
func (s *Store) SetSelection(ids []int) {
	s.mu.Lock()
	s.selection = append([]int(nil), ids...)
	s.mu.Unlock()
	s.emit(EventSelectionChanged, nil)
}

// ToggleSelection adds or removes one id from the selection.
func (s *Store) ToggleSelection(id int) {
	s.mu.Lock()
	found := false
	for i, sel := range s.selection {
		if sel == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.selection = append(s.selection, id)
	}
	s.mu.Unlock()
	s.emit(EventSelectionChanged, nil)
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selection = nil
	s.mu.Unlock()
	s.emit(EventSelectionChanged, nil)
}

// BeginDrag captures history once for an interactive move; subsequent
// MoveCells calls are treated as one logical operation until EndDrag.
func (s *Store) BeginDrag() {
	s.mu.Lock()
	s.saveToHistory()
	s.dragging = true
	s.mu.Unlock()
	s.emit(EventHistoryChanged, nil)
}

// EndDrag finishes an interactive move.
func (s *Store) EndDrag() {
	s.mu.Lock()
	s.dragging = false
	s.mu.Unlock()
}

// MoveCells translates the identified cells by delta. With snap-to-grid
// enabled, the resulting centers are quantized to the grid. Outside a
// BeginDrag/EndDrag bracket the move records its own history entry.
func (s *Store) MoveCells(ids []int, delta geometry.Point) {
	s.mu.Lock()
	if !s.dragging {
		s.saveToHistory()
	}
	for _, c := range s.cells {
		if !containsID(ids, c.ID) {
			continue
		}
		target := c.Center.Add(delta)
		if s.config.SnapToGrid && s.config.GridSize > 0 {
			target = snapPoint(target, s.config.GridSize)
		}
		c.MoveTo(target)
	}
	s.mu.Unlock()

	s.emit(EventCellsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}

func snapPoint(p geometry.Point, grid float64) geometry.Point {
	return geometry.Point{
		X: math.Round(p.X/grid) * grid,
		Y: math.Round(p.Y/grid) * grid,
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// CellAt returns the topmost cell whose border circle contains p, or nil.
func (s *Store) CellAt(p geometry.Point) *network.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.cells) - 1; i >= 0; i-- {
		c := s.cells[i]
		if c.Center.Distance(p) <= c.BorderRadius {
			return c
		}
	}
	return nil
}

// Undo restores the previous history snapshot. Returns false when there is
// nothing to undo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	current := s.snapshotLocked()
	entry, ok := s.history.Undo(current)
	if ok {
		s.restoreLocked(entry)
	}
	s.mu.Unlock()

	if ok {
		s.emitAll()
	}
	return ok
}

// Redo advances to the next history snapshot if one exists.
func (s *Store) Redo() bool {
	s.mu.Lock()
	entry, ok := s.history.Redo()
	if ok {
		s.restoreLocked(entry)
	}
	s.mu.Unlock()

	if ok {
		s.emitAll()
	}
	return ok
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

func (s *Store) emitAll() {
	s.emit(EventCellsChanged, nil)
	s.emit(EventConfigChanged, nil)
	s.emit(EventColorsChanged, nil)
	s.emit(EventHistoryChanged, nil)
}
