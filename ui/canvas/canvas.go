// Package canvas provides the interactive network view. The widget
// rasterizes the store state on every refresh and translates mouse input
// into store operations.
package canvas

import (
	"context"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"multicell/internal/app"
	"multicell/internal/export"
	"multicell/internal/network"
	"multicell/internal/render"
	"multicell/pkg/geometry"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragPan
	dragMove
)

// NetworkCanvas displays the network with pan, zoom, selection, and cell
// dragging. Wheel zooms; dragging empty space pans, dragging a cell moves
// it (or the whole selection when the cell is part of it).
type NetworkCanvas struct {
	widget.BaseWidget

	store  *app.Store
	raster *fynecanvas.Raster

	mu         sync.Mutex
	progress   float64
	lastWidth  int
	mode       dragMode
	dragIDs    []int
	animCancel context.CancelFunc
}

// NewNetworkCanvas creates the canvas bound to a store.
func NewNetworkCanvas(store *app.Store) *NetworkCanvas {
	nc := &NetworkCanvas{
		store:    store,
		progress: 1,
	}
	nc.raster = fynecanvas.NewRaster(nc.draw)
	nc.raster.ScaleMode = fynecanvas.ImageScalePixels
	nc.raster.SetMinSize(fyne.NewSize(600, 600))
	nc.ExtendBaseWidget(nc)
	return nc
}

func (nc *NetworkCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(nc.raster)
}

// Refresh redraws the raster from current store state.
func (nc *NetworkCanvas) Refresh() {
	nc.raster.Refresh()
	nc.BaseWidget.Refresh()
}

// draw is the raster drawing function.
func (nc *NetworkCanvas) draw(w, h int) image.Image {
	nc.mu.Lock()
	nc.lastWidth = w
	progress := nc.progress
	nc.mu.Unlock()

	view := nc.store.View()
	return render.Render(render.Scene{
		Cells:  nc.store.Cells(),
		Config: nc.store.Config(),
		Colors: nc.store.Colors(),
	}, render.Options{
		Width:     w,
		Height:    h,
		Zoom:      view.Zoom,
		Pan:       view.Pan,
		Progress:  progress,
		Selection: nc.store.Selection(),
	})
}

// viewScale returns the current pixels-per-network-unit factor.
func (nc *NetworkCanvas) viewScale() float64 {
	nc.mu.Lock()
	w := nc.lastWidth
	nc.mu.Unlock()
	if w == 0 {
		w = int(nc.Size().Width)
	}
	if w == 0 {
		w = 600
	}
	return nc.store.View().Zoom * float64(w) / network.CanvasScale
}

// toNetwork converts a widget position to network coordinates.
func (nc *NetworkCanvas) toNetwork(pos fyne.Position) geometry.Point {
	view := nc.store.View()
	scale := nc.viewScale()
	return geometry.NewPoint(
		(float64(pos.X)-view.Pan.X)/scale,
		(float64(pos.Y)-view.Pan.Y)/scale,
	)
}

// Scrolled zooms with the mouse wheel.
func (nc *NetworkCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		nc.store.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		nc.store.ZoomOut()
	}
}

// Tapped selects the cell under the pointer, or clears the selection.
func (nc *NetworkCanvas) Tapped(ev *fyne.PointEvent) {
	if cell := nc.store.CellAt(nc.toNetwork(ev.Position)); cell != nil {
		nc.store.Select(cell.ID)
	} else {
		nc.store.ClearSelection()
	}
}

// DoubleTapped centers the view on the cell under the pointer.
func (nc *NetworkCanvas) DoubleTapped(ev *fyne.PointEvent) {
	cell := nc.store.CellAt(nc.toNetwork(ev.Position))
	if cell == nil {
		return
	}
	size := nc.Size()
	nc.store.FocusCell(cell.ID, float64(size.Width), float64(size.Height))
}

// TappedSecondary toggles a cell in or out of the selection.
func (nc *NetworkCanvas) TappedSecondary(ev *fyne.PointEvent) {
	if cell := nc.store.CellAt(nc.toNetwork(ev.Position)); cell != nil {
		nc.store.ToggleSelection(cell.ID)
	}
}

// Dragged pans the view or moves cells, decided by what was under the
// pointer when the drag started.
func (nc *NetworkCanvas) Dragged(ev *fyne.DragEvent) {
	nc.mu.Lock()
	mode := nc.mode
	nc.mu.Unlock()

	if mode == dragNone {
		start := fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		}
		if cell := nc.store.CellAt(nc.toNetwork(start)); cell != nil {
			ids := nc.store.Selection()
			if !containsID(ids, cell.ID) {
				nc.store.Select(cell.ID)
				ids = []int{cell.ID}
			}
			nc.mu.Lock()
			nc.mode = dragMove
			nc.dragIDs = ids
			nc.mu.Unlock()
			nc.store.BeginDrag()
			mode = dragMove
		} else {
			nc.mu.Lock()
			nc.mode = dragPan
			nc.mu.Unlock()
			mode = dragPan
		}
	}

	switch mode {
	case dragMove:
		scale := nc.viewScale()
		nc.mu.Lock()
		ids := nc.dragIDs
		nc.mu.Unlock()
		nc.store.MoveCells(ids, geometry.NewPoint(
			float64(ev.Dragged.DX)/scale,
			float64(ev.Dragged.DY)/scale,
		))
	case dragPan:
		nc.store.PanBy(geometry.NewPoint(float64(ev.Dragged.DX), float64(ev.Dragged.DY)))
	}
}

// DragEnd closes the interactive move so it lands as one history entry.
func (nc *NetworkCanvas) DragEnd() {
	nc.mu.Lock()
	mode := nc.mode
	nc.mode = dragNone
	nc.dragIDs = nil
	nc.mu.Unlock()

	if mode == dragMove {
		nc.store.EndDrag()
	}
}

// Progress returns the current connection-draw progress.
func (nc *NetworkCanvas) Progress() float64 {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.progress
}

// SetProgress sets the connection-draw progress and redraws.
func (nc *NetworkCanvas) SetProgress(p float64) {
	nc.mu.Lock()
	nc.progress = p
	nc.mu.Unlock()
	nc.raster.Refresh()
}

// PlayAnimation replays the connection-draw animation. A run already in
// flight is cancelled first.
func (nc *NetworkCanvas) PlayAnimation() {
	nc.mu.Lock()
	if nc.animCancel != nil {
		nc.animCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	nc.animCancel = cancel
	nc.mu.Unlock()

	anim := &export.Animator{
		Duration: nc.store.Config().AnimationDuration,
		OnFrame:  nc.SetProgress,
	}
	go func() {
		defer cancel()
		if err := anim.Run(ctx); err != nil {
			nc.SetProgress(1)
		}
	}()
}

// StopAnimation cancels a running animation and restores full lines.
func (nc *NetworkCanvas) StopAnimation() {
	nc.mu.Lock()
	cancel := nc.animCancel
	nc.animCancel = nil
	nc.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	nc.SetProgress(1)
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
