package app

import (
	"multicell/internal/network"
	"multicell/pkg/geometry"
)

// Zoom limits and the multiplicative step applied by ZoomIn/ZoomOut.
const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	ZoomStep = 1.25
)

// View is the camera state: zoom and pan, independent of the data model.
type View struct {
	Zoom float64
	Pan  geometry.Point
}

// NewView returns the identity view.
func NewView() View {
	return View{Zoom: 1.0}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// View returns the current camera state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// ZoomIn applies one multiplicative zoom step.
func (s *Store) ZoomIn() {
	s.mu.Lock()
	s.view.Zoom = clampZoom(s.view.Zoom * ZoomStep)
	s.mu.Unlock()
	s.emit(EventViewChanged, nil)
}

// ZoomOut applies one multiplicative zoom step outward.
func (s *Store) ZoomOut() {
	s.mu.Lock()
	s.view.Zoom = clampZoom(s.view.Zoom / ZoomStep)
	s.mu.Unlock()
	s.emit(EventViewChanged, nil)
}

// PanBy shifts the camera by a pure additive offset.
func (s *Store) PanBy(delta geometry.Point) {
	s.mu.Lock()
	s.view.Pan = s.view.Pan.Add(delta)
	s.mu.Unlock()
	s.emit(EventViewChanged, nil)
}

// SetView sets the camera directly: zoom is clamped, pan is applied
// unclamped. Used by auto-fit and focus-to-cell.
func (s *Store) SetView(zoom float64, pan geometry.Point) {
	s.mu.Lock()
	s.view.Zoom = clampZoom(zoom)
	s.view.Pan = pan
	s.mu.Unlock()
	s.emit(EventViewChanged, nil)
}

// ResetView restores the identity camera.
func (s *Store) ResetView() {
	s.mu.Lock()
	s.view = NewView()
	s.mu.Unlock()
	s.emit(EventViewChanged, nil)
}

// FocusCell centers the view on one cell at the current zoom, given the
// viewport size in pixels.
func (s *Store) FocusCell(id int, viewportW, viewportH float64) {
	s.mu.Lock()
	var target *network.Cell
	for _, c := range s.cells {
		if c.ID == id {
			target = c
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return
	}
	scale := s.view.Zoom * viewportW / network.CanvasScale
	s.view.Pan = geometry.Point{
		X: viewportW/2 - target.Center.X*scale,
		Y: viewportH/2 - target.Center.Y*scale,
	}
	s.mu.Unlock()
	s.emit(EventViewChanged, nil)
}
