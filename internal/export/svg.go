package export

import (
	"fmt"
	"io"
	"strings"

	"multicell/internal/network"
	"multicell/internal/render"
	"multicell/pkg/geometry"
)

// svgDash is the dash pattern of cell borders, in user units.
const svgDash = "8 8"

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// WriteSVG writes the scene as a self-contained SVG document. Element
// order follows the raster renderer exactly, so vector and raster
// exports of the same state look the same.
func WriteSVG(w io.Writer, scene render.Scene, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg export: invalid size %dx%d", width, height)
	}

	s := &svgWriter{
		w:     w,
		scene: scene,
		scale: float64(width) / network.CanvasScale,
	}

	s.printf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height, width, height)
	s.printf(`  <rect width="%d" height="%d" fill="%s"/>`+"\n",
		width, height, scene.Colors.Background)

	if scene.Config.GridEnabled {
		s.grid(width, height)
	}
	if !scene.Config.LinesOnTop {
		s.connections()
	}
	s.cellBorders()
	s.livingNodes()
	s.functionNodes()
	if scene.Config.LinesOnTop {
		s.connections()
	}

	s.printf("</svg>\n")
	return s.err
}

type svgWriter struct {
	w     io.Writer
	scene render.Scene
	scale float64
	err   error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) grid(width, height int) {
	step := s.scene.Config.GridSize * s.scale
	if step < 2 {
		return
	}
	col := s.scene.Colors.Grid
	for x := 0.0; x < float64(width); x += step {
		s.printf(`  <line x1="%.2f" y1="0" x2="%.2f" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, x, height, col)
	}
	for y := 0.0; y < float64(height); y += step {
		s.printf(`  <line x1="0" y1="%.2f" x2="%d" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			y, width, y, col)
	}
}

func (s *svgWriter) connections() {
	cfg := s.scene.Config
	if !cfg.ShowInternalLines && !cfg.ShowExternalLines {
		return
	}

	var circles []geometry.Circle
	for _, c := range s.scene.Cells {
		circles = append(circles, geometry.Circle{Center: c.Center, Radius: c.LivingRadius})
		for _, fn := range c.Functions {
			if cfg.Visibility[fn.Category] {
				circles = append(circles, geometry.Circle{Center: fn.Position, Radius: fn.Radius})
			}
		}
	}

	for i, from := range s.scene.Cells {
		if cfg.ShowInternalLines {
			for _, fn := range from.Functions {
				if cfg.Visibility[fn.Category] {
					s.smartLine(from.Center, fn.Position, fn.Category, circles)
				}
			}
		}
		if cfg.ShowExternalLines {
			for j, to := range s.scene.Cells {
				if i == j {
					continue
				}
				for _, fn := range to.Functions {
					if cfg.Visibility[fn.Category] {
						s.smartLine(from.Center, fn.Position, fn.Category, circles)
					}
				}
			}
		}
	}
}

func (s *svgWriter) smartLine(from, to geometry.Point, cat network.Category, circles []geometry.Circle) {
	col := s.scene.Colors.Categories[cat].Stroke
	for _, seg := range geometry.SmartLineSegments(from, to, circles, s.scene.Config.LineWidth) {
		s.printf(`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"/>`+"\n",
			seg.From.X*s.scale, seg.From.Y*s.scale,
			seg.To.X*s.scale, seg.To.Y*s.scale,
			col, seg.Width, seg.Opacity)
	}
}

func (s *svgWriter) cellBorders() {
	col := s.scene.Colors.CellBorder
	for _, c := range s.scene.Cells {
		s.printf(`  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="%s"/>`+"\n",
			c.Center.X*s.scale, c.Center.Y*s.scale, c.BorderRadius*s.scale, col, svgDash)
	}
}

func (s *svgWriter) livingNodes() {
	fill := s.scene.Colors.LivingFill
	outline := s.scene.Colors.LivingOutline
	text := s.scene.Colors.LivingText

	for _, c := range s.scene.Cells {
		cx := c.Center.X * s.scale
		cy := c.Center.Y * s.scale
		r := c.LivingRadius * s.scale
		s.printf(`  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="3"/>`+"\n",
			cx, cy, r, fill, outline)
		s.label(c.Label, cx, cy, r, text)
	}
}

func (s *svgWriter) functionNodes() {
	for _, c := range s.scene.Cells {
		for _, fn := range c.Functions {
			if !s.scene.Config.Visibility[fn.Category] {
				continue
			}
			cc := s.scene.Colors.Categories[fn.Category]
			cx := fn.Position.X * s.scale
			cy := fn.Position.Y * s.scale
			r := fn.Radius * s.scale
			s.printf(`  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="3"/>`+"\n",
				cx, cy, r, cc.Fill, cc.Stroke)
			s.label(s.scene.Config.Labels[fn.Category], cx, cy, r, cc.Text)
		}
	}
}

func (s *svgWriter) label(text string, cx, cy, nodeRadius float64, col string) {
	if text == "" {
		return
	}
	size := nodeRadius * 0.38
	if size < 7 {
		size = 7
	}
	if size > 36 {
		size = 36
	}
	s.printf(`  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		cx, cy, size, col, svgEscaper.Replace(text))
}
