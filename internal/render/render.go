// Package render draws the multicell network to an RGBA surface. The same
// renderer backs the live canvas, PNG export, and animated-export frames,
// so every consumer sees identical output.
package render

import (
	"image"
	"image/color"

	"multicell/internal/network"
	"multicell/pkg/geometry"
)

// Options controls a single render pass.
type Options struct {
	Width  int
	Height int

	// Camera.
	Zoom float64
	Pan  geometry.Point

	// Connection-draw animation progress in [0, 1]; 0 draws no lines,
	// out-of-range values draw full lines.
	Progress float64

	// Selected cell ids, highlighted with a selection ring.
	Selection []int
}

// Scene bundles the state triple a render pass reads.
type Scene struct {
	Cells  []*network.Cell
	Config *network.Config
	Colors *network.ColorScheme
}

// Render draws the scene and returns the surface. Stacking order:
// background, grid, under-lines, cell borders, living nodes and labels,
// function nodes and labels, over-lines, selection rings.
func Render(scene Scene, opts Options) *image.RGBA {
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	if opts.Progress < 0 || opts.Progress > 1 {
		opts.Progress = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	r := &pass{
		img:   img,
		scene: scene,
		opts:  opts,
		scale: opts.Zoom * float64(opts.Width) / network.CanvasScale,
	}

	r.fill(network.ParseHex(scene.Colors.Background))
	if scene.Config.GridEnabled {
		r.drawGrid()
	}
	if !scene.Config.LinesOnTop {
		r.drawConnections()
	}
	r.drawCellBorders()
	r.drawLivingNodes()
	r.drawFunctionNodes()
	if scene.Config.LinesOnTop {
		r.drawConnections()
	}
	r.drawSelection()

	return img
}

type pass struct {
	img   *image.RGBA
	scene Scene
	opts  Options
	scale float64
}

// toScreen maps a network-space point to pixel coordinates.
func (r *pass) toScreen(p geometry.Point) (float64, float64) {
	return p.X*r.scale + r.opts.Pan.X, p.Y*r.scale + r.opts.Pan.Y
}

func (r *pass) fill(col color.RGBA) {
	b := r.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.img.SetRGBA(x, y, col)
		}
	}
}

func (r *pass) drawGrid() {
	col := network.ParseHex(r.scene.Colors.Grid)
	step := r.scene.Config.GridSize * r.scale
	if step < 2 {
		return
	}
	b := r.img.Bounds()

	for x := r.opts.Pan.X; x < float64(b.Max.X); x += step {
		if x < 0 {
			continue
		}
		drawLine(r.img, int(x), b.Min.Y, int(x), b.Max.Y-1, col, 1, 1.0)
	}
	for y := r.opts.Pan.Y; y < float64(b.Max.Y); y += step {
		if y < 0 {
			continue
		}
		drawLine(r.img, b.Min.X, int(y), b.Max.X-1, int(y), col, 1, 1.0)
	}
}

// obstacles returns every living and visible function circle; connection
// lines fade while traversing any of them.
func (r *pass) obstacles() []geometry.Circle {
	var circles []geometry.Circle
	for _, c := range r.scene.Cells {
		circles = append(circles, geometry.Circle{Center: c.Center, Radius: c.LivingRadius})
		for _, fn := range c.Functions {
			if !r.scene.Config.Visibility[fn.Category] {
				continue
			}
			circles = append(circles, geometry.Circle{Center: fn.Position, Radius: fn.Radius})
		}
	}
	return circles
}

func (r *pass) drawConnections() {
	cfg := r.scene.Config
	if !cfg.ShowInternalLines && !cfg.ShowExternalLines || r.opts.Progress == 0 {
		return
	}
	circles := r.obstacles()

	for i, from := range r.scene.Cells {
		if cfg.ShowInternalLines {
			for _, fn := range from.Functions {
				if cfg.Visibility[fn.Category] {
					r.drawSmartLine(from.Center, fn.Position, fn.Category, circles)
				}
			}
		}
		if cfg.ShowExternalLines {
			for j, to := range r.scene.Cells {
				if i == j {
					continue
				}
				for _, fn := range to.Functions {
					if cfg.Visibility[fn.Category] {
						r.drawSmartLine(from.Center, fn.Position, fn.Category, circles)
					}
				}
			}
		}
	}
}

// drawSmartLine draws one connection, truncated to the animation progress
// and partitioned by the circle sweep into faded and opaque pieces.
func (r *pass) drawSmartLine(from, to geometry.Point, cat network.Category, circles []geometry.Circle) {
	end := from.Lerp(to, r.opts.Progress)
	col := network.ParseHex(r.scene.Colors.Categories[cat].Stroke)

	for _, seg := range geometry.SmartLineSegments(from, end, circles, r.scene.Config.LineWidth) {
		x1, y1 := r.toScreen(seg.From)
		x2, y2 := r.toScreen(seg.To)
		width := int(seg.Width * r.opts.Zoom)
		if width < 1 {
			width = 1
		}
		drawLine(r.img, int(x1), int(y1), int(x2), int(y2), col, width, seg.Opacity)
	}
}

func (r *pass) drawCellBorders() {
	col := network.ParseHex(r.scene.Colors.CellBorder)
	for _, c := range r.scene.Cells {
		cx, cy := r.toScreen(c.Center)
		drawDashedCircle(r.img, cx, cy, c.BorderRadius*r.scale, col, 2)
	}
}

func (r *pass) drawLivingNodes() {
	fill := network.ParseHex(r.scene.Colors.LivingFill)
	outline := network.ParseHex(r.scene.Colors.LivingOutline)
	text := network.ParseHex(r.scene.Colors.LivingText)

	for _, c := range r.scene.Cells {
		cx, cy := r.toScreen(c.Center)
		radius := c.LivingRadius * r.scale
		fillCircle(r.img, cx, cy, radius, fill, 1.0)
		strokeCircle(r.img, cx, cy, radius, outline, 3)
		drawLabel(r.img, c.Label, cx, cy, labelSize(radius), text)
	}
}

func (r *pass) drawFunctionNodes() {
	for _, c := range r.scene.Cells {
		for _, fn := range c.Functions {
			if !r.scene.Config.Visibility[fn.Category] {
				continue
			}
			cc := r.scene.Colors.Categories[fn.Category]
			cx, cy := r.toScreen(fn.Position)
			radius := fn.Radius * r.scale

			fillCircle(r.img, cx, cy, radius, network.ParseHex(cc.Fill), 1.0)
			strokeCircle(r.img, cx, cy, radius, network.ParseHex(cc.Stroke), 3)
			drawLabel(r.img, r.scene.Config.Labels[fn.Category], cx, cy, labelSize(radius), network.ParseHex(cc.Text))
		}
	}
}

func (r *pass) drawSelection() {
	if len(r.opts.Selection) == 0 {
		return
	}
	selected := make(map[int]bool, len(r.opts.Selection))
	for _, id := range r.opts.Selection {
		selected[id] = true
	}
	col := color.RGBA{R: 255, G: 255, B: 0, A: 255}
	for _, c := range r.scene.Cells {
		if !selected[c.ID] {
			continue
		}
		cx, cy := r.toScreen(c.Center)
		strokeCircle(r.img, cx, cy, c.BorderRadius*r.scale+4, col, 2)
	}
}

// labelSize keeps label text proportional to its node, with a floor so
// labels stay legible when zoomed out.
func labelSize(nodeRadiusPx float64) float64 {
	size := nodeRadiusPx * 0.38
	if size < 7 {
		size = 7
	}
	if size > 36 {
		size = 36
	}
	return size
}
