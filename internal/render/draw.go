package render

import (
	"image"
	"image/color"
	"math"
)

// blendPixel writes col over the existing pixel at the given opacity.
func blendPixel(img *image.RGBA, x, y int, col color.RGBA, opacity float64) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if opacity >= 1 {
		img.SetRGBA(x, y, col)
		return
	}
	existing := img.RGBAAt(x, y)
	inv := 1 - opacity
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*opacity + float64(existing.R)*inv),
		G: uint8(float64(col.G)*opacity + float64(existing.G)*inv),
		B: uint8(float64(col.B)*opacity + float64(existing.B)*inv),
		A: 255,
	})
}

// drawLine draws a thick line using Bresenham's algorithm, blending each
// stamped block at the given opacity.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int, opacity float64) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				blendPixel(img, x1+s, y1+t, col, opacity)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillCircle fills a circle by scanning its bounding box.
func fillCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA, opacity float64) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for y := int(cy - radius - 1); y <= int(cy+radius+1); y++ {
		for x := int(cx - radius - 1); x <= int(cx+radius+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				blendPixel(img, x, y, col, opacity)
			}
		}
	}
}

// strokeCircle draws a circle outline of the given thickness in pixels.
func strokeCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA, thickness int) {
	if radius <= 0 {
		return
	}
	outer2 := radius * radius
	inner := radius - float64(thickness)
	if inner < 0 {
		inner = 0
	}
	inner2 := inner * inner
	for y := int(cy - radius - 1); y <= int(cy+radius+1); y++ {
		for x := int(cx - radius - 1); x <= int(cx+radius+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			d2 := dx*dx + dy*dy
			if d2 <= outer2 && d2 >= inner2 {
				blendPixel(img, x, y, col, 1.0)
			}
		}
	}
}

// dashLength is the on/off arc length of dashed circles, in pixels.
const dashLength = 8.0

// drawDashedCircle draws a dashed circle outline, dashing by arc length so
// dash density is independent of radius.
func drawDashedCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA, thickness int) {
	if radius <= 0 {
		return
	}
	outer2 := radius * radius
	inner := radius - float64(thickness)
	if inner < 0 {
		inner = 0
	}
	inner2 := inner * inner
	for y := int(cy - radius - 1); y <= int(cy+radius+1); y++ {
		for x := int(cx - radius - 1); x <= int(cx+radius+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			d2 := dx*dx + dy*dy
			if d2 > outer2 || d2 < inner2 {
				continue
			}
			arc := (math.Atan2(dy, dx) + math.Pi) * radius
			if int(arc/dashLength)%2 == 0 {
				blendPixel(img, x, y, col, 1.0)
			}
		}
	}
}
