// Package layout places cell centers inside a rectangular bound using one
// of four strategies. Placement is best-effort by design: when the
// requested count cannot fit at the required spacing, generators degrade to
// overlapping output instead of failing, and the visual overlap is the
// user-facing signal.
package layout

import (
	"math"
	"math/rand"

	"multicell/pkg/geometry"
)

// maxAttempts is the per-candidate budget for rejection sampling before a
// slot is filled unconditionally.
const maxAttempts = 10000

// goldenAngle is π(3−√5), the turn between consecutive spiral candidates.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Generate dispatches to the named strategy. Unknown names fall back to
// random placement.
func Generate(kind string, count int, bounds geometry.Rect, minSpacing float64, rng *rand.Rand) []geometry.Point {
	switch kind {
	case "grid":
		return Grid(count, bounds)
	case "circle":
		return Circle(count, bounds)
	case "cluster":
		return Cluster(count, bounds, minSpacing, rng)
	default:
		return Random(count, bounds, minSpacing, rng)
	}
}

// Random samples uniform points inside bounds, accepting each candidate
// only if it keeps minSpacing to every accepted point. After maxAttempts
// rejections the remaining slots are placed unconditionally; the spacing
// constraint itself is never relaxed.
func Random(count int, bounds geometry.Rect, minSpacing float64, rng *rand.Rand) []geometry.Point {
	points := make([]geometry.Point, 0, count)
	for len(points) < count {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			p := randomIn(bounds, rng)
			if spacedFrom(p, points, minSpacing) {
				points = append(points, p)
				placed = true
				break
			}
		}
		if !placed {
			// Infeasible density: fill the slot anyway and let the
			// overlap show.
			points = append(points, randomIn(bounds, rng))
		}
	}
	return points
}

// Grid tiles bounds into ceil(sqrt(count)) columns and places each point at
// the center of its grid rectangle. No spacing check.
func Grid(count int, bounds geometry.Rect) []geometry.Point {
	if count <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := int(math.Ceil(float64(count) / float64(cols)))
	cellW := bounds.Width / float64(cols)
	cellH := bounds.Height / float64(rows)

	points := make([]geometry.Point, 0, count)
	for i := 0; i < count; i++ {
		col := i % cols
		row := i / cols
		points = append(points, geometry.Point{
			X: bounds.X + (float64(col)+0.5)*cellW,
			Y: bounds.Y + (float64(row)+0.5)*cellH,
		})
	}
	return points
}

// Circle spaces count points evenly around the bounds center at 80% of the
// smaller half-dimension.
func Circle(count int, bounds geometry.Rect) []geometry.Point {
	if count <= 0 {
		return nil
	}
	center := bounds.Center()
	radius := 0.8 * math.Min(bounds.Width, bounds.Height) / 2

	points := make([]geometry.Point, count)
	for i := 0; i < count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(count)
		points[i] = geometry.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return points
}

// Cluster lays points on a golden-angle spiral for a dense-center
// distribution. A candidate colliding with an already placed point gets a
// single random nudge of up to minSpacing; there is no retry loop, so the
// spacing invariant is not guaranteed for every pair.
func Cluster(count int, bounds geometry.Rect, minSpacing float64, rng *rand.Rand) []geometry.Point {
	if count <= 0 {
		return nil
	}
	center := bounds.Center()
	maxRadius := 0.8 * math.Min(bounds.Width, bounds.Height) / 2

	points := make([]geometry.Point, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) * goldenAngle
		radius := maxRadius * math.Sqrt((float64(i)+0.5)/float64(count))
		p := geometry.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		if !spacedFrom(p, points, minSpacing) {
			p = geometry.Point{
				X: p.X + (rng.Float64()*2-1)*minSpacing,
				Y: p.Y + (rng.Float64()*2-1)*minSpacing,
			}
		}
		points = append(points, p)
	}
	return points
}

func randomIn(bounds geometry.Rect, rng *rand.Rand) geometry.Point {
	return geometry.Point{
		X: bounds.X + rng.Float64()*bounds.Width,
		Y: bounds.Y + rng.Float64()*bounds.Height,
	}
}

func spacedFrom(p geometry.Point, existing []geometry.Point, minSpacing float64) bool {
	for _, q := range existing {
		if p.Distance(q) < minSpacing {
			return false
		}
	}
	return true
}
