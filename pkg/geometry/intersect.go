package geometry

import (
	"math"
	"sort"
)

// Opacity and width applied to the pieces of a connection line, depending
// on whether a piece runs through the interior of any circle.
const (
	OutsideOpacity    = 1.0
	InsideOpacity     = 0.25
	insideWidthFactor = 0.75
)

// degenerateEps guards the a≈0 case where p1 and p2 coincide and the
// quadratic collapses.
const degenerateEps = 1e-12

// Intersection is a crossing of a line segment with a circle boundary,
// expressed as a parameter t along p1→p2.
type Intersection struct {
	T        float64
	Entering bool
}

// LineCircleIntersections returns the intersections of the segment p1→p2
// with a circle, with t restricted to [0, 1]. The smaller root is tagged as
// entering, the larger as exiting. A zero-length segment yields no
// intersections.
func LineCircleIntersections(p1, p2, center Point, radius float64) []Intersection {
	d := p2.Sub(p1)
	f := p1.Sub(center)

	a := d.X*d.X + d.Y*d.Y
	if a < degenerateEps {
		return nil
	}
	b := 2 * (f.X*d.X + f.Y*d.Y)
	c := f.X*f.X + f.Y*f.Y - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	var out []Intersection
	if t1 >= 0 && t1 <= 1 {
		out = append(out, Intersection{T: t1, Entering: true})
	}
	if t2 >= 0 && t2 <= 1 {
		out = append(out, Intersection{T: t2, Entering: false})
	}
	return out
}

// LineSegment is one piece of a partitioned connection line, carrying the
// opacity and effective width it should be drawn with.
type LineSegment struct {
	From    Point
	To      Point
	Opacity float64
	Width   float64
}

// SmartLineSegments partitions the segment p1→p2 into pieces that are
// "inside" exactly while the net count of circles entered-but-not-exited is
// positive. The sweep walks all enter/exit events sorted by t ascending,
// seeded with the number of circles strictly containing p1. Pieces outside
// every circle keep full opacity and the base width; pieces inside are
// faded and thinned. Events at equal t keep insertion order (stable sort).
func SmartLineSegments(p1, p2 Point, circles []Circle, baseWidth float64) []LineSegment {
	if p1.Distance(p2) < degenerateEps {
		return nil
	}

	inside := 0
	var events []Intersection
	for _, c := range circles {
		if c.Contains(p1) {
			inside++
		}
		events = append(events, LineCircleIntersections(p1, p2, c.Center, c.Radius)...)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].T < events[j].T
	})

	var segments []LineSegment
	prev := 0.0
	emit := func(from, to float64) {
		if to-from <= 0 {
			return
		}
		seg := LineSegment{
			From:    p1.Lerp(p2, from),
			To:      p1.Lerp(p2, to),
			Opacity: OutsideOpacity,
			Width:   baseWidth,
		}
		if inside > 0 {
			seg.Opacity = InsideOpacity
			seg.Width = baseWidth * insideWidthFactor
		}
		segments = append(segments, seg)
	}

	for _, ev := range events {
		emit(prev, ev.T)
		prev = ev.T
		if ev.Entering {
			inside++
		} else if inside > 0 {
			inside--
		}
	}
	emit(prev, 1.0)

	return segments
}
