package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"multicell/pkg/geometry"
)

// Stats summarizes nearest-neighbor distances of a placement. The store
// logs these after regeneration so degraded (overlapping) layouts are
// observable without turning them into errors.
type Stats struct {
	MeanNearest   float64
	MinNearest    float64
	StddevNearest float64
}

// Quality computes nearest-neighbor statistics for a set of centers.
// Fewer than two points yield zero stats.
func Quality(points []geometry.Point) Stats {
	if len(points) < 2 {
		return Stats{}
	}

	nearest := make([]float64, len(points))
	for i, p := range points {
		best := math.Inf(1)
		for j, q := range points {
			if i == j {
				continue
			}
			if d := p.Distance(q); d < best {
				best = d
			}
		}
		nearest[i] = best
	}

	return Stats{
		MeanNearest:   stat.Mean(nearest, nil),
		MinNearest:    floats.Min(nearest),
		StddevNearest: stat.StdDev(nearest, nil),
	}
}

// Satisfies reports whether every pairwise distance meets minSpacing.
func Satisfies(points []geometry.Point, minSpacing float64) bool {
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Distance(points[j]) < minSpacing {
				return false
			}
		}
	}
	return true
}
