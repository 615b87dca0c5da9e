package geometry

import (
	"math"
	"math/rand"
)

const (
	// ringGapFactor is the gap between the living node and the function
	// ring, as a fraction of the living radius.
	ringGapFactor = 0.15

	// borderPadFactor is the padding band between the outermost function
	// node and the cell border, as a fraction of the living radius.
	borderPadFactor = 0.10
)

// MaxWeight returns the largest weight, floored at 1.0. Weights below 1.0
// never shrink the ring; only weights above 1.0 expand it, so a single
// down-weighted category cannot push function nodes into the living node.
func MaxWeight(weights []float64) float64 {
	maxW := 1.0
	for _, w := range weights {
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}

// FunctionRingRadius returns the distance from a cell center at which all
// function-node centers sit.
func FunctionRingRadius(livingRadius, functionRadius float64, weights []float64) float64 {
	return livingRadius + ringGapFactor*livingRadius + functionRadius*MaxWeight(weights)
}

// CellBorderRadius returns the radius of the smallest circle containing
// every weight-scaled function node plus the fixed padding band.
func CellBorderRadius(livingRadius, functionRadius float64, weights []float64) float64 {
	ring := FunctionRingRadius(livingRadius, functionRadius, weights)
	return ring + functionRadius*MaxWeight(weights) + borderPadFactor*livingRadius
}

// FunctionPositions places len(weights) points evenly around center at the
// function ring radius. The start angle is drawn uniformly from [0, 2π), so
// two calls with identical inputs differ by a rotation; the rng is an
// explicit parameter so callers can fix a seed.
func FunctionPositions(center Point, livingRadius, functionRadius float64, weights []float64, rng *rand.Rand) []Point {
	n := len(weights)
	if n == 0 {
		return nil
	}
	ring := FunctionRingRadius(livingRadius, functionRadius, weights)
	start := rng.Float64() * 2 * math.Pi
	step := 2 * math.Pi / float64(n)

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		angle := start + float64(i)*step
		points[i] = Point{
			X: center.X + ring*math.Cos(angle),
			Y: center.Y + ring*math.Sin(angle),
		}
	}
	return points
}

// MinSpacing returns the center-to-center distance at which two same-sized
// cells' border circles never touch, plus a configurable fractional buffer.
// Placement never relaxes this value, even when it makes a layout infeasible.
func MinSpacing(livingRadius, functionRadius, cellSpacing float64, weights []float64) float64 {
	border := CellBorderRadius(livingRadius, functionRadius, weights)
	return 2*border + cellSpacing*border
}
