package layout

import (
	"math"
	"math/rand"
	"testing"

	"multicell/pkg/geometry"
)

func TestRandomRespectsSpacingWhenFeasible(t *testing.T) {
	// 3 points with spacing 1 in a 10x10 area: comfortably feasible.
	bounds := geometry.NewRect(0, 0, 10, 10)
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		points := Random(3, bounds, 1.0, rng)
		if len(points) != 3 {
			t.Fatalf("seed %d: expected 3 points, got %d", seed, len(points))
		}
		if !Satisfies(points, 1.0) {
			t.Errorf("seed %d: spacing violated in feasible layout: %+v", seed, points)
		}
		for _, p := range points {
			if !bounds.Contains(p) {
				t.Errorf("seed %d: point %v outside bounds", seed, p)
			}
		}
	}
}

func TestRandomDegradesToOverlapInsteadOfFailing(t *testing.T) {
	// Spacing larger than the bounds diagonal: only one point can
	// possibly satisfy it, but all requested slots must still be filled.
	bounds := geometry.NewRect(0, 0, 1, 1)
	rng := rand.New(rand.NewSource(1))
	points := Random(5, bounds, 10.0, rng)
	if len(points) != 5 {
		t.Fatalf("expected 5 points despite infeasible spacing, got %d", len(points))
	}
}

func TestGrid(t *testing.T) {
	bounds := geometry.NewRect(0, 0, 100, 100)

	t.Run("perfect square", func(t *testing.T) {
		points := Grid(9, bounds)
		if len(points) != 9 {
			t.Fatalf("expected 9 points, got %d", len(points))
		}
		// 3x3 tiling: first point at the center of the first tile.
		want := geometry.NewPoint(100.0/6, 100.0/6)
		if points[0].Distance(want) > 1e-9 {
			t.Errorf("first point %v, want %v", points[0], want)
		}
	})

	t.Run("ragged last row", func(t *testing.T) {
		points := Grid(5, bounds)
		if len(points) != 5 {
			t.Fatalf("expected 5 points, got %d", len(points))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := Grid(7, bounds)
		b := Grid(7, bounds)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("grid layout not deterministic at %d", i)
			}
		}
	})
}

func TestCircle(t *testing.T) {
	bounds := geometry.NewRect(0, 0, 100, 60)
	points := Circle(8, bounds)
	if len(points) != 8 {
		t.Fatalf("expected 8 points, got %d", len(points))
	}

	center := bounds.Center()
	wantRadius := 0.8 * 30.0 // smaller half-dimension is 30
	for i, p := range points {
		if d := center.Distance(p); math.Abs(d-wantRadius) > 1e-9 {
			t.Errorf("point %d at radius %f, want %f", i, d, wantRadius)
		}
	}
}

func TestCluster(t *testing.T) {
	bounds := geometry.NewRect(0, 0, 100, 100)
	rng := rand.New(rand.NewSource(3))
	points := Cluster(12, bounds, 5, rng)
	if len(points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(points))
	}

	// The spiral densest region is the center; the first candidate sits
	// closest to it.
	center := bounds.Center()
	if points[0].Distance(center) > points[len(points)-1].Distance(center) {
		t.Errorf("spiral should grow outward: first %v, last %v", points[0], points[len(points)-1])
	}
}

func TestQuality(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		if s := Quality([]geometry.Point{{X: 1, Y: 1}}); s != (Stats{}) {
			t.Errorf("expected zero stats, got %+v", s)
		}
	})

	t.Run("unit square corners", func(t *testing.T) {
		points := []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
		s := Quality(points)
		if math.Abs(s.MeanNearest-1) > 1e-9 || math.Abs(s.MinNearest-1) > 1e-9 {
			t.Errorf("corner grid nearest-neighbor should be 1, got %+v", s)
		}
		if s.StddevNearest > 1e-9 {
			t.Errorf("uniform spacing should have zero stddev, got %f", s.StddevNearest)
		}
	})
}
