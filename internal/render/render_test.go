package render

import (
	"image/color"
	"math/rand"
	"testing"

	"multicell/internal/network"
	"multicell/pkg/geometry"
)

func testScene() Scene {
	cfg := network.DefaultConfig()
	cfg.ShowInternalLines = false
	cfg.ShowExternalLines = false
	rng := rand.New(rand.NewSource(11))
	cell := network.BuildCell(1, "cell 1", geometry.NewPoint(500, 500), cfg, rng)
	return Scene{
		Cells:  []*network.Cell{cell},
		Config: cfg,
		Colors: network.DarkScheme(),
	}
}

func TestRenderBackgroundAndLivingNode(t *testing.T) {
	scene := testScene()
	img := Render(scene, Options{Width: 100, Height: 100})

	if got := img.RGBAAt(1, 1); got != network.ParseHex(scene.Colors.Background) {
		t.Errorf("corner pixel %v, want background %v", got, scene.Colors.Background)
	}

	// Scale is 0.1, so the living node is a 10px circle at (50, 50).
	// Sample below the label text, inside the fill but short of the
	// 3px outline band.
	if got := img.RGBAAt(50, 55); got != network.ParseHex(scene.Colors.LivingFill) {
		t.Errorf("living-node pixel %v, want fill %v", got, scene.Colors.LivingFill)
	}
}

func TestRenderWithConnectionsAndSelection(t *testing.T) {
	scene := testScene()
	scene.Config.ShowInternalLines = true
	scene.Config.GridEnabled = true

	// Must not panic at any animation progress, including out-of-range.
	for _, progress := range []float64{-1, 0, 0.25, 0.5, 1, 2} {
		Render(scene, Options{
			Width:     200,
			Height:    200,
			Progress:  progress,
			Selection: []int{1},
			Zoom:      1.5,
			Pan:       geometry.NewPoint(-20, 10),
		})
	}
}

func TestRenderHiddenCategoryDrawsNoNode(t *testing.T) {
	scene := testScene()
	scene.Config.Visibility[network.CategoryWater] = false

	img := Render(scene, Options{Width: 400, Height: 400})

	cell := scene.Cells[0]
	fn := cell.Function(network.CategoryWater)
	scale := 400.0 / network.CanvasScale
	x := int(fn.Position.X * scale)
	y := int(fn.Position.Y * scale)

	stroke := network.ParseHex(scene.Colors.Categories[network.CategoryWater].Stroke)
	// No pixel of the hidden node's stroke color should appear near its
	// position.
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			if got := img.RGBAAt(x+dx, y+dy); got == stroke {
				t.Fatalf("hidden category drawn at (%d,%d)", x+dx, y+dy)
			}
		}
	}
}

func TestBlendPixel(t *testing.T) {
	scene := testScene()
	img := Render(scene, Options{Width: 10, Height: 10})

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	blendPixel(img, 5, 5, white, 1.0)
	if img.RGBAAt(5, 5) != white {
		t.Errorf("full-opacity blend should overwrite")
	}

	blendPixel(img, 500, 500, white, 1.0) // out of bounds is a no-op
}
