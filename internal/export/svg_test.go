package export

import (
	"bytes"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicell/internal/network"
	"multicell/internal/render"
	"multicell/pkg/geometry"
)

func exportScene() render.Scene {
	cfg := network.DefaultConfig()
	cfg.ShowInternalLines = false
	cfg.ShowExternalLines = false
	rng := rand.New(rand.NewSource(7))
	cell := network.BuildCell(1, "cell 1", geometry.NewPoint(500, 500), cfg, rng)
	return render.Scene{
		Cells:  []*network.Cell{cell},
		Config: cfg,
		Colors: network.DarkScheme(),
	}
}

func TestWriteSVGDocument(t *testing.T) {
	scene := exportScene()
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scene, 800, 800))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, scene.Colors.Background)
	assert.Contains(t, out, ">cell 1</text>")

	// One dashed border, one living node, nine function nodes.
	assert.Equal(t, 11, strings.Count(out, "<circle"))
	assert.Equal(t, 1, strings.Count(out, "stroke-dasharray"))
}

func TestWriteSVGStackingOrder(t *testing.T) {
	scene := exportScene()
	scene.Config.ShowInternalLines = true

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scene, 800, 800))
	out := buf.String()
	assert.Less(t, strings.Index(out, "<line"), strings.Index(out, "<circle"),
		"lines render under nodes by default")

	scene.Config.LinesOnTop = true
	buf.Reset()
	require.NoError(t, WriteSVG(&buf, scene, 800, 800))
	out = buf.String()
	assert.Less(t, strings.Index(out, "<circle"), strings.Index(out, "<line"),
		"LinesOnTop renders lines over nodes")
}

func TestWriteSVGHiddenCategory(t *testing.T) {
	scene := exportScene()
	scene.Config.Visibility[network.CategoryWater] = false

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scene, 800, 800))
	out := buf.String()

	assert.NotContains(t, out, scene.Colors.Categories[network.CategoryWater].Stroke)
	assert.Equal(t, 10, strings.Count(out, "<circle"))
}

func TestWriteSVGEscapesLabels(t *testing.T) {
	scene := exportScene()
	scene.Cells[0].Label = "a<b & c>d"

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scene, 800, 800))
	out := buf.String()
	assert.Contains(t, out, ">a&lt;b &amp; c&gt;d</text>")
	assert.NotContains(t, out, ">a<b")
}

func TestWriteSVGRejectsBadSize(t *testing.T) {
	assert.Error(t, WriteSVG(&bytes.Buffer{}, exportScene(), 0, 800))
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(exportScene(), 200, 150, 3)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())

	_, err = EncodePNG(exportScene(), 0, 0, 1)
	assert.Error(t, err)
}
