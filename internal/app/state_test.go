package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicell/internal/network"
	"multicell/pkg/geometry"
)

func TestWeightChangeGeometryConsistency(t *testing.T) {
	s := newTestStore(t)

	s.SetWeight(network.CategoryPollution, 1.9)

	cfg := s.Config()
	weights := cfg.WeightValues()
	wantBorder := geometry.CellBorderRadius(cfg.LivingRadius, cfg.FunctionRadius, weights)
	wantRing := geometry.FunctionRingRadius(cfg.LivingRadius, cfg.FunctionRadius, weights)

	for _, c := range s.Cells() {
		assert.InDelta(t, wantBorder, c.BorderRadius, 1e-9,
			"cell %d border radius stale after weight change", c.ID)
		for _, fn := range c.Functions {
			d := c.Center.Distance(fn.Position)
			assert.InDelta(t, wantRing, d, 1e-9,
				"cell %d node %s left off the ring", c.ID, fn.Category)
		}
	}
}

func TestWeightClamped(t *testing.T) {
	s := newTestStore(t)
	s.SetWeight(network.CategoryWork, 99)
	assert.Equal(t, network.MaxWeight, s.Config().Weights[network.CategoryWork])
	s.SetWeight(network.CategoryWork, 0.01)
	assert.Equal(t, network.MinWeight, s.Config().Weights[network.CategoryWork])
}

func TestRegenerateHonorsCellCount(t *testing.T) {
	s := newTestStore(t)
	for _, kind := range []string{network.LayoutRandom, network.LayoutGrid, network.LayoutCircle, network.LayoutCluster} {
		s.SetConfig(func(c *network.Config) {
			c.Layout = kind
			c.CellCount = 4
		})
		s.Regenerate()
		require.Len(t, s.Cells(), 4, "layout %s", kind)
		for _, c := range s.Cells() {
			require.Len(t, c.Functions, 9, "layout %s", kind)
		}
	}
}

func TestSelection(t *testing.T) {
	s := newTestStore(t)

	s.Select(2)
	assert.Equal(t, []int{2}, s.Selection())

	s.ToggleSelection(3)
	assert.Equal(t, []int{2, 3}, s.Selection())

	s.ToggleSelection(2)
	assert.Equal(t, []int{3}, s.Selection())

	s.SetSelection([]int{1, 2, 3})
	assert.Equal(t, []int{1, 2, 3}, s.Selection())

	s.ClearSelection()
	assert.Empty(t, s.Selection())
}

func TestMoveCellsTranslatesRing(t *testing.T) {
	s := newTestStore(t)
	cells := s.Cells()
	require.NotEmpty(t, cells)
	target := cells[0]

	beforeCenter := target.Center
	beforeOffsets := make([]geometry.Point, len(target.Functions))
	for i, fn := range target.Functions {
		beforeOffsets[i] = fn.Position.Sub(beforeCenter)
	}

	delta := geometry.NewPoint(37, -12)
	s.MoveCells([]int{target.ID}, delta)

	moved := s.Cells()[0]
	assert.InDelta(t, beforeCenter.X+delta.X, moved.Center.X, 1e-9)
	assert.InDelta(t, beforeCenter.Y+delta.Y, moved.Center.Y, 1e-9)
	for i, fn := range moved.Functions {
		offset := fn.Position.Sub(moved.Center)
		assert.InDelta(t, beforeOffsets[i].X, offset.X, 1e-9, "ring deformed during move")
		assert.InDelta(t, beforeOffsets[i].Y, offset.Y, 1e-9, "ring deformed during move")
	}
}

func TestMoveCellsSnapsToGrid(t *testing.T) {
	s := newTestStore(t)
	s.SetConfig(func(c *network.Config) {
		c.SnapToGrid = true
		c.GridSize = 50
	})

	id := s.Cells()[0].ID
	s.MoveCells([]int{id}, geometry.NewPoint(13, 13))

	center := s.Cells()[0].Center
	assert.InDelta(t, 0, math.Mod(center.X, 50), 1e-9)
	assert.InDelta(t, 0, math.Mod(center.Y, 50), 1e-9)
}

func TestDragBracketRecordsOneHistoryEntry(t *testing.T) {
	s := newTestStore(t)
	id := s.Cells()[0].ID
	start := s.Cells()[0].Center

	s.BeginDrag()
	for i := 0; i < 10; i++ {
		s.MoveCells([]int{id}, geometry.NewPoint(5, 0))
	}
	s.EndDrag()

	require.True(t, s.Undo())
	assert.InDelta(t, start.X, s.Cells()[0].Center.X, 1e-9,
		"one undo should revert the whole drag")
}

func TestToggleTheme(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, network.ThemeDark, s.Config().Theme)
	darkBg := s.Colors().Background

	s.ToggleTheme()
	assert.Equal(t, network.ThemeLight, s.Config().Theme)
	assert.NotEqual(t, darkBg, s.Colors().Background)

	s.ToggleTheme()
	assert.Equal(t, network.ThemeDark, s.Config().Theme)
	assert.Equal(t, darkBg, s.Colors().Background)
}

func TestCellAt(t *testing.T) {
	s := newTestStore(t)
	c := s.Cells()[0]

	hit := s.CellAt(c.Center)
	require.NotNil(t, hit)
	assert.Equal(t, c.ID, hit.ID)

	miss := s.CellAt(geometry.NewPoint(-network.CanvasScale, -network.CanvasScale))
	assert.Nil(t, miss)
}

func TestPresetsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.SetWeight(network.CategoryGreen, 1.4)
	saved, err := s.ExportJSON()
	require.NoError(t, err)

	require.NoError(t, s.SavePreset("demo"))
	assert.Equal(t, []string{"demo"}, s.ListPresets())

	s.Regenerate()
	require.NoError(t, s.LoadPreset("demo"))
	loaded, err := s.ExportJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(saved), string(loaded))

	require.NoError(t, s.DeletePreset("demo"))
	assert.Empty(t, s.ListPresets())
}
