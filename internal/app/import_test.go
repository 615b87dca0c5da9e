package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicell/internal/network"
)

func TestJSONImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.SetWeight(network.CategoryStreets, 1.6)
	s.ToggleTheme()

	exported, err := s.ExportJSON()
	require.NoError(t, err)

	other := newTestStore(t)
	require.True(t, other.ImportJSON(exported))

	reexported, err := other.ExportJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(exported), string(reexported),
		"export→import must be idempotent")
}

func TestJSONImportRejectsMissingKeys(t *testing.T) {
	cases := map[string]string{
		"missing cells":  `{"config":{},"colors":{}}`,
		"missing config": `{"cells":[],"colors":{}}`,
		"missing colors": `{"cells":[],"config":{}}`,
		"not JSON":       `{{{`,
		"empty":          ``,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			before, err := s.ExportJSON()
			require.NoError(t, err)

			assert.False(t, s.ImportJSON([]byte(payload)))

			after, err := s.ExportJSON()
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after), "rejected import must not change state")
		})
	}
}

func TestJSONImportMergesDefaults(t *testing.T) {
	s := newTestStore(t)
	// Minimal but complete document: unspecified config/color fields must
	// fall back to built-in defaults.
	payload := `{"cells":[],"config":{"cellCount":3},"colors":{}}`
	require.True(t, s.ImportJSON([]byte(payload)))

	cfg := s.Config()
	assert.Equal(t, network.DefaultConfig().LineWidth, cfg.LineWidth)
	for _, cat := range network.Categories {
		assert.Equal(t, 1.0, cfg.Weights[cat])
		assert.Contains(t, s.Colors().Categories, cat)
	}
}

func TestDelimitedImport(t *testing.T) {
	t.Run("happy path with labels", func(t *testing.T) {
		s := newTestStore(t)
		csv := "label,x,y\nalpha,0.2,0.3\nbeta,0.7,0.8\n"
		require.True(t, s.ImportDelimited([]byte(csv)))

		cells := s.Cells()
		require.Len(t, cells, 2)
		assert.Equal(t, "alpha", cells[0].Label)
		assert.InDelta(t, 0.2*network.CanvasScale, cells[0].Center.X, 1e-9)
		assert.InDelta(t, 0.3*network.CanvasScale, cells[0].Center.Y, 1e-9)
		assert.Equal(t, 2, s.Config().CellCount)
		require.Len(t, cells[0].Functions, 9)
	})

	t.Run("case-insensitive header", func(t *testing.T) {
		s := newTestStore(t)
		require.True(t, s.ImportDelimited([]byte("X,Y\n0.5,0.5\n")))
		assert.Len(t, s.Cells(), 1)
	})

	t.Run("tab delimited", func(t *testing.T) {
		s := newTestStore(t)
		require.True(t, s.ImportDelimited([]byte("x\ty\n0.1\t0.9\n")))
		assert.Len(t, s.Cells(), 1)
	})

	t.Run("bad rows silently skipped", func(t *testing.T) {
		s := newTestStore(t)
		csv := "x,y\n0.1,0.2\nnope,0.3\n0.4,also-nope\n0.5,0.6\n"
		require.True(t, s.ImportDelimited([]byte(csv)))
		assert.Len(t, s.Cells(), 2)
	})

	t.Run("missing columns rejected", func(t *testing.T) {
		s := newTestStore(t)
		before := len(s.Cells())
		assert.False(t, s.ImportDelimited([]byte("a,b\n1,2\n")))
		assert.Len(t, s.Cells(), before)
	})

	t.Run("zero valid rows rejected", func(t *testing.T) {
		s := newTestStore(t)
		before := len(s.Cells())
		assert.False(t, s.ImportDelimited([]byte("x,y\nnope,nada\n")))
		assert.Len(t, s.Cells(), before)
	})
}

func TestShareRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.SetWeight(network.CategoryWater, 1.3)

	encoded, err := s.EncodeShare()
	require.NoError(t, err)

	other := newTestStore(t)
	require.True(t, other.ImportShare(encoded))

	want, err := s.ExportJSON()
	require.NoError(t, err)
	got, err := other.ExportJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestShareMalformedPayloads(t *testing.T) {
	for name, payload := range map[string]string{
		"not base64":    "!!!not-base64!!!",
		"not JSON":      "bm90IGpzb24=",
		"empty":         "",
		"partial state": "eyJjZWxscyI6W119", // {"cells":[]}
	} {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			before, err := s.ExportJSON()
			require.NoError(t, err)

			assert.False(t, s.ImportShare(payload))

			after, err := s.ExportJSON()
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after))
		})
	}
}
