package network

import (
	"multicell/pkg/geometry"
)

// CanvasScale maps the abstract unit square to network space. All cell and
// node coordinates live in [0, CanvasScale] on both axes.
const CanvasScale = 1000.0

// placementMargin keeps generated cell centers away from the edges of the
// unit square, matching the 0.15..0.85 sampling band of the original layout.
const placementMargin = 0.15

// Layout names the placement strategies the editor offers.
const (
	LayoutRandom  = "random"
	LayoutGrid    = "grid"
	LayoutCircle  = "circle"
	LayoutCluster = "cluster"
)

// Theme names for the two built-in palettes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Weight bounds for a single function category.
const (
	MinWeight = 0.3
	MaxWeight = 2.0
)

// Config is the flat editor configuration. Every field is independently
// settable and has a single direct effect on geometry or rendering.
type Config struct {
	CellCount   int     `json:"cellCount"`
	CellSpacing float64 `json:"cellSpacing"`

	LivingRadius   float64 `json:"livingRadius"`
	FunctionRadius float64 `json:"functionRadius"`

	Weights    map[Category]float64 `json:"weights"`
	Labels     map[Category]string  `json:"labels"`
	Visibility map[Category]bool    `json:"visibility"`

	LineWidth         float64 `json:"lineWidth"`
	ShowInternalLines bool    `json:"showInternalLines"`
	ShowExternalLines bool    `json:"showExternalLines"`
	LinesOnTop        bool    `json:"linesOnTop"`

	GridEnabled bool    `json:"gridEnabled"`
	GridSize    float64 `json:"gridSize"`
	SnapToGrid  bool    `json:"snapToGrid"`

	AnimationDuration float64 `json:"animationDuration"`

	Layout string `json:"layout"`
	Theme  string `json:"theme"`
}

// DefaultConfig returns the built-in configuration the editor starts with.
func DefaultConfig() *Config {
	cfg := &Config{
		CellCount:         6,
		CellSpacing:       0.5,
		LivingRadius:      0.10 * CanvasScale,
		FunctionRadius:    0.05 * CanvasScale,
		Weights:           make(map[Category]float64, len(Categories)),
		Labels:            make(map[Category]string, len(Categories)),
		Visibility:        make(map[Category]bool, len(Categories)),
		LineWidth:         1.6,
		ShowInternalLines: true,
		ShowExternalLines: true,
		LinesOnTop:        false,
		GridEnabled:       false,
		GridSize:          0.05 * CanvasScale,
		SnapToGrid:        false,
		AnimationDuration: 2.0,
		Layout:            LayoutRandom,
		Theme:             ThemeDark,
	}
	for _, cat := range Categories {
		cfg.Weights[cat] = 1.0
		cfg.Labels[cat] = string(cat)
		cfg.Visibility[cat] = true
	}
	return cfg
}

// PlacementBounds is the region of network space layout generators place
// cell centers in.
func PlacementBounds() geometry.Rect {
	m := placementMargin * CanvasScale
	return geometry.NewRect(m, m, CanvasScale-2*m, CanvasScale-2*m)
}

// WeightValues returns the weights in canonical category order.
func (c *Config) WeightValues() []float64 {
	out := make([]float64, len(Categories))
	for i, cat := range Categories {
		out[i] = c.Weights[cat]
	}
	return out
}

// ClampWeight restricts a weight to the allowed range.
func ClampWeight(w float64) float64 {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}

// Clone returns an independent deep copy of the config.
func (c *Config) Clone() *Config {
	out := *c
	out.Weights = make(map[Category]float64, len(c.Weights))
	out.Labels = make(map[Category]string, len(c.Labels))
	out.Visibility = make(map[Category]bool, len(c.Visibility))
	for k, v := range c.Weights {
		out.Weights[k] = v
	}
	for k, v := range c.Labels {
		out.Labels[k] = v
	}
	for k, v := range c.Visibility {
		out.Visibility[k] = v
	}
	return &out
}

// Normalize fills in zero-valued fields from defaults after a partial
// decode, so imported configs missing options keep working.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.CellCount <= 0 {
		c.CellCount = def.CellCount
	}
	if c.CellSpacing <= 0 {
		c.CellSpacing = def.CellSpacing
	}
	if c.LivingRadius <= 0 {
		c.LivingRadius = def.LivingRadius
	}
	if c.FunctionRadius <= 0 {
		c.FunctionRadius = def.FunctionRadius
	}
	if c.LineWidth <= 0 {
		c.LineWidth = def.LineWidth
	}
	if c.GridSize <= 0 {
		c.GridSize = def.GridSize
	}
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = def.AnimationDuration
	}
	if c.Layout == "" {
		c.Layout = def.Layout
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Weights == nil {
		c.Weights = make(map[Category]float64, len(Categories))
	}
	if c.Labels == nil {
		c.Labels = make(map[Category]string, len(Categories))
	}
	if c.Visibility == nil {
		c.Visibility = make(map[Category]bool, len(Categories))
	}
	for _, cat := range Categories {
		if _, ok := c.Weights[cat]; !ok {
			c.Weights[cat] = 1.0
		}
		if _, ok := c.Labels[cat]; !ok {
			c.Labels[cat] = string(cat)
		}
		if _, ok := c.Visibility[cat]; !ok {
			c.Visibility[cat] = true
		}
	}
}
