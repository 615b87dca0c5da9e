package network

import (
	"fmt"
	"image/color"
)

// CategoryColor holds the stroke/fill/text colors for one category.
type CategoryColor struct {
	Stroke string `json:"stroke"`
	Fill   string `json:"fill"`
	Text   string `json:"text"`
}

// ColorScheme holds every color the renderer needs. Completeness (an entry
// per category) is its only invariant.
type ColorScheme struct {
	Categories map[Category]CategoryColor `json:"categories"`

	Background    string `json:"background"`
	Grid          string `json:"grid"`
	CellBorder    string `json:"cellBorder"`
	LivingFill    string `json:"livingFill"`
	LivingOutline string `json:"livingOutline"`
	LivingText    string `json:"livingText"`
}

// categoryStrokes are the fixed bright per-category colors.
var categoryStrokes = map[Category]string{
	CategoryWater:        "#00b7ff",
	CategoryEducation:    "#ff007c",
	CategoryGreen:        "#25ff00",
	CategoryWork:         "#ff8c00",
	CategoryStreets:      "#ffd000",
	CategoryTree:         "#13ff9d",
	CategoryTemperature:  "#ff2e00",
	CategoryBiodiversity: "#8b00ff",
	CategoryPollution:    "#00ffd5",
}

// DarkScheme returns the default dark palette.
func DarkScheme() *ColorScheme {
	s := &ColorScheme{
		Categories:    make(map[Category]CategoryColor, len(Categories)),
		Background:    "#10141a",
		Grid:          "#232a33",
		CellBorder:    "#57c5c8",
		LivingFill:    "#f3c6e5",
		LivingOutline: "#ff48c4",
		LivingText:    "#10141a",
	}
	for _, cat := range Categories {
		stroke := categoryStrokes[cat]
		s.Categories[cat] = CategoryColor{
			Stroke: stroke,
			Fill:   "#10141a",
			Text:   stroke,
		}
	}
	return s
}

// LightScheme returns the built-in light palette.
func LightScheme() *ColorScheme {
	s := &ColorScheme{
		Categories:    make(map[Category]CategoryColor, len(Categories)),
		Background:    "#ffffff",
		Grid:          "#e2e6ea",
		CellBorder:    "#57c5c8",
		LivingFill:    "#f3c6e5",
		LivingOutline: "#ff48c4",
		LivingText:    "#000000",
	}
	for _, cat := range Categories {
		stroke := categoryStrokes[cat]
		s.Categories[cat] = CategoryColor{
			Stroke: stroke,
			Fill:   "#ffffff",
			Text:   stroke,
		}
	}
	return s
}

// SchemeForTheme maps a theme name to its built-in palette.
func SchemeForTheme(theme string) *ColorScheme {
	if theme == ThemeLight {
		return LightScheme()
	}
	return DarkScheme()
}

// Clone returns an independent deep copy of the scheme.
func (s *ColorScheme) Clone() *ColorScheme {
	out := *s
	out.Categories = make(map[Category]CategoryColor, len(s.Categories))
	for k, v := range s.Categories {
		out.Categories[k] = v
	}
	return &out
}

// Normalize fills missing entries from the dark palette so an imported
// scheme always covers every category.
func (s *ColorScheme) Normalize() {
	def := DarkScheme()
	if s.Categories == nil {
		s.Categories = make(map[Category]CategoryColor, len(Categories))
	}
	for _, cat := range Categories {
		if _, ok := s.Categories[cat]; !ok {
			s.Categories[cat] = def.Categories[cat]
		}
	}
	if s.Background == "" {
		s.Background = def.Background
	}
	if s.Grid == "" {
		s.Grid = def.Grid
	}
	if s.CellBorder == "" {
		s.CellBorder = def.CellBorder
	}
	if s.LivingFill == "" {
		s.LivingFill = def.LivingFill
	}
	if s.LivingOutline == "" {
		s.LivingOutline = def.LivingOutline
	}
	if s.LivingText == "" {
		s.LivingText = def.LivingText
	}
}

// ParseHex converts a #rrggbb string to an RGBA color. Malformed values
// fall back to opaque black.
func ParseHex(hex string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
