package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EditorTheme provides a custom Fyne theme for the editor chrome. Diagram
// colors come from the active ColorScheme, not from here.
type EditorTheme struct{}

var _ fyne.Theme = (*EditorTheme)(nil)

func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xFF, G: 0x48, B: 0xC4, A: 0xFF} // living outline pink
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x57, G: 0xC5, B: 0xC8, A: 0x80} // cell border teal
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	default:
		return theme.DefaultTheme().Size(name)
	}
}
