package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ShelfPackTheme wraps the default Fyne theme with compact sizing so the
// control column and both bay views fit one window.
type ShelfPackTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	follow  bool
}

// NewShelfPackTheme creates a theme that follows the system variant.
func NewShelfPackTheme() *ShelfPackTheme {
	return &ShelfPackTheme{base: theme.DefaultTheme(), follow: true}
}

// ThemeForName maps the saved preference ("light", "dark", "system") to a theme.
func ThemeForName(name string) *ShelfPackTheme {
	t := NewShelfPackTheme()
	switch name {
	case "light":
		t.SetVariant(theme.VariantLight)
	case "dark":
		t.SetVariant(theme.VariantDark)
	}
	return t
}

// SetVariant pins the theme to a light or dark variant.
func (t *ShelfPackTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.follow = false
}

func (t *ShelfPackTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.follow {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *ShelfPackTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *ShelfPackTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *ShelfPackTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
