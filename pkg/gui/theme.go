package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// BottleneckTheme is a dark theme with a blue accent
type BottleneckTheme struct{}

// Color returns the color for the specified theme color name
func (t BottleneckTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x1a, G: 0x1d, B: 0x21, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x2d, G: 0x31, B: 0x36, A: 0xff}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0x1f, G: 0x22, B: 0x26, A: 0xff}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x22, G: 0x26, B: 0x2a, A: 0xff}
	case theme.ColorNamePrimary, theme.ColorNamePressed:
		// Accent used for the verdict and focused widgets
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

// Font returns the font resource for the specified text style
func (t BottleneckTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified icon name
func (t BottleneckTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size value for the specified size name
func (t BottleneckTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 14
	case theme.SizeNamePadding:
		return 8
	default:
		return theme.DefaultTheme().Size(name)
	}
}
