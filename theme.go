package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// receiverTheme is the flat dark look, built from a Style.
type receiverTheme struct {
	style Style
}

var _ fyne.Theme = (*receiverTheme)(nil)

func newReceiverTheme(style Style) fyne.Theme {
	return &receiverTheme{style: style}
}

func (t *receiverTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return t.style.Background
	case theme.ColorNameButton, theme.ColorNameInputBackground,
		theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return t.style.Surface
	case theme.ColorNameInputBorder:
		// Borderless inputs.
		return t.style.Surface
	case theme.ColorNameForeground:
		return t.style.Foreground
	case theme.ColorNameHover:
		return t.style.Hover
	case theme.ColorNamePressed:
		return t.style.Pressed
	case theme.ColorNameSuccess:
		return t.style.Success
	case theme.ColorNameError:
		return t.style.Error
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (t *receiverTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *receiverTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *receiverTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// statusColor maps a status kind to the colour its text is drawn in.
func (s Style) statusColor(kind StatusKind) color.Color {
	switch kind {
	case StatusSuccess:
		return s.Success
	case StatusError:
		return s.Error
	default:
		return s.Foreground
	}
}
