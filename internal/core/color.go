package core

import "fmt"

// Color is an RGB triple used as the per-agent color input for presenters.
type Color struct {
	R, G, B uint8
}

// Palette colors carried over from the classroom version of the game.
var (
	ColorBlue   = Color{R: 0, G: 0, B: 255}
	ColorRed    = Color{R: 255, G: 0, B: 0}
	ColorGreen  = Color{R: 0, G: 255, B: 0}
	ColorYellow = Color{R: 255, G: 255, B: 0}
	ColorPurple = Color{R: 128, G: 0, B: 128}
)

// DefaultPalette is cycled when agents are created without explicit colors.
var DefaultPalette = []Color{ColorBlue, ColorRed, ColorGreen, ColorYellow}

// Blend averages the components of the given colors (integer division).
// An empty slice blends to black.
func Blend(colors []Color) Color {
	if len(colors) == 0 {
		return Color{}
	}
	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(colors)
	return Color{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PaletteColor returns the i-th palette color, cycling when i exceeds the palette.
func PaletteColor(palette []Color, i int) Color {
	if len(palette) == 0 {
		return Color{}
	}
	return palette[i%len(palette)]
}
