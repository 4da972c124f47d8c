package core

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette selects how body colors are assigned at creation
type Palette uint8

const (
	// PaletteMono paints every body white
	PaletteMono Palette = iota
	// PaletteSpectrum spreads hues by golden angle over body ids
	PaletteSpectrum
)

// goldenAngle in degrees keeps neighboring ids visually distinct
const goldenAngle = 137.50776405003785

// White is the mono palette color
var White = colorful.Color{R: 1, G: 1, B: 1}

// ParsePalette maps a config/flag name to a Palette
func ParsePalette(name string) (Palette, error) {
	switch name {
	case "", "mono", "white":
		return PaletteMono, nil
	case "spectrum", "hcl":
		return PaletteSpectrum, nil
	}
	return PaletteMono, fmt.Errorf("unknown palette %q", name)
}

func (p Palette) String() string {
	switch p {
	case PaletteSpectrum:
		return "spectrum"
	default:
		return "mono"
	}
}

// ColorFor returns the permanent color of body id
func (p Palette) ColorFor(id uint32) colorful.Color {
	if p != PaletteSpectrum {
		return White
	}
	hue := math.Mod(float64(id)*goldenAngle, 360)
	return colorful.Hcl(hue, 0.6, 0.8).Clamped()
}
