package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Arena palette
var (
	RgbBackground = tcell.NewRGBColor(10, 10, 18)
	RgbStatusBg   = tcell.NewRGBColor(30, 30, 46)
	RgbStatusFg   = tcell.NewRGBColor(180, 180, 200)
	RgbPaused     = tcell.NewRGBColor(255, 180, 60)
)

// ToTcell converts a body color to a terminal true color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
