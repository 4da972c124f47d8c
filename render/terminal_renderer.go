package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nbody/body"
	"github.com/lixenwraith/nbody/vmath"
)

const (
	glyphSmall = '•'
	glyphBlock = '█'
)

// Status is the bottom-line summary
type Status struct {
	Tick     uint64
	Bodies   int
	Pairs    int
	Respawns int // Cumulative since start or reset
	FPS      float64
	Seed     uint64
	Paused   bool
}

// TerminalRenderer draws body snapshots scaled from the square arena onto the screen
// The last row is reserved for the status bar
type TerminalRenderer struct {
	screen tcell.Screen
	bounds float64
	width  int
	height int
}

// NewTerminalRenderer creates a renderer for an arena of side bounds
func NewTerminalRenderer(screen tcell.Screen, bounds float64) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		bounds: bounds,
	}
	r.Resize()
	return r
}

// Resize re-reads the screen size
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// arenaRows is the number of rows available for bodies
func (r *TerminalRenderer) arenaRows() int {
	if r.height <= 1 {
		return 0
	}
	return r.height - 1
}

// WorldToCell maps a world position to a cell, may fall outside the arena area
func (r *TerminalRenderer) WorldToCell(p vmath.Vec2) (x, y int) {
	return r.scaleX(p.X), r.scaleY(p.Y)
}

func (r *TerminalRenderer) scaleX(wx float64) int {
	return floorInt(wx / r.bounds * float64(r.width))
}

func (r *TerminalRenderer) scaleY(wy float64) int {
	return floorInt(wy / r.bounds * float64(r.arenaRows()))
}

func floorInt(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}

// RenderFrame clears, draws all bodies and the status bar, then shows the frame
func (r *TerminalRenderer) RenderFrame(snaps []body.Snapshot, st Status) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	for i := range snaps {
		r.drawBody(&snaps[i], defaultStyle)
	}

	r.drawStatusBar(st)
	r.screen.Show()
}

// drawBody fills the cells covered by the body's square, at least one cell
func (r *TerminalRenderer) drawBody(s *body.Snapshot, defaultStyle tcell.Style) {
	rows := r.arenaRows()
	if rows == 0 || r.width == 0 {
		return
	}

	x0, y0 := r.WorldToCell(s.Position)
	x1, y1 := r.WorldToCell(s.Position.Add(s.Size))
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}

	glyph := glyphBlock
	if x0 == x1 && y0 == y1 {
		glyph = glyphSmall
	}
	style := defaultStyle.Foreground(ToTcell(s.Color))

	for y := y0; y <= y1; y++ {
		if y < 0 || y >= rows {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= r.width {
				continue
			}
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// drawStatusBar draws the summary line on the last row
func (r *TerminalRenderer) drawStatusBar(st Status) {
	if r.height == 0 {
		return
	}
	y := r.height - 1
	style := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusFg)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	text := fmt.Sprintf(" tick %d  bodies %d  pairs %d  respawns %d  %.0f fps  seed %d ",
		st.Tick, st.Bodies, st.Pairs, st.Respawns, st.FPS, st.Seed)
	x := r.drawText(0, y, text, style)

	if st.Paused {
		r.drawText(x, y, " PAUSED ", style.Foreground(RgbPaused).Bold(true))
	}
}

// drawText writes text clipped to the screen width, returns the column after the last rune
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
