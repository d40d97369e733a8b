package t2048

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth    = 7 // Columns per cell including the left border
	cellHeight   = 2 // Rows per cell including the top border
	hudHeight    = 3
	footerHeight = 3
)

// tileColors is indexed by log2 of the tile value.
var tileColors = []core.Color{
	core.ColorDefault,
	core.ColorWhite,         // 2
	core.ColorBrightWhite,   // 4
	core.ColorYellow,        // 8
	core.ColorOrange,        // 16
	core.ColorBrightRed,     // 32
	core.ColorRed,           // 64
	core.ColorBrightYellow,  // 128
	core.ColorGreen,         // 256
	core.ColorBrightGreen,   // 512
	core.ColorCyan,          // 1024
	core.ColorBrightCyan,    // 2048
	core.ColorMagenta,       // 4096
	core.ColorBrightMagenta, // 8192 and up
}

func tileColor(v int) core.Color {
	if v <= 0 {
		return core.ColorDefault
	}
	i := bits.Len(uint(v)) - 1
	return tileColors[min(i, len(tileColors)-1)]
}

// layoutSize returns the screen size needed to draw a board of the given size.
func layoutSize(size int) (w, h int) {
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	return boardW + 2, hudHeight + boardH + footerHeight
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()
	g.checkScreenSize()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	size := g.variant.Size
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	area := core.Centered(g.screenW, g.screenH-footerHeight, boardW, boardH, hudHeight)

	g.renderHUD(dst, area)
	g.renderBoard(dst, area)
	g.renderFooter(dst, area)
	g.renderOverlays(dst, area)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := layoutSize(g.variant.Size)
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorBrightRed)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, g.screenW, g.screenH), core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	title := g.variant.Title()
	dst.DrawTextColor(area.X+(area.W-len(title))/2, area.Y-3, title, core.ColorBrightYellow)

	score := fmt.Sprintf("Score: %d", g.session.Score())
	dst.DrawTextColor(area.X, area.Y-2, score, core.ColorBrightWhite)

	moves := fmt.Sprintf("Moves: %d", g.session.Moves())
	dst.DrawText(area.Right()-len(moves), area.Y-2, moves)

	target := fmt.Sprintf("Target: %d", g.variant.Target)
	targetColor := core.ColorGray
	if g.session.ReachedTarget() {
		target += " ✓"
		targetColor = core.ColorBrightGreen
	}
	dst.DrawTextColor(area.X, area.Y-1, target, targetColor)

	best := fmt.Sprintf("Max: %d", g.session.Board().MaxTile())
	dst.DrawTextColor(area.Right()-len(best), area.Y-1, best, tileColor(g.session.Board().MaxTile()))
}

// renderBoard draws the grid lines and the tile values.
func (g *Game) renderBoard(dst *core.Screen, area core.Rect) {
	size := g.variant.Size
	grid := core.ColorGray

	for row := range size + 1 {
		for col := range size + 1 {
			x := area.X + col*cellWidth
			y := area.Y + row*cellHeight
			dst.SetCell(x, y, core.Cell{Rune: junction(row, col, size), Color: grid})

			if col < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetCell(x+i, y, core.Cell{Rune: '─', Color: grid})
				}
			}
			if row < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(x, y+i, core.Cell{Rune: '│', Color: grid})
				}
			}
		}
	}

	board := g.session.Board()
	for row := range size {
		for col := range size {
			v := board.At(row, col)
			if v == 0 {
				continue
			}
			text := strconv.Itoa(v)
			x := area.X + col*cellWidth + 1
			y := area.Y + row*cellHeight + 1
			pad := max((cellWidth-1-len(text))/2, 0)
			dst.DrawTextColor(x+pad, y, text, tileColor(v))

			if g.hasSpawn && g.lastSpawn == (engine.Position{Row: row, Col: col}) {
				dst.SetCell(x, y, core.Cell{Rune: '•', Color: core.ColorGray})
			}
		}
	}
}

// junction picks the box-drawing rune for a grid intersection.
func junction(row, col, size int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == size:
		return '┐'
	case row == size && col == 0:
		return '└'
	case row == size && col == size:
		return '┘'
	case row == 0:
		return '┬'
	case row == size:
		return '┴'
	case col == 0:
		return '├'
	case col == size:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderFooter(dst *core.Screen, area core.Rect) {
	y := area.Bottom() + 1
	if g.bannerTicks > 0 {
		dst.DrawTextCentered(y, fmt.Sprintf("You reached %d! Keep going", g.variant.Target), core.ColorBrightGreen)
	}
	dst.DrawTextCentered(y+1, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, area, core.ColorBrightYellow, "PAUSED", "Press P to resume")
	case g.session.GameOver():
		g.drawOverlay(dst, area, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.session.Score()),
			fmt.Sprintf("Max tile: %d", g.session.Board().MaxTile()),
			"Press R to restart")
	}
}

// drawOverlay draws a bordered box of centered lines over the board.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, c core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := core.Rect{W: width + 4, H: len(lines) + 2}
	box.X = area.X + (area.W-box.W)/2
	box.Y = area.Y + (area.H-box.H)/2

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, line := range lines {
		dst.DrawTextColor(box.X+(box.W-len(line))/2, box.Y+1+i, line, c)
	}
}

// Controls returns the key hints shown under the board.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: Restart | Q: Quit"
}
