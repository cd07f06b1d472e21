package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/parameter"
)

// Grid maps each board cell, border included, to a color
// Row-major over [0, size) with index y*size + x
type Grid struct {
	Size  int
	Cells []tcell.Color
}

// Rasterize paints the border, the eatable and every live body from a view
func Rasterize(v engine.View) Grid {
	size := v.Bounds.Max + 2
	g := Grid{Size: size, Cells: make([]tcell.Color, size*size)}
	for i := range g.Cells {
		g.Cells[i] = colorEmpty
	}
	for i := 0; i < size; i++ {
		g.set(core.Point{X: i, Y: 0}, colorBorder)
		g.set(core.Point{X: i, Y: size - 1}, colorBorder)
		g.set(core.Point{X: 0, Y: i}, colorBorder)
		g.set(core.Point{X: size - 1, Y: i}, colorBorder)
	}
	g.set(v.Eatable, colorEatable)
	for _, sv := range v.Snakes {
		if !sv.Alive {
			continue
		}
		c := StrategyColor(sv.Strategy)
		for _, p := range sv.Body {
			g.set(p, c)
		}
	}
	return g
}

func (g Grid) set(p core.Point, c tcell.Color) {
	if p.X >= 0 && p.Y >= 0 && p.X < g.Size && p.Y < g.Size {
		g.Cells[p.Y*g.Size+p.X] = c
	}
}

// At returns the color of a cell
func (g Grid) At(x, y int) tcell.Color {
	return g.Cells[y*g.Size+x]
}

// Rows returns the terminal rows needed for the grid
func (g Grid) Rows() int {
	return (g.Size + 1) / 2
}

// DrawBoard draws the grid with half blocks at the screen origin (ox, oy)
// Each terminal row holds grid rows 2r (foreground) and 2r+1 (background)
func DrawBoard(s tcell.Screen, ox, oy int, g Grid) {
	for r := 0; r < g.Rows(); r++ {
		top := 2 * r
		bottom := top + 1
		for x := 0; x < g.Size; x++ {
			fg := g.At(x, top)
			bg := colorEmpty
			if bottom < g.Size {
				bg = g.At(x, bottom)
			}
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			s.SetContent(ox+x, oy+r, parameter.GlyphUpperHalf, nil, style)
		}
	}
}

// DrawText writes a single line, clipped to the screen width
func DrawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// ScoreLines formats "NAME: score" for every agent, live or eliminated
func ScoreLines(v engine.View) []string {
	lines := make([]string, 0, len(v.Snakes))
	for _, sv := range v.Snakes {
		line := fmt.Sprintf("%s: %d", sv.Name, sv.Score)
		if !sv.Alive {
			line += " (out)"
		}
		lines = append(lines, line)
	}
	return lines
}

// Banner returns the game over text, empty while the game runs
func Banner(v engine.View) string {
	if !v.Over {
		return ""
	}
	return fmt.Sprintf(parameter.GameOverFormat, v.Winner)
}
