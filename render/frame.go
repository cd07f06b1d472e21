package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/parameter"
)

// Frame carries everything drawn for one game screen
type Frame struct {
	View    engine.View
	Metrics []string // Preformatted key=value lines
	Status  string   // Bottom line, e.g. help or pause text
}

// DrawFrame clears the screen and draws the board, score panel and banner
func DrawFrame(s tcell.Screen, f Frame) {
	s.Clear()
	grid := Rasterize(f.View)
	DrawBoard(s, 0, 0, grid)

	px := grid.Size + parameter.PanelGap
	y := 0
	plain := tcell.StyleDefault
	for i, line := range ScoreLines(f.View) {
		style := plain.Foreground(StrategyColor(f.View.Snakes[i].Strategy))
		DrawText(s, px, y, style, line)
		y++
	}
	y++
	DrawText(s, px, y, plain, fmt.Sprintf("tick %d", f.View.Tick))
	y += 2
	for _, line := range f.Metrics {
		DrawText(s, px, y, plain.Dim(true), line)
		y++
	}

	if f.Status != "" {
		DrawText(s, 0, grid.Rows(), plain, f.Status)
	}
	if banner := Banner(f.View); banner != "" {
		bx := (grid.Size - len(banner)) / 2
		if bx < 0 {
			bx = 0
		}
		DrawText(s, bx, grid.Rows()/2, plain.Reverse(true).Bold(true), banner)
	}
	s.Show()
}

// Menu is the main menu selection state
type Menu struct {
	Selected int
}

// Move shifts the selection, wrapping around
func (m *Menu) Move(delta int) {
	n := len(parameter.MenuEntries)
	m.Selected = ((m.Selected+delta)%n + n) % n
}

// Choice returns the selected entry
func (m *Menu) Choice() string {
	return parameter.MenuEntries[m.Selected]
}

// DrawMenu draws the title and entries centered on the screen
func DrawMenu(s tcell.Screen, m Menu) {
	s.Clear()
	w, h := s.Size()
	top := h/2 - len(parameter.MenuEntries)
	DrawText(s, (w-len(parameter.MenuTitle))/2, top, tcell.StyleDefault.Bold(true), parameter.MenuTitle)
	for i, entry := range parameter.MenuEntries {
		style := tcell.StyleDefault
		label := "  " + entry + "  "
		if i == m.Selected {
			style = style.Reverse(true)
			label = "> " + entry + " <"
		}
		DrawText(s, (w-len(label))/2, top+2+i, style, label)
	}
	s.Show()
}
