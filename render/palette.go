package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/snake"
)

func rgb(c [3]uint8) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}

var (
	colorEatable = rgb(parameter.ColorEatable)
	colorBorder  = rgb(parameter.ColorBorder)
	colorEmpty   = tcell.ColorBlack
)

// StrategyColor returns the body color of an agent
func StrategyColor(s snake.Strategy) tcell.Color {
	switch s {
	case snake.AStar:
		return rgb(parameter.ColorAStar)
	case snake.BFS:
		return rgb(parameter.ColorBFS)
	case snake.Dijkstra:
		return rgb(parameter.ColorDijkstra)
	default:
		return rgb(parameter.ColorPlayer)
	}
}
