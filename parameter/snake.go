package parameter

// Strategy identifiers accepted in configuration
const (
	StrategyAStar    = "astar"
	StrategyBFS      = "bfs"
	StrategyDijkstra = "dijkstra"
	StrategyNone     = "none"
)

// Snake glyph colors (24-bit) keyed by strategy
var (
	ColorAStar    = [3]uint8{0, 255, 0}
	ColorBFS      = [3]uint8{255, 0, 0}
	ColorDijkstra = [3]uint8{0, 0, 255}
	ColorPlayer   = [3]uint8{255, 0, 255}
	ColorEatable  = [3]uint8{255, 255, 0}
	ColorBorder   = [3]uint8{255, 255, 255}
)
