// Package replay records matches frame by frame and plays them back
package replay

import (
	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/snake"
)

// FormatVersion is written into every replay file
const FormatVersion = 1

// SnakeFrame is one agent in a recorded frame
type SnakeFrame struct {
	ID       int      `msgpack:"id"`
	Name     string   `msgpack:"name"`
	Strategy uint8    `msgpack:"strategy"`
	Body     [][2]int `msgpack:"body"`
	Score    int      `msgpack:"score"`
	Alive    bool     `msgpack:"alive"`
}

// Frame is the board at the end of one tick
type Frame struct {
	Tick    uint64       `msgpack:"tick"`
	Eatable [2]int       `msgpack:"eatable"`
	Snakes  []SnakeFrame `msgpack:"snakes"`
	Over    bool         `msgpack:"over"`
	Winner  string       `msgpack:"winner,omitempty"`
}

// Replay is a complete recorded match
type Replay struct {
	Version int     `msgpack:"version"`
	MatchID string  `msgpack:"match_id"`
	Bounds  [2]int  `msgpack:"bounds"`
	Frames  []Frame `msgpack:"frames"`
}

func pack(p core.Point) [2]int { return [2]int{p.X, p.Y} }

func unpack(a [2]int) core.Point { return core.Point{X: a[0], Y: a[1]} }

// FromView converts an engine view into a frame
func FromView(v engine.View) Frame {
	f := Frame{
		Tick:    v.Tick,
		Eatable: pack(v.Eatable),
		Snakes:  make([]SnakeFrame, 0, len(v.Snakes)),
		Over:    v.Over,
		Winner:  v.Winner,
	}
	for _, sv := range v.Snakes {
		body := make([][2]int, len(sv.Body))
		for i, p := range sv.Body {
			body[i] = pack(p)
		}
		f.Snakes = append(f.Snakes, SnakeFrame{
			ID:       sv.ID,
			Name:     sv.Name,
			Strategy: uint8(sv.Strategy),
			Body:     body,
			Score:    sv.Score,
			Alive:    sv.Alive,
		})
	}
	return f
}

// View rebuilds a renderable view from a frame
func (f Frame) View(matchID string, bounds core.Bounds) engine.View {
	v := engine.View{
		MatchID:  matchID,
		Tick:     f.Tick,
		Bounds:   bounds,
		Eatable:  unpack(f.Eatable),
		Snakes:   make([]engine.SnakeView, 0, len(f.Snakes)),
		Over:     f.Over,
		Winner:   f.Winner,
		WinnerID: -1,
	}
	for _, sf := range f.Snakes {
		body := make([]core.Point, len(sf.Body))
		for i, a := range sf.Body {
			body[i] = unpack(a)
		}
		var heading core.Point
		if len(body) > 1 {
			heading = body[0].Sub(body[1])
		}
		if f.Over && sf.Alive && sf.Name == f.Winner {
			v.WinnerID = sf.ID
		}
		v.Snakes = append(v.Snakes, engine.SnakeView{
			ID:       sf.ID,
			Name:     sf.Name,
			Strategy: snake.Strategy(sf.Strategy),
			Body:     body,
			Heading:  heading,
			Score:    sf.Score,
			Alive:    sf.Alive,
		})
	}
	return v
}

// BoundsOf returns the recorded board range
func (r Replay) BoundsOf() core.Bounds {
	return core.Bounds{Min: r.Bounds[0], Max: r.Bounds[1]}
}
