package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/snake"
)

// SnakeView is an immutable copy of one agent
type SnakeView struct {
	ID       int
	Name     string
	Strategy snake.Strategy
	Body     []core.Point
	Heading  core.Point
	Score    int
	Alive    bool
}

// View is a deep copy of the simulation state, safe to hand to other goroutines
type View struct {
	MatchID  string
	Tick     uint64
	Bounds   core.Bounds
	Eatable  core.Point
	Snakes   []SnakeView // Active first in iteration order, then eliminated in removal order
	Over     bool
	WinnerID int
	Winner   string
}

// Alive returns the views of agents still in play
func (v View) Alive() []SnakeView {
	out := make([]SnakeView, 0, len(v.Snakes))
	for _, sv := range v.Snakes {
		if sv.Alive {
			out = append(out, sv)
		}
	}
	return out
}

// View snapshots the current state
func (s *Simulation) View() View {
	v := View{
		MatchID:  s.ID,
		Tick:     s.tick,
		Bounds:   s.bounds,
		Eatable:  s.eatable.At,
		Snakes:   make([]SnakeView, 0, len(s.active)+len(s.eliminated)),
		Over:     s.over,
		WinnerID: winnerID(s.winner),
	}
	if s.over {
		v.Winner = WinnerName(s.winner)
	}
	for _, sn := range s.active {
		v.Snakes = append(v.Snakes, snakeView(sn, true))
	}
	for _, sn := range s.eliminated {
		v.Snakes = append(v.Snakes, snakeView(sn, false))
	}
	return v
}

func snakeView(sn *snake.Snake, alive bool) SnakeView {
	return SnakeView{
		ID:       sn.ID,
		Name:     sn.Name,
		Strategy: sn.Strategy,
		Body:     sn.Cells(),
		Heading:  sn.Heading,
		Score:    sn.Score,
		Alive:    alive,
	}
}

// Summary is the final record of a finished or abandoned match
type Summary struct {
	MatchID  string
	Seed     uint64
	Ticks    uint64
	Winner   string
	WinnerID int
	Scores   map[string]int
	Started  time.Time
	Duration time.Duration
	Over     bool // False when the run was cut short before the game ended
}

// Summary reports the outcome so far
func (s *Simulation) Summary() Summary {
	scores := make(map[string]int, len(s.active)+len(s.eliminated))
	for _, sn := range s.Agents() {
		scores[sn.Name] = sn.Score
	}
	return Summary{
		MatchID:  s.ID,
		Seed:     s.Seed,
		Ticks:    s.tick,
		Winner:   WinnerName(s.winner),
		WinnerID: winnerID(s.winner),
		Scores:   scores,
		Started:  s.Start,
		Duration: time.Since(s.Start),
		Over:     s.over,
	}
}

// Run ticks without delay until the game ends, maxTicks is reached or ctx is cancelled
// maxTicks <= 0 means no limit
func (s *Simulation) Run(ctx context.Context, maxTicks int) error {
	for !s.over {
		if maxTicks > 0 && s.tick >= uint64(maxTicks) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.AdvanceTick(); err != nil {
			return err
		}
	}
	return nil
}
