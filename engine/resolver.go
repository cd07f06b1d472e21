package engine

import (
	"fmt"
	"time"

	"github.com/go-kit/log/level"

	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/navigation"
	"github.com/lixenwraith/algo-snake/snake"
)

// rung names the step of the decision ladder that produced a move
type rung string

const (
	rungPath       rung = "path"
	rungStraight   rung = "straight"
	rungTurn       rung = "turn"
	rungExternal   rung = "external"
	rungEliminated rung = "eliminated"
)

// AdvanceTick resolves one move for every active agent in iteration order,
// removes the agents that could not move and checks for the end of the game
func (s *Simulation) AdvanceTick() (TickReport, error) {
	if s.over {
		return s.report(nil, nil), s.err
	}
	started := time.Now()
	s.tick++

	var marked []*snake.Snake
	var captured []int
	for _, sn := range s.active {
		if !s.resolve(sn) {
			marked = append(marked, sn)
			continue
		}
		if sn.Head() != s.eatable.At {
			continue
		}
		if err := s.capture(sn); err != nil {
			s.finish(nil, err)
			return s.report(captured, nil), err
		}
		captured = append(captured, sn.ID)
	}

	eliminated := s.removeMarked(marked)

	s.statTicks.Store(int64(s.tick))
	s.statTickMicros.Set(float64(time.Since(started).Microseconds()))
	s.emit(events.EventTickDone, &events.TickPayload{
		Active:     len(s.active),
		Captures:   len(captured),
		Eliminated: len(eliminated),
	})

	if s.finished() {
		var winner *snake.Snake
		if len(s.active) == 1 {
			winner = s.active[0]
		}
		s.finish(winner, nil)
	}
	return s.report(captured, eliminated), nil
}

// finished applies the end condition; a solo run lasts until its only agent is gone
func (s *Simulation) finished() bool {
	if s.startCount <= 1 {
		return len(s.active) == 0
	}
	return len(s.active) <= 1
}

func (s *Simulation) report(captured, eliminated []int) TickReport {
	r := TickReport{
		Tick:       s.tick,
		Captured:   captured,
		Eliminated: eliminated,
		Over:       s.over,
		WinnerID:   -1,
	}
	if s.winner != nil {
		r.WinnerID = s.winner.ID
	}
	return r
}

// resolve moves one agent, returning false when it has no legal move
func (s *Simulation) resolve(sn *snake.Snake) bool {
	if sn.External() {
		if h, ok := s.pending[sn.ID]; ok {
			sn.Heading = h
			delete(s.pending, sn.ID)
		}
		if s.WouldCollide(sn, sn.Next()) {
			s.logDecision(sn, rungEliminated, 0)
			return false
		}
		s.commit(sn)
		s.logDecision(sn, rungExternal, 0)
		return true
	}

	res := s.findPath(sn)
	if res.Found() && !s.WouldCollide(sn, res.Path[0]) {
		sn.SetHeadingToward(res.Path[0])
		s.commit(sn)
		s.logDecision(sn, rungPath, len(res.Path))
		return true
	}

	if !s.WouldCollide(sn, sn.Next()) {
		s.commit(sn)
		s.statStraight.Add(1)
		s.logDecision(sn, rungStraight, 0)
		return true
	}

	head := sn.Head()
	for _, d := range sn.Heading.Perpendicular() {
		if !s.WouldCollide(sn, head.Add(d)) {
			sn.Heading = d
			s.commit(sn)
			s.statTurn.Add(1)
			s.logDecision(sn, rungTurn, 0)
			return true
		}
	}

	s.logDecision(sn, rungEliminated, 0)
	return false
}

func (s *Simulation) findPath(sn *snake.Snake) navigation.Result {
	finder, ok := s.finders[sn.Strategy]
	if !ok {
		return navigation.Result{}
	}
	res := finder.FindPath(navigation.Request{
		Start:    sn.Head(),
		Goal:     s.eatable.At,
		Bounds:   s.bounds,
		Blocked:  s.occ.For(sn.Tail()).Blocked,
		Shortest: sn.SeeksShortest,
	})

	st := s.search[sn.Strategy]
	st.expanded.Add(int64(res.Expanded))
	if res.Found() {
		st.avgPath.Mean(float64(len(res.Path)), st.queries.Add(1))
	} else {
		st.noPath.Add(1)
	}
	return res
}

// commit advances sn along its heading and patches the occupancy grid
func (s *Simulation) commit(sn *snake.Snake) {
	tail := sn.Tail()
	sn.Advance()
	s.occ.Remove(tail)
	s.occ.Add(sn.Head())
}

// capture scores, grows sn and moves the eatable off every body
func (s *Simulation) capture(sn *snake.Snake) error {
	at := s.eatable.At
	sn.Eat()
	s.occ.Add(sn.Tail())
	s.statCaptures.Add(1)
	s.emit(events.EventCapture, &events.CapturePayload{
		SnakeID: sn.ID,
		Name:    sn.Name,
		Score:   sn.Score,
		Length:  sn.Len(),
		At:      at,
	})
	level.Info(s.logger).Log("msg", "capture", "tick", s.tick, "snake", sn.Name, "score", sn.Score, "at", at)

	if err := s.eatable.Place(s.rng, s.bounds, s.occ.Occupied); err != nil {
		return fmt.Errorf("relocate eatable at tick %d: %w", s.tick, err)
	}
	s.emit(events.EventEatableMoved, &events.EatablePayload{At: s.eatable.At})
	return nil
}

// removeMarked drops agents that could not move; they kept blocking until now
func (s *Simulation) removeMarked(marked []*snake.Snake) []int {
	if len(marked) == 0 {
		return nil
	}
	ids := make([]int, 0, len(marked))
	for _, sn := range marked {
		s.occ.RemoveBody(sn.Body)
		delete(s.pending, sn.ID)
		s.eliminated = append(s.eliminated, sn)
		ids = append(ids, sn.ID)
		s.statEliminations.Add(1)
		s.emit(events.EventElimination, &events.EliminationPayload{
			SnakeID: sn.ID,
			Name:    sn.Name,
			Score:   sn.Score,
			Length:  sn.Len(),
		})
		level.Info(s.logger).Log("msg", "eliminated", "tick", s.tick, "snake", sn.Name, "score", sn.Score)
	}

	kept := s.active[:0]
	for _, sn := range s.active {
		if !containsSnake(marked, sn) {
			kept = append(kept, sn)
		}
	}
	clear(s.active[len(kept):])
	s.active = kept
	return ids
}

func containsSnake(list []*snake.Snake, sn *snake.Snake) bool {
	for _, c := range list {
		if c == sn {
			return true
		}
	}
	return false
}

func (s *Simulation) finish(winner *snake.Snake, err error) {
	s.over = true
	s.winner = winner
	s.err = err
	name := WinnerName(winner)
	s.statWinner.Store(name)
	s.emit(events.EventGameOver, &events.GameOverPayload{
		WinnerID:  winnerID(winner),
		Winner:    name,
		Ticks:     s.tick,
		BoardFull: err != nil,
	})
	level.Info(s.logger).Log("msg", "game over", "tick", s.tick, "winner", name, "err", err)
}

func (s *Simulation) logDecision(sn *snake.Snake, r rung, pathLen int) {
	level.Debug(s.logger).Log("tick", s.tick, "snake", sn.Name, "rung", string(r), "path", pathLen, "head", sn.Head(), "heading", sn.Heading)
}

// WinnerName labels the outcome for banners and records
func WinnerName(winner *snake.Snake) string {
	if winner == nil {
		return "No one"
	}
	return winner.Name
}

func winnerID(winner *snake.Snake) int {
	if winner == nil {
		return -1
	}
	return winner.ID
}
