package main

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-kit/log/level"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/render"
	"github.com/lixenwraith/algo-snake/replay"
	"github.com/lixenwraith/algo-snake/snake"
)

// app is the terminal frontend: a menu leading into watched or played matches
type app struct {
	deps
	screen tcell.Screen
	input  chan tcell.Event
	menu   render.Menu
}

func newApp(d deps) (*app, error) {
	screen, err := openScreen()
	if err != nil {
		return nil, err
	}
	a := &app{deps: d, screen: screen, input: pollInput(screen)}
	if d.cfg.Player {
		a.menu.Selected = 1
	}
	return a, nil
}

func openScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	core.SetCrashHook(screen.Fini)
	screen.HideCursor()
	return screen, nil
}

// pollInput forwards terminal events until the screen is finalized
func pollInput(screen tcell.Screen) chan tcell.Event {
	ch := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(ch)
				return
			}
			ch <- ev
		}
	})
	return ch
}

func quitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

func (a *app) run(ctx context.Context) error {
	defer a.screen.Fini()
	for {
		render.DrawMenu(a.screen, a.menu)
		var ev tcell.Event
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-a.input:
			if !ok {
				return nil
			}
			ev = e
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if quitKey(ev) || ev.Key() == tcell.KeyEscape {
				return nil
			}
			switch ev.Key() {
			case tcell.KeyUp:
				a.menu.Move(-1)
			case tcell.KeyDown:
				a.menu.Move(1)
			case tcell.KeyEnter:
				quit, err := a.choose(ctx)
				if err != nil || quit {
					return err
				}
			}
		}
	}
}

// choose runs the selected menu entry and reports whether the program should exit
func (a *app) choose(ctx context.Context) (bool, error) {
	switch a.menu.Choice() {
	case "Simulation":
		return a.playMatch(ctx, false)
	case "Play":
		return a.playMatch(ctx, true)
	default:
		return true, nil
	}
}

func playerID(v engine.View) int {
	for _, sv := range v.Snakes {
		if sv.Strategy == snake.None {
			return sv.ID
		}
	}
	return -1
}

// playMatch runs one match until Esc returns to the menu
// The scheduler stops by itself at game over and the final board stays on screen
func (a *app) playMatch(ctx context.Context, player bool) (quit bool, err error) {
	sess, rec, err := newMatch(a.deps, a.cfg.Seed, player)
	if err != nil {
		return false, err
	}
	pid := -1
	if player {
		pid = playerID(sess.View())
	}

	clock := engine.NewPausableClock()
	sched, updates := engine.NewClockScheduler(sess, clock, pacing(a.cfg), a.logger)
	sched.Start()
	defer func() {
		sched.Stop()
		sess.Stop()
		if saveErr := saveMatch(ctx, a.deps, sess.Summary(), rec, a.cfg.Replay.Path); saveErr != nil {
			level.Error(a.logger).Log("msg", "save match", "err", saveErr)
		}
	}()

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return true, nil

		case ev, ok := <-a.input:
			if !ok {
				return true, nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				dirty = true
			case *tcell.EventKey:
				if quitKey(ev) {
					return true, nil
				}
				switch {
				case ev.Key() == tcell.KeyEscape:
					return false, nil
				case ev.Key() == tcell.KeyLeft:
					a.steer(sess, pid, snake.TurnLeft)
				case ev.Key() == tcell.KeyRight:
					a.steer(sess, pid, snake.TurnRight)
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
					if clock.IsPaused() {
						sched.Resume()
					} else {
						sched.Pause()
					}
					dirty = true
				}
			}

		case <-updates:
			dirty = true

		case <-frameTicker.C:
			if !dirty {
				continue
			}
			dirty = false
			status := parameter.HelpText
			if clock.IsPaused() {
				status = parameter.PausedText
			}
			render.DrawFrame(a.screen, render.Frame{
				View:    sess.View(),
				Metrics: a.metrics.Snapshot(),
				Status:  status,
			})
		}
	}
}

func (a *app) steer(sess *engine.Session, id int, t snake.Turn) {
	if id < 0 {
		return
	}
	if err := sess.Turn(id, t); err != nil && !errors.Is(err, engine.ErrUnknownAgent) {
		level.Debug(a.logger).Log("msg", "turn rejected", "agent", id, "err", err)
	}
}

// playbackTUI steps through a replay at the tick interval; p pauses, Esc quits
func playbackTUI(ctx context.Context, d deps, path string) error {
	r, err := replay.Load(path)
	if err != nil {
		return err
	}
	screen, err := openScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()
	input := pollInput(screen)

	bounds := r.BoundsOf()
	ticker := time.NewTicker(pacing(d.cfg))
	defer ticker.Stop()

	i, paused := 0, false
	draw := func() {
		if len(r.Frames) == 0 {
			screen.Clear()
			render.DrawText(screen, 0, 0, tcell.StyleDefault, parameter.ReplayText)
			screen.Show()
			return
		}
		status := parameter.ReplayText
		if paused {
			status = parameter.PausedText
		}
		render.DrawFrame(screen, render.Frame{View: r.Frames[i].View(r.MatchID, bounds), Status: status})
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-input:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw()
			case *tcell.EventKey:
				if quitKey(ev) || ev.Key() == tcell.KeyEscape {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'p' {
					paused = !paused
					draw()
				}
			}
		case <-ticker.C:
			if paused || i >= len(r.Frames)-1 {
				continue
			}
			i++
			draw()
		}
	}
}
