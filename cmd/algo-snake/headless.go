package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"

	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/replay"
	"github.com/lixenwraith/algo-snake/storage"
)

// limitTicker ends a run after limit ticks so two agents circling forever still stop
// The game itself stays open and the saved record is marked unfinished
type limitTicker struct {
	sess  *engine.Session
	limit uint64
}

func (l limitTicker) AdvanceTick() (engine.TickReport, error) {
	r, err := l.sess.AdvanceTick()
	if l.limit > 0 && r.Tick >= l.limit {
		r.Over = true
	}
	return r, err
}

// newMatch builds a session with the recorder and spectator hub attached
func newMatch(d deps, seed uint64, player bool) (*engine.Session, *replay.Recorder, error) {
	specs, err := d.cfg.AgentSpecs()
	if err != nil {
		return nil, nil, err
	}
	sess, err := engine.NewSession(engine.Options{
		Agents:        specs,
		PlayerEnabled: player,
		Seed:          seed,
		Logger:        d.logger,
		Metrics:       d.metrics,
	})
	if err != nil {
		return nil, nil, err
	}
	rec := replay.NewRecorder(parameter.ReplayFrameInterval)
	sess.Register(rec)
	if d.hub != nil {
		sess.Register(d.hub)
	}
	if d.cues != nil && d.cues.Enabled() {
		sess.Register(d.cues)
	}
	sess.Drain()
	return sess, rec, nil
}

// runHeadless plays n matches back to back and prints one line per match
// With a spectator hub attached the matches are paced at the tick interval
func runHeadless(ctx context.Context, d deps, out io.Writer, n int) error {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		seed := d.cfg.Seed
		if seed != 0 {
			seed += uint64(i)
		}
		sess, rec, err := newMatch(d, seed, false)
		if err != nil {
			return err
		}
		lt := limitTicker{sess: sess, limit: d.maxTicks}

		if d.hub != nil {
			err = runPaced(ctx, d, lt)
		} else {
			err = runFast(ctx, lt)
		}
		sess.Stop()
		if err != nil {
			return err
		}

		sum := sess.Summary()
		if err := saveMatch(ctx, d, sum, rec, matchReplayPath(d.cfg.Replay.Path, i, n)); err != nil {
			return err
		}
		fmt.Fprintf(out, "match %d/%d %s\n", i+1, n, formatSummary(sum))
		if ctx.Err() != nil {
			break
		}
	}

	fmt.Fprintln(out, strings.Join(d.metrics.Snapshot(), " "))
	if d.store != nil {
		wins, err := d.store.Wins(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatWins(wins))
	}
	return nil
}

func runFast(ctx context.Context, t engine.Ticker) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		r, err := t.AdvanceTick()
		if err != nil {
			return matchErr(err)
		}
		if r.Over {
			return nil
		}
	}
}

func runPaced(ctx context.Context, d deps, t engine.Ticker) error {
	sched, _ := engine.NewClockScheduler(t, engine.NewPausableClock(), pacing(d.cfg), d.logger)
	sched.Start()
	select {
	case <-sched.Done():
	case <-ctx.Done():
		sched.Stop()
	}
	return matchErr(sched.Err())
}

// matchErr treats a board with no free cell as a finished match
func matchErr(err error) error {
	if errors.Is(err, engine.ErrBoardFull) {
		return nil
	}
	return err
}

// saveMatch persists the summary and, when path is set, the recorded replay
func saveMatch(ctx context.Context, d deps, sum engine.Summary, rec *replay.Recorder, path string) error {
	if d.store != nil {
		if err := d.store.SaveMatch(ctx, recordOf(sum)); err != nil {
			return fmt.Errorf("save match %s: %w", sum.MatchID, err)
		}
	}
	if path != "" && rec != nil {
		if err := replay.Save(path, rec.Replay()); err != nil {
			return err
		}
		level.Info(d.logger).Log("msg", "replay saved", "path", path, "match", sum.MatchID)
	}
	return nil
}

func recordOf(sum engine.Summary) storage.MatchRecord {
	return storage.MatchRecord{
		ID:         sum.MatchID,
		Seed:       sum.Seed,
		Started:    sum.Started,
		Duration:   sum.Duration,
		Ticks:      sum.Ticks,
		Winner:     sum.Winner,
		Scores:     sum.Scores,
		Unfinished: !sum.Over,
	}
}

// matchReplayPath numbers the file when more than one match is recorded
func matchReplayPath(base string, i, n int) string {
	if base == "" || n <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), i+1, ext)
}

func formatScores(scores map[string]int) string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, scores[name])
	}
	return strings.Join(parts, " ")
}

// winnerLabel keeps a cut-short run apart from a game nobody survived
func winnerLabel(winner string, unfinished bool) string {
	if unfinished {
		return "unfinished"
	}
	return winner
}

func formatSummary(sum engine.Summary) string {
	return fmt.Sprintf("winner=%s ticks=%s took=%s seed=%d %s",
		winnerLabel(sum.Winner, !sum.Over), humanize.Comma(int64(sum.Ticks)), sum.Duration.Round(time.Millisecond), sum.Seed, formatScores(sum.Scores))
}

func formatRecord(rec storage.MatchRecord) string {
	return fmt.Sprintf("%s %s winner=%s ticks=%s %s",
		rec.ID, humanize.Time(rec.Started), winnerLabel(rec.Winner, rec.Unfinished), humanize.Comma(int64(rec.Ticks)), formatScores(rec.Scores))
}

func formatWins(wins map[string]int) string {
	total := 0
	for _, n := range wins {
		total += n
	}
	return fmt.Sprintf("wins over %s matches: %s", humanize.Comma(int64(total)), formatScores(wins))
}

// describeReplay prints a replay's outline when no terminal is available
func describeReplay(out io.Writer, path string) error {
	r, err := replay.Load(path)
	if err != nil {
		return err
	}
	if len(r.Frames) == 0 {
		fmt.Fprintf(out, "%s: empty replay\n", r.MatchID)
		return nil
	}
	last := r.Frames[len(r.Frames)-1]
	winner := winnerLabel(last.Winner, last.Winner == "")
	fmt.Fprintf(out, "%s frames=%s last_tick=%s winner=%s\n",
		r.MatchID, humanize.Comma(int64(len(r.Frames))), humanize.Comma(int64(last.Tick)), winner)
	for _, s := range last.Snakes {
		fmt.Fprintf(out, "  %s: %d\n", s.Name, s.Score)
	}
	return nil
}
