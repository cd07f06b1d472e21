package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/term"

	"github.com/lixenwraith/algo-snake/audio"
	"github.com/lixenwraith/algo-snake/config"
	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/spectate"
	"github.com/lixenwraith/algo-snake/status"
	"github.com/lixenwraith/algo-snake/storage"
)

var (
	configFlag   = flag.String("config", "", "TOML configuration file")
	dumpFlag     = flag.Bool("dump-config", false, "Print the effective configuration and exit")
	playerFlag   = flag.Bool("player", false, "Start directly in play mode with a steerable snake")
	tickFlag     = flag.Duration("tick", 0, "Tick interval (overrides config)")
	seedFlag     = flag.Uint64("seed", 0, "Eatable placement seed, 0 picks one from the clock")
	debugFlag    = flag.Bool("debug", false, "Write debug logs to the log directory")
	audioFlag    = flag.Bool("audio", false, "Enable sound cues")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal UI")
	matchesFlag  = flag.Int("matches", 1, "Number of headless matches")
	maxTicksFlag = flag.Uint64("max-ticks", parameter.HeadlessTickLimit, "Headless tick limit per match, 0 for none")
	playFlag     = flag.String("play", "", "Play back a recorded replay file")
	spectateFlag = flag.String("spectate", "", "Serve spectator websocket on addr, e.g. :8080")
	historyFlag  = flag.Int("history", 0, "List the last n stored matches and exit")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if *dumpFlag {
		if err := cfg.Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, logFile := setupLogging(cfg.Log.Debug, cfg.Log.Dir)
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		level.Error(logger).Log("msg", "exit", "err", err)
		fmt.Fprintf(os.Stderr, "algo-snake: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the optional file and applies flag overrides
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["tick"] {
		cfg.TickInterval = config.Duration{Duration: *tickFlag}
	}
	if set["seed"] {
		cfg.Seed = *seedFlag
	}
	if set["player"] {
		cfg.Player = *playerFlag
	}
	if set["debug"] {
		cfg.Log.Debug = *debugFlag
	}
	if set["audio"] {
		cfg.Audio = *audioFlag
	}
	if set["spectate"] {
		cfg.Spectate.Addr = *spectateFlag
	}
	return cfg, cfg.Validate()
}

// deps are the shared services handed to every match
type deps struct {
	cfg     config.Config
	logger  log.Logger
	metrics *status.Registry
	store   storage.Store
	hub     *spectate.Hub
	cues    *audio.CuePlayer

	// maxTicks ends headless matches early; 0 disables the limit
	maxTicks uint64
}

func run(ctx context.Context, cfg config.Config, logger log.Logger, out io.Writer) error {
	d := deps{
		cfg:     cfg,
		logger:  logger,
		metrics: status.NewRegistry(),
		cues:    audio.NewCuePlayer(cfg.Audio),

		maxTicks: *maxTicksFlag,
	}

	if cfg.Storage.Backend != "none" {
		store, err := storage.NewStore(cfg.Storage.Backend, cfg.Storage.Path)
		if err != nil {
			return err
		}
		if err := store.Init(ctx); err != nil {
			return fmt.Errorf("storage init: %w", err)
		}
		defer store.Close()
		d.store = store
	}

	if *historyFlag > 0 {
		return printHistory(ctx, out, d.store, *historyFlag)
	}

	if cfg.Spectate.Addr != "" {
		d.hub = spectate.NewHub(logger)
		core.Go(func() {
			if err := spectate.Serve(ctx, cfg.Spectate.Addr, d.hub); err != nil {
				level.Error(logger).Log("msg", "spectator server stopped", "err", err)
			}
		})
	}

	interactive := !*headlessFlag && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive && !*headlessFlag {
		level.Info(logger).Log("msg", "no terminal attached, running headless")
	}

	if *playFlag != "" {
		if interactive {
			return playbackTUI(ctx, d, *playFlag)
		}
		return describeReplay(out, *playFlag)
	}

	if !interactive {
		d.cues = nil
		return runHeadless(ctx, d, out, *matchesFlag)
	}

	if err := d.cues.Init(); err != nil {
		level.Warn(logger).Log("msg", "audio disabled", "err", err)
	}
	defer d.cues.Close()

	a, err := newApp(d)
	if err != nil {
		return err
	}
	return a.run(ctx)
}

// pacing returns the scheduler interval for matches watched by someone
func pacing(cfg config.Config) time.Duration {
	if cfg.TickInterval.Duration < parameter.MinTickInterval {
		return parameter.GameUpdateInterval
	}
	return cfg.TickInterval.Duration
}

func printHistory(ctx context.Context, out io.Writer, store storage.Store, n int) error {
	if store == nil {
		return errors.New("match history needs a storage backend")
	}
	recs, err := store.ListMatches(ctx, n)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Fprintln(out, formatRecord(rec))
	}
	wins, err := store.Wins(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatWins(wins))
	return nil
}
