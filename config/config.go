// Package config loads the TOML run configuration
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/snake"
)

// ErrInvalid marks a configuration that decoded but cannot be used
var ErrInvalid = errors.New("config: invalid")

// Duration decodes TOML strings such as "50ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // memory | sqlite
	Path    string `toml:"path"`
}

type ReplayConfig struct {
	Path string `toml:"path"` // Empty disables recording
}

type SpectateConfig struct {
	Addr string `toml:"addr"` // Empty disables the websocket server
}

// AgentConfig is one roster entry
type AgentConfig struct {
	Name          string `toml:"name"`
	Strategy      string `toml:"strategy"`
	Start         [2]int `toml:"start"`
	Heading       string `toml:"heading"`
	SeeksShortest *bool  `toml:"seeks_shortest"`
}

// Config is the complete run configuration
type Config struct {
	TickInterval Duration       `toml:"tick_interval"`
	Seed         uint64         `toml:"seed"`
	Player       bool           `toml:"player"`
	Audio        bool           `toml:"audio"`
	Log          LogConfig      `toml:"log"`
	Storage      StorageConfig  `toml:"storage"`
	Replay       ReplayConfig   `toml:"replay"`
	Spectate     SpectateConfig `toml:"spectate"`
	Agents       []AgentConfig  `toml:"agents"`
}

var headingNames = map[string]core.Point{
	"right": core.Right,
	"left":  core.Left,
	"down":  core.Down,
	"up":    core.Up,
}

func headingName(p core.Point) string {
	for name, h := range headingNames {
		if h == p {
			return name
		}
	}
	return ""
}

// Default reproduces the built-in roster and timing
func Default() Config {
	cfg := Config{
		TickInterval: Duration{parameter.GameUpdateInterval},
		Log:          LogConfig{Dir: "logs"},
		Storage:      StorageConfig{Backend: "memory"},
	}
	for _, a := range parameter.DefaultAgents {
		shortest := a.SeeksShortest
		cfg.Agents = append(cfg.Agents, AgentConfig{
			Name:          a.Name,
			Strategy:      a.Strategy,
			Start:         [2]int{a.Start.X, a.Start.Y},
			Heading:       headingName(a.Heading),
			SeeksShortest: &shortest,
		})
	}
	return cfg
}

// Load decodes path over the defaults; a listed [[agents]] array replaces the default roster
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text into cfg and validates the result
func Parse(text string, cfg *Config) error {
	var probe struct {
		Agents []AgentConfig `toml:"agents"`
	}
	if _, err := toml.Decode(text, &probe); err != nil {
		return err
	}
	if probe.Agents != nil {
		cfg.Agents = nil
	}

	md, err := toml.Decode(text, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Write encodes cfg as TOML
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks ranges, names and the roster layout
func (c Config) Validate() error {
	if c.TickInterval.Duration < parameter.MinTickInterval {
		return fmt.Errorf("%w: tick_interval %s below %s", ErrInvalid, c.TickInterval, parameter.MinTickInterval)
	}
	switch c.Storage.Backend {
	case "", "memory", "none":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: sqlite storage needs a path", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage backend %q", ErrInvalid, c.Storage.Backend)
	}
	if len(c.Agents) == 0 && !c.Player {
		return fmt.Errorf("%w: no agents", ErrInvalid)
	}
	_, err := c.AgentSpecs()
	return err
}

// AgentSpecs converts the roster for the engine
func (c Config) AgentSpecs() ([]parameter.AgentSpec, error) {
	seen := make(map[string]bool, len(c.Agents))
	if c.Player {
		seen[strings.ToUpper(parameter.PlayerAgent.Name)] = true
	}
	specs := make([]parameter.AgentSpec, 0, len(c.Agents))
	for i, a := range c.Agents {
		strategy, err := snake.ParseStrategy(a.Strategy)
		if err != nil {
			return nil, fmt.Errorf("%w: agents[%d]: %w", ErrInvalid, i, err)
		}
		name := a.Name
		if name == "" {
			name = strategy.String()
		}
		if seen[strings.ToUpper(name)] {
			return nil, fmt.Errorf("%w: duplicate agent name %q", ErrInvalid, name)
		}
		seen[strings.ToUpper(name)] = true

		heading, ok := headingNames[strings.ToLower(a.Heading)]
		if a.Heading == "" {
			heading, ok = core.Right, true
		}
		if !ok {
			return nil, fmt.Errorf("%w: agent %q heading %q", ErrInvalid, name, a.Heading)
		}
		start := core.Point{X: a.Start[0], Y: a.Start[1]}
		tail := core.Point{
			X: start.X - (parameter.InitialBodyLength-1)*heading.X,
			Y: start.Y - (parameter.InitialBodyLength-1)*heading.Y,
		}
		if !parameter.GridBounds.Contains(start) || !parameter.GridBounds.Contains(tail) {
			return nil, fmt.Errorf("%w: agent %q start %v leaves the board", ErrInvalid, name, start)
		}
		shortest := parameter.DefaultSeeksShortest
		if a.SeeksShortest != nil {
			shortest = *a.SeeksShortest
		}
		specs = append(specs, parameter.AgentSpec{
			Name:          name,
			Strategy:      strategy.Key(),
			Start:         start,
			Heading:       heading,
			SeeksShortest: shortest,
		})
	}
	return specs, nil
}
