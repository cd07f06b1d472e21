package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
)

func TestDefault_MatchesBuiltInRoster(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	specs, err := cfg.AgentSpecs()
	require.NoError(t, err)
	assert.Equal(t, parameter.DefaultAgents, specs)
	assert.Equal(t, parameter.GameUpdateInterval, cfg.TickInterval.Duration)
}

func TestLoad_OverridesAndRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
tick_interval = "20ms"
seed = 42
player = true

[log]
debug = true

[storage]
backend = "sqlite"
path = "matches.db"

[[agents]]
name = "FAST"
strategy = "bfs"
start = [10, 10]
heading = "down"
seeks_shortest = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval.Duration)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Player)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "logs", cfg.Log.Dir, "unset keys keep defaults")
	assert.Equal(t, "sqlite", cfg.Storage.Backend)

	specs, err := cfg.AgentSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 1, "listed agents replace the default roster")
	assert.Equal(t, parameter.AgentSpec{
		Name: "FAST", Strategy: "bfs", Start: core.Point{X: 10, Y: 10}, Heading: core.Down,
	}, specs[0])
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":       `colour = "red"`,
		"short tick":        `tick_interval = "0s"`,
		"bad backend":       "[storage]\nbackend = \"redis\"",
		"sqlite no path":    "[storage]\nbackend = \"sqlite\"",
		"bad strategy":      "[[agents]]\nstrategy = \"greedy\"\nstart = [10, 10]",
		"bad heading":       "[[agents]]\nstrategy = \"bfs\"\nstart = [10, 10]\nheading = \"north\"",
		"off board":         "[[agents]]\nstrategy = \"bfs\"\nstart = [2, 10]",
		"duplicate names":   "[[agents]]\nstrategy = \"bfs\"\nstart = [10, 10]\n[[agents]]\nstrategy = \"bfs\"\nstart = [10, 20]",
		"player name clash": "player = true\n[[agents]]\nname = \"player\"\nstrategy = \"bfs\"\nstart = [10, 10]",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			err := Parse(text, &cfg)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_SyntaxErrorIsNotInvalid(t *testing.T) {
	cfg := Default()
	err := Parse("seed = ", &cfg)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7
	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	back := Default()
	require.NoError(t, Parse(buf.String(), &back))
	assert.Equal(t, cfg, back)
}
