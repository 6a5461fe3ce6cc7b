package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/qnkhuat/tetristerm/pkg/game"
)

// parse runs the root command with a capturing action and returns the
// config it resolved.
func parse(t *testing.T, args ...string) (game.Config, error) {
	t.Helper()

	var (
		cfg game.Config
		err error
	)
	cmd := newCommand()
	cmd.Commands = nil
	cmd.DefaultCommand = ""
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		cfg, err = configFrom(c)
		return nil
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{AppName}, args...)))
	return cfg, err
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg)
}

func TestConfigFlags(t *testing.T) {
	cfg, err := parse(t, "--cols", "12", "--rows", "24", "--base-speed", "800ms", "--seed", "42", "--randomizer", "bag", "--debug")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Cols)
	assert.Equal(t, 24, cfg.Rows)
	assert.Equal(t, 800*time.Millisecond, cfg.BaseSpeed)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "bag", cfg.Randomizer)
	assert.True(t, cfg.Debug)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TETRIS_COLS", "8")
	t.Setenv("TETRIS_LINES_PER_LEVEL", "5")

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Cols)
	assert.Equal(t, 5, cfg.LinesPerLevel)
}

func TestConfigInvalid(t *testing.T) {
	_, err := parse(t, "--cols", "2")
	assert.Error(t, err)

	_, err = parse(t, "--base-speed", "10ms", "--min-speed", "50ms")
	assert.Error(t, err)
}

func TestConfigArgsRoundTrip(t *testing.T) {
	want := game.DefaultConfig()
	want.Cols = 14
	want.Seed = 7
	want.Debug = true

	got, err := parse(t, configArgs(want)...)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSimulateIsDeterministic(t *testing.T) {
	run := func() (*game.Snapshot, int) {
		cfg := game.DefaultConfig()
		cfg.Seed = 99

		s, err := game.NewSession(cfg, nil)
		require.NoError(t, err)

		n := simulate(context.Background(), s, rand.New(rand.NewSource(cfg.Seed)), 300)
		return s.Snapshot(), n
	}

	a, na := run()
	b, nb := run()
	assert.Equal(t, na, nb)
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, na, 300)
	assert.NotEqual(t, game.StatusNotStarted, a.Status)
}

func TestSimulateStopsOnCancel(t *testing.T) {
	s, err := game.NewSession(game.DefaultConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, simulate(ctx, s, rand.New(rand.NewSource(1)), 100))
	assert.True(t, s.Running())
}
