package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/logger"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	AppName = "tetristerm"
	Version = "0.1.0"
)

// The flag constructors return fresh values since flags keep parse state.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "cols",
			Usage:   "board width",
			Value:   game.DefaultCols,
			Sources: cli.EnvVars("TETRIS_COLS"),
		},
		&cli.IntFlag{
			Name:    "rows",
			Usage:   "board height",
			Value:   game.DefaultRows,
			Sources: cli.EnvVars("TETRIS_ROWS"),
		},
		&cli.DurationFlag{
			Name:    "base-speed",
			Usage:   "gravity period at level 1",
			Value:   game.DefaultBaseSpeed,
			Sources: cli.EnvVars("TETRIS_BASE_SPEED"),
		},
		&cli.DurationFlag{
			Name:    "speed-step",
			Usage:   "gravity period removed per level",
			Value:   game.DefaultSpeedStep,
			Sources: cli.EnvVars("TETRIS_SPEED_STEP"),
		},
		&cli.DurationFlag{
			Name:    "min-speed",
			Usage:   "fastest gravity period",
			Value:   game.DefaultMinSpeed,
			Sources: cli.EnvVars("TETRIS_MIN_SPEED"),
		},
		&cli.IntFlag{
			Name:    "lines-per-level",
			Usage:   "cleared lines needed per level",
			Value:   game.DefaultLinesPerLevel,
			Sources: cli.EnvVars("TETRIS_LINES_PER_LEVEL"),
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "piece randomizer seed, 0 for a time based seed",
			Sources: cli.EnvVars("TETRIS_SEED"),
		},
		&cli.StringFlag{
			Name:    "randomizer",
			Usage:   "piece randomizer: uniform or bag",
			Value:   mino.RandomizerUniform,
			Sources: cli.EnvVars("TETRIS_RANDOMIZER"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "panic on board invariant violations",
			Sources: cli.EnvVars("TETRIS_DEBUG"),
		},
	}
}

func logFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "log",
			Usage:     "path to log file",
			TakesFile: true,
			Sources:   cli.EnvVars("TETRIS_LOG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "trace, debug, info, warn or error",
			Value:   "info",
			Sources: cli.EnvVars("TETRIS_LOG_LEVEL"),
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:           AppName,
		Usage:          "tetris in your terminal",
		Version:        Version,
		DefaultCommand: "play",
		Flags:          append(configFlags(), logFlags()...),
		Commands: []*cli.Command{
			playCommand(),
			sshCommand(),
			mcpCommand(),
			simulateCommand(),
		},
	}
}

func configFrom(cmd *cli.Command) (game.Config, error) {
	cfg := game.Config{
		Cols:          cmd.Int("cols"),
		Rows:          cmd.Int("rows"),
		BaseSpeed:     cmd.Duration("base-speed"),
		SpeedStep:     cmd.Duration("speed-step"),
		MinSpeed:      cmd.Duration("min-speed"),
		LinesPerLevel: cmd.Int("lines-per-level"),
		Seed:          cmd.Int64("seed"),
		Randomizer:    cmd.String("randomizer"),
		Debug:         cmd.Bool("debug"),
	}
	return cfg, cfg.Validate()
}

// configArgs turns cfg back into flags for a child process.
func configArgs(cfg game.Config) []string {
	args := []string{
		"--cols", fmt.Sprint(cfg.Cols),
		"--rows", fmt.Sprint(cfg.Rows),
		"--base-speed", cfg.BaseSpeed.String(),
		"--speed-step", cfg.SpeedStep.String(),
		"--min-speed", cfg.MinSpeed.String(),
		"--lines-per-level", fmt.Sprint(cfg.LinesPerLevel),
		"--seed", fmt.Sprint(cfg.Seed),
		"--randomizer", cfg.Randomizer,
	}
	if cfg.Debug {
		args = append(args, "--debug")
	}
	return args
}

// initLog sets up the global logger. With quiet set and no log file every
// line is dropped, which keeps the terminal clean for the TUI.
func initLog(cmd *cli.Command, quiet bool) (func(), error) {
	dest := cmd.String("log")
	if dest == "" && quiet {
		logger.Discard()
		return func() {}, nil
	}

	closer, err := logger.Init(dest, cmd.String("log-level"), AppName)
	if err != nil {
		return nil, err
	}
	return func() { closer.Close() }, nil
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		stop()
		os.Exit(1)
	}
}
