package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/render"
)

// Actions picked by the simulator. Ticks are listed twice so pieces keep
// falling.
var simulatedActions = []event.GameAction{
	event.ActionMoveLeft,
	event.ActionMoveRight,
	event.ActionRotate,
	event.ActionSoftDrop,
	event.ActionHardDrop,
	event.ActionTick,
	event.ActionTick,
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "play a headless game with random moves and print the result",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "moves",
				Usage: "maximum number of actions",
				Value: 500,
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "colour the output, defaults to on for terminals",
				Value: term.IsTerminal(int(os.Stdout.Fd())),
			},
		},
		Action: runSimulation,
	}
}

func runSimulation(ctx context.Context, cmd *cli.Command) error {
	closeLog, err := initLog(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s, err := game.NewSession(cfg, nil)
	if err != nil {
		return err
	}

	played := simulate(ctx, s, rand.New(rand.NewSource(cfg.Seed)), cmd.Int("moves"))
	log.Info().Int64("seed", cfg.Seed).Int("actions", played).Int("score", s.Score()).Msg("simulation finished")

	return render.New(cmd.Bool("color")).Snapshot(os.Stdout, s.Snapshot())
}

// simulate starts s and feeds it random actions until the game ends, ctx is
// done or moves actions were played. It returns the number played.
func simulate(ctx context.Context, s *game.Session, rng *rand.Rand, moves int) int {
	s.Start()
	s.DrainEvents()

	played := 0
	for played < moves && s.Running() && ctx.Err() == nil {
		a := simulatedActions[rng.Intn(len(simulatedActions))]
		s.ProcessAction(a)
		played++

		for _, e := range s.DrainEvents() {
			if ev, ok := e.(*event.LinesClearedEvent); ok {
				log.Debug().Int("lines", ev.Lines).Int("total", ev.Total).Msg("lines cleared")
			}
		}
	}
	return played
}
