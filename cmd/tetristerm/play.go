package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/gui"
	"github.com/qnkhuat/tetristerm/pkg/render"
	"github.com/qnkhuat/tetristerm/pkg/server"
	"github.com/qnkhuat/tetristerm/pkg/sound"
	"github.com/qnkhuat/tetristerm/pkg/spectate"
	"github.com/qnkhuat/tetristerm/pkg/theme"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Usage:   "player name, random when empty",
				Sources: cli.EnvVars("TETRIS_NAME"),
			},
			&cli.StringFlag{
				Name:    "theme",
				Usage:   "colour theme: classic or muted",
				Value:   theme.Builtin[0].Name,
				Sources: cli.EnvVars("TETRIS_THEME"),
			},
			&cli.BoolFlag{
				Name:    "sound",
				Usage:   "play sound effects",
				Sources: cli.EnvVars("TETRIS_SOUND"),
			},
			&cli.StringFlag{
				Name:    "spectate-addr",
				Usage:   "serve the game to spectators on this address, e.g. :8080",
				Sources: cli.EnvVars("TETRIS_SPECTATE_ADDR"),
			},
		},
		Action: play,
	}
}

func play(ctx context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	closeLog, err := initLog(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	t, err := theme.Lookup(cmd.String("theme"))
	if err != nil {
		return err
	}

	name := cmd.String("name")
	if name == "" {
		name = server.RandomName()
	}

	s, err := game.NewSession(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := game.NewRunner(s)

	if cmd.Bool("sound") {
		p := sound.NewPlayer()
		defer p.Close()
		r.OnEvent(p.HandleEvent)
	}

	if addr := cmd.String("spectate-addr"); addr != "" {
		hub := spectate.NewHub()
		go hub.Run(ctx)
		r.Subscribe(hub.Broadcast)

		go func() {
			if err := spectate.NewServer(hub).ListenAndServe(ctx, addr); err != nil {
				log.Error().Err(err).Str("addr", addr).Msg("spectator server stopped")
			}
		}()
	}

	log.Info().Str("player", name).Interface("config", cfg).Msg("starting")

	g := gui.New(r, t, name)
	go r.Run(ctx)

	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	cancel()

	if last := r.Last(); last != nil && last.Status != game.StatusNotStarted {
		fmt.Printf("Thanks for playing, %s!\n\n", name)
		render.New(true).Snapshot(os.Stdout, last)
	}
	return nil
}
