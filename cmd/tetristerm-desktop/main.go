package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/logger"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/sound"
	"github.com/qnkhuat/tetristerm/pkg/theme"
)

const (
	cellSize   = 28
	margin     = 20
	sideWidth  = 6 * cellSize
	previewDim = 4

	// Frames a key must be held before it repeats.
	repeatDelay = 10
	repeatEvery = 3
)

var (
	background = color.RGBA{0x12, 0x12, 0x12, 0xff}
	gridColor  = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

type binding struct {
	keys   []ebiten.Key
	action event.GameAction
	repeat bool
}

var bindings = []binding{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyH}, event.ActionMoveLeft, true},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyL}, event.ActionMoveRight, true},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyK, ebiten.KeyX}, event.ActionRotate, false},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyJ}, event.ActionSoftDrop, true},
	{[]ebiten.Key{ebiten.KeySpace}, event.ActionHardDrop, false},
	{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeyS}, event.ActionStart, false},
}

func pressed(k ebiten.Key, repeat bool) bool {
	if inpututil.IsKeyJustPressed(k) {
		return true
	}
	if !repeat {
		return false
	}
	d := inpututil.KeyPressDuration(k)
	return d > repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

// Game is the ebiten front end. Update is the only place the session is
// touched, so it needs no locking.
type Game struct {
	session *game.Session
	gravity game.Gravity
	theme   theme.Theme
	player  *sound.Player

	message string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, b := range bindings {
		for _, k := range b.keys {
			if !pressed(k, b.repeat) {
				continue
			}
			if b.action == event.ActionStart {
				if g.session.Running() {
					break
				}
				g.gravity.Reset()
			}
			g.session.ProcessAction(b.action)
			break
		}
	}

	g.gravity.Advance(g.session, time.Second/time.Duration(ebiten.TPS()))

	for _, e := range g.session.DrainEvents() {
		g.handleEvent(e)
	}
	return nil
}

func (g *Game) handleEvent(e interface{}) {
	if g.player != nil {
		g.player.HandleEvent(e)
	}

	switch ev := e.(type) {
	case *event.StartEvent:
		g.message = ""
	case *event.LevelUpEvent:
		g.message = fmt.Sprintf("Level %d!", ev.Level)
	case *event.GameOverEvent:
		g.message = fmt.Sprintf("Game over! Score %d\nPress enter to restart", ev.Score)
		log.Info().Int("score", ev.Score).Int("lines", ev.Lines).Int("level", ev.Level).Msg("game over")
	}
}

func (g *Game) drawCell(screen *ebiten.Image, ox, oy float32, p mino.Point, b mino.Block) {
	x := ox + float32(p.X*cellSize)
	y := oy + float32(p.Y*cellSize)
	vector.DrawFilledRect(screen, x+1, y+1, cellSize-2, cellSize-2, g.theme.RGBA(b), false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	snap := g.session.Snapshot()
	ox, oy := float32(margin), float32(margin)
	w, h := float32(snap.Cols*cellSize), float32(snap.Rows*cellSize)

	vector.StrokeRect(screen, ox-2, oy-2, w+4, h+4, 2, g.theme.BorderRGBA(), false)
	for y, row := range snap.Grid() {
		for x, b := range row {
			if b == mino.BlockNone {
				vector.DrawFilledRect(screen, ox+float32(x*cellSize)+1, oy+float32(y*cellSize)+1, cellSize-2, cellSize-2, gridColor, false)
				continue
			}
			g.drawCell(screen, ox, oy, mino.Point{X: x, Y: y}, b)
		}
	}

	sx := ox + w + margin
	ebitenutil.DebugPrintAt(screen, "Next", int(sx), margin)
	py := oy + 20
	vector.StrokeRect(screen, sx, py, previewDim*cellSize, previewDim*cellSize, 1, g.theme.BorderRGBA(), false)
	for _, c := range snap.Next {
		g.drawCell(screen, sx, py, c.Point, c.Block)
	}

	stats := fmt.Sprintf("Score  %d\nLines  %d\nLevel  %d\nSpeed  %dms\n\n%s",
		snap.Score, snap.Lines, snap.Level, snap.SpeedMs, g.message)
	if snap.Status == game.StatusNotStarted {
		stats += "Press enter to start"
	}
	ebitenutil.DebugPrintAt(screen, stats, int(sx), int(py)+previewDim*cellSize+margin)
}

func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.session.Config
	return cfg.Cols*cellSize + sideWidth + 3*margin, cfg.Rows*cellSize + 2*margin
}

func run(ctx context.Context, cmd *cli.Command) error {
	closer, err := logger.Init(cmd.String("log"), cmd.String("log-level"), "tetristerm-desktop")
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := game.DefaultConfig()
	cfg.Seed = cmd.Int64("seed")
	cfg.Randomizer = cmd.String("randomizer")

	s, err := game.NewSession(cfg, nil)
	if err != nil {
		return err
	}

	t, err := theme.Lookup(cmd.String("theme"))
	if err != nil {
		return err
	}

	g := &Game{session: s, theme: t}
	if cmd.Bool("sound") {
		g.player = sound.NewPlayer()
		defer g.player.Close()
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("tetristerm")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "tetristerm-desktop",
		Usage: "tetris in a window",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "seed", Usage: "piece randomizer seed, 0 for a time based seed", Sources: cli.EnvVars("TETRIS_SEED")},
			&cli.StringFlag{Name: "randomizer", Usage: "uniform or bag", Value: mino.RandomizerUniform, Sources: cli.EnvVars("TETRIS_RANDOMIZER")},
			&cli.StringFlag{Name: "theme", Usage: "colour theme", Value: theme.Builtin[0].Name, Sources: cli.EnvVars("TETRIS_THEME")},
			&cli.BoolFlag{Name: "sound", Usage: "play sound effects", Sources: cli.EnvVars("TETRIS_SOUND")},
			&cli.StringFlag{Name: "log", Usage: "path to log file", Sources: cli.EnvVars("TETRIS_LOG")},
			&cli.StringFlag{Name: "log-level", Value: "info", Sources: cli.EnvVars("TETRIS_LOG_LEVEL")},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tetristerm-desktop: %v\n", err)
		os.Exit(1)
	}
}
