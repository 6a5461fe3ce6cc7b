package gui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/theme"
)

const (
	labelStart   = "Start Game"
	labelPlaying = "Playing"
	labelRestart = "Restart"

	previewSize = 4
	sideWidth   = 26
)

const helpText = `[::b]Controls[::-]
←/h →/l  move
↑/k/x    rotate
↓/j      soft drop
space    hard drop
enter/s  start
q/esc    quit`

type GUI struct {
	App      *tview.Application
	Layout   *tview.Grid
	Board    *BoardView
	Next     *BoardView
	Stats    *tview.TextView
	Message  *tview.TextView
	StartBtn *tview.Button

	Name string

	runner *game.Runner
	keys   *Keymap
	draw   chan *game.Snapshot

	message string
	sync.Mutex
}

func New(r *game.Runner, t theme.Theme, name string) *GUI {
	app := tview.NewApplication()
	cfg := r.Session.Config

	g := &GUI{
		App:    app,
		Name:   name,
		runner: r,
		keys:   DefaultKeymap(),
		draw:   make(chan *game.Snapshot, 1),
	}

	g.Board = NewBoardView(cfg.Cols, cfg.Rows, t, true)
	g.Board.SetBorder(true).SetTitle(" " + name + " ")

	g.Next = NewBoardView(previewSize, previewSize, t, false)
	g.Next.SetBorder(true).SetTitle(" Next ")

	g.StartBtn = tview.NewButton(labelStart).SetSelectedFunc(func() {
		g.start()
	})

	g.Stats = tview.NewTextView().
		SetDynamicColors(true)

	g.Message = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetText(helpText)

	boardW, boardH := g.Board.Size()
	nextW, nextH := g.Next.Size()

	side := tview.NewGrid().
		SetColumns(nextW, -1).
		SetRows(1, 1, nextH, 5, 3, -1).
		AddItem(g.StartBtn, 0, 0, 1, 2, 0, 0, false).
		AddItem(g.Next, 2, 0, 1, 1, 0, 0, false).
		AddItem(g.Stats, 3, 0, 1, 2, 0, 0, false).
		AddItem(g.Message, 4, 0, 1, 2, 0, 0, false).
		AddItem(help, 5, 0, 1, 2, 0, 0, false)

	g.Layout = tview.NewGrid().
		SetRows(-1, boardH, -1).
		SetColumns(-1, boardW, 1, sideWidth, -1).
		AddItem(tview.NewBox(), 0, 0, 3, 1, 0, 0, false).
		AddItem(tview.NewBox(), 0, 1, 1, 3, 0, 0, false).
		AddItem(tview.NewBox(), 2, 1, 1, 3, 0, 0, false).
		AddItem(tview.NewBox(), 0, 4, 3, 1, 0, 0, false).
		AddItem(g.Board, 1, 1, 1, 1, 0, 0, true).
		AddItem(side, 1, 3, 1, 1, 0, 0, false)

	app.SetRoot(g.Layout, true).
		SetInputCapture(g.handleKey).
		EnableMouse(true)

	r.Subscribe(g.onSnapshot)
	r.OnEvent(g.onEvent)

	if last := r.Last(); last != nil {
		g.update(last)
	} else {
		g.update(r.Session.Snapshot())
	}

	return g
}

// Run blocks until the user quits or ctx is done.
func (g *GUI) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go g.handleDraw(done)
	go func() {
		select {
		case <-ctx.Done():
			g.App.Stop()
		case <-done:
		}
	}()

	return g.App.Run()
}

func (g *GUI) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if isQuit(ev) {
		g.App.Stop()
		return nil
	}

	if a, ok := g.keys.Action(ev); ok {
		if a == event.ActionStart {
			g.start()
		} else {
			g.runner.Do(a)
		}
		return nil
	}

	return ev
}

// start begins a game unless one is already running, so a stray key never
// throws away a game in progress.
func (g *GUI) start() bool {
	if last := g.runner.Last(); last != nil && last.Status == game.StatusRunning {
		return false
	}
	return g.runner.Do(event.ActionStart)
}

// onSnapshot keeps only the newest pending snapshot so a slow terminal
// never blocks the runner.
func (g *GUI) onSnapshot(s *game.Snapshot) {
	for {
		select {
		case g.draw <- s:
			return
		default:
		}

		select {
		case <-g.draw:
		default:
		}
	}
}

func (g *GUI) handleDraw(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case s := <-g.draw:
			g.App.QueueUpdateDraw(func() {
				g.update(s)
			})
		}
	}
}

func (g *GUI) onEvent(e interface{}) {
	var msg string
	switch ev := e.(type) {
	case *event.StartEvent:
		msg = ""
	case *event.LevelUpEvent:
		msg = fmt.Sprintf("[yellow]Level %d![-]", ev.Level)
	case *event.LinesClearedEvent:
		if ev.Lines == 4 {
			msg = "[green]Tetris![-]"
		}
	case *event.GameOverEvent:
		msg = fmt.Sprintf("[red]Game over![-] Final score %d.\nPress enter to play again.", ev.Score)
		log.Info().Str("player", g.Name).Int("score", ev.Score).Int("lines", ev.Lines).Msg("game over")
	default:
		return
	}

	g.Lock()
	g.message = msg
	g.Unlock()
}

// update redraws every widget from s. It must run on the UI goroutine.
func (g *GUI) update(s *game.Snapshot) {
	g.Board.Update(s)
	g.Next.SetCells(s.Next)

	switch s.Status {
	case game.StatusNotStarted:
		g.StartBtn.SetLabel(labelStart)
	case game.StatusRunning:
		g.StartBtn.SetLabel(labelPlaying)
	case game.StatusGameOver:
		g.StartBtn.SetLabel(labelRestart)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[::b]Score[::-]  %d\n", s.Score)
	fmt.Fprintf(&b, "[::b]Lines[::-]  %d\n", s.Lines)
	fmt.Fprintf(&b, "[::b]Level[::-]  %d\n", s.Level)
	fmt.Fprintf(&b, "[::b]Speed[::-]  %dms", s.SpeedMs)
	g.Stats.SetText(b.String())

	g.Lock()
	msg := g.message
	g.Unlock()
	g.Message.SetText(msg)
}
