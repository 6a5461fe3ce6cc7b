package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	cellFilled = "[]"
	cellEmpty  = " ."
	previewDim = 4
)

// Renderer writes snapshots as text, optionally with ANSI colours.
type Renderer struct {
	palette map[mino.Block]*color.Color
	label   *color.Color
}

func New(colored bool) *Renderer {
	r := &Renderer{
		palette: map[mino.Block]*color.Color{
			mino.BlockCyan:   color.New(color.FgHiCyan),
			mino.BlockBlue:   color.New(color.FgHiBlue),
			mino.BlockOrange: color.New(color.FgYellow),
			mino.BlockYellow: color.New(color.FgHiYellow),
			mino.BlockGreen:  color.New(color.FgHiGreen),
			mino.BlockPurple: color.New(color.FgMagenta),
			mino.BlockRed:    color.New(color.FgHiRed),
		},
		label: color.New(color.Bold),
	}

	all := append([]*color.Color{r.label}, paletteValues(r.palette)...)
	for _, c := range all {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func paletteValues(p map[mino.Block]*color.Color) []*color.Color {
	values := make([]*color.Color, 0, len(p))
	for _, c := range p {
		values = append(values, c)
	}
	return values
}

func (r *Renderer) cell(b mino.Block) string {
	if c, ok := r.palette[b]; ok {
		return c.Sprint(cellFilled)
	}
	return cellEmpty
}

// Board writes the board with the falling piece drawn over it.
func (r *Renderer) Board(w io.Writer, snap *game.Snapshot) error {
	var buf bytes.Buffer

	border := "+" + strings.Repeat("-", snap.Cols*2) + "+\n"
	buf.WriteString(border)
	for _, row := range snap.Grid() {
		buf.WriteRune('|')
		for _, b := range row {
			buf.WriteString(r.cell(b))
		}
		buf.WriteString("|\n")
	}
	buf.WriteString(border)

	_, err := w.Write(buf.Bytes())
	return err
}

// Next writes the queued piece in its 4x4 preview window.
func (r *Renderer) Next(w io.Writer, snap *game.Snapshot) error {
	var grid [previewDim][previewDim]mino.Block
	for _, c := range snap.Next {
		if c.X >= 0 && c.X < previewDim && c.Y >= 0 && c.Y < previewDim {
			grid[c.Y][c.X] = c.Block
		}
	}

	var lines []string
	for _, row := range grid {
		var line strings.Builder
		for _, b := range row {
			if b == mino.BlockNone {
				line.WriteString("  ")
				continue
			}
			line.WriteString(r.cell(b))
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// Stats writes score, lines, level, speed and status on one line.
func (r *Renderer) Stats(w io.Writer, snap *game.Snapshot) error {
	_, err := fmt.Fprintf(w, "%s %d  %s %d  %s %d  %s %dms  %s %s\n",
		r.label.Sprint("Score:"), snap.Score,
		r.label.Sprint("Lines:"), snap.Lines,
		r.label.Sprint("Level:"), snap.Level,
		r.label.Sprint("Speed:"), snap.SpeedMs,
		r.label.Sprint("Status:"), snap.Status)
	return err
}

// Snapshot writes the board, the stats and the next piece.
func (r *Renderer) Snapshot(w io.Writer, snap *game.Snapshot) error {
	if err := r.Board(w, snap); err != nil {
		return err
	}
	if err := r.Stats(w, snap); err != nil {
		return err
	}
	if len(snap.Next) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, r.label.Sprint("Next:")+"\n"); err != nil {
		return err
	}
	return r.Next(w, snap)
}

// String renders snap without colours.
func String(snap *game.Snapshot) string {
	var b strings.Builder
	_ = New(false).Snapshot(&b, snap)
	return b.String()
}
