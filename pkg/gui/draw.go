package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/theme"
)

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawCell fills two columns so a cell looks square
func drawCell(s tcell.Screen, x, y int, b mino.Block, t theme.Theme, dots bool) {
	if b == mino.BlockNone {
		style := tcell.StyleDefault.Background(t.Empty).Foreground(t.Border)
		if dots {
			drawText(s, x, y, style, " .")
		} else {
			drawText(s, x, y, style, "  ")
		}
		return
	}
	drawText(s, x, y, tcell.StyleDefault.Background(t.Block(b)), "  ")
}

// BoardView draws a grid of blocks inside a bordered tview box. It keeps the
// blocks it last drew and applies snapshot diffs to them.
type BoardView struct {
	*tview.Box

	cols, rows int
	dots       bool
	theme      theme.Theme

	cells *intmap.Map[int, mino.Block]
	last  *game.Snapshot
}

func NewBoardView(cols, rows int, t theme.Theme, dots bool) *BoardView {
	v := &BoardView{
		Box:   tview.NewBox(),
		cols:  cols,
		rows:  rows,
		dots:  dots,
		theme: t,
		cells: intmap.New[int, mino.Block](cols * rows),
	}
	v.SetBorder(true)
	v.SetDrawFunc(v.draw)
	return v
}

// Size returns the width and height the view needs including its border.
func (v *BoardView) Size() (int, int) {
	return v.cols*2 + 2, v.rows + 2
}

// Update applies the cells that changed since the last snapshot and returns
// how many there were.
func (v *BoardView) Update(snap *game.Snapshot) int {
	changed := game.Diff(v.last, snap)
	v.last = snap
	v.set(changed)
	return len(changed)
}

// SetCells replaces the whole content of the view.
func (v *BoardView) SetCells(cells []game.Cell) {
	v.cells.Clear()
	v.last = nil
	v.set(cells)
}

func (v *BoardView) set(cells []game.Cell) {
	for _, c := range cells {
		if c.X < 0 || c.X >= v.cols || c.Y < 0 || c.Y >= v.rows {
			continue
		}
		i := mino.I(c.X, c.Y, v.cols)
		if c.Block == mino.BlockNone {
			v.cells.Del(i)
		} else {
			v.cells.Put(i, c.Block)
		}
	}
}

// Block returns the block currently shown at x, y.
func (v *BoardView) Block(x, y int) mino.Block {
	b, _ := v.cells.Get(mino.I(x, y, v.cols))
	return b
}

// draw gets the outer rect and returns the inner one, inside the border.
func (v *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	ix, iy, iw, ih := x+1, y+1, width-2, height-2
	if iw < 0 {
		iw = 0
	}
	if ih < 0 {
		ih = 0
	}

	for row := 0; row < v.rows && row < ih; row++ {
		for col := 0; col < v.cols && col*2+1 < iw; col++ {
			drawCell(screen, ix+col*2, iy+row, v.Block(col, row), v.theme, v.dots)
		}
	}
	return ix, iy, iw, ih
}
