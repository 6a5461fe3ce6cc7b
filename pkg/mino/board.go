package mino

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is returned when a cell lookup falls outside the board.
	ErrOutOfRange = errors.New("cell out of range")

	// ErrInvariant marks a lock of cells that should have failed the
	// collision check first.
	ErrInvariant = errors.New("board invariant violated")
)

// Board is the grid of locked cells. Row 0 is the top.
type Board struct {
	W int // Width
	H int // Height

	M []Block
}

func I(x int, y int, w int) int {
	return (y * w) + x
}

func NewBoard(w int, h int) *Board {
	return &Board{W: w, H: h, M: make([]Block, w*h)}
}

func (b *Board) inRange(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// IsOccupied reports whether the cell at row, col holds a locked block.
func (b *Board) IsOccupied(row, col int) (bool, error) {
	if !b.inRange(col, row) {
		return false, fmt.Errorf("%w: row %d col %d", ErrOutOfRange, row, col)
	}
	return b.M[I(col, row, b.W)] != BlockNone, nil
}

// Block returns the block at x, y, or BlockNone outside the board.
func (b *Board) Block(x, y int) Block {
	if !b.inRange(x, y) {
		return BlockNone
	}
	return b.M[I(x, y, b.W)]
}

// SetBlock overwrites a single cell. It returns false outside the board.
func (b *Board) SetBlock(x, y int, block Block) bool {
	if !b.inRange(x, y) {
		return false
	}
	b.M[I(x, y, b.W)] = block
	return true
}

// WouldCollide reports whether any cell leaves the column range, falls below
// the floor or lands on a locked block. Cells above row 0 only have their
// column checked.
func (b *Board) WouldCollide(cells []Point) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= b.W || c.Y >= b.H {
			return true
		}
		if c.Y < 0 {
			continue
		}
		if b.M[I(c.X, c.Y, b.W)] != BlockNone {
			return true
		}
	}
	return false
}

// Lock commits cells into the grid. Cells above the board are discarded.
// Cells outside the column range are skipped and reported as ErrInvariant.
func (b *Board) Lock(cells []Point, block Block) error {
	var bad []Point
	for _, c := range cells {
		if c.X < 0 || c.X >= b.W || c.Y >= b.H {
			bad = append(bad, c)
			continue
		}
		if c.Y < 0 {
			continue
		}
		b.M[I(c.X, c.Y, b.W)] = block
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: lock outside board at %s", ErrInvariant, Mino(bad))
	}
	return nil
}

func (b *Board) rowFilled(y int) bool {
	for x := 0; x < b.W; x++ {
		if b.M[I(x, y, b.W)] == BlockNone {
			return false
		}
	}
	return true
}

// ClearFullRows removes every fully occupied row, shifting the rows above it
// down and inserting empty rows at the top. It returns the number of rows
// removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := 0; y < b.H; y++ {
		if !b.rowFilled(y) {
			continue
		}
		copy(b.M[b.W:I(0, y+1, b.W)], b.M[:I(0, y, b.W)])
		for x := 0; x < b.W; x++ {
			b.M[x] = BlockNone
		}
		cleared++
	}
	return cleared
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.M {
		b.M[i] = BlockNone
	}
}

// Snapshot returns a row-major copy of the grid.
func (b *Board) Snapshot() [][]Block {
	rows := make([][]Block, b.H)
	for y := 0; y < b.H; y++ {
		rows[y] = make([]Block, b.W)
		copy(rows[y], b.M[I(0, y, b.W):I(0, y+1, b.W)])
	}
	return rows
}

func (b *Board) Render() string {
	var s strings.Builder
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s.WriteRune(b.M[I(x, y, b.W)].Rune())
		}
		s.WriteRune('\n')
	}
	return s.String()
}
