package mino

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBoard builds a board from rows of '.' (empty) and '#' (filled).
func newTestBoard(t *testing.T, rows ...string) *Board {
	t.Helper()

	b := NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, b.W, "row %d", y)
		for x, c := range row {
			if c == '#' {
				b.SetBlock(x, y, BlockRed)
			}
		}
	}
	return b
}

func TestBoardIsOccupied(t *testing.T) {
	b := NewBoard(10, 20)
	b.SetBlock(3, 5, BlockBlue)

	occupied, err := b.IsOccupied(5, 3)
	assert.NoError(t, err)
	assert.True(t, occupied)

	occupied, err = b.IsOccupied(5, 4)
	assert.NoError(t, err)
	assert.False(t, occupied)

	for _, c := range []Point{{-1, 0}, {10, 0}, {0, -1}, {0, 20}} {
		_, err = b.IsOccupied(c.Y, c.X)
		assert.True(t, errors.Is(err, ErrOutOfRange), "cell %s", c)
	}
}

func TestBoardWouldCollide(t *testing.T) {
	b := NewBoard(10, 20)

	outside := [][]Point{
		{{-1, 0}},
		{{10, 5}},
		{{4, 20}},
		{{-1, -3}},
		{{10, -1}},
	}
	for _, cells := range outside {
		assert.True(t, b.WouldCollide(cells), "cells %v", cells)
	}

	inside := [][]Point{
		{{0, 0}, {9, 19}},
		{{4, -1}, {4, -2}, {4, 0}, {5, 0}},
		{{0, -5}},
	}
	for _, cells := range inside {
		assert.False(t, b.WouldCollide(cells), "cells %v", cells)
	}

	b.SetBlock(4, 0, BlockCyan)
	assert.True(t, b.WouldCollide([]Point{{4, -1}, {4, 0}}))
}

func TestBoardLock(t *testing.T) {
	b := NewBoard(10, 20)

	err := b.Lock([]Point{{4, -1}, {4, 0}, {5, 0}, {5, 1}}, BlockGreen)
	assert.NoError(t, err)
	assert.Equal(t, BlockGreen, b.Block(4, 0))
	assert.Equal(t, BlockGreen, b.Block(5, 1))

	filled := 0
	for _, block := range b.M {
		if block != BlockNone {
			filled++
		}
	}
	assert.Equal(t, 3, filled)

	err = b.Lock([]Point{{-1, 3}, {0, 3}}, BlockRed)
	assert.True(t, errors.Is(err, ErrInvariant))
	assert.Equal(t, BlockRed, b.Block(0, 3))
}

func TestBoardClearFullRows(t *testing.T) {
	rows := make([]string, 20)
	for y := range rows {
		// A distinct gap per row keeps the order checkable.
		row := []byte(strings.Repeat("#", 10))
		row[y%10] = '.'
		rows[y] = string(row)
	}
	rows[3] = strings.Repeat("#", 10)
	rows[7] = strings.Repeat("#", 10)

	b := newTestBoard(t, rows...)
	before := b.Snapshot()

	cleared := b.ClearFullRows()
	assert.Equal(t, 2, cleared)

	after := b.Snapshot()
	for y := 0; y < 2; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, BlockNone, after[y][x], "row %d col %d", y, x)
		}
	}

	var kept [][]Block
	for y, row := range before {
		if y != 3 && y != 7 {
			kept = append(kept, row)
		}
	}
	assert.Equal(t, kept, after[2:])

	assert.Equal(t, 0, b.ClearFullRows())
}

func TestBoardClearFourRows(t *testing.T) {
	b := newTestBoard(t,
		"..........",
		"#.........",
		"##########",
		"##########",
		"##########",
		"##########",
	)

	assert.Equal(t, 4, b.ClearFullRows())
	assert.Equal(t, ""+
		"          \n"+
		"          \n"+
		"          \n"+
		"          \n"+
		"          \n"+
		"█         \n", b.Render())
}

func TestBoardClear(t *testing.T) {
	b := newTestBoard(t,
		"..#.",
		"####",
	)
	b.Clear()

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			assert.Equal(t, BlockNone, b.Block(x, y), "cell %d,%d", x, y)
		}
	}
}
