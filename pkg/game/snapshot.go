package game

import (
	"time"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Cell is a board position with the block drawn there.
type Cell struct {
	mino.Point
	Block mino.Block `json:"block"`
}

// Snapshot is an immutable copy of the state a presentation layer needs.
type Snapshot struct {
	Cols     int            `json:"cols"`
	Rows     int            `json:"rows"`
	Board    [][]mino.Block `json:"board"`
	Current  []Cell         `json:"current"`
	Next     []Cell         `json:"next"`
	NextKind mino.Kind      `json:"nextKind"`
	Score    int            `json:"score"`
	Lines    int            `json:"lines"`
	Level    int            `json:"level"`
	Speed    time.Duration  `json:"-"`
	SpeedMs  int64          `json:"speedMs"`
	Status   Status         `json:"status"`
}

func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Cols:     s.Config.Cols,
		Rows:     s.Config.Rows,
		Board:    s.board.Snapshot(),
		Current:  s.CurrentPieceCells(),
		Next:     s.NextPieceCells(),
		NextKind: s.next,
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.level,
		Speed:    s.speed,
		SpeedMs:  s.speed.Milliseconds(),
		Status:   s.status,
	}
}

// Grid returns the board with the falling piece drawn over it. The piece is
// left out once the game is over.
func (s *Snapshot) Grid() [][]mino.Block {
	grid := make([][]mino.Block, len(s.Board))
	for y, row := range s.Board {
		grid[y] = make([]mino.Block, len(row))
		copy(grid[y], row)
	}

	if s.Status != StatusRunning {
		return grid
	}
	for _, c := range s.Current {
		if c.Y >= 0 && c.Y < len(grid) && c.X >= 0 && c.X < len(grid[c.Y]) {
			grid[c.Y][c.X] = c.Block
		}
	}
	return grid
}

// Diff returns the cells of next.Grid() that differ from prev.Grid(). Every
// cell is returned when prev is nil or has other dimensions.
func Diff(prev, next *Snapshot) []Cell {
	if next == nil {
		return nil
	}

	nextGrid := next.Grid()
	var prevGrid [][]mino.Block
	if prev != nil && prev.Cols == next.Cols && prev.Rows == next.Rows {
		prevGrid = prev.Grid()
	}

	var changed []Cell
	for y, row := range nextGrid {
		for x, block := range row {
			if prevGrid != nil && prevGrid[y][x] == block {
				continue
			}
			changed = append(changed, Cell{Point: mino.Point{X: x, Y: y}, Block: block})
		}
	}
	return changed
}
