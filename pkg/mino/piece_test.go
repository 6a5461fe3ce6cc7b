package mino

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPieceMove(t *testing.T) {
	b := NewBoard(10, 20)
	p := NewPiece(KindO, Point{4, 0})

	assert.True(t, p.TryMove(b, -1, 0))
	assert.Equal(t, Point{3, 0}, p.Point)

	for p.TryMove(b, -1, 0) {
	}
	assert.Equal(t, 0, p.X)

	for p.TryMove(b, 1, 0) {
	}
	assert.Equal(t, 8, p.X)

	for p.TryMove(b, 0, 1) {
	}
	assert.Equal(t, 18, p.Y)
	assert.False(t, p.TryMove(b, 0, 1))
	assert.Equal(t, Point{8, 18}, p.Point)
}

func TestPieceRotate(t *testing.T) {
	b := NewBoard(10, 20)

	for _, k := range Kinds {
		p := NewPiece(k, Point{4, 5})
		n := len(RotationStates(k))
		for i := 1; i <= n; i++ {
			if !p.TryRotate(b) {
				t.Fatalf("failed to rotate %s on iteration %d", k, i)
			}
			assert.Equal(t, i%n, p.Rotation)
		}
	}

	// Horizontal I at the right wall has no room to turn vertical again.
	p := NewPiece(KindI, Point{4, 5})
	assert.True(t, p.TryRotate(b))
	for p.TryMove(b, 1, 0) {
	}
	assert.Equal(t, 6, p.X)
	b.SetBlock(6, 7, BlockRed)
	assert.False(t, p.TryRotate(b))
	assert.Equal(t, 1, p.Rotation)
}

func TestPieceLockInto(t *testing.T) {
	b := NewBoard(10, 20)
	p := NewPiece(KindT, Point{0, 17})
	p.Rotation = 1

	assert.False(t, b.WouldCollide(p.Cells()))
	assert.NoError(t, p.LockInto(b))
	for _, c := range p.Cells() {
		assert.Equal(t, BlockPurple, b.Block(c.X, c.Y))
	}
	assert.True(t, b.WouldCollide(p.Cells()))
}
