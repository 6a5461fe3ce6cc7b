package mino

import "fmt"

// Piece is the falling piece: a kind, a rotation index and the board
// position of its origin.
type Piece struct {
	Point
	Kind     Kind
	Rotation int
}

func NewPiece(k Kind, loc Point) *Piece {
	return &Piece{Point: loc, Kind: k}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s@%s r%d", p.Kind, p.Point, p.Rotation)
}

// Mino returns the offsets of the current rotation state.
func (p *Piece) Mino() Mino {
	return RotationStates(p.Kind)[p.Rotation]
}

func (p *Piece) Block() Block {
	return ColorTag(p.Kind)
}

// Cells returns the absolute board cells covered by the piece.
func (p *Piece) Cells() []Point {
	return p.Mino().Translate(p.Point)
}

// TryMove shifts the piece by dx, dy if the destination is free.
func (p *Piece) TryMove(b *Board, dx, dy int) bool {
	loc := Point{p.X + dx, p.Y + dy}
	if b.WouldCollide(p.Mino().Translate(loc)) {
		return false
	}
	p.Point = loc
	return true
}

// TryRotate advances to the next rotation state in place. A rotation that
// collides fails without searching for an offset.
func (p *Piece) TryRotate(b *Board) bool {
	states := RotationStates(p.Kind)
	next := (p.Rotation + 1) % len(states)
	if b.WouldCollide(states[next].Translate(p.Point)) {
		return false
	}
	p.Rotation = next
	return true
}

// LockInto commits the piece to the board.
func (p *Piece) LockInto(b *Board) error {
	return b.Lock(p.Cells(), p.Block())
}
