package mino

import (
	"sort"
	"strings"
)

// Mino is a set of cell offsets relative to a piece origin.
type Mino []Point

func (m Mino) String() string {
	newMino := make(Mino, len(m))
	copy(newMino, m)

	sort.Sort(newMino)

	var b strings.Builder
	for i := range newMino {
		if i > 0 {
			b.WriteRune(',')
		}
		b.WriteString(newMino[i].String())
	}

	return b.String()
}

func (m Mino) Len() int      { return len(m) }
func (m Mino) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m Mino) Less(i, j int) bool {
	return m[i].Y < m[j].Y || (m[i].Y == m[j].Y && m[i].X < m[j].X)
}

func (m Mino) Size() (int, int) {
	var x, y int
	for _, p := range m {
		if p.X > x {
			x = p.X
		}
		if p.Y > y {
			y = p.Y
		}
	}

	return x + 1, y + 1
}

func (m Mino) Height() int {
	_, h := m.Size()
	return h
}

// Render draws the mino top row first, marking occupied cells with X.
func (m Mino) Render() string {
	var b strings.Builder

	w, h := m.Size()
	for y := 0; y < h; y++ {
		line := make([]rune, w)
		for x := 0; x < w; x++ {
			line[x] = ' '
			if m.HasPoint(Point{x, y}) {
				line[x] = 'X'
			}
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteRune('\n')
	}

	return b.String()
}

func (m Mino) HasPoint(p Point) bool {
	for _, mp := range m {
		if mp == p {
			return true
		}
	}

	return false
}

func (m Mino) minCoords() (int, int) {
	minx := m[0].X
	miny := m[0].Y
	for i := 1; i < len(m); i++ {
		if m[i].X < minx {
			minx = m[i].X
		}
		if m[i].Y < miny {
			miny = m[i].Y
		}
	}
	return minx, miny
}

// Origin shifts the mino so its smallest column and row are both 0.
func (m Mino) Origin() Mino {
	if len(m) == 0 {
		return Mino{}
	}
	minx, miny := m.minCoords()

	newMino := make(Mino, len(m))
	for i := 0; i < len(m); i++ {
		newMino[i] = Point{m[i].X - minx, m[i].Y - miny}
	}

	return newMino
}

// Translate returns the absolute cells of the mino placed at loc.
func (m Mino) Translate(loc Point) []Point {
	cells := make([]Point, len(m))
	for i, p := range m {
		cells[i] = p.Add(loc)
	}
	return cells
}
