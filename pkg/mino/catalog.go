package mino

import "fmt"

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// Kinds lists every kind in catalog order.
var Kinds = []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

var kindNames = [...]string{"I", "J", "L", "O", "S", "T", "Z"}

// Definition is the immutable description of a kind.
type Definition struct {
	Kind      Kind
	Rotations []Mino
	Block     Block
}

// Rotation states use a fixed orientation table with no wall kicks. Offsets
// are (column,row) from the piece origin.
var catalog = [...]Definition{
	KindI: {KindI, []Mino{
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	}, BlockCyan},
	KindJ: {KindJ, []Mino{
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	}, BlockBlue},
	KindL: {KindL, []Mino{
		{{1, 0}, {1, 1}, {1, 2}, {0, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{2, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	}, BlockOrange},
	KindO: {KindO, []Mino{
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}, BlockYellow},
	KindS: {KindS, []Mino{
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	}, BlockGreen},
	KindT: {KindT, []Mino{
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
	}, BlockPurple},
	KindZ: {KindZ, []Mino{
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
	}, BlockRed},
}

func (k Kind) Valid() bool { return k >= KindI && k <= KindZ }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Lookup returns the catalog entry for k. It panics on an unknown kind.
func Lookup(k Kind) *Definition {
	if !k.Valid() {
		panic(fmt.Sprintf("mino: unknown kind %d", int(k)))
	}
	return &catalog[k]
}

// RotationStates returns the ordered rotation states of k. The result is
// shared and must not be modified.
func RotationStates(k Kind) []Mino {
	return Lookup(k).Rotations
}

// ColorTag returns the block tag stored on the board for k.
func ColorTag(k Kind) Block {
	return Lookup(k).Block
}
