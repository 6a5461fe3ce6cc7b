package mino

import "fmt"

// Block is the content of a board cell: empty or the colour tag of the piece
// kind that was locked there.
type Block int

const (
	BlockNone Block = iota
	BlockCyan
	BlockBlue
	BlockOrange
	BlockYellow
	BlockGreen
	BlockPurple
	BlockRed
)

var blockNames = map[Block]string{
	BlockNone:   "none",
	BlockCyan:   "cyan",
	BlockBlue:   "blue",
	BlockOrange: "orange",
	BlockYellow: "yellow",
	BlockGreen:  "limegreen",
	BlockPurple: "purple",
	BlockRed:    "red",
}

func (b Block) String() string {
	if name, ok := blockNames[b]; ok {
		return name
	}
	return fmt.Sprintf("block(%d)", int(b))
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockCyan, BlockBlue, BlockOrange, BlockYellow, BlockGreen, BlockPurple, BlockRed:
		return '█'
	default:
		return '?'
	}
}

func (b Block) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Block) UnmarshalText(text []byte) error {
	for block, name := range blockNames {
		if name == string(text) {
			*b = block
			return nil
		}
	}
	return fmt.Errorf("unknown block %q", text)
}
