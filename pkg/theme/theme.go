package theme

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name   string      `json:"name"`
	I      tcell.Color `json:"i"`
	J      tcell.Color `json:"j"`
	L      tcell.Color `json:"l"`
	O      tcell.Color `json:"o"`
	S      tcell.Color `json:"s"`
	T      tcell.Color `json:"t"`
	Z      tcell.Color `json:"z"`
	Empty  tcell.Color `json:"empty"`
	Border tcell.Color `json:"border"`
	Text   tcell.Color `json:"text"`
}

// ThemeHex is the serialisable form of a Theme
type ThemeHex struct {
	Name   string `json:"name"`
	I      string `json:"i"`
	J      string `json:"j"`
	L      string `json:"l"`
	O      string `json:"o"`
	S      string `json:"s"`
	T      string `json:"t"`
	Z      string `json:"z"`
	Empty  string `json:"empty"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.I.Hex()),
		fmtHex(t.J.Hex()),
		fmtHex(t.L.Hex()),
		fmtHex(t.O.Hex()),
		fmtHex(t.S.Hex()),
		fmtHex(t.T.Hex()),
		fmtHex(t.Z.Hex()),
		fmtHex(t.Empty.Hex()),
		fmtHex(t.Border.Hex()),
		fmtHex(t.Text.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.I),
		tcell.GetColor(t.J),
		tcell.GetColor(t.L),
		tcell.GetColor(t.O),
		tcell.GetColor(t.S),
		tcell.GetColor(t.T),
		tcell.GetColor(t.Z),
		tcell.GetColor(t.Empty),
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Text),
	}
}

// Block returns the colour a board cell is drawn with
func (t Theme) Block(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockCyan:
		return t.I
	case mino.BlockBlue:
		return t.J
	case mino.BlockOrange:
		return t.L
	case mino.BlockYellow:
		return t.O
	case mino.BlockGreen:
		return t.S
	case mino.BlockPurple:
		return t.T
	case mino.BlockRed:
		return t.Z
	default:
		return t.Empty
	}
}

// RGBA returns the colour of a block for non terminal renderers. The
// terminal default colour maps to black.
func (t Theme) RGBA(b mino.Block) color.RGBA {
	return toRGBA(t.Block(b))
}

func toRGBA(c tcell.Color) color.RGBA {
	if c == tcell.ColorDefault {
		return color.RGBA{A: 0xff}
	}
	cf, err := colorful.Hex(fmt.Sprintf("#%06x", c.Hex()))
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (t Theme) TextRGBA() color.RGBA   { return toRGBA(t.Text) }
func (t Theme) BorderRGBA() color.RGBA { return toRGBA(t.Border) }

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// Lookup returns a built in theme by name
func Lookup(name string) (Theme, error) {
	return ImportThemes(name, Builtin)
}

// Builtin lists the bundled themes. The first one is the default.
var Builtin = []ThemeHex{
	{
		Name:   "classic",
		I:      "#00ffff", // cyan
		J:      "#0000ff", // blue
		L:      "#ffa500", // orange
		O:      "#ffff00", // yellow
		S:      "#32cd32", // limegreen
		T:      "#800080", // purple
		Z:      "#ff0000", // red
		Empty:  "#0",
		Border: "#9e9e9e",
		Text:   "#0",
	},
	{
		Name:   "muted",
		I:      "#5fafaf",
		J:      "#5f5faf",
		L:      "#d7875f",
		O:      "#d7d75f",
		S:      "#5faf5f",
		T:      "#875f87",
		Z:      "#af5f5f",
		Empty:  "#1c1c1c",
		Border: "#585858",
		Text:   "#bcbcbc",
	},
}

// ThemeClassic is the default theme
var ThemeClassic = Builtin[0].Theme()
