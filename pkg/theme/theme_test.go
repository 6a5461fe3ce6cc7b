package theme

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

func TestThemeRoundTrip(t *testing.T) {
	for _, h := range Builtin {
		assert.Equal(t, h, h.Theme().Hex(), "theme %s", h.Name)
	}
}

func TestThemeBlock(t *testing.T) {
	th := ThemeClassic

	assert.Equal(t, tcell.ColorDefault, th.Block(mino.BlockNone))
	assert.Equal(t, tcell.NewHexColor(0x00ffff), th.Block(mino.BlockCyan))
	assert.Equal(t, tcell.NewHexColor(0x800080), th.Block(mino.BlockPurple))

	assert.Equal(t, color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, th.RGBA(mino.BlockOrange))
	assert.Equal(t, color.RGBA{R: 0x32, G: 0xcd, B: 0x32, A: 0xff}, th.RGBA(mino.BlockGreen))
	assert.Equal(t, color.RGBA{A: 0xff}, th.RGBA(mino.BlockNone))
}

func TestLookup(t *testing.T) {
	th, err := Lookup("muted")
	require.NoError(t, err)
	assert.Equal(t, "muted", th.Name)

	_, err = Lookup("neon")
	assert.Error(t, err)
}
