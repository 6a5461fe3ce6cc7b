package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

func newSnapshot(t *testing.T, kinds ...mino.Kind) *game.Snapshot {
	t.Helper()

	s, err := game.NewSession(game.DefaultConfig(), mino.NewSequence(kinds...))
	require.NoError(t, err)
	s.Start()
	return s.Snapshot()
}

func TestRenderBoard(t *testing.T) {
	snap := newSnapshot(t, mino.KindO, mino.KindI)

	var buf bytes.Buffer
	require.NoError(t, New(false).Board(&buf, snap))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 22)
	assert.Equal(t, "+"+strings.Repeat("-", 20)+"+", lines[0])
	assert.Equal(t, "| . . . .[][] . . . .|", lines[1])
	assert.Equal(t, "| . . . .[][] . . . .|", lines[2])
	assert.Equal(t, "|"+strings.Repeat(" .", 10)+"|", lines[3])
}

func TestRenderSnapshot(t *testing.T) {
	snap := newSnapshot(t, mino.KindO, mino.KindT)

	out := String(snap)
	assert.Contains(t, out, "Score: 0  Lines: 0  Level: 1  Speed: 1000ms  Status: running")
	assert.True(t, strings.HasSuffix(out, "Next:\n  []\n[][]\n  []\n"), out)
}

func TestRenderColor(t *testing.T) {
	snap := newSnapshot(t, mino.KindI)

	var plain, colored bytes.Buffer
	require.NoError(t, New(false).Board(&plain, snap))
	require.NoError(t, New(true).Board(&colored, snap))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}
