package agent

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := game.NewSession(game.DefaultConfig(), mino.NewSequence(mino.KindO))
	require.NoError(t, err)
	return NewServer(s)
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	if args == nil {
		args = map[string]interface{}{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestMoveBeforeNewGame(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.action(event.ActionMoveLeft)(ctx, call("move_left", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "new_game")

	result, err = srv.handleTick(ctx, call("tick", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestNewGameAndState(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	out := text(t, result)
	assert.Contains(t, out, "Status: running")
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Next:")

	state, err := srv.handleState(ctx, call("state", nil))
	require.NoError(t, err)
	assert.Equal(t, out, text(t, state))
}

func TestBlockedMoveIsReported(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)

	moveLeft := srv.action(event.ActionMoveLeft)
	var last string
	for i := 0; i < srv.session.Config.Cols; i++ {
		result, err := moveLeft(ctx, call("move_left", nil))
		require.NoError(t, err)
		last = text(t, result)
	}
	assert.Contains(t, last, "Move blocked.")
}

func TestTickCount(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)

	before := srv.session.CurrentPieceCells()
	result, err := srv.handleTick(ctx, call("tick", map[string]interface{}{"count": float64(3)}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	after := srv.session.CurrentPieceCells()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Y+3, after[i].Y)
	}
}

func TestTickCountOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)

	for _, n := range []float64{0, -1, MaxTicks + 1} {
		result, err := srv.handleTick(ctx, call("tick", map[string]interface{}{"count": n}))
		require.NoError(t, err)
		assert.True(t, result.IsError, "count %v", n)
	}
}

func TestHardDropScores(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)

	result, err := srv.action(event.ActionHardDrop)(ctx, call("hard_drop", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Greater(t, srv.session.Score(), 0)
	assert.Empty(t, srv.session.DrainEvents())
}

func TestTickUntilGameOver(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)

	for i := 0; i < 50 && srv.session.Running(); i++ {
		_, err := srv.handleTick(ctx, call("tick", map[string]interface{}{"count": float64(MaxTicks)}))
		require.NoError(t, err)
	}

	result, err := srv.handleState(ctx, call("state", nil))
	require.NoError(t, err)
	assert.Contains(t, text(t, result), "Status: game_over")

	result, err = srv.action(event.ActionStart)(ctx, call("new_game", nil))
	require.NoError(t, err)
	assert.Contains(t, text(t, result), "Status: running")
}

func TestInstructionsUseBoardSize(t *testing.T) {
	cfg := game.DefaultConfig()
	assert.Contains(t, Instructions(cfg), "10x20 board")

	cfg.Cols, cfg.Rows = 12, 24
	s, err := game.NewSession(cfg, mino.NewSequence(mino.KindO))
	require.NoError(t, err)
	NewServer(s)

	out := Instructions(s.Config)
	assert.Contains(t, out, "12x24 board")
	assert.NotContains(t, out, "10x20")
}
