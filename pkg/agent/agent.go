// Package agent exposes a tetris session as MCP tools so a language model
// can play it over stdio.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/render"
)

const (
	Name    = "Tetristerm"
	Version = "1.0.0"

	MaxTicks = 100
)

const instructionsFormat = `Tetristerm - MCP Interface

Stack falling pieces on a %dx%d board. A full row is cleared and scores
points. The game ends when a new piece cannot spawn.

Gravity does not run by itself: call tick to lower the piece.

AVAILABLE TOOLS:
- new_game: start (or restart) a game
- move_left / move_right: shift the falling piece one column
- rotate: rotate the falling piece clockwise
- soft_drop: lower the piece one row (+1 point)
- hard_drop: drop the piece to the bottom and lock it (+2 points per row)
- tick: advance gravity by count steps (default 1)
- state: show the board without changing it

Every tool answers with the board. "[]" is a filled cell and " ." is empty.`

// Instructions describes the tools and the board size of cfg.
func Instructions(cfg game.Config) string {
	return fmt.Sprintf(instructionsFormat, cfg.Cols, cfg.Rows)
}

// Server serialises tool calls onto one Session.
type Server struct {
	mu      sync.Mutex
	session *game.Session

	mcpServer *server.MCPServer
	log       zerolog.Logger
}

func NewServer(s *game.Session) *Server {
	srv := &Server{
		session: s,
		log:     log.With().Str("component", "agent").Logger(),
	}

	srv.mcpServer = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(Instructions(s.Config)),
	)
	srv.registerTools()
	return srv
}

func (s *Server) registerTools() {
	noArgs := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game, discarding the current one",
		InputSchema: noArgs,
	}, s.action(event.ActionStart))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_left",
		Description: "Move the falling piece one column left",
		InputSchema: noArgs,
	}, s.action(event.ActionMoveLeft))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_right",
		Description: "Move the falling piece one column right",
		InputSchema: noArgs,
	}, s.action(event.ActionMoveRight))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rotate",
		Description: "Rotate the falling piece clockwise",
		InputSchema: noArgs,
	}, s.action(event.ActionRotate))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "soft_drop",
		Description: "Lower the falling piece one row for one point",
		InputSchema: noArgs,
	}, s.action(event.ActionSoftDrop))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "hard_drop",
		Description: "Drop the falling piece to the bottom and lock it",
		InputSchema: noArgs,
	}, s.action(event.ActionHardDrop))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance gravity by count steps",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"count": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Number of gravity steps, 1 to %d (default 1)", MaxTicks),
					"minimum":     1,
					"maximum":     MaxTicks,
				},
			},
		},
	}, s.handleTick)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Show the board, the next piece and the score",
		InputSchema: noArgs,
	}, s.handleState)
}

func (s *Server) action(a event.GameAction) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if a != event.ActionStart && s.session.Status() == game.StatusNotStarted {
			return mcp.NewToolResultError("no game in progress, call new_game first"), nil
		}

		ok := s.session.ProcessAction(a)
		s.logEvents()
		s.log.Debug().Stringer("action", a).Bool("ok", ok).Msg("tool call")

		return mcp.NewToolResultText(s.describe(ok)), nil
	}
}

func (s *Server) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := 1
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if v, ok := args["count"].(float64); ok {
			count = int(v)
		}
	}
	if count < 1 || count > MaxTicks {
		return mcp.NewToolResultError(fmt.Sprintf("count must be between 1 and %d", MaxTicks)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Status() == game.StatusNotStarted {
		return mcp.NewToolResultError("no game in progress, call new_game first"), nil
	}

	for i := 0; i < count && s.session.Running(); i++ {
		s.session.Tick()
	}
	s.logEvents()

	return mcp.NewToolResultText(s.describe(true)), nil
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return mcp.NewToolResultText(s.describe(true)), nil
}

// describe renders the session. Callers hold s.mu.
func (s *Server) describe(ok bool) string {
	text := render.String(s.session.Snapshot())
	if !ok {
		text = "Move blocked.\n" + text
	}
	return text
}

// logEvents drains the session so events do not pile up between calls.
func (s *Server) logEvents() {
	for _, e := range s.session.DrainEvents() {
		switch ev := e.(type) {
		case *event.GameOverEvent:
			s.log.Info().Int("score", ev.Score).Int("lines", ev.Lines).Int("level", ev.Level).Msg("game over")
		case *event.LevelUpEvent:
			s.log.Info().Int("level", ev.Level).Msg("level up")
		}
	}
}

// ServeStdio blocks serving MCP over stdin and stdout.
func (s *Server) ServeStdio() error {
	s.log.Info().Msg("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}
