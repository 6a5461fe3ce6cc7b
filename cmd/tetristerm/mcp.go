package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/qnkhuat/tetristerm/pkg/agent"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "serve a game as MCP tools on stdio",
		Action: serveMCP,
	}
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol, logs go to stderr or the log file.
	closeLog, err := initLog(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	s, err := game.NewSession(cfg, nil)
	if err != nil {
		return err
	}
	return agent.NewServer(s).ServeStdio()
}
