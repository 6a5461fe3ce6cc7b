package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/qnkhuat/tetristerm/pkg/server"
)

func sshCommand() *cli.Command {
	return &cli.Command{
		Name:  "ssh",
		Usage: "host games over SSH, one per connection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "SSH listen address",
				Value:   server.DefaultListenAddress,
				Sources: cli.EnvVars("TETRIS_SSH_LISTEN"),
			},
			&cli.StringFlag{
				Name:    "binary",
				Usage:   "client binary to run per session, defaults to this executable",
				Sources: cli.EnvVars("TETRIS_SSH_BINARY"),
			},
			&cli.StringFlag{
				Name:      "host-key",
				Usage:     "host key file, a key is generated when missing",
				TakesFile: true,
				Sources:   cli.EnvVars("TETRIS_SSH_HOST_KEY"),
			},
			&cli.DurationFlag{
				Name:    "idle-timeout",
				Usage:   "disconnect idle sessions after this long",
				Value:   server.DefaultIdleTimeout,
				Sources: cli.EnvVars("TETRIS_SSH_IDLE_TIMEOUT"),
			},
		},
		Action: hostSSH,
	}
}

func hostSSH(ctx context.Context, cmd *cli.Command) error {
	closeLog, err := initLog(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	binary := cmd.String("binary")
	if binary == "" {
		binary, err = os.Executable()
		if err != nil {
			return fmt.Errorf("locate executable: %w", err)
		}
	}

	args := configArgs(cfg)
	if dest := cmd.String("log"); dest != "" {
		args = append(args, "--log", dest, "--log-level", cmd.String("log-level"))
	}

	s := &server.SSHServer{
		ListenAddress: cmd.String("listen"),
		Binary:        binary,
		Args:          args,
		HostKeyFile:   cmd.String("host-key"),
		IdleTimeout:   cmd.Duration("idle-timeout"),
	}
	return s.ListenAndServe(ctx)
}
