//go:build windows

package server

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultListenAddress = ":2222"
	DefaultIdleTimeout   = 5 * time.Minute
)

// SSH hosting is unsupported on Windows.
type SSHServer struct {
	ListenAddress string
	Binary        string
	Args          []string
	HostKeyFile   string
	IdleTimeout   time.Duration
}

func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	return errors.New("ssh server is not supported on windows")
}

func (s *SSHServer) Shutdown() {}
