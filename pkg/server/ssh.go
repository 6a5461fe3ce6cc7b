//go:build !windows

// Package server hosts the terminal client over SSH. Every connection gets
// its own game running in a pseudo-terminal.
package server

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gossh "golang.org/x/crypto/ssh"
)

const (
	DefaultListenAddress = ":2222"
	DefaultIdleTimeout   = 5 * time.Minute

	shutdownTimeout = 5 * time.Second
)

type SSHServer struct {
	ListenAddress string
	// Binary is the client executable started for every session.
	Binary string
	// Args are passed to Binary before the play command.
	Args        []string
	HostKeyFile string
	IdleTimeout time.Duration

	server *ssh.Server
	log    zerolog.Logger
}

// Command builds the client command for a user.
func (s *SSHServer) Command(ctx context.Context, user string) *exec.Cmd {
	args := append([]string{}, s.Args...)
	args = append(args, "play", "--name", Name(user))
	return exec.CommandContext(ctx, s.Binary, args...)
}

func (s *SSHServer) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "failed to start tetristerm: non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	l := s.log.With().Str("user", sess.User()).Str("remote", sess.RemoteAddr().String()).Logger()

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, sess.User())
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to start client")
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	l.Info().Strs("args", cmd.Args).Msg("session started")

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
				l.Debug().Err(err).Msg("resize failed")
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()
	err = cmd.Wait()

	code := 0
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
		if code < 0 {
			code = 1
		}
	}
	l.Info().Err(err).Int("code", code).Msg("session ended")
	sess.Exit(code)
}

func (s *SSHServer) hostKey() (ssh.Option, error) {
	if s.HostKeyFile != "" {
		if _, err := os.Stat(s.HostKeyFile); err == nil {
			return ssh.HostKeyFile(s.HostKeyFile), nil
		}
		s.log.Warn().Str("file", s.HostKeyFile).Msg("host key not found, generating one")
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("fingerprint", gossh.FingerprintSHA256(signer.PublicKey())).Msg("generated host key")

	return func(srv *ssh.Server) error {
		srv.AddHostKey(signer)
		return nil
	}, nil
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	if s.ListenAddress == "" {
		return errors.New("ssh listen address must be specified")
	}
	if s.Binary == "" {
		return errors.New("ssh client binary must be specified")
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}
	s.log = log.With().Str("component", "ssh").Logger()

	s.server = &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: s.IdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, p ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	opt, err := s.hostKey()
	if err != nil {
		return fmt.Errorf("host key: %w", err)
	}
	if err := s.server.SetOption(opt); err != nil {
		return fmt.Errorf("host key: %w", err)
	}

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.log.Info().Str("addr", s.ListenAddress).Str("binary", s.Binary).Msg("ssh server listening")
	err = s.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits briefly for open sessions.
func (s *SSHServer) Shutdown() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.log.Warn().Err(err).Msg("ssh shutdown")
		s.server.Close()
	}
}
