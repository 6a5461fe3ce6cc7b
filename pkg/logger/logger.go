package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global logger at dest, or at stderr when dest is empty.
// The returned closer releases the log file.
func Init(dest, level, app string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var (
		out    io.Writer
		closer io.Closer = io.NopCloser(nil)
	)
	if dest == "" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	} else {
		f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", app).Logger()
	return closer, nil
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}
