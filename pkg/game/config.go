package game

import (
	"fmt"
	"time"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	DefaultCols          = 10
	DefaultRows          = 20
	DefaultBaseSpeed     = 1000 * time.Millisecond
	DefaultSpeedStep     = 100 * time.Millisecond
	DefaultMinSpeed      = 100 * time.Millisecond
	DefaultLinesPerLevel = 10
)

type Config struct {
	Cols          int           `json:"cols"`
	Rows          int           `json:"rows"`
	BaseSpeed     time.Duration `json:"baseSpeed"`
	SpeedStep     time.Duration `json:"speedStep"`
	MinSpeed      time.Duration `json:"minSpeed"`
	LinesPerLevel int           `json:"linesPerLevel"`

	// Seed of the piece randomizer. Zero picks a time based seed.
	Seed       int64  `json:"seed"`
	Randomizer string `json:"randomizer"`

	// Debug turns board invariant violations into panics.
	Debug bool `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Cols:          DefaultCols,
		Rows:          DefaultRows,
		BaseSpeed:     DefaultBaseSpeed,
		SpeedStep:     DefaultSpeedStep,
		MinSpeed:      DefaultMinSpeed,
		LinesPerLevel: DefaultLinesPerLevel,
		Randomizer:    mino.RandomizerUniform,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Cols < 4:
		return fmt.Errorf("cols must be at least 4, got %d", c.Cols)
	case c.Rows < 4:
		return fmt.Errorf("rows must be at least 4, got %d", c.Rows)
	case c.MinSpeed <= 0:
		return fmt.Errorf("min speed must be positive, got %s", c.MinSpeed)
	case c.BaseSpeed < c.MinSpeed:
		return fmt.Errorf("base speed %s is below min speed %s", c.BaseSpeed, c.MinSpeed)
	case c.SpeedStep < 0:
		return fmt.Errorf("speed step must not be negative, got %s", c.SpeedStep)
	case c.LinesPerLevel <= 0:
		return fmt.Errorf("lines per level must be positive, got %d", c.LinesPerLevel)
	}
	return nil
}

// SpeedFor returns the gravity period at level.
func (c Config) SpeedFor(level int) time.Duration {
	speed := c.BaseSpeed - time.Duration(level-1)*c.SpeedStep
	if speed < c.MinSpeed {
		return c.MinSpeed
	}
	return speed
}

// SpawnPoint is the origin of every new piece: centred, top row.
func (c Config) SpawnPoint() mino.Point {
	return mino.Point{X: c.Cols/2 - 1, Y: 0}
}
