package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	broken := []func(*Config){
		func(c *Config) { c.Cols = 3 },
		func(c *Config) { c.Rows = 0 },
		func(c *Config) { c.MinSpeed = 0 },
		func(c *Config) { c.BaseSpeed = 50 * time.Millisecond },
		func(c *Config) { c.SpeedStep = -time.Millisecond },
		func(c *Config) { c.LinesPerLevel = 0 },
	}
	for i, f := range broken {
		c := DefaultConfig()
		f(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}

func TestConfigSpeedFor(t *testing.T) {
	c := DefaultConfig()

	speeds := map[int]time.Duration{
		1:  1000 * time.Millisecond,
		2:  900 * time.Millisecond,
		5:  600 * time.Millisecond,
		10: 100 * time.Millisecond,
		11: 100 * time.Millisecond,
		30: 100 * time.Millisecond,
	}
	for level, want := range speeds {
		assert.Equal(t, want, c.SpeedFor(level), "level %d", level)
	}
}

func TestConfigSpawnPoint(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, mino.Point{X: 4, Y: 0}, c.SpawnPoint())

	c.Cols = 7
	assert.Equal(t, mino.Point{X: 2, Y: 0}, c.SpawnPoint())
}
