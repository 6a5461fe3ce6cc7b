package game

import "time"

// Gravity drives a Session from a frame loop instead of a timer. Elapsed
// time accumulates and every full Session.Speed() period runs one Tick.
type Gravity struct {
	elapsed time.Duration
}

// Advance adds dt and returns how many ticks it ran. It does nothing while
// the session is not running.
func (g *Gravity) Advance(s *Session, dt time.Duration) int {
	if !s.Running() {
		g.elapsed = 0
		return 0
	}

	g.elapsed += dt
	ticks := 0
	for s.Running() && g.elapsed >= s.Speed() {
		g.elapsed -= s.Speed()
		s.Tick()
		ticks++
	}
	return ticks
}

// Reset drops the accumulated time, e.g. after a restart.
func (g *Gravity) Reset() {
	g.elapsed = 0
}
