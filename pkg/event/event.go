package event

import "time"

type Event struct {
	Message string
}

type StartEvent struct {
	Event
}

// SpeedChangedEvent asks the scheduler to re-arm its gravity timer.
type SpeedChangedEvent struct {
	Event
	Speed time.Duration
}

type GameOverEvent struct {
	Event
	Score int
	Lines int
	Level int
}

type ScoreEvent struct {
	Event
	Delta int
	Score int
}

type LinesClearedEvent struct {
	Event
	Lines int
	Total int
}

type LevelUpEvent struct {
	Event
	Level int
}

type PieceLockedEvent struct {
	Event
}
