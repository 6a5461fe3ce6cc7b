package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusGameOver
)

var statusNames = [...]string{"not_started", "running", "game_over"}

func (s Status) String() string {
	if s < StatusNotStarted || s > StatusGameOver {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Points for clearing 1 to 4 rows at level 1.
var lineScores = [...]int{0, 100, 300, 500, 800}

const (
	SoftDropPoints = 1
	HardDropPoints = 2
)

// Session holds the whole state of one game. It is not safe for concurrent
// use: callers serialise commands through a single dispatch point such as a
// Runner.
type Session struct {
	Config Config

	board   *mino.Board
	current *mino.Piece
	next    mino.Kind

	score  int
	lines  int
	level  int
	speed  time.Duration
	status Status

	rand   mino.Randomizer
	events []interface{}
	log    zerolog.Logger
}

// NewSession validates cfg and builds a session that has not started yet.
// A nil randomizer is built from cfg.Randomizer and cfg.Seed.
func NewSession(cfg Config, r mino.Randomizer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if r == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		var err error
		r, err = mino.NewRandomizer(cfg.Randomizer, seed)
		if err != nil {
			return nil, err
		}
	}

	s := &Session{
		Config: cfg,
		board:  mino.NewBoard(cfg.Cols, cfg.Rows),
		level:  1,
		speed:  cfg.SpeedFor(1),
		rand:   r,
		log:    log.With().Str("component", "session").Logger(),
	}
	return s, nil
}

func (s *Session) emit(e interface{}) {
	s.events = append(s.events, e)
}

// DrainEvents returns the notifications raised since the last call.
func (s *Session) DrainEvents() []interface{} {
	events := s.events
	s.events = nil
	return events
}

// Start resets every counter, empties the board and spawns the first
// piece. It may be called again at any time to begin a new game.
func (s *Session) Start() {
	s.board.Clear()
	s.current = nil
	s.score = 0
	s.lines = 0
	s.level = 1
	s.speed = s.Config.SpeedFor(1)
	s.status = StatusRunning

	s.next = s.rand.Take()

	s.log.Debug().Dur("speed", s.speed).Msg("starting game")
	s.emit(&event.StartEvent{Event: event.Event{Message: "New game started"}})
	s.emit(&event.SpeedChangedEvent{Speed: s.speed})

	s.Spawn()
}

// Spawn promotes the queued piece to the spawn origin and draws a new one.
// It returns false and ends the game when the piece does not fit.
func (s *Session) Spawn() bool {
	if s.status != StatusRunning {
		return false
	}

	s.current = mino.NewPiece(s.next, s.Config.SpawnPoint())
	s.next = s.rand.Take()

	if s.board.WouldCollide(s.current.Cells()) {
		s.status = StatusGameOver

		s.log.Debug().Int("score", s.score).Int("lines", s.lines).Int("level", s.level).Msg("game over")
		s.emit(&event.GameOverEvent{
			Event: event.Event{Message: fmt.Sprintf("Game over - score %d", s.score)},
			Score: s.score,
			Lines: s.lines,
			Level: s.level,
		})
		return false
	}

	return true
}

// Tick lowers the piece by one row. When the piece is resting it is locked,
// full rows are cleared and the next piece spawns. It returns whether the
// piece moved.
func (s *Session) Tick() bool {
	if s.status != StatusRunning {
		return false
	}

	if s.current.TryMove(s.board, 0, 1) {
		return true
	}

	s.settle()
	return false
}

func (s *Session) settle() {
	if err := s.current.LockInto(s.board); err != nil {
		s.log.Error().Err(err).Str("piece", s.current.String()).Msg("failed to lock piece")
		if s.Config.Debug {
			panic(err)
		}
	}
	s.emit(&event.PieceLockedEvent{})

	rows := s.board.ClearFullRows()
	if rows > 0 {
		s.lines += rows
		s.log.Debug().Int("rows", rows).Int("lines", s.lines).Msg("cleared rows")
		s.emit(&event.LinesClearedEvent{Lines: rows, Total: s.lines})

		s.applyScoring(rows)
		s.applyLeveling()
	}

	s.Spawn()
}

func (s *Session) addScore(delta int) {
	if delta == 0 {
		return
	}
	s.score += delta
	s.emit(&event.ScoreEvent{Delta: delta, Score: s.score})
}

func (s *Session) applyScoring(rows int) {
	if rows <= 0 {
		return
	}
	if rows >= len(lineScores) {
		rows = len(lineScores) - 1
	}
	s.addScore(lineScores[rows] * s.level)
}

func (s *Session) applyLeveling() {
	level := s.lines/s.Config.LinesPerLevel + 1
	if level <= s.level {
		return
	}

	s.level = level
	s.speed = s.Config.SpeedFor(level)

	s.log.Debug().Int("level", level).Dur("speed", s.speed).Msg("level up")
	s.emit(&event.LevelUpEvent{Event: event.Event{Message: fmt.Sprintf("Level %d", level)}, Level: level})
	s.emit(&event.SpeedChangedEvent{Speed: s.speed})
}

func (s *Session) MoveLeft() bool {
	if s.status != StatusRunning {
		return false
	}
	return s.current.TryMove(s.board, -1, 0)
}

func (s *Session) MoveRight() bool {
	if s.status != StatusRunning {
		return false
	}
	return s.current.TryMove(s.board, 1, 0)
}

func (s *Session) Rotate() bool {
	if s.status != StatusRunning {
		return false
	}
	return s.current.TryRotate(s.board)
}

// SoftDrop runs one tick and awards a point, even when the tick locked the
// piece.
func (s *Session) SoftDrop() bool {
	if s.status != StatusRunning {
		return false
	}
	s.Tick()
	s.addScore(SoftDropPoints)
	return true
}

// HardDrop drops the piece to rest, two points per row, then locks it.
func (s *Session) HardDrop() bool {
	if s.status != StatusRunning {
		return false
	}

	steps := 0
	for s.current.TryMove(s.board, 0, 1) {
		steps++
	}
	s.addScore(steps * HardDropPoints)

	s.settle()
	return true
}

// ProcessAction dispatches a to the matching command.
func (s *Session) ProcessAction(a event.GameAction) bool {
	switch a {
	case event.ActionStart:
		s.Start()
		return true
	case event.ActionTick:
		return s.Tick()
	case event.ActionMoveLeft:
		return s.MoveLeft()
	case event.ActionMoveRight:
		return s.MoveRight()
	case event.ActionRotate:
		return s.Rotate()
	case event.ActionSoftDrop:
		return s.SoftDrop()
	case event.ActionHardDrop:
		return s.HardDrop()
	default:
		s.log.Warn().Stringer("action", a).Msg("unknown action")
		return false
	}
}

func (s *Session) Score() int { return s.score }
func (s *Session) Lines() int { return s.lines }
func (s *Session) Level() int { return s.level }
func (s *Session) Speed() time.Duration { return s.speed }
func (s *Session) Status() Status { return s.status }
func (s *Session) NextKind() mino.Kind { return s.next }
func (s *Session) Board() [][]mino.Block { return s.board.Snapshot() }
func (s *Session) Running() bool { return s.status == StatusRunning }

// CurrentPieceCells returns the absolute cells of the falling piece. Cells
// above the board are included.
func (s *Session) CurrentPieceCells() []Cell {
	if s.current == nil {
		return nil
	}
	return cellsOf(s.current.Cells(), s.current.Block())
}

// NextPieceCells returns the queued piece in its spawn rotation, placed in a
// 4x4 preview window.
func (s *Session) NextPieceCells() []Cell {
	if s.status == StatusNotStarted {
		return nil
	}
	return cellsOf(mino.RotationStates(s.next)[0].Origin(), mino.ColorTag(s.next))
}

func cellsOf(points []mino.Point, block mino.Block) []Cell {
	cells := make([]Cell, len(points))
	for i, p := range points {
		cells[i] = Cell{Point: p, Block: block}
	}
	return cells
}
