package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

const CommandQueueSize = 10

// Runner owns a Session and the gravity timer. Every command and tick is
// processed on the goroutine running Run, one at a time.
type Runner struct {
	Session *Session

	actions chan event.GameAction

	subscribers []func(*Snapshot)
	handlers    []func(interface{})
	last        *Snapshot

	log zerolog.Logger
	sync.Mutex
}

func NewRunner(s *Session) *Runner {
	return &Runner{
		Session: s,
		actions: make(chan event.GameAction, CommandQueueSize),
		log:     log.With().Str("component", "runner").Logger(),
	}
}

// Subscribe registers f to receive a snapshot after every processed trigger.
// f runs on the Run goroutine and must not block.
func (r *Runner) Subscribe(f func(*Snapshot)) {
	r.Lock()
	defer r.Unlock()

	r.subscribers = append(r.subscribers, f)
}

// OnEvent registers f to receive every session event.
func (r *Runner) OnEvent(f func(interface{})) {
	r.Lock()
	defer r.Unlock()

	r.handlers = append(r.handlers, f)
}

// Do queues an action. It drops the action when the queue is full.
func (r *Runner) Do(a event.GameAction) bool {
	select {
	case r.actions <- a:
		return true
	default:
		r.log.Warn().Stringer("action", a).Msg("command queue full, dropping action")
		return false
	}
}

// Last returns the most recently published snapshot.
func (r *Runner) Last() *Snapshot {
	r.Lock()
	defer r.Unlock()

	return r.last
}

// Run processes actions and gravity ticks until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	rearm := func(d time.Duration) {
		if ticker == nil {
			ticker = time.NewTicker(d)
		} else {
			ticker.Reset(d)
		}
		tick = ticker.C
	}
	stop := func() {
		if ticker != nil {
			ticker.Stop()
		}
		tick = nil
	}

	r.publish(nil)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-r.actions:
			r.Session.ProcessAction(a)
		case <-tick:
			r.Session.Tick()
		}

		events := r.Session.DrainEvents()
		for _, e := range events {
			switch ev := e.(type) {
			case *event.SpeedChangedEvent:
				r.log.Debug().Dur("speed", ev.Speed).Msg("re-arming gravity timer")
				rearm(ev.Speed)
			case *event.GameOverEvent:
				stop()
			}
		}

		r.publish(events)
	}
}

func (r *Runner) publish(events []interface{}) {
	snap := r.Session.Snapshot()

	r.Lock()
	r.last = snap
	handlers := r.handlers
	subscribers := r.subscribers
	r.Unlock()

	for _, e := range events {
		for _, h := range handlers {
			h(e)
		}
	}
	for _, f := range subscribers {
		f(snap)
	}
}
