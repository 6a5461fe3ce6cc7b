package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

func newTestRunner(t *testing.T) (*Runner, context.CancelFunc, chan error) {
	t.Helper()

	c := DefaultConfig()
	c.BaseSpeed = 20 * time.Millisecond
	c.SpeedStep = 5 * time.Millisecond
	c.MinSpeed = 5 * time.Millisecond

	s, err := NewSession(c, mino.NewSequence(mino.KindO))
	require.NoError(t, err)

	r := NewRunner(s)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()
	return r, cancel, done
}

func TestRunnerGravity(t *testing.T) {
	r, cancel, done := newTestRunner(t)

	var (
		mu     sync.Mutex
		events []interface{}
		snaps  int
	)
	r.OnEvent(func(e interface{}) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})
	r.Subscribe(func(*Snapshot) {
		mu.Lock()
		snaps++
		mu.Unlock()
	})

	require.Eventually(t, func() bool { return r.Last() != nil }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StatusNotStarted, r.Last().Status)

	assert.True(t, r.Do(event.ActionStart))
	require.Eventually(t, func() bool {
		last := r.Last()
		return last.Status == StatusRunning && len(last.Current) > 0 && last.Current[0].Y > 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.True(t, errors.Is(<-done, context.Canceled))

	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, snaps, 3)
	assert.Len(t, eventsOfType[*event.StartEvent](events), 1)
}

func TestRunnerGameOverStopsGravity(t *testing.T) {
	r, cancel, done := newTestRunner(t)
	defer func() {
		cancel()
		<-done
	}()

	over := make(chan *event.GameOverEvent, 1)
	r.OnEvent(func(e interface{}) {
		if ev, ok := e.(*event.GameOverEvent); ok {
			over <- ev
		}
	})

	r.actions <- event.ActionStart

	var ev *event.GameOverEvent
	for i := 0; i < 50 && ev == nil; i++ {
		r.actions <- event.ActionHardDrop

		select {
		case ev = <-over:
		case <-time.After(20 * time.Millisecond):
		}
	}
	require.NotNil(t, ev, "game did not end")
	assert.Equal(t, 0, ev.Lines)
	assert.Equal(t, 1, ev.Level)
	assert.Greater(t, ev.Score, 0)

	require.Eventually(t, func() bool { return r.Last().Status == StatusGameOver }, time.Second, 5*time.Millisecond)
	board := r.Last().Board
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, board, r.Last().Board)
}

func TestRunnerLevelUpRearmsGravity(t *testing.T) {
	c := DefaultConfig()
	c.BaseSpeed = time.Second
	c.SpeedStep = 990 * time.Millisecond
	c.MinSpeed = 10 * time.Millisecond
	c.LinesPerLevel = 2

	s, err := NewSession(c, mino.NewSequence(mino.KindO))
	require.NoError(t, err)

	// The start events stay queued so the first trigger arms the ticker at
	// the base speed before the level up changes it.
	s.Start()
	fillRows(s, []int{c.Rows - 1, c.Rows - 2}, 4, 5)

	r := NewRunner(s)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	require.True(t, r.Do(event.ActionHardDrop))
	require.Eventually(t, func() bool {
		last := r.Last()
		return last != nil && last.Lines == 2
	}, time.Second, 5*time.Millisecond)

	last := r.Last()
	assert.Equal(t, 2, last.Level)
	assert.Equal(t, int64(10), last.SpeedMs)

	// At the base speed this would take several seconds.
	require.Eventually(t, func() bool {
		last := r.Last()
		return len(last.Current) > 0 && last.Current[0].Y >= 5
	}, 500*time.Millisecond, 2*time.Millisecond)
}
