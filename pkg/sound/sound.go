// Package sound turns game events into short synthesized cues.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

const SampleRate = beep.SampleRate(44100)

const (
	noteDuration  = 70 * time.Millisecond
	clickDuration = 25 * time.Millisecond
	overDuration  = 600 * time.Millisecond
	attack        = 5 * time.Millisecond
	release       = 40 * time.Millisecond
)

// A major scale from C5, used for the line clear chime.
var chime = []float64{523.25, 659.25, 783.99, 1046.50}

// C major arpeggio for a level up.
var arpeggio = []float64{261.63, 329.63, 392.00, 523.25, 659.25}

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

type oscillator struct {
	freq, sweep float64
	phase       float64
	position    int
	samples     int
	wave        Wave
	rate        beep.SampleRate
}

// Tone plays freq for d. A non-zero sweep changes the frequency linearly
// by sweep Hz over the whole tone.
func Tone(freq, sweep float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:    freq,
		sweep:   sweep,
		samples: rate.N(d),
		wave:    wave,
		rate:    rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.samples {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.samples)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// Shape fades s in over a and out over r. The stream ends after d.
func Shape(s beep.Streamer, d, a, r time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: beep.Take(rate.N(d), s),
		attack:   rate.N(a),
		release:  rate.N(r),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release && e.release > 0 {
			vol = math.Max(0, float64(left)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func notes(freqs []float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	seq := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		seq[i] = Shape(Tone(f, 0, d, wave, rate), d, attack, release, rate)
	}
	return beep.Seq(seq...)
}

// Effect returns the cue for ev, or nil when ev has none.
func Effect(ev interface{}, rate beep.SampleRate) beep.Streamer {
	switch e := ev.(type) {
	case *event.LinesClearedEvent:
		rows := e.Lines
		if rows < 1 {
			return nil
		}
		if rows > len(chime) {
			rows = len(chime)
		}
		return volume(notes(chime[:rows], noteDuration, WaveSquare, rate), 0.25)

	case *event.LevelUpEvent:
		return volume(notes(arpeggio, noteDuration, WaveTriangle, rate), 0.4)

	case *event.PieceLockedEvent:
		click := Shape(Tone(110, 0, clickDuration, WaveSquare, rate), clickDuration, 0, clickDuration, rate)
		return volume(click, 0.15)

	case *event.GameOverEvent:
		low := Shape(Tone(440, -330, overDuration, WaveSine, rate), overDuration, attack, 200*time.Millisecond, rate)
		sub := Shape(Tone(220, -165, overDuration, WaveTriangle, rate), overDuration, attack, 200*time.Millisecond, rate)
		return volume(beep.Mix(volume(low, 0.7), volume(sub, 0.3)), 0.5)
	}
	return nil
}

// Player mixes cues onto the speaker. The speaker is opened on first use.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	failed      bool

	log zerolog.Logger
}

func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
		log:   log.With().Str("component", "sound").Logger(),
	}
}

func (p *Player) init() bool {
	if p.initialized || p.failed {
		return p.initialized
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.log.Warn().Err(err).Msg("audio unavailable, sound disabled")
		p.failed = true
		return false
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return true
}

// HandleEvent plays the cue for ev. It never blocks on audio output.
func (p *Player) HandleEvent(ev interface{}) {
	s := Effect(ev, SampleRate)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.init() {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
