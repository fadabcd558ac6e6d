package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
)

// Sink is an audio output. Load must not return until the sink is
// ready to Play the given track, so callers can chain the two without
// waiting on a side channel. Implementations report the end of a track
// through the function given to OnTrackEnd, from their own goroutine.
type Sink interface {
	Load(track models.Track) error
	Play() error
	Pause()
	Seek(pos float64)
	SetVolume(v float64)
	Position() float64
	Duration() float64
	OnTrackEnd(fn func())
}

// ClockSink simulates playback against the wall clock: a loaded track
// "plays" for its metadata duration and then reports that it ended. It
// produces no sound; it exists so the engine's queue and transport
// logic can run (and be observed in the TUI) without an audio device.
type ClockSink struct {
	mu        sync.Mutex
	track     models.Track
	duration  float64
	offset    float64
	startedAt time.Time
	playing   bool
	volume    float64
	timer     *time.Timer
	onEnd     func()
}

func NewClockSink() *ClockSink {
	return &ClockSink{volume: 1.0}
}

func (s *ClockSink) Load(track models.Track) error {
	if track.Source() == "" {
		return shared.ErrNoAudioSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.track = track
	s.duration = float64(track.Duration)
	s.offset = 0
	s.playing = false
	return nil
}

// Play starts the simulated transport. A track without duration
// metadata has nothing to simulate, so the refusal is reported rather
// than swallowed and the engine stays paused on it.
func (s *ClockSink) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		return nil
	}
	if s.duration <= 0 {
		return fmt.Errorf("%w: %q", shared.ErrUnknownDuration, s.track.Name)
	}

	s.playing = true
	s.startedAt = time.Now()
	s.armTimerLocked()
	return nil
}

func (s *ClockSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}

	s.offset = s.positionLocked()
	s.playing = false
	s.stopTimerLocked()
}

func (s *ClockSink) Seek(pos float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 {
		pos = 0
	}
	if pos > s.duration {
		pos = s.duration
	}

	s.offset = pos
	if s.playing {
		s.startedAt = time.Now()
		s.stopTimerLocked()
		s.armTimerLocked()
	}
}

func (s *ClockSink) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = v
	s.mu.Unlock()
}

func (s *ClockSink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *ClockSink) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *ClockSink) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *ClockSink) OnTrackEnd(fn func()) {
	s.mu.Lock()
	s.onEnd = fn
	s.mu.Unlock()
}

func (s *ClockSink) positionLocked() float64 {
	pos := s.offset
	if s.playing {
		pos += time.Since(s.startedAt).Seconds()
	}
	if pos > s.duration {
		pos = s.duration
	}
	return pos
}

// armTimerLocked schedules the end-of-track callback for the remaining
// simulated playtime. Caller holds s.mu.
func (s *ClockSink) armTimerLocked() {
	remaining := time.Duration((s.duration - s.offset) * float64(time.Second))
	if remaining < 0 {
		remaining = 0
	}

	s.timer = time.AfterFunc(remaining, func() {
		s.mu.Lock()
		if !s.playing {
			s.mu.Unlock()
			return
		}
		s.playing = false
		s.offset = s.duration
		fn := s.onEnd
		s.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

func (s *ClockSink) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
