package player

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
)

// RepeatMode controls what happens when the queue runs out or a track
// finishes.
type RepeatMode string

const (
	RepeatNone RepeatMode = "none"
	RepeatAll  RepeatMode = "all"
	RepeatOne  RepeatMode = "one"
)

// restartThreshold is how far into a track the previous control
// restarts it instead of moving back through the queue, in seconds.
const restartThreshold = 3.0

// Engine is the playback state machine. All state lives behind one
// mutex; the current track is always derived from the queue and the
// cursor, never stored separately.
type Engine struct {
	mu      sync.Mutex
	sink    Sink
	logger  *log.Logger
	queue   []models.Track
	index   int
	playing bool
	volume  float64
	muted   bool
	shuffle bool
	repeat  RepeatMode
}

// NewEngine wires an engine to a sink. The engine registers itself for
// the sink's end-of-track events, so a finished track advances the
// queue without caller involvement.
func NewEngine(sink Sink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	e := &Engine{
		sink:   sink,
		logger: logger,
		index:  -1,
		volume: 0.7,
		repeat: RepeatNone,
	}
	sink.SetVolume(e.volume)
	sink.OnTrackEnd(e.handleTrackEnd)
	return e
}

// CurrentTrack returns the track under the cursor, or nil when the
// queue is empty.
func (e *Engine) CurrentTrack() *models.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentLocked()
}

func (e *Engine) currentLocked() *models.Track {
	if e.index < 0 || e.index >= len(e.queue) {
		return nil
	}
	t := e.queue[e.index]
	return &t
}

// SetQueue replaces the queue, moves the cursor to start, and begins
// playback there. An out-of-range start clamps to the first track.
func (e *Engine) SetQueue(tracks []models.Track, start int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(tracks) == 0 {
		e.clearLocked()
		return nil
	}
	if start < 0 || start >= len(tracks) {
		start = 0
	}

	e.queue = append([]models.Track(nil), tracks...)
	e.index = start
	return e.loadAndPlayLocked()
}

// PlayTrack plays a single track, making it the whole queue.
func (e *Engine) PlayTrack(track models.Track) error {
	return e.SetQueue([]models.Track{track}, 0)
}

// loadAndPlayLocked loads the track under the cursor into the sink and
// starts it. Load returning is the ready signal; there is no settling
// delay between the two. Caller holds e.mu.
func (e *Engine) loadAndPlayLocked() error {
	track := e.currentLocked()
	if track == nil {
		return nil
	}

	if err := e.sink.Load(*track); err != nil {
		e.playing = false
		e.logger.Error("loading track", "id", track.ID, "name", track.Name, "error", err)
		return fmt.Errorf("loading %q: %w", track.Name, err)
	}
	return e.playLocked()
}

// Play resumes the current track. A sink refusal is logged and
// playback state left paused rather than surfaced as a hard failure.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currentLocked() == nil {
		return
	}
	if err := e.playLocked(); err != nil {
		e.logger.Warn("playback refused", "error", err)
	}
}

func (e *Engine) playLocked() error {
	if err := e.sink.Play(); err != nil {
		e.playing = false
		return err
	}
	e.playing = true
	return nil
}

// Pause suspends playback, keeping the cursor and position.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return
	}
	e.sink.Pause()
	e.playing = false
}

// TogglePlayPause flips between playing and paused.
func (e *Engine) TogglePlayPause() {
	e.mu.Lock()
	playing := e.playing
	e.mu.Unlock()

	if playing {
		e.Pause()
	} else {
		e.Play()
	}
}

// Seek moves the playhead within the current track.
func (e *Engine) Seek(pos float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currentLocked() == nil {
		return
	}
	e.sink.Seek(pos)
}

// SetVolume sets the output gain, clamped to [0, 1]. Raising the
// volume above zero lifts a mute.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	e.volume = v
	if v > 0 {
		e.muted = false
	}
	e.applyVolumeLocked()
}

// ToggleMute silences the output without losing the volume setting.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.muted = !e.muted
	e.applyVolumeLocked()
}

func (e *Engine) applyVolumeLocked() {
	if e.muted {
		e.sink.SetVolume(0)
		return
	}
	e.sink.SetVolume(e.volume)
}

// PlayNext advances the queue. Repeat-one restarts the current track,
// repeat-all wraps from the last track to the first, and without
// repeat the engine stops at the end of the queue.
func (e *Engine) PlayNext() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advanceLocked()
}

func (e *Engine) advanceLocked() {
	if len(e.queue) == 0 {
		return
	}

	switch {
	case e.repeat == RepeatOne:
		e.sink.Seek(0)
		if err := e.playLocked(); err != nil {
			e.logger.Warn("restart refused", "error", err)
		}
		return
	case e.index < len(e.queue)-1:
		e.index++
	case e.repeat == RepeatAll:
		e.index = 0
	default:
		e.sink.Pause()
		e.playing = false
		return
	}

	if err := e.loadAndPlayLocked(); err != nil {
		e.logger.Warn("advancing queue", "error", err)
	}
}

// PlayPrevious restarts the current track when more than a few seconds
// in; otherwise it steps back through the queue, wrapping to the end
// only under repeat-all. The restart paths keep the transport as it
// was, so a paused track stays paused at the top; stepping back always
// starts the earlier track.
func (e *Engine) PlayPrevious() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.queue) == 0 {
		return
	}

	if e.sink.Position() > restartThreshold {
		e.sink.Seek(0)
		return
	}

	switch {
	case e.index > 0:
		e.index--
	case e.repeat == RepeatAll:
		e.index = len(e.queue) - 1
	default:
		e.sink.Seek(0)
		return
	}

	if err := e.loadAndPlayLocked(); err != nil {
		e.logger.Warn("stepping back in queue", "error", err)
	}
}

// AddToQueue appends a track without disturbing playback. A track
// added to an empty engine is staged in the sink, paused, so a later
// Play starts there; if staging fails the cursor stays off the queue.
func (e *Engine) AddToQueue(track models.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.queue = append(e.queue, track)
	if e.index >= 0 {
		return
	}

	e.index = len(e.queue) - 1
	if err := e.sink.Load(track); err != nil {
		e.index = -1
		e.logger.Warn("staging queued track", "id", track.ID, "name", track.Name, "error", err)
	}
}

// RemoveFromQueue drops the track at position i. Removing the playing
// track hands off to whatever would come next; removing an earlier
// track shifts the cursor so the current track keeps playing.
func (e *Engine) RemoveFromQueue(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i < 0 || i >= len(e.queue) {
		return
	}

	wasCurrent := i == e.index
	e.queue = append(e.queue[:i], e.queue[i+1:]...)

	switch {
	case len(e.queue) == 0:
		e.index = -1
		e.sink.Pause()
		e.playing = false
	case i < e.index:
		e.index--
	case wasCurrent:
		if e.index >= len(e.queue) {
			if e.repeat != RepeatAll {
				e.index = len(e.queue) - 1
				e.sink.Pause()
				e.playing = false
				return
			}
			e.index = 0
		}
		if err := e.loadAndPlayLocked(); err != nil {
			e.logger.Warn("advancing after removal", "error", err)
		}
	}
}

// ToggleShuffle flips the shuffle flag. The flag is surfaced in state
// but does not reorder the queue; a real shuffle order is a planned
// follow-up and silently scrambling the queue would be worse than
// doing nothing.
func (e *Engine) ToggleShuffle() {
	e.mu.Lock()
	e.shuffle = !e.shuffle
	e.mu.Unlock()
}

// ToggleRepeat cycles none, all, one.
func (e *Engine) ToggleRepeat() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.repeat {
	case RepeatNone:
		e.repeat = RepeatAll
	case RepeatAll:
		e.repeat = RepeatOne
	default:
		e.repeat = RepeatNone
	}
}

// ClearQueue stops playback and empties the queue.
func (e *Engine) ClearQueue() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearLocked()
}

func (e *Engine) clearLocked() {
	e.sink.Pause()
	e.queue = nil
	e.index = -1
	e.playing = false
}

// handleTrackEnd runs when the sink reports a finished track.
func (e *Engine) handleTrackEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advanceLocked()
}

// State is a point-in-time snapshot of the engine for display.
type State struct {
	Track    *models.Track
	Queue    []models.Track
	Index    int
	Playing  bool
	Position float64
	Duration float64
	Volume   float64
	Muted    bool
	Shuffle  bool
	Repeat   RepeatMode
}

// Snapshot captures the engine state under one lock acquisition.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Track:    e.currentLocked(),
		Queue:    append([]models.Track(nil), e.queue...),
		Index:    e.index,
		Playing:  e.playing,
		Position: e.sink.Position(),
		Duration: e.sink.Duration(),
		Volume:   e.volume,
		Muted:    e.muted,
		Shuffle:  e.shuffle,
		Repeat:   e.repeat,
	}
}
