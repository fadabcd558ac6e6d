// Package player implements the playback engine: a queue of tracks, a
// cursor into it, and the transport controls (play/pause, seek, volume,
// next/previous, repeat) that move them. Audio output is behind the
// [Sink] interface so the engine can be driven by a real output device
// or by the wall-clock simulation in [ClockSink].
package player
