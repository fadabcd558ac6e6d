// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single-screen player: a browsable track list above a
// now-playing bar. Selecting a track makes the visible list the play
// queue, and the transport (play/pause, next/previous, volume, mute,
// shuffle, repeat) is driven entirely by key bindings against the
// playback engine. A half-second tick keeps the position readout
// moving while a track plays.
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. Keyboard navigation uses vim-style bindings (j/k, enter,
// esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
