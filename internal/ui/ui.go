package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/player"
	"github.com/desertthunder/harmony/internal/shared"
)

// tickInterval paces the position readout refresh.
const tickInterval = 500 * time.Millisecond

// tickMsg prompts a snapshot of the playback engine.
type tickMsg time.Time

// Model represents the TUI application state.
type Model struct {
	engine    *player.Engine
	tracks    []models.Track
	trackList list.Model
	now       player.State
	styles    *Palette
	width     int
	height    int
	help      help.Model
	keys      keyMap
	err       error
}

// NewModel creates a player over the given tracks. The list title
// names the source (a playlist, the library, search results) and the
// theme's accent color drives the palette.
func NewModel(title string, tracks []models.Track, engine *player.Engine, theme models.Theme) *Model {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}

	trackList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	trackList.Title = title

	return &Model{
		engine:    engine,
		tracks:    tracks,
		trackList: trackList,
		now:       engine.Snapshot(),
		styles:    NewPalette(theme.Accent),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trackList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tickMsg:
		m.now = m.engine.Snapshot()
		return m, tick()

	case tea.KeyMsg:
		// while the list filter is open, keys belong to the filter
		if m.trackList.FilterState() == list.Filtering {
			break
		}
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.engine.Pause()
		return m, tea.Quit

	case key.Matches(msg, m.keys.enter):
		if track, ok := m.selectedTrack(); ok {
			m.err = m.engine.SetQueue(m.tracks, m.indexOf(track.ID))
		}

	case key.Matches(msg, m.keys.queue):
		if track, ok := m.selectedTrack(); ok {
			m.engine.AddToQueue(track)
		}

	case key.Matches(msg, m.keys.toggle):
		m.engine.TogglePlayPause()

	case key.Matches(msg, m.keys.next):
		m.engine.PlayNext()

	case key.Matches(msg, m.keys.prev):
		m.engine.PlayPrevious()

	case key.Matches(msg, m.keys.volUp):
		m.engine.SetVolume(m.now.Volume + 0.1)

	case key.Matches(msg, m.keys.volDown):
		m.engine.SetVolume(m.now.Volume - 0.1)

	case key.Matches(msg, m.keys.mute):
		m.engine.ToggleMute()

	case key.Matches(msg, m.keys.shuffle):
		m.engine.ToggleShuffle()

	case key.Matches(msg, m.keys.repeat):
		m.engine.ToggleRepeat()

	default:
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}

	m.now = m.engine.Snapshot()
	return m, nil
}

func (m *Model) selectedTrack() (models.Track, bool) {
	selected := m.trackList.SelectedItem()
	if selected == nil {
		return models.Track{}, false
	}
	item, ok := selected.(trackItem)
	return item.track, ok
}

func (m *Model) indexOf(trackID string) int {
	for i, t := range m.tracks {
		if t.ID == trackID {
			return i
		}
	}
	return 0
}

// View renders the track list over the now-playing bar.
func (m *Model) View() string {
	status := m.renderNowPlaying()
	if m.err != nil {
		status = m.styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.enter, m.keys.toggle, m.keys.next, m.keys.prev, m.keys.quit,
	})

	return fmt.Sprintf("%s\n\n%s\n%s", m.trackList.View(), status, helpView)
}

func (m *Model) renderNowPlaying() string {
	track := m.now.Track
	if track == nil {
		return m.styles.dim.Render("Nothing playing")
	}

	icon := "⏸"
	if m.now.Playing {
		icon = "▶"
	}

	line := fmt.Sprintf("%s %s - %s  %s / %s",
		icon,
		track.Artist,
		track.Name,
		shared.FormatTime(m.now.Position),
		shared.FormatTime(m.now.Duration),
	)

	extras := ""
	if m.now.Muted {
		extras += "  muted"
	} else {
		extras += fmt.Sprintf("  vol %d%%", int(m.now.Volume*100))
	}
	if m.now.Shuffle {
		extras += "  shuffle"
	}
	if m.now.Repeat != player.RepeatNone {
		extras += fmt.Sprintf("  repeat:%s", m.now.Repeat)
	}

	return m.styles.playing.Render(line) + m.styles.dim.Render(extras)
}
