package library

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/repositories"
	"github.com/desertthunder/harmony/internal/server"
	"github.com/desertthunder/harmony/internal/shared"
)

// PlaylistUpdate carries the fields of a playlist that may be changed
// in place. Nil fields are left untouched.
type PlaylistUpdate struct {
	Name        *string
	Description *string
	Tracks      *[]models.Track
}

// Manager owns the local music collection. It keeps in-memory
// snapshots of playlists, uploads, and downloads that are reloaded
// from the stores after every mutation, so callers read without
// touching the database.
type Manager struct {
	mu        sync.RWMutex
	playlists []*models.Playlist
	uploads   []*models.UploadedTrack
	downloads []*models.DownloadedTrack

	playlistRepo *repositories.PlaylistRepository
	uploadRepo   *repositories.UploadRepository
	downloadRepo *repositories.DownloadRepository
	blobs        *server.BlobServer
	httpClient   *http.Client
	logger       *log.Logger
}

// ManagerOpts configures a library Manager. HTTPClient defaults to a
// client with a 30s timeout; Blobs may be nil, in which case local
// tracks carry no streamable URL.
type ManagerOpts struct {
	Playlists  *repositories.PlaylistRepository
	Uploads    *repositories.UploadRepository
	Downloads  *repositories.DownloadRepository
	Blobs      *server.BlobServer
	HTTPClient *http.Client
	Logger     *log.Logger
}

func NewManager(opts ManagerOpts) *Manager {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Manager{
		playlistRepo: opts.Playlists,
		uploadRepo:   opts.Uploads,
		downloadRepo: opts.Downloads,
		blobs:        opts.Blobs,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
	}
}

// AttachBlobServer hands the manager a running blob server and
// re-registers every local track's audio with it.
func (m *Manager) AttachBlobServer(blobs *server.BlobServer) error {
	m.mu.Lock()
	m.blobs = blobs
	m.mu.Unlock()
	return m.Refresh()
}

// blobServer reads the attached blob server under the same lock
// AttachBlobServer writes it.
func (m *Manager) blobServer() *server.BlobServer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.blobs
}

// Refresh reloads all three snapshots from their stores and registers
// a blob URL for every track that owns audio bytes.
func (m *Manager) Refresh() error {
	playlists, err := m.playlistRepo.GetAll()
	if err != nil {
		return fmt.Errorf("loading playlists: %w", err)
	}
	uploads, err := m.uploadRepo.GetAll()
	if err != nil {
		return fmt.Errorf("loading uploads: %w", err)
	}
	downloads, err := m.downloadRepo.GetAll()
	if err != nil {
		return fmt.Errorf("loading downloads: %w", err)
	}

	if blobs := m.blobServer(); blobs != nil {
		for _, t := range uploads {
			t.BlobURL = blobs.Register(t.ID, t.Audio, t.MIME)
		}
		for _, t := range downloads {
			t.BlobURL = blobs.Register(t.ID, t.Audio, t.MIME)
		}
	}

	m.mu.Lock()
	m.playlists = playlists
	m.uploads = uploads
	m.downloads = downloads
	m.mu.Unlock()

	return nil
}

// Playlists returns the current playlist snapshot, newest first.
func (m *Manager) Playlists() []models.Playlist {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Playlist, 0, len(m.playlists))
	for _, p := range m.playlists {
		out = append(out, *p)
	}
	return out
}

// Uploads returns the current uploaded-track snapshot, oldest first.
func (m *Manager) Uploads() []models.UploadedTrack {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.UploadedTrack, 0, len(m.uploads))
	for _, t := range m.uploads {
		out = append(out, *t)
	}
	return out
}

// Downloads returns the current downloaded-track snapshot, oldest first.
func (m *Manager) Downloads() []models.DownloadedTrack {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.DownloadedTrack, 0, len(m.downloads))
	for _, t := range m.downloads {
		out = append(out, *t)
	}
	return out
}

// Playlist returns the playlist with the given id, or nil.
func (m *Manager) Playlist(id string) *models.Playlist {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.playlists {
		if p.ID == id {
			cp := *p
			return &cp
		}
	}
	return nil
}

// CreatePlaylist persists a new empty playlist and returns it.
func (m *Manager) CreatePlaylist(name, description string) (*models.Playlist, error) {
	now := time.Now()
	playlist := &models.Playlist{
		ID:          shared.GenerateEntityID("playlist"),
		Name:        name,
		Description: description,
		Tracks:      []models.Track{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.playlistRepo.Put(playlist); err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}
	if err := m.Refresh(); err != nil {
		return nil, err
	}

	m.logger.Info("created playlist", "id", playlist.ID, "name", name)
	return playlist, nil
}

// UpdatePlaylist applies the non-nil fields of updates to a stored
// playlist and bumps its updated-at timestamp.
func (m *Manager) UpdatePlaylist(id string, updates PlaylistUpdate) error {
	playlist, err := m.playlistRepo.Get(id)
	if err != nil {
		return fmt.Errorf("reading playlist %s: %w", id, err)
	}
	if playlist == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	if updates.Name != nil {
		playlist.Name = *updates.Name
	}
	if updates.Description != nil {
		playlist.Description = *updates.Description
	}
	if updates.Tracks != nil {
		playlist.Tracks = *updates.Tracks
	}
	playlist.UpdatedAt = time.Now()

	if err := m.playlistRepo.Put(playlist); err != nil {
		return fmt.Errorf("updating playlist %s: %w", id, err)
	}
	return m.Refresh()
}

// DeletePlaylist removes a playlist. Deleting an absent id is a no-op.
func (m *Manager) DeletePlaylist(id string) error {
	if err := m.playlistRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting playlist %s: %w", id, err)
	}
	return m.Refresh()
}

// AddTrackToPlaylist appends a track to a playlist. Adding a track the
// playlist already contains is a silent no-op.
func (m *Manager) AddTrackToPlaylist(playlistID string, track models.Track) error {
	playlist, err := m.playlistRepo.Get(playlistID)
	if err != nil {
		return fmt.Errorf("reading playlist %s: %w", playlistID, err)
	}
	if playlist == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if playlist.Contains(track.ID) {
		return nil
	}

	playlist.Tracks = append(playlist.Tracks, track)
	playlist.UpdatedAt = time.Now()

	if err := m.playlistRepo.Put(playlist); err != nil {
		return fmt.Errorf("updating playlist %s: %w", playlistID, err)
	}
	return m.Refresh()
}

// RemoveTrackFromPlaylist drops a track from a playlist. Removing a
// track that is not present is a no-op.
func (m *Manager) RemoveTrackFromPlaylist(playlistID, trackID string) error {
	playlist, err := m.playlistRepo.Get(playlistID)
	if err != nil {
		return fmt.Errorf("reading playlist %s: %w", playlistID, err)
	}
	if playlist == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	kept := playlist.Tracks[:0]
	for _, t := range playlist.Tracks {
		if t.ID != trackID {
			kept = append(kept, t)
		}
	}
	playlist.Tracks = kept
	playlist.UpdatedAt = time.Now()

	if err := m.playlistRepo.Put(playlist); err != nil {
		return fmt.Errorf("updating playlist %s: %w", playlistID, err)
	}
	return m.Refresh()
}

// Upload reads an audio file from disk and adds it to the library. An
// unsupported format is reported with [shared.ErrUnsupportedFormat] so
// the caller can skip the file and keep going; storage failures are
// logged and yield a nil track without an error.
func (m *Manager) Upload(path string) (*models.UploadedTrack, error) {
	name := filepath.Base(path)
	if !IsSupportedAudio(name, "") {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.logger.Error("reading upload", "path", path, "error", err)
		return nil, nil
	}

	artist, title := ParseFilename(name)
	track := &models.UploadedTrack{
		Track: models.Track{
			ID:      shared.GenerateEntityID("upload"),
			Name:    title,
			Artist:  artist,
			Album:   "Local Upload",
			MIME:    MIMEForExtension(name),
			IsLocal: true,
		},
		UploadedAt: time.Now(),
		Audio:      data,
	}

	if err := m.uploadRepo.Put(track); err != nil {
		m.logger.Error("storing upload", "path", path, "error", err)
		return nil, nil
	}
	if err := m.Refresh(); err != nil {
		m.logger.Error("refreshing after upload", "error", err)
		return nil, nil
	}

	m.logger.Info("uploaded track", "id", track.ID, "artist", artist, "title", title)
	return track, nil
}

// DeleteUpload removes an uploaded track and releases its blob.
// Playlists referencing the track keep their entries.
func (m *Manager) DeleteUpload(id string) error {
	if err := m.uploadRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting upload %s: %w", id, err)
	}
	if blobs := m.blobServer(); blobs != nil {
		blobs.Release(id)
	}
	return m.Refresh()
}

// Download fetches a catalog track's audio and stores it for offline
// playback. It reports whether the track ended up saved; failures are
// logged rather than returned so bulk operations keep going.
func (m *Manager) Download(ctx context.Context, track models.Track) bool {
	url := track.FetchURL()
	if url == "" {
		m.logger.Warn("track has no downloadable source", "id", track.ID, "name", track.Name)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		m.logger.Error("building download request", "id", track.ID, "error", err)
		return false
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.logger.Error("fetching audio", "id", track.ID, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.Error("fetching audio", "id", track.ID, "status", resp.StatusCode)
		return false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		m.logger.Error("reading audio body", "id", track.ID, "error", err)
		return false
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}

	saved := &models.DownloadedTrack{
		Track:        track,
		DownloadedAt: time.Now(),
		Audio:        data,
	}
	saved.MIME = mime
	saved.IsDownloaded = true

	if err := m.downloadRepo.Put(saved); err != nil {
		m.logger.Error("storing download", "id", track.ID, "error", err)
		return false
	}
	if err := m.Refresh(); err != nil {
		m.logger.Error("refreshing after download", "error", err)
		return false
	}

	m.logger.Info("downloaded track", "id", track.ID, "name", track.Name, "bytes", len(data))
	return true
}

// DeleteDownload removes a saved track and releases its blob.
// Playlists referencing the track keep their entries.
func (m *Manager) DeleteDownload(id string) error {
	if err := m.downloadRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting download %s: %w", id, err)
	}
	if blobs := m.blobServer(); blobs != nil {
		blobs.Release(id)
	}
	return m.Refresh()
}

// IsDownloaded reports whether a track is saved for offline playback.
func (m *Manager) IsDownloaded(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.downloads {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Resolve returns the playable form of a track: the local copy when
// one exists, otherwise the track as given.
func (m *Manager) Resolve(track models.Track) models.Track {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.downloads {
		if t.ID == track.ID {
			return t.Track
		}
	}
	for _, t := range m.uploads {
		if t.ID == track.ID {
			return t.Track
		}
	}
	return track
}
