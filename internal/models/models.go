package models

import (
	"fmt"
	"time"
)

// Track represents a playable audio item from any origin: the remote catalog,
// a local upload, or an offline download.
type Track struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Artist       string `json:"artist"`
	Album        string `json:"album,omitempty"`
	Duration     int    `json:"duration"` // seconds; 0 when unknown
	AudioURL     string `json:"audio_url,omitempty"`
	DownloadURL  string `json:"download_url,omitempty"`
	CoverArt     string `json:"cover_art,omitempty"`
	Genre        string `json:"genre,omitempty"`
	MIME         string `json:"mime,omitempty"` // content type of the owned blob, when there is one
	IsLocal      bool   `json:"is_local,omitempty"`
	IsDownloaded bool   `json:"is_downloaded,omitempty"`

	// BlobURL is the object-URL of an owned audio blob registered with the
	// local blob server. Session-local, never persisted.
	BlobURL string `json:"-"`
}

// Source returns the URL the playback sink should load: the object-URL when
// the track owns a blob, otherwise the remote stream URL.
func (t Track) Source() string {
	if t.BlobURL != "" {
		return t.BlobURL
	}
	return t.AudioURL
}

// FetchURL returns the URL to fetch the track's audio from when downloading
// for offline use. The dedicated download URL is preferred over the stream URL.
func (t Track) FetchURL() string {
	if t.DownloadURL != "" {
		return t.DownloadURL
	}
	return t.AudioURL
}

// Validate checks that the track can be handed to the playback engine.
func (t Track) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("track has no id")
	}
	if t.Source() == "" {
		return fmt.Errorf("track %s has no audio source", t.ID)
	}
	return nil
}

// UploadedTrack is a Track backed by a user-supplied audio file. The track
// exclusively owns its audio bytes; they live in the blob column of the
// uploads collection, not in the JSON document.
type UploadedTrack struct {
	Track
	UploadedAt time.Time `json:"uploaded_at"`
	Audio      []byte    `json:"-"`
}

// DownloadedTrack is a Track whose audio has been fetched from the catalog
// and stored for offline use. Presence in the downloads collection is the
// definition of "available offline".
type DownloadedTrack struct {
	Track
	DownloadedAt time.Time `json:"downloaded_at"`
	Audio        []byte    `json:"-"`
}

// Playlist is a named, ordered sequence of tracks. Order is user-meaningful;
// additions append at the end and are deduplicated by track id.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Tracks      []Track   `json:"tracks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Contains reports whether the playlist already holds a track with the given id.
func (p Playlist) Contains(trackID string) bool {
	for _, t := range p.Tracks {
		if t.ID == trackID {
			return true
		}
	}
	return false
}
