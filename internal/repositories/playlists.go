package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/harmony/internal/models"
)

// PlaylistRepository is the playlists collection, keyed by playlist id.
// The full track sequence is part of the playlist document, so a single Put
// atomically replaces name, description, and track order together.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Put inserts or replaces a playlist by its id.
func (r *PlaylistRepository) Put(playlist *models.Playlist) error {
	if playlist.ID == "" {
		return fmt.Errorf("playlist has no id")
	}

	doc, err := json.Marshal(playlist)
	if err != nil {
		return fmt.Errorf("failed to marshal playlist: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO playlists (id, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, playlist.ID, string(doc), playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store playlist: %w", err)
	}

	return nil
}

// Get retrieves a playlist by id. Returns (nil, nil) when absent.
func (r *PlaylistRepository) Get(id string) (*models.Playlist, error) {
	row := r.db.QueryRow("SELECT doc FROM playlists WHERE id = ?", id)

	var doc string
	if err := row.Scan(&doc); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	return decodePlaylist(doc)
}

// GetAll retrieves every playlist, most recently updated first.
func (r *PlaylistRepository) GetAll() ([]*models.Playlist, error) {
	rows, err := r.db.Query("SELECT doc FROM playlists ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}

		playlist, err := decodePlaylist(doc)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Delete removes a playlist by id. Deleting an absent id is a no-op.
func (r *PlaylistRepository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM playlists WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

func decodePlaylist(doc string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := json.Unmarshal([]byte(doc), &playlist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal playlist: %w", err)
	}
	return &playlist, nil
}
