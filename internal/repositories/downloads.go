package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/harmony/internal/models"
)

// DownloadRepository is the downloads collection: tracks fetched from the
// catalog for offline playback, keyed by track id.
type DownloadRepository struct {
	db *sql.DB
}

// NewDownloadRepository creates a new DownloadRepository with the given database connection
func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Put inserts or replaces a downloaded track by its id.
func (r *DownloadRepository) Put(track *models.DownloadedTrack) error {
	if track.ID == "" {
		return fmt.Errorf("downloaded track has no id")
	}

	doc, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("failed to marshal track: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO downloads (id, doc, audio, downloaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, audio = excluded.audio, downloaded_at = excluded.downloaded_at
	`, track.ID, string(doc), track.Audio, track.DownloadedAt)
	if err != nil {
		return fmt.Errorf("failed to store download: %w", err)
	}

	return nil
}

// Get retrieves a downloaded track by id. Returns (nil, nil) when absent.
func (r *DownloadRepository) Get(id string) (*models.DownloadedTrack, error) {
	row := r.db.QueryRow("SELECT doc, audio FROM downloads WHERE id = ?", id)

	var doc string
	var audio []byte
	if err := row.Scan(&doc, &audio); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read download: %w", err)
	}

	return decodeDownload(doc, audio)
}

// GetAll retrieves every downloaded track, oldest download first.
func (r *DownloadRepository) GetAll() ([]*models.DownloadedTrack, error) {
	rows, err := r.db.Query("SELECT doc, audio FROM downloads ORDER BY downloaded_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	var tracks []*models.DownloadedTrack
	for rows.Next() {
		var doc string
		var audio []byte
		if err := rows.Scan(&doc, &audio); err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}

		track, err := decodeDownload(doc, audio)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// Delete removes a downloaded track by id. Deleting an absent id is a no-op.
func (r *DownloadRepository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM downloads WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete download: %w", err)
	}
	return nil
}

func decodeDownload(doc string, audio []byte) (*models.DownloadedTrack, error) {
	var track models.DownloadedTrack
	if err := json.Unmarshal([]byte(doc), &track); err != nil {
		return nil, fmt.Errorf("failed to unmarshal download: %w", err)
	}
	track.Audio = audio
	return &track, nil
}
