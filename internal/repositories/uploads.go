package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/harmony/internal/models"
)

// UploadRepository is the uploads collection: user-supplied audio files,
// keyed by the generated upload id.
type UploadRepository struct {
	db *sql.DB
}

// NewUploadRepository creates a new UploadRepository with the given database connection
func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Put inserts or replaces an uploaded track by its id.
func (r *UploadRepository) Put(track *models.UploadedTrack) error {
	if track.ID == "" {
		return fmt.Errorf("uploaded track has no id")
	}

	doc, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("failed to marshal track: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO uploads (id, doc, audio, uploaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, audio = excluded.audio, uploaded_at = excluded.uploaded_at
	`, track.ID, string(doc), track.Audio, track.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	return nil
}

// Get retrieves an uploaded track by id. Returns (nil, nil) when absent.
func (r *UploadRepository) Get(id string) (*models.UploadedTrack, error) {
	row := r.db.QueryRow("SELECT doc, audio FROM uploads WHERE id = ?", id)

	var doc string
	var audio []byte
	if err := row.Scan(&doc, &audio); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return decodeUpload(doc, audio)
}

// GetAll retrieves every uploaded track, oldest upload first.
func (r *UploadRepository) GetAll() ([]*models.UploadedTrack, error) {
	rows, err := r.db.Query("SELECT doc, audio FROM uploads ORDER BY uploaded_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	var tracks []*models.UploadedTrack
	for rows.Next() {
		var doc string
		var audio []byte
		if err := rows.Scan(&doc, &audio); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}

		track, err := decodeUpload(doc, audio)
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

// Delete removes an uploaded track by id. Deleting an absent id is a no-op.
func (r *UploadRepository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM uploads WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

func decodeUpload(doc string, audio []byte) (*models.UploadedTrack, error) {
	var track models.UploadedTrack
	if err := json.Unmarshal([]byte(doc), &track); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload: %w", err)
	}
	track.Audio = audio
	return &track, nil
}
