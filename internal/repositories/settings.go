package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SettingsRepository stores arbitrary settings values as JSON, keyed by
// setting name. The theme configuration lives here under the "theme" key.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the given database connection
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Put serializes value as JSON and stores it under name, replacing any
// previous value.
func (r *SettingsRepository) Put(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %s: %w", name, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, string(data))
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", name, err)
	}

	return nil
}

// Get unmarshals the value stored under name into out. Returns false when the
// setting is absent, leaving out untouched.
func (r *SettingsRepository) Get(name string, out any) (bool, error) {
	row := r.db.QueryRow("SELECT value FROM settings WHERE name = ?", name)

	var data string
	if err := row.Scan(&data); err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to read setting %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal setting %s: %w", name, err)
	}

	return true, nil
}

// Delete removes the setting stored under name. Absent names are a no-op.
func (r *SettingsRepository) Delete(name string) error {
	if _, err := r.db.Exec("DELETE FROM settings WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", name, err)
	}
	return nil
}
