package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// DocStore implements Store using per-model tables with JSONB data
// columns.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(ctx context.Context, db *sql.DB) (*DocStore, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS presets (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hunt_prefs (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}

	return &DocStore{db: db}, nil
}

func (s *DocStore) ListPresets(ctx context.Context) ([]BackgroundPreset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json(data) FROM presets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []BackgroundPreset
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var p BackgroundPreset
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (s *DocStore) SavePreset(ctx context.Context, p BackgroundPreset) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (id, data) VALUES (?, jsonb(?))
		ON CONFLICT (id) DO UPDATE SET data = excluded.data
	`, p.ID, string(data))
	return err
}

func (s *DocStore) GetPrefs(ctx context.Context, huntID string) (HuntPrefs, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM hunt_prefs WHERE id = ?`, huntID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return HuntPrefs{}, ErrNotFound
	}
	if err != nil {
		return HuntPrefs{}, err
	}
	var prefs HuntPrefs
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return HuntPrefs{}, err
	}
	return prefs, nil
}

func (s *DocStore) SavePrefs(ctx context.Context, huntID string, prefs HuntPrefs) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hunt_prefs (id, data) VALUES (?, jsonb(?))
		ON CONFLICT (id) DO UPDATE SET data = excluded.data
	`, huntID, string(data))
	return err
}
