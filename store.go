package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store is the persistence bridge: one SQLite file holding a single
// serialized blob under a fixed key. The engine never queries anything
// richer than that slot.
type Store struct {
	conn *sql.DB
	Path string
}

// OpenStore opens (or creates) the database with WAL mode enabled.
func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec(
		`CREATE TABLE IF NOT EXISTS state (key TEXT PRIMARY KEY, payload TEXT NOT NULL)`,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}
	return &Store{conn: conn, Path: path}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Save serializes the payload into the slot, replacing whatever was there.
func (s *Store) Save(p payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	_, err = s.conn.Exec(
		`INSERT INTO state (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		stateKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// Load reads the slot. A missing row or a malformed blob is treated as
// "no saved state": the zero payload comes back and loaded is false.
func (s *Store) Load(log zerolog.Logger) (p payload, loaded bool) {
	var data string
	err := s.conn.QueryRow(`SELECT payload FROM state WHERE key = ?`, stateKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return payload{}, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("reading saved state")
		return payload{}, false
	}
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		log.Warn().Err(err).Msg("saved state is malformed, starting empty")
		return payload{}, false
	}
	return p, true
}

// Saver coalesces bursts of mutations into one debounced write. The app
// bumps its save sequence on every mutation; a tick scheduled for an
// older sequence is stale and does nothing, so only the last tick after
// a quiet period actually writes.
type Saver struct {
	store *Store
	log   zerolog.Logger
}

func NewSaver(store *Store, log zerolog.Logger) *Saver {
	return &Saver{store: store, log: log}
}

// FlushIfCurrent writes the app state when the tick's sequence is still
// the latest. Write failures are logged and leave the dirty flag set so
// the quit guard keeps protecting the state.
func (s *Saver) FlushIfCurrent(a *App, seq uint64) {
	if !a.Dirty() || seq != a.SaveSeq() {
		return
	}
	s.Flush(a)
}

// Flush writes unconditionally (used by the quit guard). Returns the
// write error; on success the dirty flag clears.
func (s *Saver) Flush(a *App) error {
	if !a.Dirty() {
		return nil
	}
	if err := s.store.Save(a.Payload()); err != nil {
		s.log.Error().Err(err).Msg("autosave failed")
		return err
	}
	a.ClearDirty()
	return nil
}
