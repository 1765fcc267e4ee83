package storage

import (
	"database/sql"
	"encoding/json"
	"log"

	"weather-dashboard/internal/weather"

	_ "modernc.org/sqlite"
)

// Store is the persistence contract the rest of the app uses: one blob for
// the application state and one snapshot entry per rounded coordinate. The
// two keyspaces are independent; neither references the other.
type Store interface {
	LoadState() ([]byte, error)
	SaveState(payload []byte) error
	GetSnapshot(lat, lon float64) *weather.Snapshot
	PutSnapshot(lat, lon float64, snap *weather.Snapshot) error
	Close() error
}

// SQLite implements Store on a single database file (pure Go driver
// modernc.org/sqlite).
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS app_state (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        payload TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS snapshots (
        key TEXT PRIMARY KEY,
        payload TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// LoadState returns the persisted application state blob, or nil when none
// has been saved yet.
func (s *SQLite) LoadState() ([]byte, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM app_state WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// SaveState overwrites the whole persisted application state.
func (s *SQLite) SaveState(payload []byte) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO app_state(id, payload) VALUES(1, ?)`, string(payload))
	return err
}

// GetSnapshot returns the cached snapshot for a coordinate, or nil when the
// entry is absent or unreadable. Corrupt rows are treated as absent.
func (s *SQLite) GetSnapshot(lat, lon float64) *weather.Snapshot {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE key = ?`, weather.CoordKey(lat, lon)).Scan(&payload)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Println("warning: snapshot read failed:", err)
		}
		return nil
	}

	var snap weather.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil
	}
	return &snap
}

// PutSnapshot overwrites the cache entry for the coordinate. Entries
// accumulate for the lifetime of the database; there is no eviction.
func (s *SQLite) PutSnapshot(lat, lon float64, snap *weather.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO snapshots(key, payload) VALUES(?, ?)`,
		weather.CoordKey(lat, lon), string(payload))
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
