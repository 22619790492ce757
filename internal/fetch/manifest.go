package fetch

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Manifest records what each run downloaded, in a SQLite database next
// to the staged files. Useful for auditing which upstream snapshot a
// converted GAF was produced from.
type Manifest struct {
	db    *sql.DB
	runID string
}

// OpenManifest opens or creates the manifest database at path.
func OpenManifest(path string) (*Manifest, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}

	m := &Manifest{db: db, runID: uuid.NewString()}
	if err := m.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure manifest schema: %w", err)
	}

	return m, nil
}

func (m *Manifest) ensureSchema() error {
	_, err := m.db.Exec(`CREATE TABLE IF NOT EXISTS downloads (
		run_id     TEXT NOT NULL,
		key        TEXT NOT NULL,
		url        TEXT NOT NULL,
		path       TEXT NOT NULL,
		bytes      INTEGER NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	)`)
	return err
}

// RunID returns the identifier of the current run.
func (m *Manifest) RunID() string {
	return m.runID
}

// Record stores one staged download for the current run.
func (m *Manifest) Record(key, url, path string, bytes int64) error {
	_, err := m.db.Exec(
		`INSERT INTO downloads (run_id, key, url, path, bytes, fetched_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.runID, key, url, path, bytes, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record download: %w", err)
	}
	return nil
}

// Last returns the most recently recorded download for a key across
// all runs.
func (m *Manifest) Last(key string) (url, path string, ok bool, err error) {
	row := m.db.QueryRow(
		`SELECT url, path FROM downloads WHERE key = ? ORDER BY fetched_at DESC, rowid DESC LIMIT 1`, key)
	switch err = row.Scan(&url, &path); err {
	case nil:
		return url, path, true, nil
	case sql.ErrNoRows:
		return "", "", false, nil
	default:
		return "", "", false, fmt.Errorf("query manifest: %w", err)
	}
}

// Close closes the manifest database.
func (m *Manifest) Close() error {
	return m.db.Close()
}
