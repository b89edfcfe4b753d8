// Package state persists process-wide viewer state: the selected theme,
// sidebar visibility, and the recent-files list.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MaxRecentFiles caps the recent-files list.
const MaxRecentFiles = 10

// Settings keys.
const (
	KeyTheme   = "theme"
	KeySidebar = "sidebar_hidden"
)

// Store wraps the viewer's SQLite state database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the state database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging state database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory state database (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recent_files (
    path      TEXT PRIMARY KEY,
    opened_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_files(opened_at);
`

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Setting returns the stored value for key, or "" when unset.
func (s *Store) Setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// TouchRecent records path as the most recently opened file. Entries are
// deduplicated by resolved absolute path and the list is trimmed to
// MaxRecentFiles.
func (s *Store) TouchRecent(path string) error {
	resolved := resolvePath(path)
	_, err := s.db.Exec(
		`INSERT INTO recent_files (path, opened_at) VALUES (?, datetime('now'))
		 ON CONFLICT(path) DO UPDATE SET opened_at = datetime('now')`, resolved)
	if err != nil {
		return fmt.Errorf("recording recent file: %w", err)
	}
	_, err = s.db.Exec(
		`DELETE FROM recent_files WHERE path NOT IN (
		   SELECT path FROM recent_files ORDER BY opened_at DESC, path LIMIT ?
		 )`, MaxRecentFiles)
	if err != nil {
		return fmt.Errorf("trimming recent files: %w", err)
	}
	return nil
}

// RecentFiles returns recent paths most-recent-first. Entries whose file no
// longer exists are skipped and pruned, never surfaced as errors.
func (s *Store) RecentFiles() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT path FROM recent_files ORDER BY opened_at DESC, path`)
	if err != nil {
		return nil, fmt.Errorf("listing recent files: %w", err)
	}
	defer rows.Close()

	var paths, stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		if _, err := os.Stat(p); err != nil {
			stale = append(stale, p)
			continue
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range stale {
		_, _ = s.db.Exec(`DELETE FROM recent_files WHERE path = ?`, p)
	}
	return paths, nil
}

// ClearRecent empties the recent-files list.
func (s *Store) ClearRecent() error {
	_, err := s.db.Exec(`DELETE FROM recent_files`)
	return err
}

// resolvePath normalizes a path for deduplication. Symlinks are resolved
// best-effort; an unresolvable path is kept as its absolute form.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// DefaultPath returns the conventional location of the state database.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "mdpeek", "state.db"), nil
}
