// Package storage provides SQLite-based persistence for finished play
// sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session records one finished play-through of an adventure.
type Session struct {
	ID          int64
	AdventureID string
	Score       int // treasure percentage 0..100
	Turns       int
	Outcome     string // "won", "game_over", "fell", "killed", "abandoned"
	CreatedAt   time.Time
}

// Stats aggregates a single adventure's history.
type Stats struct {
	AdventureID string
	Sessions    int
	BestScore   int
	AvgScore    float64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path. It creates
// the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			adventure_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_adventure ON sessions(adventure_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(adventure_id, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSession inserts a finished session and returns its ID.
func (s *Store) RecordSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (adventure_id, score, turns, outcome) VALUES (?, ?, ?, ?)",
		sess.AdventureID, sess.Score, sess.Turns, sess.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopSessions retrieves the best sessions for an adventure, ordered by
// score descending then fewest turns.
func (s *Store) TopSessions(adventureID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, adventure_id, score, turns, outcome, created_at
		 FROM sessions
		 WHERE adventure_id = ?
		 ORDER BY score DESC, turns ASC
		 LIMIT ?`,
		adventureID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// BestScore returns the highest score for an adventure, 0 when unplayed.
func (s *Store) BestScore(adventureID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE adventure_id = ?",
		adventureID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// AdventureStats aggregates history for one adventure.
func (s *Store) AdventureStats(adventureID string) (*Stats, error) {
	stats := &Stats{AdventureID: adventureID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM sessions WHERE adventure_id = ?`,
		adventureID,
	).Scan(&stats.Sessions, &stats.BestScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE adventure_id = ? ORDER BY created_at DESC LIMIT 1`,
		adventureID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// ClearSessions deletes all sessions for an adventure.
func (s *Store) ClearSessions(adventureID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE adventure_id = ?", adventureID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

func scanSession(rows *sql.Rows) (Session, error) {
	var sess Session
	var createdAt any
	if err := rows.Scan(&sess.ID, &sess.AdventureID, &sess.Score, &sess.Turns, &sess.Outcome, &createdAt); err != nil {
		return sess, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	sess.CreatedAt = parseCreatedAt(createdAt)
	return sess, nil
}

// The sqlite driver may hand back DATETIME columns as either type.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
