// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/chaos-rings/internal/app"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID         int64
	Question   string
	LeftLabel  string
	RightLabel string
	LeftScore  int
	RightScore int
	RingCount  int
	DurationMs int64
	CreatedAt  time.Time
}

// Winner returns the label with more points, or empty on a draw.
func (r Result) Winner() string {
	switch {
	case r.LeftScore > r.RightScore:
		return r.LeftLabel
	case r.RightScore > r.LeftScore:
		return r.RightLabel
	default:
		return ""
	}
}

// LabelTally aggregates every game an answer label took part in.
type LabelTally struct {
	Label  string
	Games  int
	Wins   int
	Points int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL DEFAULT '',
			left_label TEXT NOT NULL,
			right_label TEXT NOT NULL,
			left_score INTEGER NOT NULL DEFAULT 0,
			right_score INTEGER NOT NULL DEFAULT 0,
			ring_count INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_left_label ON games(left_label);
		CREATE INDEX IF NOT EXISTS idx_games_right_label ON games(right_label);
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

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO games
		 (question, left_label, right_label, left_score, right_score, ring_count, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Question,
		r.LeftLabel,
		r.RightLabel,
		r.LeftScore,
		r.RightScore,
		r.RingCount,
		r.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the most recent games, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, question, left_label, right_label, left_score, right_score,
		        ring_count, duration_ms, created_at
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Question,
			&r.LeftLabel,
			&r.RightLabel,
			&r.LeftScore,
			&r.RightScore,
			&r.RingCount,
			&r.DurationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Tally aggregates games, wins and points per answer label.
// Results are ordered by wins descending, then label.
func (s *Store) Tally() ([]LabelTally, error) {
	rows, err := s.db.Query(
		`SELECT label, COUNT(*), SUM(win), SUM(points)
		 FROM (
			SELECT left_label AS label, left_score AS points,
			       CASE WHEN left_score > right_score THEN 1 ELSE 0 END AS win
			FROM games
			UNION ALL
			SELECT right_label, right_score,
			       CASE WHEN right_score > left_score THEN 1 ELSE 0 END
			FROM games
		 )
		 GROUP BY label
		 ORDER BY SUM(win) DESC, label ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tally: %w", err)
	}
	defer rows.Close()

	var tallies []LabelTally
	for rows.Next() {
		var t LabelTally
		if err := rows.Scan(&t.Label, &t.Games, &t.Wins, &t.Points); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tally row: %w", err)
		}
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tallies, nil
}

// CountResults returns the number of stored games.
func (s *Store) CountResults() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count results: %w", err)
	}
	return n, nil
}

// ClearResults deletes every stored game.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// SaveGameResult implements app.ResultSaver.
// This adapter allows the controller to save results without direct storage dependency.
func (s *Store) SaveGameResult(data app.GameResult) error {
	_, err := s.SaveResult(Result{
		Question:   data.Question,
		LeftLabel:  data.LeftLabel,
		RightLabel: data.RightLabel,
		LeftScore:  data.LeftScore,
		RightScore: data.RightScore,
		RingCount:  data.RingCount,
		DurationMs: data.Duration.Milliseconds(),
	})
	return err
}

// Ensure Store implements ResultSaver
var _ app.ResultSaver = (*Store)(nil)

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
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
