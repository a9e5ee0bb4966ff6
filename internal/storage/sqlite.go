// Package storage provides SQLite-based persistence for solutions, seed
// search results and level snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SolutionEntry is a verified move list for a level.
type SolutionEntry struct {
	ID        int64
	LevelID   string
	Moves     string
	Seed      uint32
	Step      string
	Tick      int
	ChipsLeft int
	TimeLeft  int
	CreatedAt time.Time
}

// SeedResult is the outcome of one seed in a search run.
type SeedResult struct {
	ID        int64
	LevelID   string
	Moves     string
	Step      string
	Seed      uint32
	Complete  bool
	Tick      int
	CreatedAt time.Time
}

// SnapshotEntry is a named saved level state.
type SnapshotEntry struct {
	ID        int64
	LevelID   string
	Name      string
	Tick      int
	Data      []byte
	CreatedAt time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			moves TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			step TEXT NOT NULL DEFAULT 'even',
			tick INTEGER NOT NULL,
			chips_left INTEGER NOT NULL DEFAULT 0,
			time_left INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solutions_level ON solutions(level_id, tick);

		CREATE TABLE IF NOT EXISTS seed_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			moves TEXT NOT NULL,
			step TEXT NOT NULL,
			seed INTEGER NOT NULL,
			complete INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(level_id, moves, step, seed)
		);
		CREATE INDEX IF NOT EXISTS idx_seed_results_run ON seed_results(level_id, moves, step);

		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			name TEXT NOT NULL,
			tick INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(level_id, name)
		);
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

// SaveSolution records a solution and returns its ID.
func (s *Store) SaveSolution(e SolutionEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO solutions (level_id, moves, seed, step, tick, chips_left, time_left)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.LevelID, e.Moves, e.Seed, e.Step, e.Tick, e.ChipsLeft, e.TimeLeft,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestSolutions returns the fastest solutions for a level, fewest ticks first.
func (s *Store) BestSolutions(levelID string, limit int) ([]SolutionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, moves, seed, step, tick, chips_left, time_left, created_at
		 FROM solutions
		 WHERE level_id = ?
		 ORDER BY tick ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solutions: %w", err)
	}
	defer rows.Close()

	var entries []SolutionEntry
	for rows.Next() {
		var e SolutionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Moves, &e.Seed, &e.Step, &e.Tick, &e.ChipsLeft, &e.TimeLeft, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestSolution returns the fastest solution for a level, or nil if none exist.
func (s *Store) BestSolution(levelID string) (*SolutionEntry, error) {
	entries, err := s.BestSolutions(levelID, 1)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// SaveSeedResults stores the outcomes of a search run in one transaction.
// Re-running a seed replaces its earlier result.
func (s *Store) SaveSeedResults(results []SeedResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO seed_results (level_id, moves, step, seed, complete, tick)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(r.LevelID, r.Moves, r.Step, r.Seed, r.Complete, r.Tick); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save seed %d: %w", r.Seed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit seed results: %w", err)
	}
	return nil
}

// SeedResults lists stored results for a level and move list in seed order.
func (s *Store) SeedResults(levelID, moves string, onlyComplete bool) ([]SeedResult, error) {
	query := `SELECT id, level_id, moves, step, seed, complete, tick, created_at
		 FROM seed_results
		 WHERE level_id = ? AND moves = ?`
	if onlyComplete {
		query += ` AND complete = 1`
	}
	query += ` ORDER BY seed ASC`

	rows, err := s.db.Query(query, levelID, moves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query seed results: %w", err)
	}
	defer rows.Close()

	var results []SeedResult
	for rows.Next() {
		var r SeedResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Moves, &r.Step, &r.Seed, &r.Complete, &r.Tick, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseCreatedAt(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SaveSnapshot stores data under a name, replacing any snapshot of the same
// level with that name.
func (s *Store) SaveSnapshot(levelID, name string, tick int, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (level_id, name, tick, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(level_id, name) DO UPDATE SET tick = excluded.tick, data = excluded.data, created_at = CURRENT_TIMESTAMP`,
		levelID, name, tick, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns a named snapshot, or nil if it does not exist.
func (s *Store) LoadSnapshot(levelID, name string) (*SnapshotEntry, error) {
	var e SnapshotEntry
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, name, tick, data, created_at
		 FROM snapshots
		 WHERE level_id = ? AND name = ?`,
		levelID, name,
	).Scan(&e.ID, &e.LevelID, &e.Name, &e.Tick, &e.Data, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	e.CreatedAt = parseCreatedAt(createdAt)
	return &e, nil
}

// ListSnapshots returns the snapshots of a level without their data.
func (s *Store) ListSnapshots(levelID string) ([]SnapshotEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, level_id, name, tick, created_at
		 FROM snapshots
		 WHERE level_id = ?
		 ORDER BY name ASC`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var entries []SnapshotEntry
	for rows.Next() {
		var e SnapshotEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Name, &e.Tick, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSnapshot removes a named snapshot.
func (s *Store) DeleteSnapshot(levelID, name string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE level_id = ? AND name = ?", levelID, name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	return nil
}

// parseCreatedAt handles both time.Time and string datetimes.
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
