// Package storage provides a SQLite-based journal of played sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal is an audit log: it records which moves were played and how
// deep the history went, but it is never used to restore a game.
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

// ErrUnknownSession is returned when a move or end event references a
// session that was never begun.
var ErrUnknownSession = errors.New("storage: unknown session")

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is one journaled session.
type SessionRecord struct {
	ID        string
	Origin    string // "local", "ssh" or "apply"
	BoardSize int
	Moves     int // accepted movement moves
	Undos     int // undos that stepped back
	MaxDepth  int
	FinalSum  int
	MaxTile   int // displayed value, not the exponent
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is open
}

// Open reports whether the session has not been ended yet.
func (r SessionRecord) Open() bool {
	return r.EndedAt.IsZero()
}

// MoveEvent is one move applied to a journaled session.
type MoveEvent struct {
	SessionID  string
	Seq        int
	Move       string
	DepthAfter int
	Changed    bool // false for no-op moves and undo at the root
	CreatedAt  time.Time
}

// Summary contains aggregated statistics over all journaled sessions.
type Summary struct {
	Sessions   int
	TotalMoves int
	TotalUndos int
	BestTile   int
	LastPlayed time.Time
}

// pragmas are applied to the connection before migrating.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
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

	// One writer at a time; SSH sessions share the store.
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: %s: %w", pragma, err)
		}
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			origin TEXT NOT NULL,
			board_size INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			undos INTEGER NOT NULL DEFAULT 0,
			max_depth INTEGER NOT NULL DEFAULT 0,
			final_sum INTEGER NOT NULL DEFAULT 0,
			max_tile INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS move_events (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			move TEXT NOT NULL,
			depth_after INTEGER NOT NULL,
			changed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, seq)
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

// BeginSession records the start of a session.
func (s *Store) BeginSession(id, origin string, boardSize int) error {
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, origin, board_size) VALUES (?, ?, ?)",
		id, origin, boardSize,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot begin session %s: %w", id, err)
	}
	return nil
}

// RecordMove appends a move event to the session and updates its counters.
// Seq is assigned by the store; the one in ev is ignored.
func (s *Store) RecordMove(ev MoveEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot start transaction: %w", err)
	}
	defer tx.Rollback()

	var moves, undos int
	if ev.Changed {
		if ev.Move == "undo" {
			undos = 1
		} else {
			moves = 1
		}
	}

	res, err := tx.Exec(
		`UPDATE sessions
		 SET moves = moves + ?, undos = undos + ?, max_depth = max(max_depth, ?)
		 WHERE id = ?`,
		moves, undos, ev.DepthAfter, ev.SessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, ev.SessionID)
	}

	_, err = tx.Exec(
		`INSERT INTO move_events (session_id, seq, move, depth_after, changed)
		 SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?
		 FROM move_events WHERE session_id = ?`,
		ev.SessionID, ev.Move, ev.DepthAfter, ev.Changed, ev.SessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record move: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit move: %w", err)
	}
	return nil
}

// EndSession marks the session as ended with its final board totals.
func (s *Store) EndSession(id string, finalSum, maxTile int) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET final_sum = ?, max_tile = ?, ended_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		finalSum, maxTile, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, origin, board_size, moves, undos, max_depth, final_sum, max_tile, started_at, ended_at
		 FROM sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var startedAt, endedAt any
		if err := rows.Scan(
			&r.ID,
			&r.Origin,
			&r.BoardSize,
			&r.Moves,
			&r.Undos,
			&r.MaxDepth,
			&r.FinalSum,
			&r.MaxTile,
			&startedAt,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.EndedAt = parseTime(endedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SessionMoves retrieves every move event of a session in play order.
func (s *Store) SessionMoves(sessionID string) ([]MoveEvent, error) {
	rows, err := s.db.Query(
		`SELECT session_id, seq, move, depth_after, changed, created_at
		 FROM move_events
		 WHERE session_id = ?
		 ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var events []MoveEvent
	for rows.Next() {
		var ev MoveEvent
		var createdAt any
		if err := rows.Scan(&ev.SessionID, &ev.Seq, &ev.Move, &ev.DepthAfter, &ev.Changed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ev.CreatedAt = parseTime(createdAt)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// Summary retrieves aggregated statistics over all sessions.
func (s *Store) Summary() (Summary, error) {
	var sum Summary
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(moves), 0), COALESCE(SUM(undos), 0),
		        COALESCE(MAX(max_tile), 0), MAX(started_at)
		 FROM sessions`,
	).Scan(&sum.Sessions, &sum.TotalMoves, &sum.TotalUndos, &sum.BestTile, &lastPlayed)
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot get summary: %w", err)
	}
	sum.LastPlayed = parseTime(lastPlayed)
	return sum, nil
}

// parseTime handles both time.Time and string datetimes; NULL becomes the zero time.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
