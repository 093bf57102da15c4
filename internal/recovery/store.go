package recovery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/phantom-air/irops/internal/models"
)

// SQLiteStore is the durable SessionStore. It replaces the original
// design's browser-local-storage flag: commitments survive restarts and
// are visible to every operator, not one browser tab.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (and if needed initializes) the session store at
// path. Use ":memory:" for an ephemeral store in tests.
func OpenStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging session store: %w", err)
	}

	// Sessions are written once and read per commit; WAL keeps readers
	// out of the writers' way.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring session store: %w", err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			disruption_id TEXT NOT NULL,
			disruption_json TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_candidates (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			position INTEGER NOT NULL,
			candidate_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			score REAL NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (session_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS assignments (
			disruption_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			committer TEXT NOT NULL,
			committed_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_disruption ON sessions(disruption_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("initializing session store schema: %w", err)
		}
	}
	return nil
}

// SaveSession persists a session and its candidate snapshot atomically.
func (s *SQLiteStore) SaveSession(ctx context.Context, sess *Session) error {
	disruption, err := json.Marshal(sess.Disruption)
	if err != nil {
		return fmt.Errorf("encoding disruption: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, disruption_id, disruption_json, created_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Disruption.ID, string(disruption), sess.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	for _, c := range sess.Candidates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_candidates (session_id, position, candidate_id, kind, score, summary) VALUES (?, ?, ?, ?, ?, ?)`,
			sess.ID, c.Position, c.ID, string(c.Kind), c.Score, c.Summary,
		); err != nil {
			return fmt.Errorf("inserting candidate snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// GetSession loads a session and its snapshot. Returns
// ErrSessionNotFound for unknown IDs.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	var (
		disruptionJSON string
		createdAt      string
	)
	sess := &Session{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT disruption_json, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&disruptionJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if err := json.Unmarshal([]byte(disruptionJSON), &sess.Disruption); err != nil {
		return nil, fmt.Errorf("decoding disruption: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		sess.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, candidate_id, kind, score, summary
		 FROM session_candidates WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading candidate snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c RankedCandidate
		var kind string
		if err := rows.Scan(&c.Position, &c.ID, &kind, &c.Score, &c.Summary); err != nil {
			return nil, fmt.Errorf("scanning candidate snapshot: %w", err)
		}
		c.Kind = CandidateKind(kind)
		sess.Candidates = append(sess.Candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidate snapshot: %w", err)
	}

	return sess, nil
}

// SaveAssignment records the commitment for a disruption. The primary
// key on disruption_id makes the first commit win; a second insert for
// the same disruption surfaces as ErrAlreadyCommitted.
func (s *SQLiteStore) SaveAssignment(ctx context.Context, a models.Assignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (disruption_id, session_id, candidate_id, committer, committed_at) VALUES (?, ?, ?, ?, ?)`,
		a.DisruptionID, a.SessionID, a.CandidateID, a.Committer, a.CommittedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("disruption %s: %w", a.DisruptionID, ErrAlreadyCommitted)
		}
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

// AssignmentForDisruption returns the committed assignment for a
// disruption, or nil when none exists.
func (s *SQLiteStore) AssignmentForDisruption(ctx context.Context, disruptionID string) (*models.Assignment, error) {
	var (
		a           models.Assignment
		committedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT disruption_id, session_id, candidate_id, committer, committed_at
		 FROM assignments WHERE disruption_id = ?`, disruptionID,
	).Scan(&a.DisruptionID, &a.SessionID, &a.CandidateID, &a.Committer, &committedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading assignment: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, committedAt); err == nil {
		a.CommittedAt = t
	}
	return &a, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
