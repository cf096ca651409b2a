// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typerun/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for results, preferences, and share links.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			identity TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			duration_s INTEGER NOT NULL,
			excerpt TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS wpm_samples (
			result_id INTEGER NOT NULL,
			time_s INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			PRIMARY KEY (result_id, time_s)
		);`,
		`CREATE TABLE IF NOT EXISTS share_links (
			code TEXT PRIMARY KEY,
			result_id INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS preferences (
			identity TEXT PRIMARY KEY,
			duration_s INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended_at ON results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_identity ON results(identity);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a finished result and its per-second WPM samples.
func (s *Store) InsertResult(ctx context.Context, identity, excerpt string, res model.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	row, err := tx.ExecContext(ctx,
		`INSERT INTO results (identity, started_at, ended_at, wpm, accuracy, duration_s, excerpt)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		identity,
		res.StartedAt.Format(time.RFC3339Nano),
		res.EndedAt.Format(time.RFC3339Nano),
		res.WPM,
		res.Accuracy,
		res.DurationSeconds,
		excerpt,
	)
	if err != nil {
		return 0, err
	}
	id, err := row.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(res.History) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO wpm_samples (result_id, time_s, wpm) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sample := range res.History {
			if _, err = stmt.ExecContext(ctx, id, sample.TimeS, sample.WPM); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListResults returns stored results filtered by stats config, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.StoredResult, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Identity != "" {
		clauses = append(clauses, "identity = ?")
		args = append(args, cfg.Identity)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, identity, ended_at, wpm, accuracy, duration_s, excerpt
		FROM results
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.StoredResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	return results, nil
}

// GetResult returns one stored result by id.
func (s *Store) GetResult(ctx context.Context, id int64) (model.StoredResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, identity, ended_at, wpm, accuracy, duration_s, excerpt
		 FROM results WHERE id = ?`, id)
	return scanResult(row)
}

// ResultSamples returns the WPM history for a stored result, ordered by time.
func (s *Store) ResultSamples(ctx context.Context, resultID int64) ([]model.WPMSample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT time_s, wpm FROM wpm_samples WHERE result_id = ? ORDER BY time_s ASC`, resultID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var samples []model.WPMSample
	for rows.Next() {
		var sample model.WPMSample
		if err := rows.Scan(&sample.TimeS, &sample.WPM); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// TopResults returns each identity's best result, ranked by WPM descending.
func (s *Store) TopResults(ctx context.Context, limit int) ([]model.StoredResult, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT id, identity, ended_at, MAX(wpm) AS wpm, accuracy, duration_s, excerpt
		FROM results
		WHERE identity != ''
		GROUP BY identity
		ORDER BY wpm DESC, ended_at ASC
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.StoredResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (model.StoredResult, error) {
	var res model.StoredResult
	var endedAt string
	if err := row.Scan(&res.ID, &res.Identity, &endedAt, &res.WPM, &res.Accuracy, &res.DurationSeconds, &res.Excerpt); err != nil {
		return model.StoredResult{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, endedAt)
	if err != nil {
		return model.StoredResult{}, err
	}
	res.EndedAt = parsed
	return res, nil
}
