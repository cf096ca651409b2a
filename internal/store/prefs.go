package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verte-zerg/typerun/internal/config"
)

// DurationPreference returns the stored countdown preference for an
// identity. The boolean reports whether a preference exists.
func (s *Store) DurationPreference(ctx context.Context, identity string) (int, bool, error) {
	if identity == "" {
		return 0, false, nil
	}
	var secs int
	err := s.db.QueryRowContext(ctx,
		`SELECT duration_s FROM preferences WHERE identity = ?`, identity).Scan(&secs)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !config.ValidDuration(secs) {
		// Stale row from an older duration set; ignore it.
		return 0, false, nil
	}
	return secs, true, nil
}

// SetDurationPreference stores the countdown preference for an identity.
func (s *Store) SetDurationPreference(ctx context.Context, identity string, secs int) error {
	if identity == "" {
		return fmt.Errorf("identity is empty")
	}
	if !config.ValidDuration(secs) {
		return fmt.Errorf("unsupported duration %d", secs)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (identity, duration_s) VALUES (?, ?)
		 ON CONFLICT(identity) DO UPDATE SET duration_s = excluded.duration_s`,
		identity, secs)
	return err
}
