package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typerun/internal/model"
)

const shareCodeLen = 8

// CreateShareLink mints a short public code for a persisted result.
func (s *Store) CreateShareLink(ctx context.Context, resultID int64) (string, error) {
	if _, err := s.GetResult(ctx, resultID); err != nil {
		return "", fmt.Errorf("failed to load result %d: %w", resultID, err)
	}
	// Retry on the unlikely code collision.
	for attempt := 0; attempt < 5; attempt++ {
		code := newShareCode()
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO share_links (code, result_id, created_at) VALUES (?, ?, ?)`,
			code, resultID, time.Now().Format(time.RFC3339Nano))
		if err == nil {
			return code, nil
		}
		if !isUniqueViolation(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("failed to mint a unique share code")
}

// ResolveShareLink returns the result a share code points to.
func (s *Store) ResolveShareLink(ctx context.Context, code string) (model.StoredResult, error) {
	var resultID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT result_id FROM share_links WHERE code = ?`, code).Scan(&resultID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StoredResult{}, fmt.Errorf("unknown share code %q", code)
	}
	if err != nil {
		return model.StoredResult{}, err
	}
	return s.GetResult(ctx, resultID)
}

func newShareCode() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:shareCodeLen]
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
