// Package leaderboard shapes stored results into ranked opponent candidates.
package leaderboard

import (
	"context"

	"github.com/samber/lo"

	"github.com/verte-zerg/typerun/internal/model"
	"github.com/verte-zerg/typerun/internal/sink"
)

// Query is the read-only ranking surface the core consumes.
type Query interface {
	TopResults(ctx context.Context, limit int) ([]model.StoredResult, error)
}

// Candidates returns ranked opponents for race mode. Rows with a WPM
// outside the persisted range are dropped rather than surfaced.
func Candidates(ctx context.Context, q Query, limit int) ([]model.Opponent, error) {
	results, err := q.TopResults(ctx, limit)
	if err != nil {
		return nil, err
	}
	valid := lo.Filter(results, func(r model.StoredResult, _ int) bool {
		return r.WPM > 0 && r.WPM <= sink.MaxStoredWPM
	})
	return lo.Map(valid, func(r model.StoredResult, _ int) model.Opponent {
		return model.Opponent{
			WPM:             r.WPM,
			DisplayName:     r.Identity,
			Accuracy:        r.Accuracy,
			DurationSeconds: r.DurationSeconds,
		}
	}), nil
}

// Pick returns the opponent to race: the top candidate that is not the
// player, or the overall top when everyone matches.
func Pick(candidates []model.Opponent, selfName string) (model.Opponent, bool) {
	if len(candidates) == 0 {
		return model.Opponent{}, false
	}
	other, found := lo.Find(candidates, func(o model.Opponent) bool {
		return o.DisplayName != selfName
	})
	if found {
		return other, true
	}
	return candidates[0], true
}
