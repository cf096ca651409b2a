// Package sink hands finished results to persistence, best effort.
package sink

import (
	"context"
	"fmt"
	"os"

	"github.com/verte-zerg/typerun/internal/model"
)

// Persistence validation bounds. The store enforces a narrower WPM range
// than the engine's display ceiling; out-of-range results are rejected
// locally without touching the store.
const (
	MaxStoredWPM      = 350
	MaxStoredAccuracy = 100
	MaxStoredDuration = 300
)

// Status tags a submission outcome.
type Status int

// Submission outcomes. Skipped and Rejected are expected, non-error
// outcomes; Failed means the store call itself failed.
const (
	Saved Status = iota
	Skipped
	Rejected
	Failed
)

// Outcome is the explicit submission result. Callers and tests assert on
// it instead of relying on side-channel logging.
type Outcome struct {
	Status   Status
	ResultID int64
	Reason   string
}

// ResultStore is the narrow persistence surface the sink writes through.
type ResultStore interface {
	InsertResult(ctx context.Context, identity, excerpt string, res model.Result) (int64, error)
}

// Sink submits finished results at most once each, best effort.
type Sink struct {
	store ResultStore
}

// New returns a Sink over the given store.
func New(store ResultStore) *Sink {
	return &Sink{store: store}
}

// Submit validates and persists a finished result. Anonymous sessions are
// skipped, invalid results rejected locally, and store failures swallowed;
// no outcome interrupts the interactive flow.
func (s *Sink) Submit(ctx context.Context, res model.Result, excerpt, identity string) Outcome {
	if identity == "" {
		return Outcome{Status: Skipped, Reason: "anonymous session"}
	}
	if reason := validate(res); reason != "" {
		logErrf("result not saved: %s\n", reason)
		return Outcome{Status: Rejected, Reason: reason}
	}
	id, err := s.store.InsertResult(ctx, identity, excerpt, res)
	if err != nil {
		logErrf("failed to save result: %v\n", err)
		return Outcome{Status: Failed, Reason: err.Error()}
	}
	return Outcome{Status: Saved, ResultID: id}
}

func validate(res model.Result) string {
	if res.WPM < 0 || res.WPM > MaxStoredWPM {
		return fmt.Sprintf("wpm %d outside [0,%d]", res.WPM, MaxStoredWPM)
	}
	if res.Accuracy < 0 || res.Accuracy > MaxStoredAccuracy {
		return fmt.Sprintf("accuracy %d outside [0,%d]", res.Accuracy, MaxStoredAccuracy)
	}
	if res.DurationSeconds < 0 || res.DurationSeconds > MaxStoredDuration {
		return fmt.Sprintf("duration %ds outside [0,%d]", res.DurationSeconds, MaxStoredDuration)
	}
	return ""
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
