// Package session owns the lifecycle of one typing attempt.
package session

import (
	"math"
	"time"

	"github.com/verte-zerg/typerun/internal/compare"
	"github.com/verte-zerg/typerun/internal/metrics"
	"github.com/verte-zerg/typerun/internal/model"
)

// Phase is the session lifecycle discriminator. Transitions are monotonic:
// Idle -> Active -> Finished. A restart constructs a new Session; there is
// no rollback.
type Phase int

// Session phases.
const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseFinished
)

// FinishReason records which termination condition fired first.
type FinishReason int

// Finish reasons.
const (
	FinishNone FinishReason = iota
	FinishCompleted
	FinishTimeout
)

// Session is the mutable state of one typing attempt. All mutating
// operations take the current time explicitly; the session never reads the
// wall clock, so transitions are deterministic under test.
type Session struct {
	reference []rune
	input     []rune
	duration  time.Duration
	startedAt time.Time
	phase     Phase
	reason    FinishReason
	history   metrics.History
	final     *model.Result
}

// New creates an idle session over the given excerpt with a configured
// countdown in seconds.
func New(excerpt string, durationSeconds int) *Session {
	return &Session{
		reference: []rune(excerpt),
		duration:  time.Duration(durationSeconds) * time.Second,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Reference returns the excerpt runes. Callers must not modify the slice.
func (s *Session) Reference() []rune {
	return s.reference
}

// Input returns the typed runes. Callers must not modify the slice.
func (s *Session) Input() []rune {
	return s.input
}

// Type ingests typed runes. The first rune ever typed starts the session;
// this is the only way to enter the active phase. Reaching the full excerpt
// length finishes the session by completion, checked rune by rune so the
// input path always wins over a same-instant countdown tick.
func (s *Session) Type(runes []rune, now time.Time) {
	for _, r := range runes {
		if s.phase == PhaseFinished {
			return
		}
		if s.phase == PhaseIdle {
			s.phase = PhaseActive
			s.startedAt = now
		}
		s.input = append(s.input, r)
		if len(s.input) == len(s.reference) {
			s.finish(FinishCompleted, now)
			return
		}
	}
}

// Backspace removes the last typed rune. Deleting back to empty input does
// not revert the session to idle; starting is one-shot.
func (s *Session) Backspace() {
	if s.phase == PhaseFinished || len(s.input) == 0 {
		return
	}
	s.input = s.input[:len(s.input)-1]
}

// Tick drives the once-per-second countdown. When the configured duration
// has elapsed the session finishes by timeout. No-op unless active.
func (s *Session) Tick(now time.Time) {
	if s.phase != PhaseActive {
		return
	}
	if now.Sub(s.startedAt) >= s.duration {
		s.finish(FinishTimeout, now)
	}
}

// Sample records a per-second WPM history point. Driven at a sub-second
// cadence for live display; the history compresses to one sample per whole
// second. No-op unless active, so the history freezes on finish.
func (s *Session) Sample(now time.Time) {
	if s.phase != PhaseActive {
		return
	}
	elapsed := now.Sub(s.startedAt)
	if elapsed <= 0 {
		return
	}
	correct := compare.CorrectCount(s.reference, s.input)
	s.history.Record(int(elapsed/time.Second), metrics.WPM(correct, elapsed))
}

// Elapsed returns time since the first keystroke, or zero while idle.
func (s *Session) Elapsed(now time.Time) time.Duration {
	switch s.phase {
	case PhaseIdle:
		return 0
	case PhaseFinished:
		return s.final.EndedAt.Sub(s.startedAt)
	default:
		return now.Sub(s.startedAt)
	}
}

// Remaining returns whole seconds left on the countdown.
func (s *Session) Remaining(now time.Time) int {
	left := s.duration - s.Elapsed(now)
	if s.phase == PhaseIdle {
		left = s.duration
	}
	if left < 0 {
		left = 0
	}
	return int(math.Ceil(left.Seconds()))
}

// LiveWPM returns the instantaneous WPM for display.
func (s *Session) LiveWPM(now time.Time) int {
	if s.phase == PhaseFinished {
		return s.final.WPM
	}
	correct := compare.CorrectCount(s.reference, s.input)
	return metrics.WPM(correct, s.Elapsed(now))
}

// LiveAccuracy returns the instantaneous accuracy for display.
func (s *Session) LiveAccuracy() int {
	if s.phase == PhaseFinished {
		return s.final.Accuracy
	}
	correct := compare.CorrectCount(s.reference, s.input)
	return metrics.Accuracy(correct, len(s.input))
}

// Reason reports which termination condition finished the session.
func (s *Session) Reason() FinishReason {
	return s.reason
}

// Result returns the final result once the session has finished.
func (s *Session) Result() (model.Result, bool) {
	if s.final == nil {
		return model.Result{}, false
	}
	return *s.final, true
}

// finish is the single completion-arbitration point. Both termination
// conditions funnel through here; the phase guard makes it idempotent, so
// simultaneous triggers cannot double-finish or produce two results.
func (s *Session) finish(reason FinishReason, now time.Time) {
	if s.phase == PhaseFinished {
		return
	}
	s.phase = PhaseFinished
	s.reason = reason

	elapsed := now.Sub(s.startedAt)
	correct := compare.CorrectCount(s.reference, s.input)
	s.final = &model.Result{
		StartedAt:       s.startedAt,
		EndedAt:         now,
		WPM:             metrics.WPM(correct, elapsed),
		Accuracy:        metrics.Accuracy(correct, len(s.input)),
		DurationSeconds: int(math.Round(elapsed.Seconds())),
		History:         s.history.Samples(),
	}
}
