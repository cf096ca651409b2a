package session

import (
	"testing"
	"time"
)

var t0 = time.Unix(1700000000, 0)

func typeString(s *Session, text string, now time.Time) {
	s.Type([]rune(text), now)
}

func TestIdleUntilFirstKeystroke(t *testing.T) {
	s := New("cat in the hat", 30)
	if s.Phase() != PhaseIdle {
		t.Fatalf("expected idle phase after construction")
	}
	// Loading the excerpt alone never starts the countdown.
	s.Tick(t0.Add(time.Hour))
	if s.Phase() != PhaseIdle {
		t.Fatalf("tick while idle must not change phase")
	}
	typeString(s, "c", t0)
	if s.Phase() != PhaseActive {
		t.Fatalf("expected active phase after first keystroke")
	}
}

func TestFinishByCompletion(t *testing.T) {
	s := New("cat", 30)
	typeString(s, "c", t0)
	typeString(s, "a", t0.Add(300*time.Millisecond))
	typeString(s, "t", t0.Add(900*time.Millisecond))

	if s.Phase() != PhaseFinished {
		t.Fatalf("expected finished phase after typing full text")
	}
	if s.Reason() != FinishCompleted {
		t.Fatalf("expected completion finish, got %v", s.Reason())
	}
	res, ok := s.Result()
	if !ok {
		t.Fatalf("expected a result")
	}
	if res.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %d", res.Accuracy)
	}
	if res.DurationSeconds != 1 {
		t.Fatalf("expected 1s duration (rounded from 900ms), got %d", res.DurationSeconds)
	}
	if res.DurationSeconds >= 30 {
		t.Fatalf("early finish must report actual elapsed, not configured duration")
	}
}

func TestFinishByTimeout(t *testing.T) {
	s := New("reference text that is long enough to not be completed", 15)
	typeString(s, "referen", t0)
	for sec := 1; sec <= 15; sec++ {
		s.Tick(t0.Add(time.Duration(sec) * time.Second))
	}
	if s.Phase() != PhaseFinished {
		t.Fatalf("expected finished phase after countdown expiry")
	}
	if s.Reason() != FinishTimeout {
		t.Fatalf("expected timeout finish, got %v", s.Reason())
	}
	res, _ := s.Result()
	if res.DurationSeconds < 14 || res.DurationSeconds > 16 {
		t.Fatalf("expected duration near configured 15s, got %d", res.DurationSeconds)
	}
}

func TestTimeoutWPMFromPartialInput(t *testing.T) {
	// 25 correct characters over a 15 second test: (25/5)/(15/60) = 20 WPM.
	reference := make([]rune, 200)
	for i := range reference {
		reference[i] = 'a'
	}
	s := New(string(reference), 15)
	s.Type(reference[:25], t0)
	s.Tick(t0.Add(15 * time.Second))

	res, ok := s.Result()
	if !ok {
		t.Fatalf("expected a result after timeout")
	}
	if res.WPM != 20 {
		t.Fatalf("expected 20 WPM, got %d", res.WPM)
	}
}

func TestCompletionWinsOverSimultaneousTimeout(t *testing.T) {
	s := New("ab", 15)
	typeString(s, "a", t0)
	// Input update and countdown expiry at the same instant: the input
	// path runs first and must win.
	deadline := t0.Add(15 * time.Second)
	typeString(s, "b", deadline)
	s.Tick(deadline)

	if s.Reason() != FinishCompleted {
		t.Fatalf("expected completion to win, got %v", s.Reason())
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	s := New("ab", 15)
	typeString(s, "ab", t0)
	first, ok := s.Result()
	if !ok {
		t.Fatalf("expected a result")
	}

	// Late triggers and input must not produce a second result or mutate
	// the first.
	s.Tick(t0.Add(time.Hour))
	typeString(s, "zzz", t0.Add(time.Hour))
	s.Backspace()
	s.Sample(t0.Add(time.Hour))

	second, _ := s.Result()
	if second.WPM != first.WPM || second.Accuracy != first.Accuracy ||
		second.DurationSeconds != first.DurationSeconds ||
		len(second.History) != len(first.History) ||
		!second.EndedAt.Equal(first.EndedAt) {
		t.Fatalf("result changed after finish: %+v vs %+v", first, second)
	}
	if got := len(s.Input()); got != 2 {
		t.Fatalf("input grew after finish: %d runes", got)
	}
}

func TestBackspaceToEmptyStaysActive(t *testing.T) {
	s := New("abc", 30)
	typeString(s, "ab", t0)
	s.Backspace()
	s.Backspace()
	if len(s.Input()) != 0 {
		t.Fatalf("expected empty input after backspaces")
	}
	if s.Phase() != PhaseActive {
		t.Fatalf("deleting all input must not revert to idle")
	}
	s.Backspace() // no-op on empty input
	if s.Phase() != PhaseActive {
		t.Fatalf("backspace on empty input changed phase")
	}
}

func TestSampleOnlyWhileActive(t *testing.T) {
	s := New("abcdef", 30)
	s.Sample(t0) // idle: no sample
	typeString(s, "abc", t0)
	s.Sample(t0.Add(500 * time.Millisecond))
	s.Sample(t0.Add(900 * time.Millisecond))
	s.Sample(t0.Add(1500 * time.Millisecond))
	typeString(s, "def", t0.Add(2*time.Second))

	res, _ := s.Result()
	if len(res.History) != 2 {
		t.Fatalf("expected 2 per-second samples, got %d: %+v", len(res.History), res.History)
	}
	if res.History[0].TimeS != 0 || res.History[1].TimeS != 1 {
		t.Fatalf("unexpected sample seconds: %+v", res.History)
	}

	// Frozen after finish.
	s.Sample(t0.Add(3 * time.Second))
	after, _ := s.Result()
	if len(after.History) != 2 {
		t.Fatalf("history grew after finish")
	}
}

func TestLiveMetrics(t *testing.T) {
	s := New("hello world", 30)
	if s.LiveWPM(t0) != 0 {
		t.Fatalf("expected 0 WPM before first keystroke")
	}
	if s.LiveAccuracy() != 0 {
		t.Fatalf("expected 0 accuracy before first keystroke")
	}
	typeString(s, "hexlo", t0)
	if got := s.LiveAccuracy(); got != 80 {
		t.Fatalf("expected 80%% accuracy, got %d", got)
	}
	if got := s.LiveWPM(t0.Add(6 * time.Second)); got != 8 {
		// 4 correct chars in 6s: (4/5)/(0.1min) = 8 WPM.
		t.Fatalf("expected 8 WPM, got %d", got)
	}
}

func TestRemainingCountsDown(t *testing.T) {
	s := New("some reference text here", 30)
	if got := s.Remaining(t0); got != 30 {
		t.Fatalf("expected full countdown while idle, got %d", got)
	}
	typeString(s, "s", t0)
	if got := s.Remaining(t0.Add(10 * time.Second)); got != 20 {
		t.Fatalf("expected 20s remaining, got %d", got)
	}
	if got := s.Remaining(t0.Add(time.Hour)); got != 0 {
		t.Fatalf("remaining must clamp at 0, got %d", got)
	}
}

func TestRestartIsANewSession(t *testing.T) {
	s := New("abandoned attempt", 30)
	typeString(s, "aband", t0)

	// Restart mid-game constructs a fresh session; the abandoned one is
	// simply dropped and never yields a result.
	if _, ok := s.Result(); ok {
		t.Fatalf("abandoned session must not have a result")
	}
	fresh := New("abandoned attempt", 30)
	if fresh.Phase() != PhaseIdle || len(fresh.Input()) != 0 {
		t.Fatalf("fresh session must start idle and empty")
	}
}
