package tui

import "testing"

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex, -1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex, -1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex, -1)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesGhostMarker(t *testing.T) {
	target := []rune("one two")
	input := []rune("on")

	runes := buildStyledRunes(target, input, len(input), 4)
	if runes[4].s != pendingStyle.Background(ghostColor).Render("t") {
		t.Fatalf("expected ghost background at projected index")
	}
	plain := buildStyledRunes(target, input, len(input), -1)
	if plain[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected no ghost background without race mode")
	}
}

func TestWrapStyledRunesBreaksOnSpaces(t *testing.T) {
	target := []rune("aaa bbb ccc")
	runes := buildStyledRunes(target, nil, 0, -1)
	wrapped := wrapStyledRunes(runes, 7)
	lines := splitLines(wrapped)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines at width 7, got %d:\n%s", len(lines), wrapped)
	}
}

func TestWrapStyledRunesHardBreakWithoutSpaces(t *testing.T) {
	target := []rune("aaaaaaaaaa")
	runes := buildStyledRunes(target, nil, 0, -1)
	wrapped := wrapStyledRunes(runes, 4)
	lines := splitLines(wrapped)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines at width 4, got %d", len(lines))
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
