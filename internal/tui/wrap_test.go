package tui

import "testing"

func typedSlots(s string, length int) []rune {
	slots := make([]rune, length)
	copy(slots, []rune(s))
	return slots
}

func TestBuildStyledRunesCursor(t *testing.T) {
	text := []rune("ab")
	runes := buildStyledRunes(text, typedSlots("a", 2), 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current word style for cursor rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), typedSlots("a", 1), -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), typedSlots("ax", 2), -1)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	text := []rune("one two")
	runes := buildStyledRunes(text, typedSlots("o", len(text)), 1)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	text := []rune("a b")
	runes := buildStyledRunes(text, typedSlots("ax", len(text)), 2)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesBackspacedSlotIsPending(t *testing.T) {
	text := []rune("ab cd")
	slots := typedSlots("ab", len(text))
	slots[1] = 0
	runes := buildStyledRunes(text, slots, 1)
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected erased slot to render as the cursor")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	text := []rune("aaa bbb ccc")
	runes := buildStyledRunes(text, make([]rune, len(text)), -1)
	got := wrapStyledRunes(runes, 7)
	want := renderStyledRunes(runes[:3]) + "\n" + renderStyledRunes(runes[4:])
	if got != want {
		t.Fatalf("unexpected wrap:\n%q\n%q", got, want)
	}
}

func TestVisibleRange(t *testing.T) {
	text := []rune("alpha beta gamma delta")
	start, end := visibleRange(text, 3, 10, 0)
	if start != 0 || end != len(text) {
		t.Fatalf("expected full range, got %d..%d", start, end)
	}
	start, end = visibleRange(text, 17, 5, 8)
	if start != 11 || end != 19 {
		t.Fatalf("expected 11..19, got %d..%d", start, end)
	}
}
