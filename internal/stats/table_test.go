package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Upgrade", "Bought", "Avg"}
	rows := [][]string{
		{"Vowel Power", "12", "0:10"},
		{"Speed Demon", "3", "11:40"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "Upgrade      Bought    Avg" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "-----------  ------  -----" {
		t.Fatalf("unexpected rule line: %q", lines[1])
	}
	if lines[2] != "Vowel Power      12   0:10" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "Speed Demon       3  11:40" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := FormatTable([]string{"Name", "X"}, [][]string{{"倍率", "1"}}, nil)
	if lines[2] != "倍率  1" {
		t.Fatalf("unexpected wide row: %q", lines[2])
	}
}
