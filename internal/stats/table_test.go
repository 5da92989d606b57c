package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Letter", "Count", "Frequency"}
	rows := [][]string{
		{"e", "1204", "11.50%"},
		{"ñ", "7", "0.07%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Letter Count Frequency" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "e       1204    11.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "ñ          7     0.07%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word", "N"}, [][]string{{"語彙", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "語彙 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab   2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
