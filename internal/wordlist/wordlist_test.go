package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadWordsNormalizes(t *testing.T) {
	words, err := ReadWords(strings.NewReader("Crane\n\n  SLATE \nalarm\n"))
	if err != nil {
		t.Fatalf("read words: %v", err)
	}
	want := []string{"crane", "slate", "alarm"}
	if strings.Join(words, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, words)
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

func TestWriteWordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "words.txt")
	words := []string{"zebra", "alarm", "crane"}
	if err := WriteWords(path, words); err != nil {
		t.Fatalf("write words: %v", err)
	}
	loaded, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if strings.Join(loaded, ",") != strings.Join(words, ",") {
		t.Fatalf("expected %v, got %v", words, loaded)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}
