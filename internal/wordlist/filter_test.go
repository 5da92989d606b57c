package wordlist

import "testing"

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestByLengthCountsRunes(t *testing.T) {
	filter := ByLength(5)
	for _, word := range []string{"crane", "ñandú", "élans"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass length filter", word)
		}
	}
	for _, word := range []string{"cranes", "co-op", "a1b2c", ""} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	got := Apply([]string{"slate", "ox", "crane", "zebras", "alarm"}, All(ByLength(5), FilterForLang("en")))
	want := []string{"slate", "crane", "alarm"}
	if len(got) != len(want) {
		t.Fatalf("expected %d words, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q at %d, got %q", want[i], i, got[i])
		}
	}
}
