package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return isLetters
	}
}

// ByLength keeps words made only of letters and exactly length runes long.
func ByLength(length int) FilterFunc {
	return func(word string) bool {
		return utf8.RuneCountInString(word) == length && isLetters(word)
	}
}

// All combines filters; a word is kept only when every filter keeps it.
func All(filters ...FilterFunc) FilterFunc {
	return func(word string) bool {
		for _, f := range filters {
			if !f(word) {
				return false
			}
		}
		return true
	}
}

// Apply returns the words kept by f, preserving order.
func Apply(words []string, f FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if f(word) {
			out = append(out, word)
		}
	}
	return out
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

func isLetters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
