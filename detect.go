package lingopack

import "strings"

// Script blocks checked in priority order. First match wins.
var scriptRanges = []struct {
	lo, hi rune
	code   LanguageCode
}{
	{0x4E00, 0x9FFF, "zh"}, // CJK unified ideographs
	{0x3040, 0x309F, "ja"}, // Hiragana
	{0xAC00, 0xD7AF, "ko"}, // Hangul syllables
	{0x0600, 0x06FF, "ar"},
	{0x0590, 0x05FF, "he"},
	{0x0370, 0x03FF, "el"},
	{0x0E00, 0x0E7F, "th"},
}

// accentedChars is the fixed set of Latin accented characters that triggers
// the European stop-word scoring.
const accentedChars = "àáâãäåæçèéêëìíîïðñòóôõöøùúûüýþÿ"

// ukrainianMarkers distinguish Ukrainian from Russian within the Cyrillic
// block. Matched as case-folded substrings.
var ukrainianMarkers = []string{"що", "але", "або", "який", "яка", "яке"}

// latinStopWords are checked in fixed order; the first list with at least one
// whole-word match wins. No tie-break by count.
var latinStopWords = []struct {
	code  LanguageCode
	words []string
}{
	{"it", []string{"il", "la", "le", "di", "da", "in", "con", "per", "che", "non", "una", "uno"}},
	{"es", []string{"el", "la", "los", "las", "de", "del", "en", "con", "por", "que", "no", "es", "un", "una"}},
	{"fr", []string{"le", "la", "les", "de", "du", "des", "en", "dans", "avec", "pour", "que", "ne", "un", "une"}},
	{"de", []string{"der", "die", "das", "den", "dem", "des", "ein", "eine", "und", "oder", "nicht", "ist"}},
	{"pt", []string{"o", "a", "os", "as", "de", "do", "da", "em", "com", "por", "que", "não", "um", "uma"}},
}

// nordicStopWords are checked after the accented-character lists. The
// Norwegian and Danish sets differ only in "av"/"af"; Norwegian is checked
// first, so ambiguous text resolves to "no". Known ambiguity, kept as is.
var nordicStopWords = []struct {
	code  LanguageCode
	words []string
}{
	{"sv", []string{"och", "att", "är", "den", "det", "en", "ett", "för", "på", "av"}},
	{"no", []string{"og", "at", "er", "den", "det", "en", "et", "for", "på", "av"}},
	{"da", []string{"og", "at", "er", "den", "det", "en", "et", "for", "på", "af"}},
}

// DetectLanguage guesses the language of text. It is deterministic, total and
// intentionally low-accuracy: a best-effort default for unattended auto mode,
// degrading to "en" when nothing matches.
func DetectLanguage(text string) LanguageCode {
	if len(strings.TrimSpace(text)) < 3 {
		return "en"
	}

	lower := strings.ToLower(text)

	if hasRuneInRange(text, 0x0400, 0x04FF) {
		for _, marker := range ukrainianMarkers {
			if strings.Contains(lower, marker) {
				return "uk"
			}
		}
		return "ru"
	}

	for _, r := range scriptRanges {
		if hasRuneInRange(text, r.lo, r.hi) {
			return r.code
		}
	}

	if strings.ContainsAny(text, accentedChars) {
		words := fieldWords(lower)
		for _, list := range latinStopWords {
			if containsAnyWord(words, list.words) {
				return list.code
			}
		}
	}

	words := fieldWords(lower)
	for _, list := range nordicStopWords {
		if containsAnyWord(words, list.words) {
			return list.code
		}
	}

	return "en"
}

func hasRuneInRange(text string, lo, hi rune) bool {
	for _, r := range text {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}

// fieldWords splits case-folded text into whole words, treating anything that
// is not a letter as a separator.
func fieldWords(lower string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !isLetter(r)
	}) {
		words[w] = true
	}
	return words
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 0x7F
}

func containsAnyWord(words map[string]bool, list []string) bool {
	for _, w := range list {
		if words[w] {
			return true
		}
	}
	return false
}
