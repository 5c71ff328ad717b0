package ranking

import (
	"strings"
	"unicode"
)

var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "from": true, "into": true,
	"any": true, "are": true, "you": true, "your": true, "our": true, "all": true,
	"not": true, "none": true, "work": true, "working": true, "new": true, "real": true,
	"intern": true, "internship": true, "trainee": true, "months": true, "weeks": true,
	"per": true, "month": true,
}

// keywords extracts lowercase words of at least three runes, dropping stop words.
// '+', '#' and '.' are kept inside words so "c++", "c#" and "node.js" survive.
func keywords(texts ...string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !stopWords[w] {
			kw[w] = true
		}
	}

	for _, text := range texts {
		for _, r := range strings.ToLower(text) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
				word.WriteRune(r)
			} else {
				flush()
			}
		}
		flush()
	}
	return kw
}

func overlaps(a, b map[string]bool) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for w := range a {
		if b[w] {
			return true
		}
	}
	return false
}

// normalize lowercases s and collapses whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
