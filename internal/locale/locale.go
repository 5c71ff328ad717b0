// Package locale provides locale-keyed lookup tables with an explicit default.
package locale

import (
	"sort"
	"strings"
)

// Language describes a language offered to the user.
type Language struct {
	Code       string
	Name       string
	NativeName string
}

// Supported lists the languages offered on the language selection step.
// A language without its own script falls back to the default one.
var Supported = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "hi", Name: "Hindi", NativeName: "हिंदी"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
}

// Table maps locale codes to values of type T.
// Lookups of unknown codes resolve to the base language and then to the default code.
type Table[T any] struct {
	def     string
	entries map[string]T
}

// NewTable creates an empty table whose fallback is def.
func NewTable[T any](def string) *Table[T] {
	return &Table[T]{
		def:     Normalize(def),
		entries: make(map[string]T),
	}
}

// Normalize lowercases the code and unifies the region separator.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	return strings.ReplaceAll(code, "_", "-")
}

// Base returns the language part of a code, e.g. "hi" for "hi-IN".
func Base(code string) string {
	code = Normalize(code)
	if idx := strings.Index(code, "-"); idx > 0 {
		return code[:idx]
	}
	return code
}

// Default returns the fallback code.
func (t *Table[T]) Default() string { return t.def }

// Set stores v under code, replacing any previous value.
func (t *Table[T]) Set(code string, v T) {
	t.entries[Normalize(code)] = v
}

// Has reports whether code has its own entry, without fallback.
func (t *Table[T]) Has(code string) bool {
	_, ok := t.entries[Normalize(code)]
	return ok
}

// Lookup resolves code to a value. The returned string is the code the value was found under.
// ok is false only when neither code nor the default has an entry.
func (t *Table[T]) Lookup(code string) (T, string, bool) {
	for _, candidate := range []string{Normalize(code), Base(code), t.def} {
		if v, ok := t.entries[candidate]; ok {
			return v, candidate, true
		}
	}

	var zero T
	return zero, t.def, false
}

// Codes returns the registered codes in lexical order.
func (t *Table[T]) Codes() []string {
	codes := make([]string, 0, len(t.entries))
	for code := range t.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of registered codes.
func (t *Table[T]) Len() int { return len(t.entries) }
