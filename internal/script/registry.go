package script

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/spigell/internbuddy/internal/locale"
	"github.com/spigell/internbuddy/internal/profile"
)

const minEntries = 2

// ConfigurationError reports a malformed or inconsistent script. It is raised at registration.
type ConfigurationError struct {
	Locale string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("script configuration: %s", e.Reason)
	}
	return fmt.Sprintf("script configuration for locale %q: %s", e.Locale, e.Reason)
}

func configErr(loc, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Locale: loc, Reason: fmt.Sprintf(format, args...)}
}

// Registry stores scripts per locale with an explicit default.
// All registered scripts share the same length and per-position fields.
type Registry struct {
	mu    sync.RWMutex
	table *locale.Table[Script]
	shape []profile.Field
}

// NewRegistry creates an empty registry falling back to defaultLocale.
func NewRegistry(defaultLocale string) *Registry {
	return &Registry{table: locale.NewTable[Script](defaultLocale)}
}

// Register validates entries and stores them as the script for loc.
// Re-registering a locale replaces its script.
func (r *Registry) Register(loc string, entries []Entry) error {
	code := locale.Normalize(loc)
	if code == "" {
		return configErr(loc, "locale code is empty")
	}

	if len(entries) < minEntries {
		return configErr(code, "script needs at least %d entries, got %d", minEntries, len(entries))
	}

	ordered := slices.Clone(entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	seen := make(map[profile.Field]int)
	last := len(ordered) - 1
	for idx := range ordered {
		e := &ordered[idx]
		if e.Position != idx {
			return configErr(code, "positions must be contiguous and unique from 0: expected %d, got %d", idx, e.Position)
		}
		if strings.TrimSpace(e.Prompt) == "" {
			return configErr(code, "prompt at position %d is empty", idx)
		}
		if !e.Mode.Valid() {
			return configErr(code, "unknown parse mode %q at position %d", e.Mode, idx)
		}
		if e.Locale != "" && locale.Normalize(e.Locale) != code {
			return configErr(code, "entry at position %d belongs to locale %q", idx, e.Locale)
		}
		e.Locale = code

		if idx == last {
			if !e.IsTerminal() {
				return configErr(code, "closing entry at position %d must not target a field, got %q", idx, e.Field)
			}
			continue
		}

		if e.IsTerminal() {
			return configErr(code, "entry at position %d targets no field; only the closing entry may", idx)
		}
		if !e.Field.Valid() {
			return configErr(code, "unknown field %q at position %d", e.Field, idx)
		}
		if prev, ok := seen[e.Field]; ok {
			return configErr(code, "field %q targeted at positions %d and %d", e.Field, prev, idx)
		}
		seen[e.Field] = idx
	}

	s := Script{Locale: code, Entries: ordered}
	shape := s.Fields()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shape != nil && !r.onlyLocale(code) {
		if len(r.shape)+1 != len(ordered) {
			return configErr(code, "script has %d entries, other locales have %d", len(ordered), len(r.shape)+1)
		}
		for idx, f := range shape {
			if r.shape[idx] != f {
				return configErr(code, "position %d targets %q, other locales target %q", idx, f, r.shape[idx])
			}
		}
	}

	r.table.Set(code, s)
	r.shape = shape
	return nil
}

// onlyLocale reports whether code is the single registered locale, so replacing it may change the shape.
func (r *Registry) onlyLocale(code string) bool {
	return r.table.Len() == 1 && r.table.Has(code)
}

// Get returns the script for loc, falling back to the base language and then the default locale.
// The second return value is the locale the script was resolved to.
func (r *Registry) Get(loc string) (Script, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, resolved, _ := r.table.Lookup(loc)
	return s, resolved
}

// Has reports whether loc has its own script.
func (r *Registry) Has(loc string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Has(loc)
}

// Locales returns registered locale codes in lexical order.
func (r *Registry) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Codes()
}

// Default returns the fallback locale.
func (r *Registry) Default() string {
	return r.table.Default()
}

// Ready verifies the default locale has a script so that every lookup succeeds.
func (r *Registry) Ready() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.table.Has(r.table.Default()) {
		return configErr(r.table.Default(), "default locale has no registered script")
	}
	return nil
}
