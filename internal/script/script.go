// Package script defines localized question scripts that drive intake.
package script

import (
	"fmt"
	"strings"

	"github.com/spigell/internbuddy/internal/profile"
)

// ParseMode controls how a raw answer becomes a profile value.
type ParseMode string

const (
	Scalar        ParseMode = "scalar"
	DelimitedList ParseMode = "delimited-list"
)

const listDelimiter = ","

// Valid reports whether m is a known parse mode.
func (m ParseMode) Valid() bool {
	return m == Scalar || m == DelimitedList
}

// Parse normalizes raw according to the mode. It never fails:
// scalar answers are trimmed, list answers are split on commas with empty segments dropped.
func (m ParseMode) Parse(raw string) profile.Value {
	if m != DelimitedList {
		return profile.Text(strings.TrimSpace(raw))
	}

	items := []string{}
	for _, segment := range strings.Split(raw, listDelimiter) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		items = append(items, segment)
	}
	return profile.List(items)
}

// Entry is one step of the dialog.
type Entry struct {
	Locale   string        `json:"locale"`
	Position int           `json:"position"`
	Prompt   string        `json:"prompt"`
	Field    profile.Field `json:"field,omitempty"`
	Mode     ParseMode     `json:"mode"`
}

// IsTerminal reports whether the entry is a closing prompt.
func (e Entry) IsTerminal() bool { return e.Field == profile.FieldNone }

// Script is the ordered list of entries for one locale.
type Script struct {
	Locale  string
	Entries []Entry
}

// Len returns the number of entries including the closing prompt.
func (s Script) Len() int { return len(s.Entries) }

// Questions returns the number of entries that expect an answer.
func (s Script) Questions() int {
	if len(s.Entries) == 0 {
		return 0
	}
	return len(s.Entries) - 1
}

// At returns the entry at position pos.
func (s Script) At(pos int) (Entry, error) {
	if pos < 0 || pos >= len(s.Entries) {
		return Entry{}, fmt.Errorf("position %d is out of script range [0, %d)", pos, len(s.Entries))
	}
	return s.Entries[pos], nil
}

// Terminal returns the closing entry.
func (s Script) Terminal() Entry {
	if len(s.Entries) == 0 {
		return Entry{}
	}
	return s.Entries[len(s.Entries)-1]
}

// Fields returns the targeted fields in script order.
func (s Script) Fields() []profile.Field {
	fields := make([]profile.Field, 0, s.Questions())
	for _, e := range s.Entries {
		if !e.IsTerminal() {
			fields = append(fields, e.Field)
		}
	}
	return fields
}
