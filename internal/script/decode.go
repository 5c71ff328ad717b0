package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/internbuddy/internal/profile"
)

// rawEntry mirrors a script entry as written in the config file.
type rawEntry struct {
	Position *int   `mapstructure:"position"`
	Prompt   string `mapstructure:"prompt"`
	Field    string `mapstructure:"field"`
	Mode     string `mapstructure:"mode"`
}

// Decode converts script definitions from the config file (locale -> list of entries) into entries.
// A missing position defaults to the list index; a missing mode defaults to delimited-list for
// list fields and scalar otherwise.
func Decode(raw any) (map[string][]Entry, error) {
	if raw == nil {
		return map[string][]Entry{}, nil
	}

	var decoded map[string][]rawEntry
	cfg := &mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("create scripts decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode scripts: %w", err)
	}

	result := make(map[string][]Entry, len(decoded))
	for loc, items := range decoded {
		entries := make([]Entry, 0, len(items))
		for idx, item := range items {
			pos := idx
			if item.Position != nil {
				pos = *item.Position
			}

			field := profile.Field(strings.ToLower(strings.TrimSpace(item.Field)))
			mode := ParseMode(strings.ToLower(strings.TrimSpace(item.Mode)))
			if mode == "" {
				mode = Scalar
				if field.IsList() {
					mode = DelimitedList
				}
			}

			entries = append(entries, Entry{
				Locale:   loc,
				Position: pos,
				Prompt:   item.Prompt,
				Field:    field,
				Mode:     mode,
			})
		}
		result[loc] = entries
	}

	return result, nil
}

// RegisterAll registers decoded scripts in lexical locale order so errors are reproducible.
func (r *Registry) RegisterAll(scripts map[string][]Entry) error {
	locales := make([]string, 0, len(scripts))
	for loc := range scripts {
		locales = append(locales, loc)
	}
	sort.Strings(locales)

	for _, loc := range locales {
		if err := r.Register(loc, scripts[loc]); err != nil {
			return err
		}
	}
	return nil
}
