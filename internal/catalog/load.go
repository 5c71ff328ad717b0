package catalog

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	internshipsKey = "internships"
	coursesKey     = "courses"
)

// LoadFile reads a pool from a JSON, YAML or TOML file with top-level
// "internships" and "courses" lists. Internships come first, each list in file order.
func LoadFile(path string) (*Pool, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading candidates file %q: %w", path, err)
	}

	pool := &Pool{}
	for _, section := range []struct {
		key  string
		kind Kind
	}{
		{key: internshipsKey, kind: KindInternship},
		{key: coursesKey, kind: KindCourse},
	} {
		var items []*Candidate
		if err := v.UnmarshalKey(section.key, &items); err != nil {
			return nil, fmt.Errorf("decoding %s from %q: %w", section.key, path, err)
		}

		for _, c := range items {
			if c == nil {
				continue
			}
			c.Kind = section.kind
			if err := c.validate(); err != nil {
				return nil, fmt.Errorf("candidates file %q: %w", path, err)
			}
			pool.Items = append(pool.Items, c)
		}
	}

	return pool, nil
}
