package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// Excluded is the content of the exclude file.
type Excluded struct {
	Items []*ExcludedCandidate
}

// ExcludedCandidate records why a candidate should no longer be recommended.
type ExcludedCandidate struct {
	ID           string
	Title        string
	Organization string
	Actor        string `json:",omitempty"`
	Reason       string `json:",omitempty"`
	ExcludedAt   time.Time
}

// ToExcluded converts the pool to exclude-file entries stamped with now.
func (p *Pool) ToExcluded(actor, reason string, now time.Time) *Excluded {
	excluded := &Excluded{}
	for _, c := range p.All() {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ID:           c.ID,
			Title:        c.Title,
			Organization: c.Organization,
			Actor:        actor,
			Reason:       reason,
			ExcludedAt:   now.UTC(),
		})
	}
	return excluded
}

// ReadExcludedFile reads the exclude file. A missing or empty file yields an empty list.
func ReadExcludedFile(path string) (*Excluded, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Excluded{}, nil
	}

	var excluded Excluded
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries whose id is not yet present.
func (e *Excluded) Append(other *Excluded) {
	if other == nil {
		return
	}

	known := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		known[item.ID] = struct{}{}
	}
	for _, item := range other.Items {
		if _, ok := known[item.ID]; ok {
			continue
		}
		known[item.ID] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *Excluded) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// ToFile overwrites path with the list.
func (e *Excluded) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
