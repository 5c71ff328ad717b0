// Package catalog holds the candidate pool the recommendations are computed from.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Kind distinguishes internships from courses.
type Kind string

const (
	KindInternship Kind = "internship"
	KindCourse     Kind = "course"
)

// WorkType is how an internship is performed.
type WorkType string

const (
	WorkRemote WorkType = "remote"
	WorkOnsite WorkType = "onsite"
	WorkHybrid WorkType = "hybrid"
)

// Valid reports whether w is empty or one of the known work types.
func (w WorkType) Valid() bool {
	switch w {
	case "", WorkRemote, WorkOnsite, WorkHybrid:
		return true
	default:
		return false
	}
}

// Candidate is an internship or a course. Category is never part of it; it is computed by ranking.
type Candidate struct {
	ID           string   `mapstructure:"id" json:"id"`
	Kind         Kind     `mapstructure:"kind" json:"kind"`
	Title        string   `mapstructure:"title" json:"title"`
	Organization string   `mapstructure:"organization" json:"organization,omitempty"`
	Location     string   `mapstructure:"location" json:"location,omitempty"`
	Type         WorkType `mapstructure:"type" json:"type,omitempty"`
	// Skills are required skills for internships and taught skills for courses.
	Skills      []string `mapstructure:"skills" json:"skills,omitempty"`
	Duration    string   `mapstructure:"duration" json:"duration,omitempty"`
	Stipend     string   `mapstructure:"stipend" json:"stipend,omitempty"`
	Level       string   `mapstructure:"level" json:"level,omitempty"`
	Provider    string   `mapstructure:"provider" json:"provider,omitempty"`
	Description string   `mapstructure:"description" json:"description,omitempty"`
}

// IsRemote reports whether the internship can be done remotely.
func (c *Candidate) IsRemote() bool {
	return c.Type == WorkRemote || strings.EqualFold(strings.TrimSpace(c.Location), string(WorkRemote))
}

func (c *Candidate) validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%s %q has no id", c.Kind, c.Title)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%s %s: unknown work type %q", c.Kind, c.ID, c.Type)
	}
	return nil
}

// Pool is an ordered collection of candidates. Order is the order of the source.
type Pool struct {
	Items []*Candidate
}

// NewPool creates a pool over the given candidates.
func NewPool(items ...*Candidate) *Pool {
	return &Pool{Items: items}
}

// All returns the candidates in pool order.
func (p *Pool) All() []*Candidate {
	if p == nil {
		return nil
	}
	return p.Items
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// FindByID returns the first candidate with the id or nil.
func (p *Pool) FindByID(id string) *Candidate {
	for _, c := range p.All() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// OfKind returns a new pool with only the candidates of kind k.
func (p *Pool) OfKind(k Kind) *Pool {
	out := &Pool{}
	for _, c := range p.All() {
		if c.Kind == k {
			out.Items = append(out.Items, c)
		}
	}
	return out
}

// IDs returns candidate ids in pool order.
func (p *Pool) IDs() []string {
	ids := make([]string, 0, p.Len())
	for _, c := range p.All() {
		ids = append(ids, c.ID)
	}
	return ids
}

// Exclude removes candidates whose id is in ids, preserving the order of the rest.
// It returns the removed ids.
func (p *Pool) Exclude(ids []string) []string {
	if p == nil || len(ids) == 0 {
		return nil
	}

	var excluded []string
	kept := p.Items[:0]
	for _, c := range p.Items {
		if slices.Contains(ids, c.ID) {
			excluded = append(excluded, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	clear(p.Items[len(kept):])
	p.Items = kept

	return excluded
}

// ExcludeOrganizations removes candidates of the given organizations, case-insensitive.
func (p *Pool) ExcludeOrganizations(orgs []string) []string {
	if p == nil || len(orgs) == 0 {
		return nil
	}

	var ids []string
	for _, c := range p.Items {
		for _, org := range orgs {
			if strings.EqualFold(strings.TrimSpace(c.Organization), strings.TrimSpace(org)) {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return p.Exclude(ids)
}

// Dedupe keeps the first candidate of every id and returns the ids of dropped duplicates.
func (p *Pool) Dedupe() []string {
	if p == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(p.Items))
	var dropped []string
	kept := p.Items[:0]
	for _, c := range p.Items {
		if _, ok := seen[c.ID]; ok {
			dropped = append(dropped, c.ID)
			continue
		}
		seen[c.ID] = struct{}{}
		kept = append(kept, c)
	}
	clear(p.Items[len(kept):])
	p.Items = kept

	return dropped
}

// ReportByOrganization groups candidates by organization (or provider for courses).
func (p *Pool) ReportByOrganization() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range p.All() {
		key := c.Organization
		if key == "" {
			key = c.Provider
		}
		report[key] = append(report[key], map[string]string{
			"id":       c.ID,
			"title":    c.Title,
			"location": c.Location,
			"type":     string(c.Type),
			"duration": c.Duration,
			"skills":   strings.Join(c.Skills, ", "),
		})
	}
	return report
}
