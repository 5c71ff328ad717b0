// Package profile holds the answers collected during intake.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Field identifies a profile attribute a question can target.
type Field string

const (
	FieldNone        Field = ""
	FieldName        Field = "name"
	FieldEducation   Field = "education"
	FieldSkills      Field = "skills"
	FieldLocation    Field = "location"
	FieldPreferences Field = "preferences"
	FieldExperience  Field = "experience"
	FieldInterests   Field = "interests"
)

// Fields lists every assignable field.
var Fields = []Field{
	FieldName,
	FieldEducation,
	FieldSkills,
	FieldLocation,
	FieldPreferences,
	FieldExperience,
	FieldInterests,
}

// ErrAlreadyAssigned is returned when a field is assigned twice.
var ErrAlreadyAssigned = errors.New("profile field already assigned")

// ErrUnknownField is returned for fields outside of Fields.
var ErrUnknownField = errors.New("unknown profile field")

// Valid reports whether f is an assignable field.
func (f Field) Valid() bool {
	return slices.Contains(Fields, f)
}

// IsList reports whether the field stores an ordered list.
func (f Field) IsList() bool {
	return f == FieldSkills || f == FieldInterests
}

// Value is a parsed answer: either free text or an ordered list.
type Value struct {
	Text   string
	List   []string
	IsList bool
}

// Text wraps a scalar answer.
func Text(s string) Value { return Value{Text: s} }

// List wraps a delimited-list answer. A nil list is stored as empty.
func List(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{List: items, IsList: true}
}

// AsText returns the value as a single string, joining lists with ", ".
func (v Value) AsText() string {
	if v.IsList {
		return strings.Join(v.List, ", ")
	}
	return v.Text
}

// AsList returns the value as a list; scalar text becomes a single element.
func (v Value) AsList() []string {
	if v.IsList {
		return slices.Clone(v.List)
	}
	if v.Text == "" {
		return []string{}
	}
	return []string{v.Text}
}

// Profile is the structured record of user answers.
type Profile struct {
	Name        string   `json:"name,omitempty"`
	Education   string   `json:"education,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Location    string   `json:"location,omitempty"`
	Preferences string   `json:"preferences,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Interests   []string `json:"interests,omitempty"`

	assigned []Field
}

// Assign stores v into field f. Each field may be assigned once.
func (p *Profile) Assign(f Field, v Value) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if p.Has(f) {
		return fmt.Errorf("%w: %s", ErrAlreadyAssigned, f)
	}

	switch f {
	case FieldName:
		p.Name = v.AsText()
	case FieldEducation:
		p.Education = v.AsText()
	case FieldSkills:
		p.Skills = v.AsList()
	case FieldLocation:
		p.Location = v.AsText()
	case FieldPreferences:
		p.Preferences = v.AsText()
	case FieldExperience:
		p.Experience = v.AsText()
	case FieldInterests:
		p.Interests = v.AsList()
	}

	p.assigned = append(p.assigned, f)
	return nil
}

// Has reports whether f was assigned in this profile.
func (p *Profile) Has(f Field) bool {
	return slices.Contains(p.assigned, f)
}

// Assigned returns the populated fields in assignment order.
func (p *Profile) Assigned() []Field {
	return slices.Clone(p.assigned)
}

// IsEmpty reports whether the profile carries no data: every text field is blank
// and both lists are empty. Profiles decoded from JSON or built as literals count too.
func (p *Profile) IsEmpty() bool {
	for _, s := range []string{p.Name, p.Education, p.Location, p.Preferences, p.Experience} {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return !hasItems(p.Skills) && !hasItems(p.Interests)
}

func hasItems(items []string) bool {
	return slices.ContainsFunc(items, func(s string) bool { return strings.TrimSpace(s) != "" })
}

// Clone returns a deep copy that shares no slices with p.
func (p *Profile) Clone() Profile {
	c := *p
	c.Skills = slices.Clone(p.Skills)
	c.Interests = slices.Clone(p.Interests)
	c.assigned = slices.Clone(p.assigned)
	return c
}

// Summary renders the populated fields as key/value pairs in assignment order.
func (p *Profile) Summary() map[string]string {
	summary := make(map[string]string, len(p.assigned))
	for _, f := range p.assigned {
		switch f {
		case FieldName:
			summary[string(f)] = p.Name
		case FieldEducation:
			summary[string(f)] = p.Education
		case FieldSkills:
			summary[string(f)] = strings.Join(p.Skills, ", ")
		case FieldLocation:
			summary[string(f)] = p.Location
		case FieldPreferences:
			summary[string(f)] = p.Preferences
		case FieldExperience:
			summary[string(f)] = p.Experience
		case FieldInterests:
			summary[string(f)] = strings.Join(p.Interests, ", ")
		}
	}
	return summary
}
