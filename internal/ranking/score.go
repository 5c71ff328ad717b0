// Package ranking scores candidates against a profile and assembles categorized recommendations.
package ranking

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/internbuddy/internal/catalog"
	"github.com/spigell/internbuddy/internal/profile"
)

// Category is the recommendation bucket a candidate falls into.
type Category string

const (
	BestFit      Category = "best-fit"
	SkillGrowth  Category = "skill-growth"
	Aspirational Category = "aspirational"
)

// Categories lists the categories in presentation order.
var Categories = []Category{BestFit, SkillGrowth, Aspirational}

const (
	bestFitThreshold     = 90
	skillGrowthThreshold = 75
)

// Signal weights. They add up to 100.
const (
	weightSkills     = 70
	weightInterest   = 15
	weightLocation   = 10
	weightPreference = 5
)

// Scored is a candidate evaluated against one profile.
type Scored struct {
	Candidate       *catalog.Candidate `json:"candidate"`
	Index           int                `json:"index"`
	MatchPercentage int                `json:"match_percentage"`
	Category        Category           `json:"category"`
	MatchReason     string             `json:"match_reason"`
	Matched         []string           `json:"matched_skills,omitempty"`
	Missing         []string           `json:"missing_skills,omitempty"`
}

// Categorize maps an affinity in [0,100] to its category.
func Categorize(affinity int) Category {
	switch {
	case affinity >= bestFitThreshold:
		return BestFit
	case affinity >= skillGrowthThreshold:
		return SkillGrowth
	default:
		return Aspirational
	}
}

func (c Category) intent() string {
	switch c {
	case BestFit:
		return "Perfect match for your profile"
	case SkillGrowth:
		return "Great opportunity to learn new skills"
	default:
		return "Aspirational pick to push your potential"
	}
}

const emptyProfileReason = "Your profile is empty; answer the questions to get personalised matches"

// Score evaluates every candidate of the pool against p, in pool order.
// It keeps no state between calls.
func Score(p *profile.Profile, pool *catalog.Pool) []Scored {
	candidates := pool.All()
	scored := make([]Scored, 0, len(candidates))

	if p == nil || p.IsEmpty() {
		for idx, c := range candidates {
			scored = append(scored, Scored{
				Candidate:       c,
				Index:           idx,
				MatchPercentage: 0,
				Category:        Aspirational,
				MatchReason:     emptyProfileReason,
				Missing:         append([]string(nil), c.Skills...),
			})
		}
		return scored
	}

	m := newMatcher(p)
	for idx, c := range candidates {
		scored = append(scored, m.score(c, idx))
	}
	return scored
}

type matcher struct {
	skills       map[string]bool
	background   map[string]bool
	interests    []string
	location     string
	wantsRemote  bool
	preferenceKW map[string]bool
}

func newMatcher(p *profile.Profile) *matcher {
	m := &matcher{
		skills:       make(map[string]bool, len(p.Skills)),
		background:   keywords(append(append([]string{p.Education, p.Experience}, p.Skills...), p.Interests...)...),
		location:     normalize(p.Location),
		preferenceKW: keywords(p.Preferences),
	}
	for _, s := range p.Skills {
		if n := normalize(s); n != "" {
			m.skills[n] = true
		}
	}
	for _, i := range p.Interests {
		if n := normalize(i); n != "" {
			m.interests = append(m.interests, n)
		}
	}
	m.wantsRemote = m.location == string(catalog.WorkRemote) || m.preferenceKW[string(catalog.WorkRemote)]
	return m
}

func (m *matcher) score(c *catalog.Candidate, idx int) Scored {
	var (
		coverage float64
		matched  []string
		related  []string
		missing  []string
	)
	for _, skill := range c.Skills {
		switch {
		case m.skills[normalize(skill)]:
			coverage++
			matched = append(matched, skill)
		case overlaps(keywords(skill), m.background):
			coverage += 0.5
			related = append(related, skill)
			missing = append(missing, skill)
		default:
			missing = append(missing, skill)
		}
	}
	if len(c.Skills) > 0 {
		coverage /= float64(len(c.Skills))
	}

	interest := m.interestIn(c)
	location := m.locationFit(c)
	preference := 0.0
	if overlaps(m.preferenceKW, keywords(string(c.Type), c.Location, c.Duration, c.Title)) {
		preference = 1
	}

	raw := weightSkills*coverage + weightInterest*boolScore(interest != "") + weightLocation*location + weightPreference*preference
	affinity := min(max(int(math.Round(raw)), 0), 100)
	category := Categorize(affinity)

	var lead string
	switch {
	case len(matched) > 0:
		lead = "Matches your skills: " + strings.Join(matched, ", ")
	case len(related) > 0:
		lead = "Builds on your background in " + strings.Join(related, ", ")
	case interest != "":
		lead = fmt.Sprintf("Aligns with your interest in %s", interest)
	case location > 0:
		lead = "Fits your location preference"
	default:
		lead = "Stretches beyond your current profile"
	}

	return Scored{
		Candidate:       c,
		Index:           idx,
		MatchPercentage: affinity,
		Category:        category,
		MatchReason:     lead + ". " + category.intent(),
		Matched:         matched,
		Missing:         missing,
	}
}

// interestIn returns the first interest the candidate relates to, or "".
func (m *matcher) interestIn(c *catalog.Candidate) string {
	text := normalize(strings.Join(append([]string{c.Title, c.Description}, c.Skills...), " "))
	textKW := keywords(text)
	for _, interest := range m.interests {
		if strings.Contains(text, interest) || overlaps(keywords(interest), textKW) {
			return interest
		}
	}
	return ""
}

func (m *matcher) locationFit(c *catalog.Candidate) float64 {
	if c.IsRemote() {
		switch {
		case m.wantsRemote:
			return 1
		case m.location != "":
			return 0.5
		default:
			return 0
		}
	}
	if m.location != "" && m.location == normalize(c.Location) {
		return 1
	}
	return 0
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
