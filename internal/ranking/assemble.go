package ranking

import (
	"cmp"
	"slices"

	"github.com/spigell/internbuddy/internal/catalog"
	"github.com/spigell/internbuddy/internal/profile"
)

// DefaultPerCategoryLimit is how many recommendations each category shows unless configured otherwise.
const DefaultPerCategoryLimit = 3

// Group holds the recommendations of one category, best first.
type Group struct {
	Category Category `json:"category"`
	Items    []Scored `json:"items"`
}

// Results always holds one group per category, in the order of Categories.
type Results struct {
	Groups []Group `json:"groups"`
}

// Group returns the group of category c.
func (r Results) Group(c Category) Group {
	for _, g := range r.Groups {
		if g.Category == c {
			return g
		}
	}
	return Group{Category: c}
}

// All returns every recommendation, group by group.
func (r Results) All() []Scored {
	var all []Scored
	for _, g := range r.Groups {
		all = append(all, g.Items...)
	}
	return all
}

// Len returns the number of recommendations across groups.
func (r Results) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Items)
	}
	return n
}

// Assemble dedupes scored candidates by id, orders them by match percentage
// (ties by pool index) and keeps at most perCategoryLimit per category.
// A negative limit behaves as zero.
func Assemble(scored []Scored, perCategoryLimit int) Results {
	limit := max(perCategoryLimit, 0)

	best := make(map[string]int, len(scored))
	unique := make([]Scored, 0, len(scored))
	for _, s := range scored {
		id := candidateID(s)
		pos, seen := best[id]
		if !seen {
			best[id] = len(unique)
			unique = append(unique, s)
			continue
		}
		if better(s, unique[pos]) {
			unique[pos] = s
		}
	}

	slices.SortStableFunc(unique, func(a, b Scored) int {
		if c := cmp.Compare(b.MatchPercentage, a.MatchPercentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	results := Results{Groups: make([]Group, 0, len(Categories))}
	for _, category := range Categories {
		group := Group{Category: category, Items: []Scored{}}
		for _, s := range unique {
			if len(group.Items) >= limit {
				break
			}
			if s.Category == category {
				group.Items = append(group.Items, s)
			}
		}
		results.Groups = append(results.Groups, group)
	}

	return results
}

// Rank is Assemble over Score of the pool's internships. Candidates of kind
// course are removed before scoring, so Index counts internships only.
// Courses are matched separately by SuggestCourses.
func Rank(p *profile.Profile, pool *catalog.Pool, perCategoryLimit int) Results {
	return Assemble(Score(p, internships(pool)), perCategoryLimit)
}

func internships(pool *catalog.Pool) *catalog.Pool {
	out := &catalog.Pool{}
	for _, c := range pool.All() {
		if c.Kind != catalog.KindCourse {
			out.Items = append(out.Items, c)
		}
	}
	return out
}

func candidateID(s Scored) string {
	if s.Candidate == nil {
		return ""
	}
	return s.Candidate.ID
}

func better(a, b Scored) bool {
	if a.MatchPercentage != b.MatchPercentage {
		return a.MatchPercentage > b.MatchPercentage
	}
	return a.Index < b.Index
}
