package ranking

import (
	"cmp"
	"slices"

	"github.com/spigell/internbuddy/internal/catalog"
)

// CourseSuggestion is a course that teaches skills the recommended internships ask for.
type CourseSuggestion struct {
	Course *catalog.Candidate `json:"course"`
	Index  int                `json:"index"`
	Covers []string           `json:"covers"`
}

// SuggestCourses ranks courses by how many missing skills of the recommendations they teach.
// Courses teaching none of them are left out. Ties keep pool order.
func SuggestCourses(results Results, courses *catalog.Pool, limit int) []CourseSuggestion {
	limit = max(limit, 0)

	var gaps []string
	seen := make(map[string]bool)
	for _, s := range results.All() {
		for _, skill := range s.Missing {
			n := normalize(skill)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			gaps = append(gaps, skill)
		}
	}

	var suggestions []CourseSuggestion
	for idx, course := range courses.All() {
		if course.Kind == catalog.KindInternship {
			continue
		}

		taught := make(map[string]bool, len(course.Skills))
		for _, skill := range course.Skills {
			taught[normalize(skill)] = true
		}
		taughtKW := keywords(course.Skills...)

		var covers []string
		for _, gap := range gaps {
			if taught[normalize(gap)] || overlaps(keywords(gap), taughtKW) {
				covers = append(covers, gap)
			}
		}
		if len(covers) == 0 {
			continue
		}

		suggestions = append(suggestions, CourseSuggestion{Course: course, Index: idx, Covers: covers})
	}

	slices.SortStableFunc(suggestions, func(a, b CourseSuggestion) int {
		if c := cmp.Compare(len(b.Covers), len(a.Covers)); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
