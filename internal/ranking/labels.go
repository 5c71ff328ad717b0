package ranking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/internbuddy/internal/locale"
)

var labels = func() *locale.Table[map[Category]string] {
	t := locale.NewTable[map[Category]string]("en")
	t.Set("en", map[Category]string{
		BestFit:      "Best Fit",
		SkillGrowth:  "Skill Growth",
		Aspirational: "Aspirational Pick",
	})
	t.Set("hi", map[Category]string{
		BestFit:      "सबसे अच्छा फिट",
		SkillGrowth:  "कौशल विकास",
		Aspirational: "आकांक्षी चुनाव",
	})
	return t
}()

// Label returns the display name of c in the given locale, falling back to English.
func Label(loc string, c Category) string {
	table, _, _ := labels.Lookup(loc)
	if label, ok := table[c]; ok {
		return label
	}
	return string(c)
}

// ReportByCategory renders the results for display, keyed by localized category label.
func (r Results) ReportByCategory(loc string) map[string][]map[string]string {
	report := make(map[string][]map[string]string, len(r.Groups))
	for _, g := range r.Groups {
		key := Label(loc, g.Category)
		report[key] = []map[string]string{}
		for _, s := range g.Items {
			c := s.Candidate
			report[key] = append(report[key], map[string]string{
				"id":           c.ID,
				"title":        c.Title,
				"organization": c.Organization,
				"location":     fmt.Sprintf("%s (%s)", c.Location, c.Type),
				"duration":     c.Duration,
				"stipend":      c.Stipend,
				"match":        strconv.Itoa(s.MatchPercentage) + "%",
				"reason":       s.MatchReason,
				"skills":       strings.Join(c.Skills, ", "),
			})
		}
	}
	return report
}
