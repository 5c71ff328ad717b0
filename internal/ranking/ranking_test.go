package ranking

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/internbuddy/internal/catalog"
	"github.com/spigell/internbuddy/internal/profile"
)

type answers struct {
	name, education, location, preferences, experience string
	skills, interests                                  []string
}

func buildProfile(t *testing.T, a answers) *profile.Profile {
	t.Helper()

	p := &profile.Profile{}
	assign := func(f profile.Field, v profile.Value) {
		require.NoError(t, p.Assign(f, v))
	}
	if a.name != "" {
		assign(profile.FieldName, profile.Text(a.name))
	}
	if a.education != "" {
		assign(profile.FieldEducation, profile.Text(a.education))
	}
	if a.skills != nil {
		assign(profile.FieldSkills, profile.List(a.skills))
	}
	if a.location != "" {
		assign(profile.FieldLocation, profile.Text(a.location))
	}
	if a.preferences != "" {
		assign(profile.FieldPreferences, profile.Text(a.preferences))
	}
	if a.interests != nil {
		assign(profile.FieldInterests, profile.List(a.interests))
	}
	if a.experience != "" {
		assign(profile.FieldExperience, profile.Text(a.experience))
	}
	return p
}

func asha(t *testing.T) *profile.Profile {
	return buildProfile(t, answers{
		name:       "Asha",
		education:  "B.Tech",
		skills:     []string{"Excel", "SQL"},
		location:   "Bangalore",
		interests:  []string{"Data"},
		experience: "None",
	})
}

func samplePool(t *testing.T) *catalog.Pool {
	t.Helper()

	pool, err := catalog.LoadFile(filepath.Join("testdata", "candidates.yaml"))
	require.NoError(t, err)
	return pool
}

func scoredWith(id string, idx, pct int) Scored {
	return Scored{
		Candidate:       &catalog.Candidate{ID: id},
		Index:           idx,
		MatchPercentage: pct,
		Category:        Categorize(pct),
	}
}

func ids(items []Scored) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Candidate.ID)
	}
	return out
}

func TestCategorizeBoundaries(t *testing.T) {
	tests := []struct {
		affinity int
		expect   Category
	}{
		{affinity: 100, expect: BestFit},
		{affinity: 90, expect: BestFit},
		{affinity: 89, expect: SkillGrowth},
		{affinity: 75, expect: SkillGrowth},
		{affinity: 74, expect: Aspirational},
		{affinity: 0, expect: Aspirational},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.affinity), func(t *testing.T) {
			assert.Equal(t, tt.expect, Categorize(tt.affinity))
		})
	}
}

func TestScoreAshaAgainstSample(t *testing.T) {
	scored := Score(asha(t), samplePool(t).OfKind(catalog.KindInternship))
	require.Len(t, scored, 3)

	analyst := scored[0]
	assert.Equal(t, "int-data-analyst", analyst.Candidate.ID)
	assert.Equal(t, 83, analyst.MatchPercentage)
	assert.Equal(t, SkillGrowth, analyst.Category)
	assert.Equal(t, []string{"Excel", "SQL"}, analyst.Matched)
	assert.Equal(t, []string{"Data Analysis"}, analyst.Missing)
	assert.Equal(t, "Matches your skills: Excel, SQL. Great opportunity to learn new skills", analyst.MatchReason)

	marketing := scored[1]
	assert.Equal(t, 5, marketing.MatchPercentage)
	assert.Equal(t, Aspirational, marketing.Category)
	assert.True(t, strings.HasPrefix(marketing.MatchReason, "Fits your location preference"))

	research := scored[2]
	assert.Equal(t, 0, research.MatchPercentage)
	assert.Equal(t, "Stretches beyond your current profile. Aspirational pick to push your potential", research.MatchReason)
}

func TestScorePerfectMatch(t *testing.T) {
	p := buildProfile(t, answers{
		skills:      []string{" excel ", "data  analysis", "SQL"},
		location:    "bangalore",
		preferences: "Hybrid, short term",
		interests:   []string{"analyst"},
	})

	scored := Score(p, catalog.NewPool(samplePool(t).FindByID("int-data-analyst")))
	require.Len(t, scored, 1)
	assert.Equal(t, 100, scored[0].MatchPercentage)
	assert.Equal(t, BestFit, scored[0].Category)
	assert.Empty(t, scored[0].Missing)
	assert.Contains(t, scored[0].MatchReason, "Perfect match for your profile")
}

func TestScoreRemotePreference(t *testing.T) {
	remote := catalog.NewPool(&catalog.Candidate{ID: "r", Title: "Writer", Type: catalog.WorkRemote, Location: "Remote"})

	wantsRemote := buildProfile(t, answers{location: "Remote"})
	assert.Equal(t, 10, Score(wantsRemote, remote)[0].MatchPercentage)

	prefersRemote := buildProfile(t, answers{location: "Pune", preferences: "remote only"})
	// Location 10 plus preference 5 for the shared "remote" keyword.
	assert.Equal(t, 15, Score(prefersRemote, remote)[0].MatchPercentage)

	elsewhere := buildProfile(t, answers{location: "Pune"})
	assert.Equal(t, 5, Score(elsewhere, remote)[0].MatchPercentage)
}

func TestScoreRelatedBackground(t *testing.T) {
	p := buildProfile(t, answers{education: "Statistics", interests: []string{"finance"}})
	pool := catalog.NewPool(&catalog.Candidate{ID: "x", Title: "Risk Intern", Skills: []string{"Applied Statistics"}})

	scored := Score(p, pool)[0]
	assert.Equal(t, 35, scored.MatchPercentage)
	assert.Equal(t, "Builds on your background in Applied Statistics. Aspirational pick to push your potential", scored.MatchReason)
}

func TestScoreEmptyProfile(t *testing.T) {
	for name, p := range map[string]*profile.Profile{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			scored := Score(p, samplePool(t))
			require.Len(t, scored, samplePool(t).Len())
			for _, s := range scored {
				assert.Equal(t, 0, s.MatchPercentage)
				assert.Equal(t, Aspirational, s.Category)
				assert.Contains(t, s.MatchReason, "profile is empty")
			}
		})
	}
}

func TestScorePlainDataProfile(t *testing.T) {
	pool := catalog.NewPool(&catalog.Candidate{
		ID:       "analyst",
		Kind:     catalog.KindInternship,
		Title:    "Analyst",
		Location: "Bangalore",
		Skills:   []string{"Excel", "SQL"},
	})

	literal := &profile.Profile{Skills: []string{"Excel", "SQL"}, Location: "Bangalore"}

	decoded := &profile.Profile{}
	require.NoError(t, json.Unmarshal([]byte(`{"skills":["Excel","SQL"],"location":"Bangalore"}`), decoded))

	assigned := buildProfile(t, answers{skills: []string{"Excel", "SQL"}, location: "Bangalore"})

	want := Score(assigned, pool)[0]
	require.Positive(t, want.MatchPercentage)
	assert.NotEqual(t, emptyProfileReason, want.MatchReason)
	assert.Contains(t, want.MatchReason, "Matches your skills: Excel, SQL")

	for name, p := range map[string]*profile.Profile{"literal": literal, "json": decoded} {
		t.Run(name, func(t *testing.T) {
			got := Score(p, pool)[0]
			assert.Equal(t, want.MatchPercentage, got.MatchPercentage)
			assert.Equal(t, want.Category, got.Category)
			assert.Equal(t, want.MatchReason, got.MatchReason)
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	p := asha(t)
	pool := samplePool(t)
	first := Score(p, pool)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, Score(p, pool))
		}()
	}
	wg.Wait()
}

func TestScoreWithoutRequiredSkills(t *testing.T) {
	p := buildProfile(t, answers{skills: []string{"Go"}})
	scored := Score(p, catalog.NewPool(&catalog.Candidate{ID: "open", Title: "Open role"}))
	assert.Equal(t, 0, scored[0].MatchPercentage)
}

func TestAssembleOrdersAndGroups(t *testing.T) {
	results := Assemble([]Scored{
		scoredWith("a", 0, 76),
		scoredWith("b", 1, 95),
		scoredWith("c", 2, 91),
		scoredWith("d", 3, 91),
		scoredWith("e", 4, 10),
	}, DefaultPerCategoryLimit)

	require.Len(t, results.Groups, 3)
	assert.Equal(t, []Category{BestFit, SkillGrowth, Aspirational}, []Category{
		results.Groups[0].Category, results.Groups[1].Category, results.Groups[2].Category,
	})
	assert.Equal(t, []string{"b", "c", "d"}, ids(results.Group(BestFit).Items))
	assert.Equal(t, []string{"a"}, ids(results.Group(SkillGrowth).Items))
	assert.Equal(t, []string{"e"}, ids(results.Group(Aspirational).Items))
	assert.Equal(t, 5, results.Len())
}

func TestAssembleTieBreaksByPoolIndex(t *testing.T) {
	results := Assemble([]Scored{
		scoredWith("late", 7, 80),
		scoredWith("early", 2, 80),
	}, 5)

	assert.Equal(t, []string{"early", "late"}, ids(results.Group(SkillGrowth).Items))
}

func TestAssembleLimits(t *testing.T) {
	scored := []Scored{
		scoredWith("a", 0, 99),
		scoredWith("b", 1, 98),
		scoredWith("c", 2, 97),
		scoredWith("d", 3, 50),
	}

	one := Assemble(scored, 1)
	assert.Equal(t, []string{"a"}, ids(one.Group(BestFit).Items))
	assert.Equal(t, []string{"d"}, ids(one.Group(Aspirational).Items))

	for _, limit := range []int{0, -3} {
		results := Assemble(scored, limit)
		require.Len(t, results.Groups, 3)
		assert.Zero(t, results.Len())
		for _, g := range results.Groups {
			assert.NotNil(t, g.Items)
		}
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	results := Assemble(nil, DefaultPerCategoryLimit)
	require.Len(t, results.Groups, 3)
	assert.Zero(t, results.Len())
}

func TestAssembleDedupesKeepingBest(t *testing.T) {
	results := Assemble([]Scored{
		scoredWith("a", 0, 60),
		scoredWith("a", 1, 92),
		scoredWith("b", 2, 80),
		scoredWith("b", 3, 80),
	}, 5)

	assert.Equal(t, []string{"a"}, ids(results.Group(BestFit).Items))
	require.Len(t, results.Group(SkillGrowth).Items, 1)
	assert.Equal(t, 2, results.Group(SkillGrowth).Items[0].Index)
	assert.Empty(t, results.Group(Aspirational).Items)
}

func TestRankSkipsCourses(t *testing.T) {
	results := Rank(asha(t), samplePool(t), DefaultPerCategoryLimit)

	assert.Equal(t, 3, results.Len())
	for _, s := range results.All() {
		assert.Equal(t, catalog.KindInternship, s.Candidate.Kind)
	}
	assert.Empty(t, results.Group(BestFit).Items)
	assert.Equal(t, []string{"int-data-analyst"}, ids(results.Group(SkillGrowth).Items))
	assert.Equal(t, []string{"int-digital-marketing", "int-ai-research"}, ids(results.Group(Aspirational).Items))

	pool := samplePool(t)
	assert.Equal(t, Assemble(Score(asha(t), pool.OfKind(catalog.KindInternship)), DefaultPerCategoryLimit), Rank(asha(t), pool, DefaultPerCategoryLimit))
}

func TestSuggestCourses(t *testing.T) {
	results := Rank(asha(t), samplePool(t), DefaultPerCategoryLimit)
	courses := samplePool(t).OfKind(catalog.KindCourse)

	suggestions := SuggestCourses(results, courses, 2)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "course-digital-marketing", suggestions[0].Course.ID)
	assert.Equal(t, []string{"Social Media", "Content Creation", "Analytics"}, suggestions[0].Covers)
	assert.Equal(t, "course-intro-ml", suggestions[1].Course.ID)

	all := SuggestCourses(results, courses, 10)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Data Analysis"}, all[2].Covers)

	assert.Empty(t, SuggestCourses(results, courses, -1))
	assert.Empty(t, SuggestCourses(Results{}, courses, 3))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Best Fit", Label("en", BestFit))
	assert.Equal(t, "कौशल विकास", Label("hi-IN", SkillGrowth))
	assert.Equal(t, "Aspirational Pick", Label("ta", Aspirational))
	assert.Equal(t, "unknown", Label("en", Category("unknown")))
}

func TestReportByCategory(t *testing.T) {
	report := Rank(asha(t), samplePool(t), DefaultPerCategoryLimit).ReportByCategory("en")

	require.Len(t, report, 3)
	assert.Empty(t, report["Best Fit"])
	require.Len(t, report["Skill Growth"], 1)
	assert.Equal(t, "83%", report["Skill Growth"][0]["match"])
	assert.Equal(t, "Bangalore (hybrid)", report["Skill Growth"][0]["location"])
}
