package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "candidates.yaml", `
internships:
  - id: i1
    title: Data Analyst Intern
    organization: TechCorp India
    location: Bangalore
    type: hybrid
    skills: [Excel, SQL]
  - id: i2
    title: Marketing Trainee
    type: remote
courses:
  - id: c1
    title: Advanced Excel
    provider: SWAYAM
    skills: [Excel]
`)

	pool, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := pool.IDs(); !slices.Equal(got, []string{"i1", "i2", "c1"}) {
		t.Fatalf("unexpected pool order: %v", got)
	}

	first := pool.FindByID("i1")
	if first.Kind != KindInternship || first.Type != WorkHybrid || !slices.Equal(first.Skills, []string{"Excel", "SQL"}) {
		t.Fatalf("unexpected internship: %+v", first)
	}

	if course := pool.FindByID("c1"); course.Kind != KindCourse || course.Provider != "SWAYAM" {
		t.Fatalf("unexpected course: %+v", course)
	}

	if got := pool.OfKind(KindCourse).Len(); got != 1 {
		t.Fatalf("expected 1 course, got %d", got)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "candidates.json", `{"internships": [{"id": "i1", "title": "Intern", "skills": ["Go"]}]}`)

	pool, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Len() != 1 || pool.OfKind(KindCourse).Len() != 0 {
		t.Fatalf("unexpected pool: %v", pool.IDs())
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		expect  string
	}{
		{
			name:    "missing id",
			content: "internships:\n  - title: Nameless\n",
			expect:  "has no id",
		},
		{
			name:    "unknown work type",
			content: "internships:\n  - id: i1\n    type: underwater\n",
			expect:  "unknown work type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, "candidates.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExcludePreservesOrder(t *testing.T) {
	pool := NewPool(
		&Candidate{ID: "a"},
		&Candidate{ID: "b"},
		&Candidate{ID: "c"},
		&Candidate{ID: "d"},
	)

	removed := pool.Exclude([]string{"b", "x"})
	if !slices.Equal(removed, []string{"b"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if got := pool.IDs(); !slices.Equal(got, []string{"a", "c", "d"}) {
		t.Fatalf("unexpected pool after exclude: %v", got)
	}
}

func TestExcludeOrganizations(t *testing.T) {
	pool := NewPool(
		&Candidate{ID: "a", Organization: "GrowthLab"},
		&Candidate{ID: "b", Organization: "TechCorp India"},
	)

	removed := pool.ExcludeOrganizations([]string{" growthlab "})
	if !slices.Equal(removed, []string{"a"}) || pool.Len() != 1 {
		t.Fatalf("unexpected result: removed=%v left=%v", removed, pool.IDs())
	}
}

func TestDedupeKeepsFirst(t *testing.T) {
	pool := NewPool(
		&Candidate{ID: "a", Title: "first"},
		&Candidate{ID: "b"},
		&Candidate{ID: "a", Title: "second"},
	)

	dropped := pool.Dedupe()
	if !slices.Equal(dropped, []string{"a"}) {
		t.Fatalf("unexpected dropped ids: %v", dropped)
	}
	if pool.FindByID("a").Title != "first" || pool.Len() != 2 {
		t.Fatalf("unexpected pool after dedupe: %v", pool.IDs())
	}
}

func TestNilPool(t *testing.T) {
	var pool *Pool
	if pool.Len() != 0 || pool.All() != nil || pool.FindByID("a") != nil {
		t.Fatalf("nil pool should behave as empty")
	}
	if removed := pool.Exclude([]string{"a"}); removed != nil {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
}

func TestIsRemote(t *testing.T) {
	if !(&Candidate{Type: WorkRemote}).IsRemote() {
		t.Fatalf("remote work type should be remote")
	}
	if !(&Candidate{Location: " Remote "}).IsRemote() {
		t.Fatalf("remote location should be remote")
	}
	if (&Candidate{Type: WorkHybrid, Location: "Pune"}).IsRemote() {
		t.Fatalf("hybrid Pune internship is not remote")
	}
}

func loadFixture(t *testing.T) *Pool {
	t.Helper()

	pool, err := LoadFile(filepath.Join("testdata", "candidates.yaml"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return pool
}

func TestLoadFixture(t *testing.T) {
	pool := loadFixture(t)
	if pool.OfKind(KindInternship).Len() != 3 || pool.OfKind(KindCourse).Len() != 3 {
		t.Fatalf("unexpected fixture pool: %v", pool.IDs())
	}
	if c := pool.FindByID("int-digital-marketing"); c == nil || !c.IsRemote() {
		t.Fatalf("expected remote marketing internship, got %+v", c)
	}
}

func TestReportByOrganization(t *testing.T) {
	report := loadFixture(t).ReportByOrganization()

	entries, ok := report["GrowthLab"]
	if !ok || len(entries) != 1 {
		t.Fatalf("expected GrowthLab entry, got %v", report)
	}
	if entries[0]["type"] != "remote" {
		t.Fatalf("unexpected entry: %v", entries[0])
	}
	if len(report["SWAYAM"]) != 2 {
		t.Fatalf("expected courses grouped by provider, got %v", report["SWAYAM"])
	}
}

func TestExcludedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	empty, err := ReadExcludedFile(path)
	if err != nil {
		t.Fatalf("missing file should read as empty: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty.Items))
	}

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	empty.Append(NewPool(&Candidate{ID: "a", Title: "A"}).ToExcluded("asha", "not interested", now))
	if err := empty.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	loaded, err := ReadExcludedFile(path)
	if err != nil {
		t.Fatalf("read exclude file: %v", err)
	}
	loaded.Append(NewPool(&Candidate{ID: "a"}, &Candidate{ID: "b"}).ToExcluded("asha", "", now))
	if got := loaded.IDs(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("unexpected ids after append: %v", got)
	}
	if loaded.Items[0].Reason != "not interested" || !loaded.Items[0].ExcludedAt.Equal(now) {
		t.Fatalf("unexpected first entry: %+v", loaded.Items[0])
	}

	// Shorter content must fully replace the previous file.
	if err := (&Excluded{}).ToFile(path); err != nil {
		t.Fatalf("rewrite exclude file: %v", err)
	}
	again, err := ReadExcludedFile(path)
	if err != nil {
		t.Fatalf("read rewritten file: %v", err)
	}
	if len(again.Items) != 0 {
		t.Fatalf("expected empty list after rewrite, got %v", again.IDs())
	}
}

func TestReadExcludedFileEmpty(t *testing.T) {
	excluded, err := ReadExcludedFile(writeFile(t, "exclude.json", ""))
	if err != nil || len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %v, %v", excluded, err)
	}

	if _, err := ReadExcludedFile(writeFile(t, "broken.json", "{")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDumpToTmpFile(t *testing.T) {
	path, err := DumpToTmpFile(loadFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(data), `"id": "int-data-analyst"`) {
		t.Fatalf("dump does not contain sample candidate: %s", data)
	}
}
