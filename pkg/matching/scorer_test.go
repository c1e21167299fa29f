package matching

import (
	"testing"

	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
)

func TestHeuristicScorerBounds(t *testing.T) {
	s := NewHeuristicScorer()
	cases := []struct {
		name      string
		posting   jobposting.JobPosting
		candidate auth.User
	}{
		{"empty both", jobposting.JobPosting{}, auth.User{}},
		{
			"full overlap",
			jobposting.JobPosting{Skills: []string{"Go", "PostgreSQL"}, Domains: []string{"backend"}, MinExperience: 2},
			auth.User{Skills: []string{"golang", "postgres"}, Domains: []string{"backend"}, ExperienceYears: 5},
		},
		{
			"no overlap",
			jobposting.JobPosting{Skills: []string{"rust"}, Domains: []string{"embedded"}, MinExperience: 10},
			auth.User{Skills: []string{"php"}, Domains: []string{"web"}, ExperienceYears: 0},
		},
	}
	for _, tc := range cases {
		b := s.Score(tc.posting, tc.candidate)
		for _, v := range []float32{b.Score, b.Skills, b.Domain, b.Experience} {
			if v < 0 || v > 100 {
				t.Fatalf("%s: component out of [0,100]: %v", tc.name, b)
			}
		}
	}
}

func TestHeuristicScorerAliases(t *testing.T) {
	s := NewHeuristicScorer()
	p := jobposting.JobPosting{Skills: []string{"Go", "k8s"}}
	c := auth.User{Skills: []string{"Golang", "Kubernetes"}}

	b := s.Score(p, c)
	if b.Skills != 100 {
		t.Fatalf("alias spellings should count as covered, got skills=%v", b.Skills)
	}
}

func TestHeuristicScorerNoRequirementsIsFullMarks(t *testing.T) {
	s := NewHeuristicScorer()
	b := s.Score(jobposting.JobPosting{}, auth.User{})
	if b.Skills != 100 || b.Domain != 100 || b.Experience != 100 {
		t.Fatalf("empty requirements should score 100 everywhere, got %+v", b)
	}
	if b.Score != 100 {
		t.Fatalf("expected overall 100, got %v", b.Score)
	}
}

func TestExperiencePercentProportionalBelowMinimum(t *testing.T) {
	cases := []struct {
		min, years int
		want       float32
	}{
		{0, 0, 100},
		{4, 4, 100},
		{4, 8, 100},
		{4, 2, 50},
		{4, 0, 0},
		{4, -1, 0},
	}
	for _, tc := range cases {
		if got := experiencePercent(tc.min, tc.years); got != tc.want {
			t.Fatalf("experiencePercent(%d, %d) = %v, want %v", tc.min, tc.years, got, tc.want)
		}
	}
}

func TestHeuristicScorerWeights(t *testing.T) {
	s := &HeuristicScorer{SkillsWeight: 1, DomainWeight: 0, ExperienceWeight: 0}
	p := jobposting.JobPosting{Skills: []string{"go", "rust"}, Domains: []string{"embedded"}}
	c := auth.User{Skills: []string{"go"}}

	b := s.Score(p, c)
	if b.Score != b.Skills {
		t.Fatalf("skills-only weighting should equal skills component: score=%v skills=%v", b.Score, b.Skills)
	}
	if b.Skills != 50 {
		t.Fatalf("one of two required skills should be 50, got %v", b.Skills)
	}
}
