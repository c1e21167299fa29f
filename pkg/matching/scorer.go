package matching

import (
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/nlp"
)

// Breakdown carries the overall score and its components, all in [0,100].
type Breakdown struct {
	Score      float32
	Skills     float32
	Domain     float32
	Experience float32
}

// Scorer computes how well a candidate fits a posting. The platform treats the
// formula as replaceable; only the output shape is fixed.
type Scorer interface {
	Score(p jobposting.JobPosting, candidate auth.User) Breakdown
}

// HeuristicScorer is the default formula: weighted mix of skill overlap,
// domain overlap and an experience ratio.
type HeuristicScorer struct {
	SkillsWeight     float32
	DomainWeight     float32
	ExperienceWeight float32
}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{
		SkillsWeight:     0.5,
		DomainWeight:     0.3,
		ExperienceWeight: 0.2,
	}
}

func (s *HeuristicScorer) Score(p jobposting.JobPosting, candidate auth.User) Breakdown {
	skills := overlapPercent(p.Skills, candidate.Skills)
	domain := overlapPercent(p.Domains, candidate.Domains)
	experience := experiencePercent(p.MinExperience, candidate.ExperienceYears)

	total := s.SkillsWeight + s.DomainWeight + s.ExperienceWeight
	if total <= 0 {
		return Breakdown{Skills: skills, Domain: domain, Experience: experience}
	}
	score := (skills*s.SkillsWeight + domain*s.DomainWeight + experience*s.ExperienceWeight) / total
	return Breakdown{
		Score:      score,
		Skills:     skills,
		Domain:     domain,
		Experience: experience,
	}
}

// overlapPercent measures how many required entries the candidate covers,
// counting alias spellings (go/golang, postgres/postgresql) as equal.
// No requirements means nothing to miss: 100.
func overlapPercent(required, owned []string) float32 {
	var total, got int
	ownedSet := nlp.SkillSet(owned)
	for _, req := range required {
		norm := nlp.NormalizeSkill(req)
		if norm == "" {
			continue
		}
		total++
		for _, v := range nlp.SkillVariants(req) {
			if _, ok := ownedSet[v]; ok {
				got++
				break
			}
		}
	}
	if total == 0 {
		return 100
	}
	return float32(got) / float32(total) * 100
}

// experiencePercent grades candidate years against the posting minimum:
// full marks at or above the minimum, proportional below it.
func experiencePercent(minYears, candidateYears int) float32 {
	if minYears <= 0 {
		return 100
	}
	if candidateYears >= minYears {
		return 100
	}
	if candidateYears <= 0 {
		return 0
	}
	return float32(candidateYears) / float32(minYears) * 100
}
