package nlp

// skillAliases maps a normalized skill to the spellings that should count as
// the same skill. Small on purpose; extend as real data demands.
var skillAliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"react":      {"reactjs", "react js"},
	"reactjs":    {"react"},
	"node":       {"nodejs", "node js"},
	"nodejs":     {"node"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
}

// SkillVariants returns the normalized skill plus its known aliases,
// deduplicated, first entry being the canonical normalized form.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	for _, alias := range skillAliases[base] {
		a := NormalizeSkill(alias)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// SkillSet normalizes a list of skills into a set keyed by every variant, so a
// posting requirement matches whichever spelling the candidate used.
func SkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		for _, v := range SkillVariants(s) {
			set[v] = struct{}{}
		}
	}
	return set
}
