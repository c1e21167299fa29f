package nlp

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Go  ", "go"},
		{"Node.js", "node js"},
		{"C++", "c"},
		{"REST-API", "rest api"},
		{"", ""},
		{"  !!  ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeText(tc.in); got != tc.want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSkillVariantsIncludeAliases(t *testing.T) {
	variants := SkillVariants("Golang")
	want := map[string]bool{"golang": false, "go": false}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Fatalf("expected variant %q in %v", v, variants)
		}
	}
}

func TestSkillSetMatchesEitherSpelling(t *testing.T) {
	set := SkillSet([]string{"PostgreSQL", "TypeScript"})
	for _, spelling := range []string{"postgres", "postgresql", "ts", "typescript"} {
		if _, ok := set[spelling]; !ok {
			t.Fatalf("expected %q in skill set", spelling)
		}
	}
}

func TestSkillVariantsEmptyInput(t *testing.T) {
	if got := SkillVariants("  "); len(got) != 0 {
		t.Fatalf("blank skill should have no variants, got %v", got)
	}
}
