package render

import (
	"strings"

	"resume-studio/resume/model"
)

// MatchExperience finds the generated entry for a profile company. Names match
// when either contains the other, ignoring case; a name shorter than
// minContainLen must appear as a whole word. With several candidates the first
// in list order wins.
func MatchExperience(company string, generated []model.EnhancedExperience) (model.EnhancedExperience, bool) {
	needle := normalizeCompany(company)
	if needle == "" {
		return model.EnhancedExperience{}, false
	}
	for _, g := range generated {
		candidate := normalizeCompany(g.Company)
		if candidate == "" {
			continue
		}
		if contains(candidate, needle) || contains(needle, candidate) {
			return g, true
		}
	}
	return model.EnhancedExperience{}, false
}

const minContainLen = 3

func contains(longer, shorter string) bool {
	if len([]rune(shorter)) >= minContainLen {
		return strings.Contains(longer, shorter)
	}
	for _, word := range strings.Fields(longer) {
		if word == shorter {
			return true
		}
	}
	return false
}

func normalizeCompany(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
