package render

import (
	"strings"

	"resume-studio/internal/shared/util"
	"resume-studio/resume/model"
)

// FileName builds the download name for a generated resume according to the
// profile's preference. The full pattern needs both job title and company;
// otherwise the name-only pattern is used.
func FileName(profile model.Profile, jobTitle, companyName string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{profile.FirstName, profile.LastName} {
		if clean := util.FileNamePart(p); clean != "" {
			parts = append(parts, clean)
		}
	}
	base := strings.Join(parts, "_")
	if base == "" {
		base = "Resume"
	}

	if profile.FileNamePreference == model.FileNameNameOnly {
		return base + ".docx"
	}
	title := util.FileNamePart(jobTitle)
	company := util.FileNamePart(companyName)
	if title == "" || company == "" {
		return base + ".docx"
	}
	return base + "_" + title + "-" + company + ".docx"
}
