package render

import (
	"strings"

	"resume-studio/resume/model"
	"resume-studio/resume/skills"
)

// Section headings, in the order they appear.
const (
	HeadingSummary    = "SUMMARY"
	HeadingExperience = "PROFESSIONAL EXPERIENCE"
	HeadingEducation  = "EDUCATION"
	HeadingSkills     = "SKILLS"
)

type paraKind int

const (
	paraName paraKind = iota
	paraTitle
	paraHeading
	paraBody
	paraBullet
	paraRole
	paraMeta
)

type textRun struct {
	Text  string
	Style RunStyle
}

// paragraph is one block of the document before serialization. Trailing is
// right-aligned on the same line (used for dates).
type paragraph struct {
	Kind     paraKind
	Runs     []textRun
	Trailing string
}

func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	if p.Trailing != "" {
		b.WriteString("\t")
		b.WriteString(p.Trailing)
	}
	return b.String()
}

func plain(kind paraKind, style string, text string) paragraph {
	return paragraph{Kind: kind, Runs: []textRun{{Text: text, Style: StyleMap[style]}}}
}

// layout decides what goes on the page and in which order: header, contact
// block, summary, experience, education, skills. Empty sections are omitted.
func layout(profile model.Profile, generated model.GeneratedResume) []paragraph {
	var out []paragraph

	out = append(out, plain(paraName, "name", profile.FullName()))
	if title := strings.TrimSpace(profile.Title); title != "" {
		out = append(out, plain(paraTitle, "title", title))
	}
	out = append(out, contactBlock(profile)...)

	summary := strings.TrimSpace(generated.Summary)
	if summary == "" {
		summary = strings.TrimSpace(profile.Summary)
	}
	if summary != "" {
		out = append(out, plain(paraHeading, "sectionHeading", HeadingSummary))
		out = append(out, plain(paraBody, "body", summary))
	}

	if len(profile.Experience) > 0 {
		out = append(out, plain(paraHeading, "sectionHeading", HeadingExperience))
		for _, exp := range profile.Experience {
			out = append(out, experienceBlock(exp, generated.Experience)...)
		}
	}

	if len(profile.Education) > 0 {
		out = append(out, plain(paraHeading, "sectionHeading", HeadingEducation))
		for _, edu := range profile.Education {
			out = append(out, educationBlock(edu)...)
		}
	}

	if buckets := skills.Categorize(generated.Skills).Buckets(); len(buckets) > 0 {
		out = append(out, plain(paraHeading, "sectionHeading", HeadingSkills))
		for _, b := range buckets {
			out = append(out, paragraph{Kind: paraBody, Runs: []textRun{
				{Text: b.Name + ": ", Style: StyleMap["label"]},
				{Text: strings.Join(b.Skills, ", "), Style: StyleMap["body"]},
			}})
		}
	}
	return out
}

func contactBlock(p model.Profile) []paragraph {
	fields := []struct{ label, value string }{
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Location", p.Location},
		{"LinkedIn", p.LinkedIn},
		{"Website", p.Website},
	}
	var out []paragraph
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		out = append(out, paragraph{Kind: paraBullet, Runs: []textRun{
			{Text: f.label + ": ", Style: StyleMap["label"]},
			{Text: v, Style: StyleMap["body"]},
		}})
	}
	return out
}

// experienceBlock renders one profile entry. Company, address and dates come
// from the profile; bullets and an optional position come from the matched
// generated entry.
func experienceBlock(exp model.Experience, generated []model.EnhancedExperience) []paragraph {
	position := strings.TrimSpace(exp.Position)
	var bullets []string

	if match, ok := MatchExperience(exp.Company, generated); ok {
		if p := strings.TrimSpace(match.Position); p != "" {
			position = p
		}
		for _, d := range match.Descriptions {
			if d = strings.TrimSpace(d); d != "" {
				bullets = append(bullets, d)
			}
		}
	}
	if len(bullets) == 0 {
		if d := strings.TrimSpace(exp.Description); d != "" {
			bullets = []string{d}
		}
	}

	role := strings.TrimSpace(exp.Company)
	if position != "" {
		role = position + " | " + role
	}
	out := []paragraph{{
		Kind:     paraRole,
		Runs:     []textRun{{Text: role, Style: StyleMap["roleLine"]}},
		Trailing: FormatDateRange(exp.StartDate, exp.EndDate),
	}}
	if addr := strings.TrimSpace(exp.Address); addr != "" {
		out = append(out, plain(paraMeta, "meta", addr))
	}
	for _, b := range bullets {
		out = append(out, plain(paraBullet, "body", b))
	}
	return out
}

func educationBlock(edu model.Education) []paragraph {
	degree := strings.TrimSpace(edu.Degree)
	if field := strings.TrimSpace(edu.Field); field != "" {
		if degree != "" {
			degree += " in " + field
		} else {
			degree = field
		}
	}
	heading := strings.TrimSpace(edu.Institution)
	if degree != "" {
		heading = degree + " | " + heading
	}
	out := []paragraph{{
		Kind:     paraRole,
		Runs:     []textRun{{Text: heading, Style: StyleMap["roleLine"]}},
		Trailing: FormatDateRange(edu.StartDate, edu.EndDate),
	}}
	if addr := strings.TrimSpace(edu.Address); addr != "" {
		out = append(out, plain(paraMeta, "meta", addr))
	}
	return out
}
