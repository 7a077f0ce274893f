package parser

import (
	"strings"

	"resume-studio/resume/model"
)

// MinBullets is the fewest descriptions an experience entry may end up with.
const MinBullets = 7

// genericBullets pads entries the model left short. Order matters: padding
// takes them front to back.
var genericBullets = []string{
	"Collaborated with cross-functional teams to deliver high-quality solutions on schedule.",
	"Participated in code reviews and contributed to team best practices and coding standards.",
	"Worked closely with stakeholders to gather requirements and translate them into technical specifications.",
	"Contributed to continuous improvement of development processes and team workflows.",
	"Troubleshot and resolved complex technical issues in production environments.",
	"Mentored junior team members and shared knowledge through documentation and pairing sessions.",
	"Maintained comprehensive documentation for systems, processes, and technical decisions.",
	"Participated in agile ceremonies including sprint planning, stand-ups, and retrospectives.",
	"Optimized existing workflows to improve efficiency and reduce operational overhead.",
	"Ensured compliance with security, quality, and regulatory standards across deliverables.",
	"Communicated project status, risks, and outcomes clearly to technical and non-technical audiences.",
	"Adapted quickly to new tools, technologies, and shifting business priorities.",
}

// TargetBullets is the padded length for the entry at index i: it cycles 7..12.
func TargetBullets(i int) int {
	if i < 0 {
		i = -i
	}
	return MinBullets + i%6
}

// EnsureMinimumBullets pads every entry with fewer than MinBullets
// descriptions up to TargetBullets(index). Entries already at the minimum are
// left alone. It returns how many bullets were appended.
func EnsureMinimumBullets(r *model.GeneratedResume) int {
	added := 0
	for i := range r.Experience {
		entry := &r.Experience[i]
		if len(entry.Descriptions) >= MinBullets {
			continue
		}
		target := TargetBullets(i)

		present := make(map[string]struct{}, len(entry.Descriptions))
		for _, d := range entry.Descriptions {
			present[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
		}
		for _, g := range genericBullets {
			if len(entry.Descriptions) >= target {
				break
			}
			if _, dup := present[strings.ToLower(g)]; dup {
				continue
			}
			entry.Descriptions = append(entry.Descriptions, g)
			added++
		}
	}
	return added
}
