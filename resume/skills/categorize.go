// Package skills splits a flat skill list into the buckets shown on a resume.
package skills

import (
	"regexp"
	"strings"
)

const (
	BucketTechnical = "Technical"
	BucketSoft      = "Soft Skills"
	BucketOther     = "Other"
)

// Bucket is one rendered skills group.
type Bucket struct {
	Name   string
	Skills []string
}

// Categories holds skills per bucket in input order.
type Categories struct {
	Technical []string
	Soft      []string
	Other     []string
}

// Buckets returns the non-empty buckets in display order.
func (c Categories) Buckets() []Bucket {
	var out []Bucket
	if len(c.Technical) > 0 {
		out = append(out, Bucket{Name: BucketTechnical, Skills: c.Technical})
	}
	if len(c.Soft) > 0 {
		out = append(out, Bucket{Name: BucketSoft, Skills: c.Soft})
	}
	if len(c.Other) > 0 {
		out = append(out, Bucket{Name: BucketOther, Skills: c.Other})
	}
	return out
}

// Ambiguous keywords are word-anchored. RE2 has no lookahead, so "go" must not be
// followed by a hyphen or word character, and "gin" counts only on its own.
var technicalPattern = regexp.MustCompile(`(?i)(` + strings.Join([]string{
	`javascript`, `typescript`, `python`, `\bjava\b`, `\bgo(?:$|[^\w-])`, `golang`, `\brust\b`, `\bruby\b`, `\bphp\b`,
	`\bswift\b`, `kotlin`, `\bscala\b`, `c\+\+`, `c#`, `\.net\b`, `\bsql\b`, `nosql`, `\bhtml`, `\bcss\b`, `\bsass\b`,
	`graphql`, `\brest\b`, `\bapis?\b`, `\breact(\.?js)?\b`, `\bangular\b`, `\bvue(\.?js)?\b`, `\bsvelte\b`, `next\.?js`,
	`\bnode(\.?js)?\b`, `\bexpress(\.?js)?\b`, `django`, `\bflask\b`, `fastapi`, `\bspring\b`, `\brails\b`, `laravel`,
	`^gin$`, `\bgin[- ](?:gonic|framework)\b`, `postgres`, `mysql`, `mongo`, `\bredis\b`, `elasticsearch`, `kafka`, `rabbitmq`, `dynamodb`, `sqlite`,
	`\boracle\b`, `\baws\b`, `\bazure\b`, `\bgcp\b`, `google cloud`, `docker`, `kubernetes`, `\bk8s\b`, `terraform`,
	`\bansible\b`, `jenkins`, `ci/cd`, `github actions`, `gitlab`, `\bgit\b`, `\blinux\b`, `\bbash\b`, `microservice`,
	`serverless`, `\blambda\b`, `machine learning`, `deep learning`, `\bml\b`, `\bai\b`, `tensorflow`, `pytorch`,
	`\bpandas\b`, `numpy`, `\bspark\b`, `hadoop`, `airflow`, `tableau`, `power bi`, `\bexcel\b`, `\bfigma\b`, `\bjira\b`,
	`webpack`, `\bvite\b`, `\bjest\b`, `cypress`, `selenium`, `testing`, `devops`, `grpc`, `protobuf`, `oauth`, `\bjwt\b`,
	`security`, `networking`, `blockchain`, `solidity`, `\bunity\b`, `flutter`, `android`, `\bios\b`, `salesforce`, `\bsap\b`,
}, "|") + `)`)

var softPattern = regexp.MustCompile(`(?i)(` + strings.Join([]string{
	`leadership`, `communication`, `teamwork`, `team player`, `collaboration`, `problem[- ]solving`,
	`critical thinking`, `time management`, `adaptability`, `flexibility`, `creativity`, `mentoring`, `mentorship`,
	`coaching`, `negotiation`, `presentation`, `public speaking`, `interpersonal`, `conflict resolution`,
	`decision[- ]making`, `emotional intelligence`, `empathy`, `organization`, `attention to detail`,
	`stakeholder`, `customer service`, `project management`, `agile`, `scrum`, `strategic`, `analytical`,
	`self[- ]motivated`, `work ethic`, `multitasking`, `delegation`, `planning`,
}, "|") + `)`)

// IsTechnical reports whether the skill matches the technical vocabulary.
func IsTechnical(skill string) bool { return technicalPattern.MatchString(skill) }

// IsSoft reports whether the skill matches the soft-skill vocabulary.
func IsSoft(skill string) bool { return softPattern.MatchString(skill) }

// Categorize assigns each skill to exactly one bucket. The technical check runs
// first, so a skill matching both vocabularies is technical.
func Categorize(list []string) Categories {
	var c Categories
	for _, raw := range list {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			continue
		}
		switch {
		case IsTechnical(skill):
			c.Technical = append(c.Technical, skill)
		case IsSoft(skill):
			c.Soft = append(c.Soft, skill)
		default:
			c.Other = append(c.Other, skill)
		}
	}
	return c
}
