package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeKnownSkills(t *testing.T) {
	tests := []struct {
		skill string
		want  string
	}{
		{"React", BucketTechnical},
		{"Leadership", BucketSoft},
		{"Gardening", BucketOther},
		{"Go", BucketTechnical},
		{"PostgreSQL", BucketTechnical},
		{"Public Speaking", BucketSoft},
		{"Agile Project Management", BucketSoft},
		{"Cooking", BucketOther},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			got := Categorize([]string{tt.skill}).Buckets()
			if assert.Len(t, got, 1) {
				assert.Equal(t, tt.want, got[0].Name)
			}
		})
	}
}

func TestTechnicalWinsOverSoft(t *testing.T) {
	skill := "Agile Testing"
	assert.True(t, IsTechnical(skill))
	assert.True(t, IsSoft(skill))

	c := Categorize([]string{skill})
	assert.Equal(t, []string{skill}, c.Technical)
	assert.Empty(t, c.Soft)
}

func TestBucketsOrderAndOmitEmpty(t *testing.T) {
	c := Categorize([]string{"Gardening", "Leadership", "Docker", "  "})
	buckets := c.Buckets()

	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{BucketTechnical, BucketSoft, BucketOther}, names)

	only := Categorize([]string{"Gardening"}).Buckets()
	assert.Len(t, only, 1)
	assert.Equal(t, BucketOther, only[0].Name)
}

func TestGoWordBoundary(t *testing.T) {
	assert.False(t, IsTechnical("Good listener"))
	assert.False(t, IsTechnical("Community outreach"))
	assert.False(t, IsTechnical("Go-to-market strategy"))
	assert.True(t, IsTechnical("Go, Python"))
	assert.True(t, IsTechnical("Golang"))
}

func TestAmbiguousKeywordsNeedWholeWords(t *testing.T) {
	tests := []struct {
		skill string
		want  string
	}{
		{"Excellent communication", BucketSoft},
		{"Escalation Management", BucketOther},
		{"Expressive writing", BucketOther},
		{"Gin rummy", BucketOther},
		{"Revenue growth", BucketOther},
		{"Origin tracing", BucketOther},
		{"Excel", BucketTechnical},
		{"Scala", BucketTechnical},
		{"Node.js", BucketTechnical},
		{"Express.js", BucketTechnical},
		{"Gin", BucketTechnical},
		{"ReactJS", BucketTechnical},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			got := Categorize([]string{tt.skill}).Buckets()
			if assert.Len(t, got, 1) {
				assert.Equal(t, tt.want, got[0].Name)
			}
		})
	}
}
