package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-studio/resume/model"
)

func TestTargetBulletsCycles(t *testing.T) {
	want := []int{7, 8, 9, 10, 11, 12, 7, 8}
	for i, w := range want {
		assert.Equal(t, w, TargetBullets(i), "index %d", i)
	}
}

func TestEnsureMinimumBulletsPadsToTarget(t *testing.T) {
	r := model.GeneratedResume{Experience: []model.EnhancedExperience{
		{Company: "A"},
		{Company: "B", Descriptions: []string{"Own bullet."}},
		{Company: "C", Descriptions: []string{"1", "2", "3", "4", "5", "6", "7"}},
	}}

	added := EnsureMinimumBullets(&r)

	assert.Len(t, r.Experience[0].Descriptions, 7)
	assert.Len(t, r.Experience[1].Descriptions, 8)
	assert.Equal(t, "Own bullet.", r.Experience[1].Descriptions[0])
	assert.Len(t, r.Experience[2].Descriptions, 7)
	assert.Equal(t, 14, added)
}

func TestEnsureMinimumBulletsSkipsDuplicates(t *testing.T) {
	r := model.GeneratedResume{Experience: []model.EnhancedExperience{
		{Company: "A", Descriptions: []string{genericBullets[0]}},
	}}

	EnsureMinimumBullets(&r)

	seen := map[string]int{}
	for _, d := range r.Experience[0].Descriptions {
		seen[d]++
	}
	for d, n := range seen {
		assert.Equal(t, 1, n, d)
	}
	assert.Len(t, r.Experience[0].Descriptions, 7)
}
