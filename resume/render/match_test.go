package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-studio/resume/model"
)

func TestMatchExperience(t *testing.T) {
	generated := []model.EnhancedExperience{
		{Company: "Acme Corp", Descriptions: []string{"first"}},
		{Company: "ACME Corporation", Descriptions: []string{"second"}},
		{Company: "Initech", Descriptions: []string{"third"}},
	}

	got, ok := MatchExperience("Acme Corp Inc", generated)
	assert.True(t, ok)
	assert.Equal(t, []string{"first"}, got.Descriptions)

	got, ok = MatchExperience("initech", generated)
	assert.True(t, ok)
	assert.Equal(t, "Initech", got.Company)

	_, ok = MatchExperience("Globex", generated)
	assert.False(t, ok)

	_, ok = MatchExperience("  ", generated)
	assert.False(t, ok)
}

func TestMatchExperienceShorterProfileName(t *testing.T) {
	generated := []model.EnhancedExperience{{Company: "Umbrella Corp Ltd"}}
	_, ok := MatchExperience("umbrella  corp", generated)
	assert.True(t, ok)
}

func TestMatchExperienceShortNamesNeedWholeWord(t *testing.T) {
	generated := []model.EnhancedExperience{
		{Company: "Amazon", Descriptions: []string{"amazon"}},
		{Company: "A Cloud Guru", Descriptions: []string{"acg"}},
	}

	got, ok := MatchExperience("A", generated)
	assert.True(t, ok)
	assert.Equal(t, []string{"acg"}, got.Descriptions)

	_, ok = MatchExperience("Am", []model.EnhancedExperience{{Company: "Amazon"}})
	assert.False(t, ok)

	_, ok = MatchExperience("IBM", []model.EnhancedExperience{{Company: "IBM Research"}})
	assert.True(t, ok)

	_, ok = MatchExperience("Amazon Web Services", []model.EnhancedExperience{{Company: "A"}})
	assert.False(t, ok)
}
