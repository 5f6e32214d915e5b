package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVData_JSONFieldNames(t *testing.T) {
	data := CVData{
		PersonalInfo: PersonalInfo{FullName: "Jane Doe", PhotoURL: "https://example.com/p.png"},
		WorkExperience: []WorkExperience{
			{ID: "1", JobTitle: "Engineer", Current: true, Responsibilities: []string{"Ship"}},
		},
		Skills: []Skill{{ID: "s1", Name: "Go", Level: SkillExpert}},
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"personalInfo"`)
	assert.Contains(t, s, `"fullName":"Jane Doe"`)
	assert.Contains(t, s, `"photoUrl"`)
	assert.Contains(t, s, `"workExperience"`)
	assert.Contains(t, s, `"current":true`)
	assert.Contains(t, s, `"level":"Expert"`)
}

func TestCVData_Clone_IsDeep(t *testing.T) {
	original := SampleCVData()
	clone := original.Clone()

	clone.WorkExperience[0].Responsibilities[0] = "changed"
	clone.Skills[0].Name = "Rust"
	clone.References = append(clone.References, Reference{ID: "ref-2"})

	assert.NotEqual(t, "changed", original.WorkExperience[0].Responsibilities[0])
	assert.Equal(t, "Go", original.Skills[0].Name)
	assert.Len(t, original.References, 1)
}

func TestCVData_Clone_PreservesNilCollections(t *testing.T) {
	clone := CVData{}.Clone()
	assert.Nil(t, clone.WorkExperience)
	assert.Empty(t, clone.Skills)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank("   \t\n"))
	assert.False(t, Blank(" x "))
}

func TestPersonalInfo_HasContact(t *testing.T) {
	assert.False(t, PersonalInfo{FullName: "Jane"}.HasContact())
	assert.True(t, PersonalInfo{Website: "jane.dev"}.HasContact())
	assert.False(t, PersonalInfo{Email: "  "}.HasContact())
}

func TestNewPlaceholderCVData(t *testing.T) {
	data := NewPlaceholderCVData()

	assert.Empty(t, data.PersonalInfo.FullName)
	assert.Empty(t, data.Summary)
	require.Len(t, data.WorkExperience, 1)
	assert.Empty(t, data.WorkExperience[0].JobTitle)
	require.Len(t, data.Education, 1)
	require.Len(t, data.Skills, 1)
	assert.Empty(t, data.Skills[0].Name)
	assert.Empty(t, data.Languages)
	assert.Empty(t, data.Certifications)
	assert.Empty(t, data.References)
}

func TestTemplateID_Known(t *testing.T) {
	for _, id := range TemplateIDs {
		assert.True(t, id.Known(), string(id))
	}
	assert.False(t, TemplateID("retro").Known())
}

func TestTemplate_Validate(t *testing.T) {
	valid := Template{ID: TemplateCreative, Columns: 2, Color: "blue"}
	assert.NoError(t, valid.Validate())

	unknown := Template{ID: "retro", Columns: 1}
	assert.Error(t, unknown.Validate())

	tooWide := Template{ID: TemplateMinimal, Columns: 3}
	assert.Error(t, tooWide.Validate())
}

func TestSelectTemplateRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SelectTemplateRequest{TemplateID: "minimal"}).Validate())
	assert.Error(t, (&SelectTemplateRequest{}).Validate())
	assert.Error(t, (&SelectTemplateRequest{TemplateID: "fancy"}).Validate())
}

func TestSetColorRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SetColorRequest{Color: "teal"}).Validate())
	assert.Error(t, (&SetColorRequest{}).Validate())
}
