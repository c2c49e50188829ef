package submission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFieldsSkipEmptyValues(t *testing.T) {
	form := StartupFounderForm{
		Base:          Base{Email: "a@b.com"},
		CompanyName:   "Acme",
		FounderName:   "Jane",
		IndustryFocus: "fintech",
		FundingStage:  "seed",
		TeamSize:      "2_5_people",
	}

	keys := make([]string, 0)
	for _, f := range form.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(
		t,
		[]string{"email", "companyName", "founderName", "industryFocus", "fundingStage", "teamSize"},
		keys,
	)
}

func TestDecodeFormRestoresVariant(t *testing.T) {
	form := StudentForm{
		Base:               Base{Email: "a@b.com", Message: "Interested in joining"},
		FullName:           "Jane",
		Institution:        "X U",
		StudyLevel:         "undergraduate",
		FieldOfStudy:       "CS",
		GraduationYear:     2026,
		InterestedPrograms: []string{"internship"},
		Skills:             []string{"programming"},
	}
	data, err := json.Marshal(form)
	require.Nil(t, err)

	decoded, err := DecodeForm(Student, data)
	require.Nil(t, err)
	assert.Equal(t, form, decoded)
	assert.Equal(t, "Jane", decoded.ContactName())
}

func TestDecodeFormUnknownType(t *testing.T) {
	_, err := DecodeForm(StakeholderUnknown, []byte("{}"))
	assert.ErrorIs(t, err, ErrInvalidStakeholderType)
}
