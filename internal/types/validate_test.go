//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_PersonalInfo(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		info      PersonalInfo
		wantField string
		wantMsg   string
	}{
		{
			name: "valid info",
			info: PersonalInfo{
				FirstName: "Ann",
				LastName:  "Lee",
				Email:     "ann@example.com",
				Phone:     "555-0100",
				Location:  "NYC",
			},
		},
		{
			name: "optional fields may be empty",
			info: PersonalInfo{
				FirstName: "Ann",
				LastName:  "Lee",
				Email:     "ann@example.com",
				Phone:     "555-0100",
				Location:  "NYC",
				LinkedIn:  "",
				Website:   "",
				Summary:   "",
			},
		},
		{
			name: "malformed email",
			info: PersonalInfo{
				FirstName: "Ann",
				LastName:  "Lee",
				Email:     "not-an-email",
				Phone:     "555-0100",
				Location:  "NYC",
			},
			wantField: "email",
			wantMsg:   "Please enter a valid email",
		},
		{
			name: "missing first name",
			info: PersonalInfo{
				LastName: "Lee",
				Email:    "ann@example.com",
				Phone:    "555-0100",
				Location: "NYC",
			},
			wantField: "firstName",
			wantMsg:   "First name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.info)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, KindPersonalInfo, ve.Kind)
			assert.Equal(t, tt.wantMsg, ve.Message(tt.wantField))
		})
	}
}

func TestValidator_WorkExperience_RequiredFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(WorkExperience{Location: "Remote", StartDate: "2020-01"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	assert.Equal(t, "Job title is required", ve.Message("jobTitle"))
	assert.Equal(t, "Company is required", ve.Message("company"))
	assert.Empty(t, ve.Message("location"))
	assert.Empty(t, ve.Message("endDate"), "end date is optional")
}

func TestValidator_Education_RequiredFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&Education{Degree: "BSc"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
	assert.Equal(t, "Graduation date is required", ve.Message("graduationDate"))
}

func TestValidator_SkillGroup(t *testing.T) {
	v := NewValidator()

	t.Run("valid group", func(t *testing.T) {
		assert.NotPanics(t, func() {
			assert.NoError(t, v.Validate(SkillGroup{Category: "Databases", Skills: []string{"Postgres", "Redis"}}))
		})
	})

	t.Run("at least one skill", func(t *testing.T) {
		err := v.Validate(SkillGroup{Category: "Databases", Skills: []string{}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "At least one skill is required", ve.Message("skills"))
	})

	t.Run("blank skill", func(t *testing.T) {
		err := v.Validate(SkillGroup{Category: "Databases", Skills: []string{"Postgres", "  "}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Skills cannot be blank", ve.Message("skills"))
	})

	t.Run("category outside the recommended set is allowed", func(t *testing.T) {
		err := v.Validate(SkillGroup{Category: "Hobbies", Skills: []string{"Chess"}})
		assert.NoError(t, err)
	})
}

func TestValidator_UnsupportedType(t *testing.T) {
	err := NewValidator().Validate("nope")
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.False(t, ok)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Kind: KindEducation,
		Errors: []FieldError{
			{Field: "degree", Message: "Degree is required"},
			{Field: "school", Message: "School is required"},
		},
	}
	assert.Equal(t, "invalid education: degree: Degree is required; school: School is required", err.Error())
}
