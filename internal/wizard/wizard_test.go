package wizard

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizard(t *testing.T) (*Wizard, *store.Store) {
	t.Helper()
	s := store.New(context.Background(), nil, log.New(io.Discard, "", 0))
	return New(s, nil), s
}

func validPersonal() types.PersonalInfoPatch {
	return types.PersonalInfoPatch{
		FirstName: types.Ptr("Ann"),
		LastName:  types.Ptr("Lee"),
		Email:     types.Ptr("ann@example.com"),
		Phone:     types.Ptr("555-0100"),
		Location:  types.Ptr("NYC"),
	}
}

func TestNext_Gates(t *testing.T) {
	w, s := newWizard(t)

	_, err := w.Next()
	var gateErr *GateError
	require.ErrorAs(t, err, &gateErr)
	assert.Equal(t, "Personal Info", gateErr.Step.Name)
	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, s.CurrentStep())

	s.UpdatePersonalInfo(validPersonal())
	step, err := w.Next()
	require.NoError(t, err)
	assert.Equal(t, "Work Experience", step.Name)

	_, err = w.Next()
	require.ErrorAs(t, err, &gateErr)
	assert.Contains(t, err.Error(), "at least one work experience")

	_, err = s.AddWorkExperience(types.WorkExperience{JobTitle: "E", Company: "A", Location: "R", StartDate: "2020"})
	require.NoError(t, err)
	step, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, "Education", step.Name)

	_, err = w.Next()
	assert.ErrorAs(t, err, &gateErr)
	_, err = s.AddEducation(types.Education{Degree: "BSc", School: "U", Location: "X", GraduationDate: "2017"})
	require.NoError(t, err)
	step, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, "Skills", step.Name)

	_, err = w.Next()
	assert.ErrorAs(t, err, &gateErr)
	_, err = s.AddSkillGroup(types.SkillGroup{Category: "Languages", Skills: []string{"Go"}})
	require.NoError(t, err)
	step, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, "Preview", step.Name)

	_, err = w.Next()
	assert.ErrorIs(t, err, ErrLastStep)
	assert.Equal(t, types.LastStep, s.CurrentStep())
}

func TestBackAndJump(t *testing.T) {
	w, s := newWizard(t)

	assert.Equal(t, 0, w.Back().Index, "back on the first step stays put")

	assert.Equal(t, "Skills", w.Jump(3).Name, "jumping skips gates")
	assert.True(t, w.Completed(2))
	assert.False(t, w.Completed(3))

	assert.Equal(t, "Education", w.Back().Name)
	assert.Equal(t, "Preview", w.Jump(99).Name)
	assert.Equal(t, "Personal Info", w.Jump(-1).Name)
	assert.Equal(t, 0, s.CurrentStep())
}

func TestCurrent_FollowsStore(t *testing.T) {
	w, s := newWizard(t)
	s.SetCurrentStep(2)
	assert.Equal(t, "Education", w.Current().Name)
}
