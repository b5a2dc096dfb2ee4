package editor

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(context.Background(), nil, log.New(&bytes.Buffer{}, "", 0))
}

func validWork(title string) types.WorkExperience {
	return types.WorkExperience{
		JobTitle:    title,
		Company:     "Acme",
		Location:    "Remote",
		StartDate:   "2020-01",
		EndDate:     "2022-01",
		Description: []string{"Built things"},
	}
}

type fakeGenerator struct {
	bullets []string
	err     error
	got     []generation.BulletsRequest
	started chan struct{}
	block   chan struct{}
}

func (f *fakeGenerator) GenerateSummary(context.Context, generation.SummaryRequest) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeGenerator) GenerateBullets(_ context.Context, req generation.BulletsRequest) ([]string, error) {
	f.got = append(f.got, req)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.bullets, f.err
}

func TestEditor_CommitAddsWhenCreating(t *testing.T) {
	s := newStore(t)
	ed := NewWorkEditor(s, nil)

	_, editing := ed.Editing()
	assert.False(t, editing)

	id, err := ed.Commit(validWork("Engineer"))
	require.NoError(t, err)

	w, ok := s.WorkExperience(id)
	require.True(t, ok)
	assert.Equal(t, "Engineer", w.JobTitle)
	assert.Equal(t, types.WorkExperience{Description: []string{}}, ed.Draft())
}

func TestEditor_BeginEditAndCommitUpdates(t *testing.T) {
	s := newStore(t)
	first, _ := s.AddWorkExperience(validWork("A"))
	second, _ := s.AddWorkExperience(validWork("B"))

	ed := NewWorkEditor(s, nil)
	require.NoError(t, ed.BeginEdit(first))

	target, editing := ed.Editing()
	assert.True(t, editing)
	assert.Equal(t, first, target)

	draft := ed.Draft()
	draft.JobTitle = "A2"
	id, err := ed.Commit(draft)
	require.NoError(t, err)
	assert.Equal(t, first, id)

	work := s.Snapshot().ResumeData.WorkExperience
	require.Len(t, work, 2)
	assert.Equal(t, "A2", work[0].JobTitle)
	assert.Equal(t, second, work[1].ID)

	_, editing = ed.Editing()
	assert.False(t, editing)
}

func TestEditor_DraftIsDeepCopy(t *testing.T) {
	s := newStore(t)
	id, _ := s.AddWorkExperience(validWork("A"))

	ed := NewWorkEditor(s, nil)
	require.NoError(t, ed.BeginEdit(id))
	require.NoError(t, ed.UpdateBullet(0, "Rewritten"))
	ed.AddBullet()

	stored, _ := s.WorkExperience(id)
	assert.Equal(t, []string{"Built things"}, stored.Description)
	assert.Equal(t, []string{"Rewritten", ""}, ed.Draft().Description)
}

func TestEditor_BeginEditMissing(t *testing.T) {
	ed := NewEducationEditor(newStore(t), nil)
	assert.ErrorIs(t, ed.BeginEdit("nope"), store.ErrNotFound)
}

func TestEditor_ValidationFailureKeepsDraft(t *testing.T) {
	s := newStore(t)
	id, _ := s.AddEducation(types.Education{Degree: "BSc", School: "State U", Location: "NYC", GraduationDate: "2019"})

	ed := NewEducationEditor(s, nil)
	require.NoError(t, ed.BeginEdit(id))
	ed.Update(func(e *types.Education) { e.School = "" })

	_, err := ed.CommitDraft()
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "School is required", verr.Message("school"))

	target, editing := ed.Editing()
	assert.True(t, editing)
	assert.Equal(t, id, target)
	assert.Equal(t, "", ed.Draft().School)

	stored, _ := s.Education(id)
	assert.Equal(t, "State U", stored.School)
}

func TestEditor_Discard(t *testing.T) {
	s := newStore(t)
	id, _ := s.AddEducation(types.Education{Degree: "BSc", School: "State U", Location: "NYC", GraduationDate: "2019"})
	before := s.Snapshot()

	ed := NewEducationEditor(s, nil)
	require.NoError(t, ed.BeginEdit(id))
	ed.Update(func(e *types.Education) { e.Degree = "PhD" })
	ed.Discard()

	_, editing := ed.Editing()
	assert.False(t, editing)
	assert.Equal(t, types.Education{}, ed.Draft())
	assert.Equal(t, before, s.Snapshot())
}

func TestEditor_UpdateTargetRemoved(t *testing.T) {
	s := newStore(t)
	id, _ := s.AddWorkExperience(validWork("A"))

	ed := NewWorkEditor(s, nil)
	require.NoError(t, ed.BeginEdit(id))
	s.RemoveWorkExperience(id)

	_, err := ed.CommitDraft()
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, s.Snapshot().ResumeData.WorkExperience)
}

func TestWorkEditor_CurrentRoleCommitsPresent(t *testing.T) {
	s := newStore(t)
	ed := NewWorkEditor(s, nil)

	ed.Update(func(w *types.WorkExperience) { *w = validWork("Engineer") })
	ed.SetCurrentRole(true)
	assert.Equal(t, "Present", ed.Draft().EndDate)

	id, err := ed.CommitDraft()
	require.NoError(t, err)
	w, _ := s.WorkExperience(id)
	assert.True(t, w.IsCurrentRole)
	assert.Equal(t, "Present", w.EndDate)

	require.NoError(t, ed.BeginEdit(id))
	ed.SetCurrentRole(false)
	assert.Equal(t, "", ed.Draft().EndDate)
}

func TestWorkEditor_Bullets(t *testing.T) {
	ed := NewWorkEditor(newStore(t), nil)

	assert.Equal(t, 0, ed.AddBullet())
	assert.Equal(t, 1, ed.AddBullet())
	assert.Equal(t, 2, ed.AddBullet())
	require.NoError(t, ed.UpdateBullet(0, "one"))
	require.NoError(t, ed.UpdateBullet(1, "two"))
	require.NoError(t, ed.UpdateBullet(2, "three"))
	require.NoError(t, ed.RemoveBullet(1))

	assert.Equal(t, []string{"one", "three"}, ed.Draft().Description)
	assert.Error(t, ed.UpdateBullet(5, "x"))
	assert.Error(t, ed.RemoveBullet(-1))
}

func TestWorkEditor_GenerateBullets(t *testing.T) {
	s := newStore(t)
	ed := NewWorkEditor(s, nil)
	ed.Update(func(w *types.WorkExperience) {
		w.JobTitle = "Engineer"
		w.Company = "Acme"
	})
	gen := &fakeGenerator{bullets: []string{"Led X", "Built Y", "Shipped Z"}}

	bullets, err := ed.GenerateBullets(context.Background(), gen)
	require.NoError(t, err)
	assert.Equal(t, []string{"Led X", "Built Y", "Shipped Z"}, bullets)
	assert.Equal(t, bullets, ed.Draft().Description)
	assert.Empty(t, s.Snapshot().ResumeData.WorkExperience, "generation writes to the draft only")

	require.Len(t, gen.got, 1)
	assert.Equal(t, generation.DefaultResponsibilities, gen.got[0].Responsibilities)

	_, err = ed.GenerateBullets(context.Background(), gen)
	require.NoError(t, err)
	assert.Equal(t, "Led X; Built Y; Shipped Z", gen.got[1].Responsibilities)
}

func TestWorkEditor_GenerateBulletsRequiresTitleAndCompany(t *testing.T) {
	ed := NewWorkEditor(newStore(t), nil)
	ed.Update(func(w *types.WorkExperience) { w.JobTitle = "Engineer" })
	gen := &fakeGenerator{}

	_, err := ed.GenerateBullets(context.Background(), gen)
	assert.ErrorIs(t, err, generation.ErrMissingInput)
	assert.Empty(t, gen.got)
}

func TestWorkEditor_GenerateBulletsFailureKeepsDraft(t *testing.T) {
	ed := NewWorkEditor(newStore(t), nil)
	ed.Update(func(w *types.WorkExperience) { *w = validWork("Engineer") })

	_, err := ed.GenerateBullets(context.Background(), &fakeGenerator{err: errors.New("down")})
	assert.Error(t, err)
	assert.Equal(t, []string{"Built things"}, ed.Draft().Description)
}

func TestWorkEditor_GenerateBulletsInFlight(t *testing.T) {
	ed := NewWorkEditor(newStore(t), nil)
	ed.Update(func(w *types.WorkExperience) { *w = validWork("Engineer") })
	gen := &fakeGenerator{bullets: []string{"a"}, started: make(chan struct{}), block: make(chan struct{})}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = ed.GenerateBullets(context.Background(), gen)
	}()

	<-gen.started

	_, err := ed.GenerateBullets(context.Background(), gen)
	assert.ErrorIs(t, err, ErrGenerationInFlight)

	close(gen.block)
	wg.Wait()
	assert.Equal(t, []string{"a"}, ed.Draft().Description)
}

func TestSkillsEditor_DraftSkills(t *testing.T) {
	s := newStore(t)
	ed := NewSkillsEditor(s, nil)
	ed.SetCategory("Programming Languages")

	require.NoError(t, ed.AddSkillToDraft(" Go "))
	require.NoError(t, ed.AddSkillToDraft("Rust"))
	require.NoError(t, ed.AddSkillToDraft("   "))
	assert.ErrorIs(t, ed.AddSkillToDraft("Go"), store.ErrDuplicateSkill)
	assert.Equal(t, []string{"Go", "Rust"}, ed.Draft().Skills)

	ed.RemoveSkillFromDraft("Rust")
	ed.RemoveSkillFromDraft("Zig")
	assert.Equal(t, []string{"Go"}, ed.Draft().Skills)

	id, err := ed.CommitDraft()
	require.NoError(t, err)
	g, _ := s.SkillGroup(id)
	assert.Equal(t, "Programming Languages", g.Category)
	assert.Equal(t, []string{"Go"}, g.Skills)
}

func TestSkillsEditor_RequiresOneSkill(t *testing.T) {
	ed := NewSkillsEditor(newStore(t), nil)
	ed.SetCategory("Databases")

	_, err := ed.CommitDraft()
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "At least one skill is required", verr.Message("skills"))
}

func TestPersonalInfoEditor(t *testing.T) {
	s := newStore(t)
	s.UpdatePersonalInfo(types.PersonalInfoPatch{Summary: types.Ptr("Existing summary")})

	ed := NewPersonalInfoEditor(s, nil)
	assert.Equal(t, "Existing summary", ed.Draft().Summary)

	ed.Update(func(p *types.PersonalInfo) {
		p.FirstName = "Ann"
		p.LastName = "Lee"
		p.Email = "not-an-email"
		p.Phone = "555-0100"
		p.Location = "NYC"
	})

	err := ed.CommitDraft()
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid email", verr.Message("email"))
	assert.Equal(t, "", s.PersonalInfo().FirstName)

	ed.Update(func(p *types.PersonalInfo) { p.Email = "ann@example.com" })
	require.NoError(t, ed.CommitDraft())

	info := s.PersonalInfo()
	assert.Equal(t, "Ann", info.FirstName)
	assert.Equal(t, "Existing summary", info.Summary)

	ed.Update(func(p *types.PersonalInfo) { p.FirstName = "Changed" })
	ed.Discard()
	assert.Equal(t, "Ann", ed.Draft().FirstName)
}

func TestPersonalInfoEditor_KeepsSummaryStoredAfterLoad(t *testing.T) {
	s := newStore(t)
	ed := NewPersonalInfoEditor(s, nil)

	require.True(t, s.SetSummaryIf("", "Generated summary"))

	ed.Update(func(p *types.PersonalInfo) {
		p.FirstName = "Ann"
		p.LastName = "Lee"
		p.Email = "ann@example.com"
		p.Phone = "555-0100"
		p.Location = "NYC"
	})
	require.NoError(t, ed.CommitDraft())

	info := s.PersonalInfo()
	assert.Equal(t, "Ann", info.FirstName)
	assert.Equal(t, "Generated summary", info.Summary)
	assert.Equal(t, "Generated summary", ed.Draft().Summary)

	ed.Update(func(p *types.PersonalInfo) { p.Summary = "Edited by hand" })
	require.NoError(t, ed.CommitDraft())
	assert.Equal(t, "Edited by hand", s.PersonalInfo().Summary)
}
