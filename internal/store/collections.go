package store

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// AddWorkExperience appends entry with a fresh id and returns the id.
// Any id on entry is ignored. The current-role/Present coupling is enforced.
func (s *Store) AddWorkExperience(entry types.WorkExperience) (string, error) {
	var id string
	err := s.commit(func(state *types.State) error {
		newID, err := s.issueID()
		if err != nil {
			return err
		}
		w := entry.Clone()
		w.ID = newID
		normalizeWork(&w)
		state.ResumeData.WorkExperience = append(state.ResumeData.WorkExperience, w)
		id = newID
		return nil
	})
	return id, err
}

// UpdateWorkExperience merges patch into the entry with the given id, keeping its position.
// It returns ErrNotFound without touching the collection when the id is absent.
func (s *Store) UpdateWorkExperience(id string, patch types.WorkExperiencePatch) error {
	return s.commit(func(state *types.State) error {
		i := indexOf(state.ResumeData.WorkExperience, id)
		if i < 0 {
			return fmt.Errorf("work experience %s: %w", id, ErrNotFound)
		}
		w := state.ResumeData.WorkExperience[i].Clone()
		applyWorkPatch(&w, patch)
		state.ResumeData.WorkExperience[i] = w
		return nil
	})
}

// RemoveWorkExperience deletes the entry with the given id. Absent ids are a no-op.
func (s *Store) RemoveWorkExperience(id string) {
	_ = s.commit(func(state *types.State) error {
		list, removed := removeByID(state.ResumeData.WorkExperience, id)
		if !removed {
			return errNoChange
		}
		state.ResumeData.WorkExperience = list
		return nil
	})
}

// WorkExperience returns a copy of the entry with the given id
func (s *Store) WorkExperience(id string) (types.WorkExperience, bool) {
	w, ok := findByID(s, func(st *types.State) []types.WorkExperience { return st.ResumeData.WorkExperience }, id)
	return w.Clone(), ok
}

// AddEducation appends entry with a fresh id and returns the id
func (s *Store) AddEducation(entry types.Education) (string, error) {
	var id string
	err := s.commit(func(state *types.State) error {
		newID, err := s.issueID()
		if err != nil {
			return err
		}
		e := entry
		e.ID = newID
		state.ResumeData.Education = append(state.ResumeData.Education, e)
		id = newID
		return nil
	})
	return id, err
}

// UpdateEducation merges patch into the entry with the given id, keeping its position
func (s *Store) UpdateEducation(id string, patch types.EducationPatch) error {
	return s.commit(func(state *types.State) error {
		i := indexOf(state.ResumeData.Education, id)
		if i < 0 {
			return fmt.Errorf("education %s: %w", id, ErrNotFound)
		}
		patch.Apply(&state.ResumeData.Education[i])
		return nil
	})
}

// RemoveEducation deletes the entry with the given id. Absent ids are a no-op.
func (s *Store) RemoveEducation(id string) {
	_ = s.commit(func(state *types.State) error {
		list, removed := removeByID(state.ResumeData.Education, id)
		if !removed {
			return errNoChange
		}
		state.ResumeData.Education = list
		return nil
	})
}

// Education returns a copy of the entry with the given id
func (s *Store) Education(id string) (types.Education, bool) {
	return findByID(s, func(st *types.State) []types.Education { return st.ResumeData.Education }, id)
}

// AddSkillGroup appends group with a fresh id and returns the id.
// Skills are trimmed; empty or duplicate skills reject the whole write.
func (s *Store) AddSkillGroup(group types.SkillGroup) (string, error) {
	skills, err := normalizeSkills(group.Category, group.Skills)
	if err != nil {
		return "", err
	}

	var id string
	err = s.commit(func(state *types.State) error {
		newID, err := s.issueID()
		if err != nil {
			return err
		}
		g := types.SkillGroup{ID: newID, Category: group.Category, Skills: skills}
		state.ResumeData.Skills = append(state.ResumeData.Skills, g)
		id = newID
		return nil
	})
	return id, err
}

// UpdateSkillGroup merges patch into the group with the given id, keeping its position
func (s *Store) UpdateSkillGroup(id string, patch types.SkillGroupPatch) error {
	if patch.Skills != nil {
		category := ""
		if patch.Category != nil {
			category = *patch.Category
		}
		skills, err := normalizeSkills(category, patch.Skills)
		if err != nil {
			return err
		}
		patch.Skills = skills
	}

	return s.commit(func(state *types.State) error {
		i := indexOf(state.ResumeData.Skills, id)
		if i < 0 {
			return fmt.Errorf("skill group %s: %w", id, ErrNotFound)
		}
		g := state.ResumeData.Skills[i].Clone()
		patch.Apply(&g)
		state.ResumeData.Skills[i] = g
		return nil
	})
}

// RemoveSkillGroup deletes the group with the given id. Absent ids are a no-op.
func (s *Store) RemoveSkillGroup(id string) {
	_ = s.commit(func(state *types.State) error {
		list, removed := removeByID(state.ResumeData.Skills, id)
		if !removed {
			return errNoChange
		}
		state.ResumeData.Skills = list
		return nil
	})
}

// SkillGroup returns a copy of the group with the given id
func (s *Store) SkillGroup(id string) (types.SkillGroup, bool) {
	g, ok := findByID(s, func(st *types.State) []types.SkillGroup { return st.ResumeData.Skills }, id)
	return g.Clone(), ok
}

// AddSkill appends one skill to a group. Exact duplicates (case-sensitive) and blank skills
// are rejected and leave the group unchanged.
func (s *Store) AddSkill(groupID, skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return &InvariantError{Message: "skills cannot be blank", Cause: ErrEmptySkill}
	}

	return s.commit(func(state *types.State) error {
		i := indexOf(state.ResumeData.Skills, groupID)
		if i < 0 {
			return fmt.Errorf("skill group %s: %w", groupID, ErrNotFound)
		}
		g := &state.ResumeData.Skills[i]
		if g.HasSkill(skill) {
			return &InvariantError{
				Message: fmt.Sprintf("skill %q already listed under %q", skill, g.Category),
				Cause:   ErrDuplicateSkill,
			}
		}
		g.Skills = append(g.Skills, skill)
		return nil
	})
}

// RemoveSkill deletes one skill from a group. A skill not in the group is a no-op.
func (s *Store) RemoveSkill(groupID, skill string) error {
	return s.commit(func(state *types.State) error {
		i := indexOf(state.ResumeData.Skills, groupID)
		if i < 0 {
			return fmt.Errorf("skill group %s: %w", groupID, ErrNotFound)
		}
		g := &state.ResumeData.Skills[i]
		for j, existing := range g.Skills {
			if existing == skill {
				g.Skills = append(g.Skills[:j:j], g.Skills[j+1:]...)
				return nil
			}
		}
		return errNoChange
	})
}

// normalizeWork enforces isCurrentRole <=> endDate == "Present"
func normalizeWork(w *types.WorkExperience) {
	if w.IsCurrentRole || w.EndDate == types.PresentEndDate {
		w.IsCurrentRole = true
		w.EndDate = types.PresentEndDate
	}
	if w.Description == nil {
		w.Description = []string{}
	}
}

// applyWorkPatch merges patch, letting whichever of isCurrentRole/endDate the patch names
// decide the other. An explicit isCurrentRole wins over an explicit endDate.
func applyWorkPatch(w *types.WorkExperience, patch types.WorkExperiencePatch) {
	patch.Apply(w)
	switch {
	case patch.IsCurrentRole != nil && !*patch.IsCurrentRole:
		if w.EndDate == types.PresentEndDate {
			w.EndDate = ""
		}
	case patch.IsCurrentRole == nil && patch.EndDate != nil:
		w.IsCurrentRole = *patch.EndDate == types.PresentEndDate
	}
	normalizeWork(w)
}

// normalizeSkills trims every skill and rejects blanks and exact duplicates
func normalizeSkills(category string, skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	for _, raw := range skills {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			return nil, &InvariantError{Message: "skills cannot be blank", Cause: ErrEmptySkill}
		}
		if (types.SkillGroup{Skills: out}).HasSkill(skill) {
			return nil, &InvariantError{
				Message: fmt.Sprintf("skill %q listed twice under %q", skill, category),
				Cause:   ErrDuplicateSkill,
			}
		}
		out = append(out, skill)
	}
	return out, nil
}

// normalizeLoaded repairs a restored state instead of rejecting it: the step is clamped,
// collections are allocated, ids are made unique, and entry invariants are re-applied.
func (s *Store) normalizeLoaded(state *types.State) {
	state.CurrentStep = types.ClampStep(state.CurrentStep)
	if state.Theme != types.ThemeDark {
		state.Theme = types.ThemeLight
	}

	data := &state.ResumeData
	if data.WorkExperience == nil {
		data.WorkExperience = []types.WorkExperience{}
	}
	if data.Education == nil {
		data.Education = []types.Education{}
	}
	if data.Skills == nil {
		data.Skills = []types.SkillGroup{}
	}

	for i := range data.WorkExperience {
		data.WorkExperience[i].ID = s.claimLoadedID(data.WorkExperience[i].ID)
		normalizeWork(&data.WorkExperience[i])
	}
	for i := range data.Education {
		data.Education[i].ID = s.claimLoadedID(data.Education[i].ID)
	}
	for i := range data.Skills {
		g := &data.Skills[i]
		g.ID = s.claimLoadedID(g.ID)
		kept := make([]string, 0, len(g.Skills))
		for _, raw := range g.Skills {
			skill := strings.TrimSpace(raw)
			if skill == "" || (types.SkillGroup{Skills: kept}).HasSkill(skill) {
				continue
			}
			kept = append(kept, skill)
		}
		g.Skills = kept
	}
}

// claimLoadedID keeps a restored id unless it is empty or already taken
func (s *Store) claimLoadedID(id string) string {
	if _, taken := s.issued[id]; id != "" && !taken {
		s.issued[id] = struct{}{}
		return id
	}
	fresh, err := s.issueID()
	if err != nil {
		s.logger.Printf("[store] failed to reissue id %q: %v", id, err)
		return id
	}
	return fresh
}
