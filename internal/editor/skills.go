package editor

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
)

// SkillsEditor is the skill group editor with draft skill list helpers
type SkillsEditor struct {
	*Editor[types.SkillGroup]
}

// NewSkillsEditor returns a skill group editor
func NewSkillsEditor(s *store.Store, v *types.Validator) *SkillsEditor {
	return &SkillsEditor{Editor: New(SkillGroupBinding(s), v)}
}

// AddSkillToDraft trims skill and appends it to the draft. Blank input is ignored;
// an exact duplicate is rejected with store.ErrDuplicateSkill.
func (e *SkillsEditor) AddSkillToDraft(skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil
	}

	var err error
	e.Update(func(g *types.SkillGroup) {
		if g.HasSkill(skill) {
			err = &store.InvariantError{
				Message: fmt.Sprintf("skill %q already in draft", skill),
				Cause:   store.ErrDuplicateSkill,
			}
			return
		}
		g.Skills = append(g.Skills, skill)
	})
	return err
}

// RemoveSkillFromDraft removes skill from the draft if present
func (e *SkillsEditor) RemoveSkillFromDraft(skill string) {
	e.Update(func(g *types.SkillGroup) {
		kept := g.Skills[:0:0]
		for _, s := range g.Skills {
			if s != skill {
				kept = append(kept, s)
			}
		}
		g.Skills = kept
	})
}

// SetCategory sets the draft's category label
func (e *SkillsEditor) SetCategory(category string) {
	e.Update(func(g *types.SkillGroup) {
		g.Category = category
	})
}
