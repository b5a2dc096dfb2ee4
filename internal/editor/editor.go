// Package editor implements the section editors: draft state and an edit target over one store collection.
package editor

import (
	"fmt"
	"sync"

	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Binding connects an Editor to one collection in the store
type Binding[T any] struct {
	Kind   types.Kind
	Get    func(id string) (T, bool)
	Add    func(entry T) (string, error)
	Update func(id string, entry T) error
	Clone  func(entry T) T
	Blank  func() T
}

// Editor holds an uncommitted draft and the id it will update, if any.
// Drafts are deep copies; nothing reaches the store until Commit.
type Editor[T any] struct {
	binding   Binding[T]
	validator *types.Validator

	mu      sync.Mutex
	draft   T
	target  string
	editing bool
}

// New returns an editor in "creating new" mode with a blank draft
func New[T any](binding Binding[T], validator *types.Validator) *Editor[T] {
	if validator == nil {
		validator = types.NewValidator()
	}
	return &Editor[T]{
		binding:   binding,
		validator: validator,
		draft:     binding.Blank(),
	}
}

// Kind returns the section kind this editor writes
func (e *Editor[T]) Kind() types.Kind {
	return e.binding.Kind
}

// BeginEdit loads a deep copy of the entry into the draft and targets it for update
func (e *Editor[T]) BeginEdit(id string) error {
	entry, ok := e.binding.Get(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", e.binding.Kind, id, store.ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.binding.Clone(entry)
	e.target = id
	e.editing = true
	return nil
}

// Draft returns a copy of the current draft
func (e *Editor[T]) Draft() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.binding.Clone(e.draft)
}

// Update mutates the draft in place
func (e *Editor[T]) Update(fn func(draft *T)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.draft)
}

// Editing returns the target id when the editor is updating an existing entry
func (e *Editor[T]) Editing() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target, e.editing
}

// Commit validates data, then updates the target entry or adds a new one, and clears the draft.
// On any error the draft and target are kept so the form can be corrected.
func (e *Editor[T]) Commit(data T) (string, error) {
	if err := e.validator.Validate(data); err != nil {
		return "", err
	}

	e.mu.Lock()
	target, editing := e.target, e.editing
	e.mu.Unlock()

	id := target
	if editing {
		if err := e.binding.Update(target, data); err != nil {
			return "", err
		}
	} else {
		newID, err := e.binding.Add(data)
		if err != nil {
			return "", err
		}
		id = newID
	}

	e.Discard()
	return id, nil
}

// CommitDraft commits the current draft
func (e *Editor[T]) CommitDraft() (string, error) {
	return e.Commit(e.Draft())
}

// Discard drops the draft and edit target without touching the store
func (e *Editor[T]) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.binding.Blank()
	e.target = ""
	e.editing = false
}

// WorkExperienceBinding binds an editor to the store's work experience collection
func WorkExperienceBinding(s *store.Store) Binding[types.WorkExperience] {
	return Binding[types.WorkExperience]{
		Kind: types.KindWorkExperience,
		Get:  s.WorkExperience,
		Add:  s.AddWorkExperience,
		Update: func(id string, w types.WorkExperience) error {
			return s.UpdateWorkExperience(id, w.PatchFrom())
		},
		Clone: types.WorkExperience.Clone,
		Blank: func() types.WorkExperience {
			return types.WorkExperience{Description: []string{}}
		},
	}
}

// EducationBinding binds an editor to the store's education collection
func EducationBinding(s *store.Store) Binding[types.Education] {
	return Binding[types.Education]{
		Kind: types.KindEducation,
		Get:  s.Education,
		Add:  s.AddEducation,
		Update: func(id string, e types.Education) error {
			return s.UpdateEducation(id, e.PatchFrom())
		},
		Clone: types.Education.Clone,
		Blank: func() types.Education { return types.Education{} },
	}
}

// SkillGroupBinding binds an editor to the store's skill groups
func SkillGroupBinding(s *store.Store) Binding[types.SkillGroup] {
	return Binding[types.SkillGroup]{
		Kind: types.KindSkills,
		Get:  s.SkillGroup,
		Add:  s.AddSkillGroup,
		Update: func(id string, g types.SkillGroup) error {
			return s.UpdateSkillGroup(id, g.PatchFrom())
		},
		Clone: types.SkillGroup.Clone,
		Blank: func() types.SkillGroup { return types.SkillGroup{Skills: []string{}} },
	}
}

// NewEducationEditor returns an editor for education entries
func NewEducationEditor(s *store.Store, v *types.Validator) *Editor[types.Education] {
	return New(EducationBinding(s), v)
}
