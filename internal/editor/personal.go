package editor

import (
	"sync"

	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
)

// PersonalInfoEditor edits the singleton personal info record. Commit merges rather than adds.
type PersonalInfoEditor struct {
	store     *store.Store
	validator *types.Validator

	mu    sync.Mutex
	draft types.PersonalInfo
	// summary the draft was loaded with
	baseSummary string
}

// NewPersonalInfoEditor returns an editor whose draft starts from the stored record
func NewPersonalInfoEditor(s *store.Store, v *types.Validator) *PersonalInfoEditor {
	if v == nil {
		v = types.NewValidator()
	}
	info := s.PersonalInfo()
	return &PersonalInfoEditor{store: s, validator: v, draft: info, baseSummary: info.Summary}
}

// Draft returns the current draft
func (e *PersonalInfoEditor) Draft() types.PersonalInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Update mutates the draft in place
func (e *PersonalInfoEditor) Update(fn func(draft *types.PersonalInfo)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.draft)
}

// Commit validates info and merges it into the store. The summary is only written when it differs
// from the one the draft was loaded with, so a generated summary stored meanwhile survives.
func (e *PersonalInfoEditor) Commit(info types.PersonalInfo) error {
	if err := e.validator.Validate(info); err != nil {
		return err
	}
	patch := info.PatchFrom()
	e.mu.Lock()
	if info.Summary == e.baseSummary {
		patch.Summary = nil
	}
	e.mu.Unlock()
	e.store.UpdatePersonalInfo(patch)
	e.Discard()
	return nil
}

// CommitDraft commits the current draft
func (e *PersonalInfoEditor) CommitDraft() error {
	return e.Commit(e.Draft())
}

// Discard reloads the draft from the store
func (e *PersonalInfoEditor) Discard() {
	info := e.store.PersonalInfo()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = info
	e.baseSummary = info.Summary
}
