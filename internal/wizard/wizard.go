// Package wizard is the navigation controller: the five wizard steps, their continue gates, and
// the sidebar jump.
package wizard

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Step is one page of the wizard
type Step struct {
	Index       int
	Name        string
	Description string
}

// Steps in wizard order
var Steps = []Step{
	{Index: 0, Name: "Personal Info", Description: "Basic information"},
	{Index: 1, Name: "Work Experience", Description: "Employment history"},
	{Index: 2, Name: "Education", Description: "Academic background"},
	{Index: 3, Name: "Skills", Description: "Technical & soft skills"},
	{Index: 4, Name: "Preview", Description: "Review your resume"},
}

// ErrLastStep is returned by Next on the preview step
var ErrLastStep = errors.New("already on the last step")

// GateError explains why the wizard cannot continue past a step
type GateError struct {
	Step   Step
	Reason string
	Cause  error
}

func (e *GateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot continue from %s: %s: %v", e.Step.Name, e.Reason, e.Cause)
	}
	return fmt.Sprintf("cannot continue from %s: %s", e.Step.Name, e.Reason)
}

func (e *GateError) Unwrap() error {
	return e.Cause
}

// Wizard moves the store's current step
type Wizard struct {
	store     *store.Store
	validator *types.Validator
}

// New returns a Wizard over s
func New(s *store.Store, v *types.Validator) *Wizard {
	if v == nil {
		v = types.NewValidator()
	}
	return &Wizard{store: s, validator: v}
}

// Current returns the active step
func (w *Wizard) Current() Step {
	return Steps[types.ClampStep(w.store.CurrentStep())]
}

// Gate returns nil when the current step's continue condition holds
func (w *Wizard) Gate() error {
	step := w.Current()
	data := w.store.Snapshot().ResumeData
	switch step.Index {
	case 0:
		if err := w.validator.Validate(data.PersonalInfo); err != nil {
			return &GateError{Step: step, Reason: "personal information is incomplete", Cause: err}
		}
	case 1:
		if len(data.WorkExperience) == 0 {
			return &GateError{Step: step, Reason: "add at least one work experience"}
		}
	case 2:
		if len(data.Education) == 0 {
			return &GateError{Step: step, Reason: "add at least one education entry"}
		}
	case 3:
		if len(data.Skills) == 0 {
			return &GateError{Step: step, Reason: "add at least one skill category"}
		}
	case types.LastStep:
		return ErrLastStep
	}
	return nil
}

// Next advances one step if the current step's gate passes
func (w *Wizard) Next() (Step, error) {
	if err := w.Gate(); err != nil {
		return w.Current(), err
	}
	return Steps[w.store.SetCurrentStep(w.store.CurrentStep()+1)], nil
}

// Back moves one step back. On the first step it stays put.
func (w *Wizard) Back() Step {
	return Steps[w.store.SetCurrentStep(w.store.CurrentStep()-1)]
}

// Jump moves to step n without checking gates, clamped to the valid range
func (w *Wizard) Jump(n int) Step {
	return Steps[w.store.SetCurrentStep(n)]
}

// Completed reports whether step i is before the current step
func (w *Wizard) Completed(i int) bool {
	return i < w.store.CurrentStep()
}
