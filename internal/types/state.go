// Package types provides type definitions for the resume data model shared by the store, editors and renderers.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Wizard step bounds
const (
	FirstStep = 0
	LastStep  = 4
)

// Theme is the persisted UI colour scheme
type Theme string

// Theme constants
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme. Unknown values toggle to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is everything persisted between sessions
type State struct {
	ResumeData  ResumeData `json:"resumeData"`
	CurrentStep int        `json:"currentStep"`
	Theme       Theme      `json:"theme"`
}

// NewState returns the fully-defined default state
func NewState() State {
	return State{
		ResumeData:  NewResumeData(),
		CurrentStep: FirstStep,
		Theme:       ThemeLight,
	}
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	s.ResumeData = s.ResumeData.Clone()
	return s
}

// ClampStep limits n to the wizard's step range
func ClampStep(n int) int {
	return max(FirstStep, min(LastStep, n))
}
