// Package generation is the text generation collaborator: professional summaries and job bullets.
package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-wizard/internal/types"
)

// DefaultResponsibilities is sent when a role has no description to work from
const DefaultResponsibilities = "Generate professional bullet points for this role"

// ErrMissingInput is returned when a request lacks the fields generation needs
var ErrMissingInput = errors.New("missing required input")

// SummaryRequest is the body of a generate-summary call
type SummaryRequest struct {
	PersonalInfo *types.PersonalInfo    `json:"personalInfo"`
	Experience   []types.WorkExperience `json:"experience"`
	Education    []types.Education      `json:"education"`
}

// SummaryResponse is the body returned by a generate-summary call
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// BulletsRequest is the body of a generate-bullets call
type BulletsRequest struct {
	JobTitle         string `json:"jobTitle"`
	Company          string `json:"company"`
	Responsibilities string `json:"responsibilities"`
}

// BulletsResponse is the body returned by a generate-bullets call
type BulletsResponse struct {
	Bullets []string `json:"bullets"`
}

// Generator produces resume text. Implementations do not touch the store.
type Generator interface {
	GenerateSummary(ctx context.Context, req SummaryRequest) (string, error)
	GenerateBullets(ctx context.Context, req BulletsRequest) ([]string, error)
}

// Validate reports ErrMissingInput when personal info is absent
func (r SummaryRequest) Validate() error {
	if r.PersonalInfo == nil {
		return fmt.Errorf("personal information is required: %w", ErrMissingInput)
	}
	return nil
}

// Validate reports ErrMissingInput when job title or company is empty
func (r BulletsRequest) Validate() error {
	if r.JobTitle == "" || r.Company == "" {
		return fmt.Errorf("job title and company are required: %w", ErrMissingInput)
	}
	return nil
}

// NewSummaryRequest builds a request from the current resume data
func NewSummaryRequest(data types.ResumeData) SummaryRequest {
	info := data.PersonalInfo
	data = data.Clone()
	return SummaryRequest{
		PersonalInfo: &info,
		Experience:   data.WorkExperience,
		Education:    data.Education,
	}
}

// CollaboratorError reports a failed or malformed generation call
type CollaboratorError struct {
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

func (e *CollaboratorError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Operation)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}
