package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/preview"
	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Client-facing messages for the generation API
const (
	msgMethodNotAllowed     = "Method not allowed"
	msgPersonalInfoRequired = "Personal information is required"
	msgTitleCompanyRequired = "Job title and company are required"
	msgSummaryFailed        = "Failed to generate professional summary"
	msgBulletsFailed        = "Failed to generate bullet points"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *types.ValidationError
	var collabErr *generation.CollaboratorError
	switch {
	case errors.Is(err, generation.ErrMissingInput),
		errors.Is(err, export.ErrUnknownFormat),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrNotExportable),
		errors.Is(err, export.ErrExportInProgress),
		errors.Is(err, preview.ErrGenerationInFlight),
		errors.Is(err, preview.ErrStaleResult):
		return http.StatusConflict
	case errors.As(err, &collabErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
