// Package export serializes the resolved resume document into downloadable artifacts.
package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExportable is returned when first name, last name or email is missing
	ErrNotExportable = errors.New("resume is not exportable: first name, last name and email are required")
	// ErrExportInProgress is returned when an export is triggered while another is generating
	ErrExportInProgress = errors.New("export already in progress")
	// ErrUnknownFormat is returned for a format with no serializer
	ErrUnknownFormat = errors.New("unknown export format")
)

// TemplateError represents an error parsing or executing an export template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a serializer failure other than template or compilation problems
type RenderError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a pdflatex failure. LogOutput carries the compiler transcript.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
