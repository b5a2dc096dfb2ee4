// Package types provides type definitions for the resume data model shared by the store, editors and renderers.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Kind names a section of the resume
type Kind string

// Section kinds
const (
	KindPersonalInfo   Kind = "personalInfo"
	KindWorkExperience Kind = "workExperience"
	KindEducation      Kind = "education"
	KindSkills         Kind = "skills"
)

// fieldMessages maps "<field>.<tag>" to the inline message shown for each kind.
// The rules themselves are the validate tags on the entity structs.
var fieldMessages = map[Kind]map[string]string{
	KindPersonalInfo: {
		"firstName.required": "First name is required",
		"lastName.required":  "Last name is required",
		"email.required":     "Please enter a valid email",
		"email.email":        "Please enter a valid email",
		"phone.required":     "Phone number is required",
		"location.required":  "Location is required",
	},
	KindWorkExperience: {
		"jobTitle.required":  "Job title is required",
		"company.required":   "Company is required",
		"location.required":  "Location is required",
		"startDate.required": "Start date is required",
	},
	KindEducation: {
		"degree.required":         "Degree is required",
		"school.required":         "School is required",
		"location.required":       "Location is required",
		"graduationDate.required": "Graduation date is required",
	},
	KindSkills: {
		"category.required": "Category is required",
		"skills.min":        "At least one skill is required",
		"skills.notblank":   "Skills cannot be blank",
	},
}

// FieldError is a single inline validation message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failed field of one record
type ValidationError struct {
	Kind   Kind         `json:"kind"`
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

// Message returns the message for field, or "" when the field passed
func (e *ValidationError) Message(field string) string {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Validator checks form data before it is committed to the store
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator that reports fields by their JSON names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	return &Validator{validate: v}
}

// KindOf returns the section kind for a record value
func KindOf(value any) (Kind, error) {
	switch value.(type) {
	case PersonalInfo, *PersonalInfo:
		return KindPersonalInfo, nil
	case WorkExperience, *WorkExperience:
		return KindWorkExperience, nil
	case Education, *Education:
		return KindEducation, nil
	case SkillGroup, *SkillGroup:
		return KindSkills, nil
	default:
		return "", fmt.Errorf("unsupported record type %T", value)
	}
}

// Validate checks value against its kind's rules. It returns *ValidationError on rule failures.
func (v *Validator) Validate(value any) error {
	kind, err := KindOf(value)
	if err != nil {
		return err
	}

	err = v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %s: %w", kind, err)
	}

	result := &ValidationError{Kind: kind}
	seen := make(map[string]bool)
	for _, fe := range fieldErrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		if seen[field] {
			continue
		}
		seen[field] = true
		result.Errors = append(result.Errors, FieldError{
			Field:   field,
			Message: messageFor(kind, field, fe.Tag()),
		})
	}
	return result
}

func messageFor(kind Kind, field, tag string) string {
	if msg, ok := fieldMessages[kind][field+"."+tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed %s", field, tag)
}
