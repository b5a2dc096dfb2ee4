package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintWizardStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	state := types.NewState()
	state.CurrentStep = 2
	state.ResumeData.PersonalInfo.FirstName = "Ann"
	state.ResumeData.PersonalInfo.LastName = "Lee"
	state.ResumeData.WorkExperience = []types.WorkExperience{{ID: "w1"}}

	p.PrintWizardStatus(state)
	output := buf.String()

	assert.Contains(t, output, "RESUME WIZARD")
	assert.Contains(t, output, "✓ 1. Personal Info")
	assert.Contains(t, output, "▶ 3. Education")
	assert.Contains(t, output, "  5. Preview")
	assert.Contains(t, output, "Ann Lee")
	assert.Contains(t, output, "Experience: 1")
	assert.Contains(t, output, "Theme:      light")
}

func TestPrintWizardStatus_EmptyName(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWizardStatus(types.NewState())
	assert.Contains(t, buf.String(), "(not set)")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintWorkExperience(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWorkExperience([]types.WorkExperience{
		{ID: "w1", JobTitle: "Engineer", Company: "Acme", StartDate: "2020", IsCurrentRole: true, Description: []string{"a", "b"}},
	})
	output := buf.String()

	assert.Contains(t, output, "w1")
	assert.Contains(t, output, "Engineer at Acme")
	assert.Contains(t, output, "2020 - Present, 2 bullets")
}

func TestPrintEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWorkExperience(nil)
	p.PrintEducation(nil)
	p.PrintSkills(nil)

	assert.Contains(t, buf.String(), "No work experience added yet")
	assert.Contains(t, buf.String(), "No education added yet")
	assert.Contains(t, buf.String(), "No skills added yet")
}

func TestPrintSkills_Truncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkills([]types.SkillGroup{
		{ID: "s1", Category: "Lang", Skills: []string{"Go", "Rust", "C", "Zig", "Lua", "Perl", "Ruby"}},
	})

	assert.Contains(t, buf.String(), "Lang: Go, Rust, C, Zig, Lua ... and 2 more")
	assert.NotContains(t, buf.String(), "Perl")
}

func TestPrintEducation(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEducation([]types.Education{{ID: "e1", Degree: "BSc", School: "State U", GraduationDate: "2017"}})
	assert.Contains(t, buf.String(), "BSc, State U (2017)")
}

func TestPrintValidationErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationErrors(&types.ValidationError{
		Kind: types.KindPersonalInfo,
		Errors: []types.FieldError{
			{Field: "firstName", Message: "First name is required"},
			{Field: "email", Message: "Please enter a valid email"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "INVALID PERSONALINFO")
	assert.Contains(t, output, "Found 2 problems")
	assert.Contains(t, output, "⚠ firstName")
	assert.Contains(t, output, "Please enter a valid email")
}

func TestPrintValidationErrors_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidationErrors(nil)
	assert.Contains(t, buf.String(), "ALL FIELDS VALID")
}

func TestPrintExport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExport("out/Ann_Lee_Resume.pdf", 1)
	assert.Contains(t, buf.String(), "Ann_Lee_Resume.pdf")
	assert.Contains(t, buf.String(), "Pages: 1")

	buf.Reset()
	p.PrintExport("out/Ann_Lee_Resume.tex", 0)
	assert.NotContains(t, buf.String(), "Pages")
}
