// Package observability provides formatted output utilities for the CLI's status and verbose mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWizardStatus outputs the step list with the current position and a count per section.
func (p *Printer) PrintWizardStatus(state types.State) {
	var sb strings.Builder
	current := types.ClampStep(state.CurrentStep)

	for _, step := range wizard.Steps {
		marker := " "
		switch {
		case step.Index < current:
			marker = "✓"
		case step.Index == current:
			marker = "▶"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %-16s %s\n", marker, step.Index+1, step.Name, step.Description))
	}
	sb.WriteString("\n")

	data := state.ResumeData
	name := strings.TrimSpace(data.PersonalInfo.FirstName + " " + data.PersonalInfo.LastName)
	if name == "" {
		name = "(not set)"
	}
	sb.WriteString(fmt.Sprintf("Name:       %s\n", name))
	sb.WriteString(fmt.Sprintf("Experience: %d\n", len(data.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Education:  %d\n", len(data.Education)))
	sb.WriteString(fmt.Sprintf("Skills:     %d categories\n", len(data.Skills)))
	sb.WriteString(fmt.Sprintf("Theme:      %s", state.Theme))

	p.printBox("RESUME WIZARD", sb.String())
}

// PrintWorkExperience lists work entries with their ids.
func (p *Printer) PrintWorkExperience(entries []types.WorkExperience) {
	if len(entries) == 0 {
		p.printBox("WORK EXPERIENCE", "No work experience added yet")
		return
	}

	var sb strings.Builder
	for i, w := range entries {
		sb.WriteString(fmt.Sprintf("%s\n", w.ID))
		sb.WriteString(fmt.Sprintf("  %s at %s\n", w.JobTitle, w.Company))
		end := w.EndDate
		if w.IsCurrentRole {
			end = "Present"
		}
		sb.WriteString(fmt.Sprintf("  %s - %s, %d bullets", w.StartDate, end, len(w.Description)))
		if i < len(entries)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox("WORK EXPERIENCE", sb.String())
}

// PrintEducation lists education entries with their ids.
func (p *Printer) PrintEducation(entries []types.Education) {
	if len(entries) == 0 {
		p.printBox("EDUCATION", "No education added yet")
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%s\n", e.ID))
		sb.WriteString(fmt.Sprintf("  %s, %s (%s)", e.Degree, e.School, e.GraduationDate))
		if i < len(entries)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox("EDUCATION", sb.String())
}

// PrintSkills lists skill groups, showing the first few skills of each.
func (p *Printer) PrintSkills(groups []types.SkillGroup) {
	if len(groups) == 0 {
		p.printBox("SKILLS", "No skills added yet")
		return
	}

	var sb strings.Builder
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("%s\n", g.ID))
		count := min(len(g.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("  %s: %s", g.Category, strings.Join(g.Skills[:count], ", ")))
		if len(g.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(g.Skills)-maxItemsToShow))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox("SKILLS", sb.String())
}

// PrintValidationErrors outputs each failed field with its inline message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationErrors(verr *types.ValidationError) {
	if verr == nil || len(verr.Errors) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ ALL FIELDS VALID", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(verr.Errors)))
	for i, fe := range verr.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("  %s", fe.Message))
		if i < len(verr.Errors)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("INVALID %s", strings.ToUpper(string(verr.Kind))), sb.String())
}

// PrintExport outputs where an artifact was written.
func (p *Printer) PrintExport(path string, pages int) {
	content := fmt.Sprintf("File:  %s", path)
	if pages > 0 {
		content += fmt.Sprintf("\nPages: %d", pages)
	}
	p.printBox("EXPORT COMPLETE", content)
}
