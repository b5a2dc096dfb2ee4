package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
)

// DefaultWidth is the terminal width the text preview lays out to
const DefaultWidth = 80

// Catppuccin palettes, Mocha for dark and Latte for light
const (
	mochaText     lipgloss.Color = "#cdd6f4"
	mochaSubtext0 lipgloss.Color = "#a6adc8"
	mochaOverlay1 lipgloss.Color = "#7f849c"
	mochaPink     lipgloss.Color = "#f5c2e7"
	mochaBlue     lipgloss.Color = "#89b4fa"
	mochaPeach    lipgloss.Color = "#fab387"

	latteText     lipgloss.Color = "#4c4f69"
	latteSubtext0 lipgloss.Color = "#6c6f85"
	latteOverlay1 lipgloss.Color = "#8c8fa1"
	lattePink     lipgloss.Color = "#ea76cb"
	latteBlue     lipgloss.Color = "#1e66f5"
	lattePeach    lipgloss.Color = "#fe640b"
)

// Styles holds one lipgloss style per text element
type Styles struct {
	Name    lipgloss.Style
	Contact lipgloss.Style
	Heading lipgloss.Style
	Title   lipgloss.Style
	Place   lipgloss.Style
	Dates   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Action  lipgloss.Style
}

// DefaultStyles returns the colored styles for theme
func DefaultStyles(theme types.Theme) Styles {
	text, sub, overlay, accent, heading, action := latteText, latteSubtext0, latteOverlay1, lattePink, latteBlue, lattePeach
	if theme == types.ThemeDark {
		text, sub, overlay, accent, heading, action = mochaText, mochaSubtext0, mochaOverlay1, mochaPink, mochaBlue, mochaPeach
	}
	return Styles{
		Name:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Contact: lipgloss.NewStyle().Foreground(sub),
		Heading: lipgloss.NewStyle().Foreground(heading).Bold(true).Underline(true),
		Title:   lipgloss.NewStyle().Foreground(text).Bold(true),
		Place:   lipgloss.NewStyle().Foreground(sub),
		Dates:   lipgloss.NewStyle().Foreground(overlay).Italic(true),
		Body:    lipgloss.NewStyle().Foreground(text),
		Muted:   lipgloss.NewStyle().Foreground(overlay),
		Action:  lipgloss.NewStyle().Foreground(action).Bold(true),
	}
}

// PlainStyles returns unstyled output, for pipes and tests
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Name: plain, Contact: plain, Heading: plain, Title: plain, Place: plain,
		Dates: plain, Body: plain, Muted: plain, Action: plain,
	}
}

// WriteText renders blocks for a terminal of the given width
func WriteText(w io.Writer, blocks []Block, styles Styles, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}

	var lines []string
	for _, b := range blocks {
		switch b.Kind {
		case BlockHeader:
			lines = append(lines,
				lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Name.Render(b.Title)),
				lipgloss.PlaceHorizontal(width, lipgloss.Center,
					styles.Contact.Render(document.Header{Contacts: b.Contacts}.ContactLine(document.ContactSeparator))),
			)
		case BlockHeading:
			lines = append(lines, "", styles.Heading.Render(b.Title))
		case BlockSummary:
			lines = append(lines, styles.Body.Width(width).Render(b.Text))
		case BlockGenerateSummary:
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Action.Render("["+b.Title+"]")))
		case BlockWork, BlockEducation:
			lines = append(lines, entryLines(b.Entry, styles, width)...)
		case BlockSkills:
			lines = append(lines,
				styles.Title.Render(b.Skills.Category),
				"  "+styles.Body.Render(b.Skills.SkillList()))
		case BlockEmpty:
			lines = append(lines, "",
				lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Title.Render(b.Title)),
				lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Muted.Render(b.Text)))
		}
	}

	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

func entryLines(e document.Entry, styles Styles, width int) []string {
	lines := []string{
		spread(styles.Title.Render(e.Title), styles.Dates.Render(e.Dates), width),
		styles.Place.Render(e.Place()),
	}
	if e.GPA != "" {
		lines = append(lines, styles.Muted.Render("GPA: "+e.GPA))
	}
	if e.Coursework != "" {
		lines = append(lines, styles.Body.Render("Relevant Coursework: "+e.Coursework))
	}
	for _, bullet := range e.Bullets {
		lines = append(lines, styles.Body.Render("  • "+bullet))
	}
	return lines
}

// spread puts left and right on one line, right-aligned to width
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
