// Package document resolves resume data into the ordered, render-ready document shared by the
// preview and export renderers. Section inclusion and ordering are decided only here.
package document

import (
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// ContactSeparator joins contact items and organization/location pairs
const ContactSeparator = " • "

// DateSeparator joins the start and end of a date range
const DateSeparator = " - "

// SectionKind identifies a resolved section
type SectionKind string

// Section kinds, in document order
const (
	SectionSummary   SectionKind = "summary"
	SectionWork      SectionKind = "work"
	SectionEducation SectionKind = "education"
	SectionSkills    SectionKind = "skills"
)

var sectionTitles = map[SectionKind]string{
	SectionSummary:   "Professional Summary",
	SectionWork:      "Work Experience",
	SectionEducation: "Education",
	SectionSkills:    "Skills",
}

// Contact is one item of the header's contact line
type Contact struct {
	Field string // personal info field it came from
	Text  string // what is shown
	Href  string // link target, empty for plain text
}

// Header is the name line plus the present contact items
type Header struct {
	Name     string
	Contacts []Contact
}

// Entry is one work or education item
type Entry struct {
	ID           string
	Title        string
	Organization string
	Location     string
	Dates        string
	GPA          string
	Coursework   string
	Bullets      []string
}

// SkillLine is one skill group
type SkillLine struct {
	ID       string
	Category string
	Skills   []string
}

// Section is one titled block of the document
type Section struct {
	Kind    SectionKind
	Title   string
	Summary string
	Entries []Entry
	Skills  []SkillLine
}

// Document is the resolved projection of ResumeData
type Document struct {
	Header   Header
	Sections []Section
	empty    bool
}

// Resolve projects data into a Document. Sections with no content are omitted.
func Resolve(data types.ResumeData) Document {
	info := data.PersonalInfo
	doc := Document{
		Header: Header{
			Name:     strings.TrimSpace(info.FirstName + " " + info.LastName),
			Contacts: contacts(info),
		},
		empty: info.FirstName == "" && info.LastName == "" &&
			len(data.WorkExperience) == 0 && len(data.Education) == 0 && len(data.Skills) == 0,
	}

	if info.Summary != "" {
		doc.Sections = append(doc.Sections, Section{
			Kind:    SectionSummary,
			Title:   sectionTitles[SectionSummary],
			Summary: info.Summary,
		})
	}

	if len(data.WorkExperience) > 0 {
		s := Section{Kind: SectionWork, Title: sectionTitles[SectionWork]}
		for _, w := range data.WorkExperience {
			s.Entries = append(s.Entries, Entry{
				ID:           w.ID,
				Title:        w.JobTitle,
				Organization: w.Company,
				Location:     w.Location,
				Dates:        DateRange(w.StartDate, w.EndDate),
				Bullets:      append([]string(nil), w.Description...),
			})
		}
		doc.Sections = append(doc.Sections, s)
	}

	if len(data.Education) > 0 {
		s := Section{Kind: SectionEducation, Title: sectionTitles[SectionEducation]}
		for _, e := range data.Education {
			s.Entries = append(s.Entries, Entry{
				ID:           e.ID,
				Title:        e.Degree,
				Organization: e.School,
				Location:     e.Location,
				Dates:        e.GraduationDate,
				GPA:          e.GPA,
				Coursework:   e.RelevantCoursework,
			})
		}
		doc.Sections = append(doc.Sections, s)
	}

	if len(data.Skills) > 0 {
		s := Section{Kind: SectionSkills, Title: sectionTitles[SectionSkills]}
		for _, g := range data.Skills {
			s.Skills = append(s.Skills, SkillLine{
				ID:       g.ID,
				Category: g.Category,
				Skills:   append([]string(nil), g.Skills...),
			})
		}
		doc.Sections = append(doc.Sections, s)
	}

	return doc
}

func contacts(info types.PersonalInfo) []Contact {
	var out []Contact
	if info.Email != "" {
		out = append(out, Contact{Field: "email", Text: info.Email, Href: "mailto:" + info.Email})
	}
	if info.Phone != "" {
		out = append(out, Contact{Field: "phone", Text: info.Phone})
	}
	if info.Location != "" {
		out = append(out, Contact{Field: "location", Text: info.Location})
	}
	if info.LinkedIn != "" {
		out = append(out, Contact{Field: "linkedin", Text: "LinkedIn", Href: info.LinkedIn})
	}
	if info.Website != "" {
		out = append(out, Contact{Field: "website", Text: "Portfolio", Href: info.Website})
	}
	return out
}

// Empty reports whether there is nothing to show yet: no name and no entries
func (d Document) Empty() bool {
	return d.empty
}

// Section returns the section of the given kind, if present
func (d Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// ContactLine joins the contact texts with sep
func (h Header) ContactLine(sep string) string {
	texts := make([]string, len(h.Contacts))
	for i, c := range h.Contacts {
		texts[i] = c.Text
	}
	return strings.Join(texts, sep)
}

// Place returns "organization • location", dropping whichever part is empty
func (e Entry) Place() string {
	return joinNonEmpty(ContactSeparator, e.Organization, e.Location)
}

// SkillList returns the skills joined by ", "
func (l SkillLine) SkillList() string {
	return strings.Join(l.Skills, ", ")
}

// DateRange returns "start - end", or whichever side is non-empty
func DateRange(start, end string) string {
	return joinNonEmpty(DateSeparator, start, end)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
