// Package types provides type definitions for the resume data model shared by the store, editors and renderers.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PresentEndDate is the end date stored for a current role
const PresentEndDate = "Present"

// PersonalInfo is the singleton contact and summary record
type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Location  string `json:"location" validate:"required"`
	LinkedIn  string `json:"linkedin"`
	Website   string `json:"website"`
	Summary   string `json:"summary"`
}

// WorkExperience is one employment entry. Description bullets are order-significant.
type WorkExperience struct {
	ID            string   `json:"id"`
	JobTitle      string   `json:"jobTitle" validate:"required"`
	Company       string   `json:"company" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate"`
	IsCurrentRole bool     `json:"isCurrentRole"`
	Description   []string `json:"description"`
}

// Education is one academic entry
type Education struct {
	ID                 string `json:"id"`
	Degree             string `json:"degree" validate:"required"`
	School             string `json:"school" validate:"required"`
	Location           string `json:"location" validate:"required"`
	GraduationDate     string `json:"graduationDate" validate:"required"`
	GPA                string `json:"gpa,omitempty"`
	RelevantCoursework string `json:"relevantCoursework,omitempty"`
}

// SkillGroup is a category label with an ordered set of distinct skills
type SkillGroup struct {
	ID       string   `json:"id"`
	Category string   `json:"category" validate:"required"`
	Skills   []string `json:"skills" validate:"min=1,dive,notblank"`
}

// ResumeData is the aggregate rendered by both the preview and the export
type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []SkillGroup     `json:"skills"`
}

// RecommendedSkillCategories are offered by the skills editor but not enforced
var RecommendedSkillCategories = []string{
	"Programming Languages",
	"Frameworks & Libraries",
	"Databases",
	"Cloud & DevOps",
	"Tools & Software",
	"Soft Skills",
	"Languages",
}

// NewResumeData returns the empty aggregate with every collection allocated
func NewResumeData() ResumeData {
	return ResumeData{
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Skills:         []SkillGroup{},
	}
}

// Clone returns a deep copy of the entry
func (w WorkExperience) Clone() WorkExperience {
	w.Description = cloneStrings(w.Description)
	return w
}

// Clone returns a copy of the entry
func (e Education) Clone() Education {
	return e
}

// Clone returns a deep copy of the group
func (g SkillGroup) Clone() SkillGroup {
	g.Skills = cloneStrings(g.Skills)
	return g
}

// Clone returns a deep copy of the aggregate. Nil collections come back empty.
func (d ResumeData) Clone() ResumeData {
	out := ResumeData{
		PersonalInfo:   d.PersonalInfo,
		WorkExperience: make([]WorkExperience, len(d.WorkExperience)),
		Education:      make([]Education, len(d.Education)),
		Skills:         make([]SkillGroup, len(d.Skills)),
	}
	for i, w := range d.WorkExperience {
		out.WorkExperience[i] = w.Clone()
	}
	copy(out.Education, d.Education)
	for i, g := range d.Skills {
		out.Skills[i] = g.Clone()
	}
	return out
}

// HasSkill reports whether the group already contains skill (exact, case-sensitive)
func (g SkillGroup) HasSkill(skill string) bool {
	for _, s := range g.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// EntryID returns the entry's identifier
func (w WorkExperience) EntryID() string { return w.ID }

// EntryID returns the entry's identifier
func (e Education) EntryID() string { return e.ID }

// EntryID returns the entry's identifier
func (g SkillGroup) EntryID() string { return g.ID }
