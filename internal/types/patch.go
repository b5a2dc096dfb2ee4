// Package types provides type definitions for the resume data model shared by the store, editors and renderers.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfoPatch holds optional PersonalInfo fields. Nil fields are left unchanged.
type PersonalInfoPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Website   *string `json:"website,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// WorkExperiencePatch holds optional WorkExperience fields. A non-nil Description replaces the bullets.
type WorkExperiencePatch struct {
	JobTitle      *string  `json:"jobTitle,omitempty"`
	Company       *string  `json:"company,omitempty"`
	Location      *string  `json:"location,omitempty"`
	StartDate     *string  `json:"startDate,omitempty"`
	EndDate       *string  `json:"endDate,omitempty"`
	IsCurrentRole *bool    `json:"isCurrentRole,omitempty"`
	Description   []string `json:"description,omitempty"`
}

// EducationPatch holds optional Education fields
type EducationPatch struct {
	Degree             *string `json:"degree,omitempty"`
	School             *string `json:"school,omitempty"`
	Location           *string `json:"location,omitempty"`
	GraduationDate     *string `json:"graduationDate,omitempty"`
	GPA                *string `json:"gpa,omitempty"`
	RelevantCoursework *string `json:"relevantCoursework,omitempty"`
}

// SkillGroupPatch holds optional SkillGroup fields. A non-nil Skills replaces the list.
type SkillGroupPatch struct {
	Category *string  `json:"category,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// Ptr returns a pointer to v, for building patches
func Ptr[T any](v T) *T {
	return &v
}

// Apply merges the patch into p
func (p PersonalInfoPatch) Apply(info *PersonalInfo) {
	setIf(&info.FirstName, p.FirstName)
	setIf(&info.LastName, p.LastName)
	setIf(&info.Email, p.Email)
	setIf(&info.Phone, p.Phone)
	setIf(&info.Location, p.Location)
	setIf(&info.LinkedIn, p.LinkedIn)
	setIf(&info.Website, p.Website)
	setIf(&info.Summary, p.Summary)
}

// Apply merges the patch into w
func (p WorkExperiencePatch) Apply(w *WorkExperience) {
	setIf(&w.JobTitle, p.JobTitle)
	setIf(&w.Company, p.Company)
	setIf(&w.Location, p.Location)
	setIf(&w.StartDate, p.StartDate)
	setIf(&w.EndDate, p.EndDate)
	setIf(&w.IsCurrentRole, p.IsCurrentRole)
	if p.Description != nil {
		w.Description = cloneStrings(p.Description)
	}
}

// Apply merges the patch into e
func (p EducationPatch) Apply(e *Education) {
	setIf(&e.Degree, p.Degree)
	setIf(&e.School, p.School)
	setIf(&e.Location, p.Location)
	setIf(&e.GraduationDate, p.GraduationDate)
	setIf(&e.GPA, p.GPA)
	setIf(&e.RelevantCoursework, p.RelevantCoursework)
}

// Apply merges the patch into g
func (p SkillGroupPatch) Apply(g *SkillGroup) {
	setIf(&g.Category, p.Category)
	if p.Skills != nil {
		g.Skills = cloneStrings(p.Skills)
	}
}

// PatchFrom returns a patch that sets every field of info
func (info PersonalInfo) PatchFrom() PersonalInfoPatch {
	return PersonalInfoPatch{
		FirstName: Ptr(info.FirstName),
		LastName:  Ptr(info.LastName),
		Email:     Ptr(info.Email),
		Phone:     Ptr(info.Phone),
		Location:  Ptr(info.Location),
		LinkedIn:  Ptr(info.LinkedIn),
		Website:   Ptr(info.Website),
		Summary:   Ptr(info.Summary),
	}
}

// PatchFrom returns a patch that sets every field of w except the id
func (w WorkExperience) PatchFrom() WorkExperiencePatch {
	return WorkExperiencePatch{
		JobTitle:      Ptr(w.JobTitle),
		Company:       Ptr(w.Company),
		Location:      Ptr(w.Location),
		StartDate:     Ptr(w.StartDate),
		EndDate:       Ptr(w.EndDate),
		IsCurrentRole: Ptr(w.IsCurrentRole),
		Description:   cloneStrings(w.Description),
	}
}

// PatchFrom returns a patch that sets every field of e except the id
func (e Education) PatchFrom() EducationPatch {
	return EducationPatch{
		Degree:             Ptr(e.Degree),
		School:             Ptr(e.School),
		Location:           Ptr(e.Location),
		GraduationDate:     Ptr(e.GraduationDate),
		GPA:                Ptr(e.GPA),
		RelevantCoursework: Ptr(e.RelevantCoursework),
	}
}

// PatchFrom returns a patch that sets every field of g except the id
func (g SkillGroup) PatchFrom() SkillGroupPatch {
	return SkillGroupPatch{
		Category: Ptr(g.Category),
		Skills:   cloneStrings(g.Skills),
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
