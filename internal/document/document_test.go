package document

import (
	"testing"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullData() types.ResumeData {
	data := types.NewResumeData()
	data.PersonalInfo = types.PersonalInfo{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		Phone:     "555-0100",
		Location:  "NYC",
		LinkedIn:  "https://linkedin.com/in/ann",
		Website:   "https://ann.dev",
		Summary:   "Builds reliable systems.",
	}
	data.WorkExperience = []types.WorkExperience{
		{ID: "w1", JobTitle: "Staff Engineer", Company: "Acme", Location: "Remote", StartDate: "2021-03", EndDate: "Present", IsCurrentRole: true, Description: []string{"Led X", "Built Y"}},
		{ID: "w2", JobTitle: "Engineer", Company: "Globex", Location: "Boston", StartDate: "2018-01", EndDate: "2021-02", Description: []string{}},
	}
	data.Education = []types.Education{
		{ID: "e1", Degree: "BSc Computer Science", School: "State U", Location: "Albany", GraduationDate: "2017-05", GPA: "3.8", RelevantCoursework: "Distributed Systems"},
	}
	data.Skills = []types.SkillGroup{
		{ID: "s1", Category: "Programming Languages", Skills: []string{"Go", "Rust"}},
		{ID: "s2", Category: "Databases", Skills: []string{"Postgres"}},
	}
	return data
}

func TestResolve_SectionOrder(t *testing.T) {
	doc := Resolve(fullData())

	kinds := make([]SectionKind, len(doc.Sections))
	for i, s := range doc.Sections {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []SectionKind{SectionSummary, SectionWork, SectionEducation, SectionSkills}, kinds)
	assert.Equal(t, "Ann Lee", doc.Header.Name)
	assert.False(t, doc.Empty())
}

func TestResolve_EmptySectionsOmitted(t *testing.T) {
	data := fullData()
	data.PersonalInfo.Summary = ""
	data.Education = []types.Education{}
	data.Skills = nil

	doc := Resolve(data)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, SectionWork, doc.Sections[0].Kind)

	_, ok := doc.Section(SectionSkills)
	assert.False(t, ok)
}

func TestResolve_EntriesKeepOrderAndContent(t *testing.T) {
	doc := Resolve(fullData())

	work, ok := doc.Section(SectionWork)
	require.True(t, ok)
	require.Len(t, work.Entries, 2)
	assert.Equal(t, "w1", work.Entries[0].ID)
	assert.Equal(t, "Acme • Remote", work.Entries[0].Place())
	assert.Equal(t, "2021-03 - Present", work.Entries[0].Dates)
	assert.Equal(t, []string{"Led X", "Built Y"}, work.Entries[0].Bullets)
	assert.Equal(t, "w2", work.Entries[1].ID)

	edu, _ := doc.Section(SectionEducation)
	assert.Equal(t, "3.8", edu.Entries[0].GPA)
	assert.Equal(t, "Distributed Systems", edu.Entries[0].Coursework)
	assert.Equal(t, "2017-05", edu.Entries[0].Dates)

	skills, _ := doc.Section(SectionSkills)
	assert.Equal(t, "Go, Rust", skills.Skills[0].SkillList())
	assert.Equal(t, "Databases", skills.Skills[1].Category)
}

func TestResolve_DoesNotAliasInput(t *testing.T) {
	data := fullData()
	doc := Resolve(data)
	work, _ := doc.Section(SectionWork)
	work.Entries[0].Bullets[0] = "changed"

	assert.Equal(t, "Led X", data.WorkExperience[0].Description[0])
}

func TestContactLine(t *testing.T) {
	tests := []struct {
		name string
		info types.PersonalInfo
		want string
	}{
		{
			name: "missing optional fields leave no stray separators",
			info: types.PersonalInfo{Email: "a@b.com", Phone: "", Location: "NYC", LinkedIn: "", Website: ""},
			want: "a@b.com • NYC",
		},
		{
			name: "all fields",
			info: fullData().PersonalInfo,
			want: "ann@example.com • 555-0100 • NYC • LinkedIn • Portfolio",
		},
		{
			name: "nothing",
			info: types.PersonalInfo{},
			want: "",
		},
		{
			name: "links only",
			info: types.PersonalInfo{Website: "https://x.dev"},
			want: "Portfolio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := types.NewResumeData()
			data.PersonalInfo = tt.info
			assert.Equal(t, tt.want, Resolve(data).Header.ContactLine(ContactSeparator))
		})
	}
}

func TestContacts_Links(t *testing.T) {
	doc := Resolve(fullData())
	require.Len(t, doc.Header.Contacts, 5)
	assert.Equal(t, "mailto:ann@example.com", doc.Header.Contacts[0].Href)
	assert.Empty(t, doc.Header.Contacts[1].Href)
	assert.Equal(t, "https://linkedin.com/in/ann", doc.Header.Contacts[3].Href)
	assert.Equal(t, "https://ann.dev", doc.Header.Contacts[4].Href)
}

func TestEmpty(t *testing.T) {
	assert.True(t, Resolve(types.NewResumeData()).Empty())

	data := types.NewResumeData()
	data.PersonalInfo.Email = "a@b.com"
	assert.True(t, Resolve(data).Empty(), "contact details alone do not count")

	data.PersonalInfo.LastName = "Lee"
	assert.False(t, Resolve(data).Empty())
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020 - 2021", DateRange("2020", "2021"))
	assert.Equal(t, "2020", DateRange("2020", ""))
	assert.Equal(t, "Present", DateRange("", "Present"))
	assert.Equal(t, "", DateRange("", ""))
}
