// Package preview renders the reflowing on-screen view of the resume and runs summary generation.
package preview

import (
	"github.com/jonathan/resume-wizard/internal/document"
)

// BlockKind identifies a display block
type BlockKind string

// Block kinds
const (
	BlockHeader          BlockKind = "header"
	BlockHeading         BlockKind = "heading"
	BlockSummary         BlockKind = "summary"
	BlockGenerateSummary BlockKind = "generate-summary"
	BlockWork            BlockKind = "work"
	BlockEducation       BlockKind = "education"
	BlockSkills          BlockKind = "skills"
	BlockEmpty           BlockKind = "empty"
)

// Affordance and empty-state copy
const (
	GenerateSummaryLabel = "✨ Generate AI Summary"
	GeneratingLabel      = "Generating..."
	EmptyTitle           = "Your resume preview will appear here"
	EmptyText            = "Start by filling out your personal information to see a live preview."
)

// Options controls the optional blocks
type Options struct {
	// ShowGenerateSummary adds a generate affordance when the summary is empty
	ShowGenerateSummary bool
	// Generating switches the affordance to its in-progress label
	Generating bool
}

// Block is one unit of the preview
type Block struct {
	Kind     BlockKind
	Title    string
	Text     string
	Contacts []document.Contact
	Entry    document.Entry
	Skills   document.SkillLine
}

// Blocks projects a resolved document into display blocks
func Blocks(doc document.Document, opts Options) []Block {
	blocks := []Block{{
		Kind:     BlockHeader,
		Title:    doc.Header.Name,
		Contacts: doc.Header.Contacts,
	}}

	if _, ok := doc.Section(document.SectionSummary); !ok && opts.ShowGenerateSummary {
		label := GenerateSummaryLabel
		if opts.Generating {
			label = GeneratingLabel
		}
		blocks = append(blocks,
			Block{Kind: BlockHeading, Title: "Professional Summary"},
			Block{Kind: BlockGenerateSummary, Title: label},
		)
	}

	for _, section := range doc.Sections {
		blocks = append(blocks, Block{Kind: BlockHeading, Title: section.Title})
		switch section.Kind {
		case document.SectionSummary:
			blocks = append(blocks, Block{Kind: BlockSummary, Text: section.Summary})
		case document.SectionWork:
			for _, e := range section.Entries {
				blocks = append(blocks, Block{Kind: BlockWork, Entry: e})
			}
		case document.SectionEducation:
			for _, e := range section.Entries {
				blocks = append(blocks, Block{Kind: BlockEducation, Entry: e})
			}
		case document.SectionSkills:
			for _, l := range section.Skills {
				blocks = append(blocks, Block{Kind: BlockSkills, Skills: l})
			}
		}
	}

	if doc.Empty() {
		blocks = append(blocks, Block{Kind: BlockEmpty, Title: EmptyTitle, Text: EmptyText})
	}
	return blocks
}
