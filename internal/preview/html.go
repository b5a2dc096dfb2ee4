package preview

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jonathan/resume-wizard/internal/types"
)

//go:embed templates/preview.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/preview.html.tmpl"))

type htmlPage struct {
	Theme  types.Theme
	Name   string
	Blocks []Block
}

// WriteHTML renders blocks as a standalone HTML page
func WriteHTML(w io.Writer, blocks []Block, theme types.Theme) error {
	page := htmlPage{Theme: theme, Blocks: blocks}
	if len(blocks) > 0 && blocks[0].Kind == BlockHeader {
		page.Name = blocks[0].Title
	}
	if err := htmlTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render preview HTML: %w", err)
	}
	return nil
}
