package export

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-wizard/internal/document"
)

//go:embed templates/resume.tex.tmpl
var latexFS embed.FS

const latexTemplateName = "templates/resume.tex.tmpl"

var latexFuncs = template.FuncMap{
	"escape":   EscapeLaTeX,
	"upper":    strings.ToUpper,
	"contacts": latexContacts,
}

// latexContacts renders the contact line with linked items wrapped in \href
func latexContacts(h document.Header) string {
	parts := make([]string, len(h.Contacts))
	for i, c := range h.Contacts {
		text := EscapeLaTeX(c.Text)
		if c.Href != "" {
			parts[i] = `\href{` + escapeURL(c.Href) + `}{` + text + `}`
		} else {
			parts[i] = text
		}
	}
	return strings.Join(parts, EscapeLaTeX(document.ContactSeparator))
}

// escapeURL escapes the characters hyperref cannot take verbatim inside \href
func escapeURL(u string) string {
	return strings.NewReplacer(`\`, `/`, `%`, `\%`, `#`, `\#`, `{`, `%7B`, `}`, `%7D`).Replace(u)
}

// parseTemplate loads the LaTeX template at path, or the embedded one when path is empty
func parseTemplate(path string) (*template.Template, error) {
	var content []byte
	var err error
	if path == "" {
		content, err = latexFS.ReadFile(latexTemplateName)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{Message: fmt.Sprintf("template file not found: %s", path), Cause: err}
		}
		return nil, &TemplateError{Message: fmt.Sprintf("failed to read template file: %s", path), Cause: err}
	}

	tmpl, err := template.New("resume").Funcs(latexFuncs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// RenderLaTeX renders doc as a LaTeX source file
func RenderLaTeX(doc document.Document, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, doc); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// TeXSerializer produces the LaTeX source as the artifact
type TeXSerializer struct {
	TemplatePath string
}

// Format implements Serializer
func (s TeXSerializer) Format() Format { return FormatTeX }

// Serialize implements Serializer
func (s TeXSerializer) Serialize(_ context.Context, doc document.Document) ([]byte, int, error) {
	tex, err := RenderLaTeX(doc, s.TemplatePath)
	if err != nil {
		return nil, 0, err
	}
	return []byte(tex), 0, nil
}
