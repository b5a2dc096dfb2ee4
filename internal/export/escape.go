package export

import "strings"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`•`, `\textbullet{}`,
	"\r\n", " ",
	"\n", " ",
)

// EscapeLaTeX escapes LaTeX special characters so text is typeset literally.
// Newlines collapse to spaces since every value is a single paragraph.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}
