package export

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

var whitespace = regexp.MustCompile(`\s+`)

// Exportable reports whether info carries the minimum data for an export
func Exportable(info types.PersonalInfo) bool {
	return strings.TrimSpace(info.FirstName) != "" &&
		strings.TrimSpace(info.LastName) != "" &&
		strings.TrimSpace(info.Email) != ""
}

// Guard returns ErrNotExportable unless info is exportable
func Guard(info types.PersonalInfo) error {
	if !Exportable(info) {
		return ErrNotExportable
	}
	return nil
}

// FileName returns "<first>_<last>_Resume.<ext>" with every whitespace run replaced by "_"
func FileName(info types.PersonalInfo, ext string) string {
	name := info.FirstName + "_" + info.LastName + "_Resume." + strings.TrimPrefix(ext, ".")
	return whitespace.ReplaceAllString(name, "_")
}
