package export

import (
	"fmt"
	"strings"

	"translation-backend/internal/errs"
)

// Entry is one translation key with its text per language code. Entries are
// kept in key creation order.
type Entry struct {
	Key         string
	Group       string
	Placeholder bool
	Texts       map[string]string
}

// Text returns the text for a language code, or "" when there is none.
func (e Entry) Text(code string) string {
	return e.Texts[code]
}

type Language struct {
	ID   uint
	Code string
	Name string
}

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, s)
}

// Extension is the extension of the primary artifact for the given number of
// languages. Multi-language JSON exports are bundled as a zip archive.
func (f Format) Extension(languageCount int) string {
	if f == FormatJSON && languageCount > 1 {
		return "zip"
	}
	return string(f)
}

func (f Format) ContentType() string {
	return ContentType(string(f))
}

// ContentType maps a file extension onto a download content type. Archives
// are served as plain binary.
func ContentType(format string) string {
	switch Format(format) {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
