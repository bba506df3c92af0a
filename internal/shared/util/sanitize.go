package util

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// SanitizeFileName cleans a client-supplied display name: path separators become
// underscores and control characters are dropped. Blank names are rejected.
func SanitizeFileName(name string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// ValidateStoredName checks a server-side file name: non-empty, no separators, no traversal.
func ValidateStoredName(name string) error {
	s := strings.TrimSpace(name)
	if s == "" {
		return errors.New("file name must not be empty")
	}
	if s != name {
		return errors.New("file name must not have surrounding whitespace")
	}
	if strings.ContainsAny(s, "/\\") || strings.Contains(s, "..") {
		return errors.New("file name must not contain path separators")
	}
	return nil
}

// ContentDisposition renders a Content-Disposition header value for the given
// disposition type ("attachment" or "inline"). Non-ASCII names get an RFC 5987
// filename* parameter alongside an ASCII fallback.
func ContentDisposition(kind, name string) string {
	fallback := asciiFallback(name)
	if fallback == "" {
		fallback = "file"
	}
	header := fmt.Sprintf("%s; filename=%q", kind, fallback)
	if fallback != name {
		header += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return header
}

func asciiFallback(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '"' || r == '\\':
			b.WriteRune('_')
		case r > unicode.MaxASCII || unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
