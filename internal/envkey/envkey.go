// Package envkey converts between Go identifiers, dot paths, and
// environment variable names, and groups variables into sections.
//
// Convention: nesting levels are separated by double underscores
// (DATABASE__HOST), single underscores separate words within a level
// (MAX_FILE_SIZE).
package envkey

import (
	"regexp"
	"strings"
	"unicode"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Valid reports whether name is a usable environment variable name.
func Valid(name string) bool {
	return namePattern.MatchString(name)
}

// FromPath converts a lowercase dot path to an environment variable name.
// Examples:
//   - "database.host" → "DATABASE__HOST"
//   - "api.rate_limit" → "API__RATE_LIMIT"
func FromPath(path string) string {
	return strings.ToUpper(strings.ReplaceAll(path, ".", "__"))
}

// FromField converts a Go field name to an UPPER_SNAKE variable name,
// keeping acronym runs together.
// Examples:
//   - "MaxFileSize" → "MAX_FILE_SIZE"
//   - "APIKey" → "API_KEY"
//   - "Host" → "HOST"
func FromField(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Section returns the grouping prefix of a variable name: the part before
// the first double underscore. Variables without a double underscore have
// no section and return "".
// Examples:
//   - "DATABASE__HOST" → "DATABASE"
//   - "RADARR__4K__ENABLED" → "RADARR"
//   - "LOG_LEVEL" → ""
func Section(name string) string {
	idx := strings.Index(name, "__")
	if idx <= 0 {
		return ""
	}
	return name[:idx]
}

// TitleCase uppercases the first letter and lowercases the rest.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
