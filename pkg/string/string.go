// Package string holds small text helpers shared by forms and handlers.
package string

import (
	"strings"
	"unicode"
)

// AnyBlank reports whether any of ss is empty after trimming whitespace.
func AnyBlank(ss ...string) bool {
	for _, v := range ss {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// ToSnakeCase converts Go field names like "PlateNumber" or "DueDate" into the
// backend's field spelling ("plate_number", "due_date").
func ToSnakeCase(in string) string {
	var b strings.Builder
	runes := []rune(in)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
