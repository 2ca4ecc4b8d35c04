// Package utils provides small text helpers shared by the CLI, the terminal
// UI and the exporters.
package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ShortIDLength is the number of characters ShortID keeps.
const ShortIDLength = 8

// ShortID returns the leading ShortIDLength characters of id. Store lookups
// accept any unique prefix, so the short form can be passed back to the CLI.
func ShortID(id string) string {
	if utf8.RuneCountInString(id) <= ShortIDLength {
		return id
	}
	return string([]rune(id)[:ShortIDLength])
}

// Truncate shortens s to at most width runes, replacing the tail with an
// ellipsis when something was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// Plural returns "1 task" or "N tasks" style phrases.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to a readable path.
// "#/0/text" becomes "[0].text" and "/meta/a~1b" becomes "meta.a/b".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
