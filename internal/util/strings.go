// Package util provides common utility functions used across the codebase.
package util

import "strings"

// Truncate cuts a string to at most width runes. Values are cut, never
// wrapped, so fixed-width panel columns stay aligned.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// PadRight pads a string with spaces to exactly width runes,
// truncating first if it is too long.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - len([]rune(s)); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// FirstNonEmpty returns the first non-empty string, or def if all are empty.
func FirstNonEmpty(def string, values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return def
}

// Capitalize upper-cases the first letter of a string.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
