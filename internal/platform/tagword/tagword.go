// Package tagword normalizes the one-word tags attached to sessions.
package tagword

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const MaxRunes = 64

var (
	lower       = cases.Lower(language.Und)
	nonFileSafe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize composes the input (NFC), lower-cases it and removes every
// whitespace rune, so "  Deep Work " becomes "deepwork".
func Normalize(input string) string {
	composed := norm.NFC.String(input)
	lowered := lower.String(composed)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered)
}

// IsNormalized reports whether tag is non-empty and already in normalized form.
func IsNormalized(tag string) bool {
	return tag != "" && Normalize(tag) == tag
}

// FileSafe renders a tag as an ASCII file name fragment.
func FileSafe(tag string) string {
	s := nonFileSafe.ReplaceAllString(Normalize(tag), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untagged"
	}
	return s
}
