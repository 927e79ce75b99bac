package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldLabel lowercases s, strips diacritics and collapses whitespace, so
// "Cours  Clôture (FCFA)" and "cours cloture (fcfa)" compare equal.
func FoldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// CollapseSpaces trims s and replaces every whitespace run (NBSP included) with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
