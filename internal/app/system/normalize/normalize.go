// Package normalize turns schema identifiers and counts into display text.
package normalize

import (
	"strings"
	"unicode"
)

// Spaced replaces underscores with spaces ("biological_age" -> "biological age").
func Spaced(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// Title upper-cases the first letter of every word and lower-cases the rest.
// A word starts at any letter that does not follow another letter, so
// "t-cell_ALL" becomes "T-Cell_All".
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// Label is the display form of a schema identifier: spaced and title-cased.
func Label(s string) string {
	return Title(Spaced(s))
}

// Plural appends "s" to word when n is greater than one.
func Plural(word string, n int) string {
	if n > 1 {
		return word + "s"
	}
	return word
}

// PluralY completes a stem such as "countr" with "ies" or "y".
func PluralY(stem string, n int) string {
	if n > 1 {
		return stem + "ies"
	}
	return stem + "y"
}
