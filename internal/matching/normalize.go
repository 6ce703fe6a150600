// Package matching provides medicine-name normalization used by the search
// and availability paths. All name comparisons in the service go through
// this package so that "Amoxicillin", "amoxicillin " and "Amoxicïllin"
// resolve to the same product.
package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics removes combining marks after NFD decomposition, so that
// accented brand spellings match their plain-ASCII catalog entries.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical form of a medicine or pharmacy name:
// diacritics removed, lowercased, whitespace collapsed.
func Normalize(name string) string {
	s, _, _ := transform.String(stripDiacritics, name)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// ContainsFold reports whether the normalized haystack contains the
// normalized needle. An empty needle never matches.
func ContainsFold(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}

// EqualFold reports whether two names are the same after normalization.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
