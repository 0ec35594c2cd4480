// Package pali provides normalization helpers for Pali text.
//
// Matching against the root text must ignore case, diacritics, and
// punctuation: the corpus prints "Bhikkhūti," where a term list may carry
// "bhikkhuti". Fold strips combining marks, Sanitize additionally drops
// punctuation, and Key lowercases on top of that to produce the comparison
// form used throughout alignment.
//
// The original printed form is never modified; these functions only derive
// secondary keys.
package pali

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes, strips combining marks (ū → u, ṁ → m), and
// recomposes. transform.Chain values are stateless and safe to share.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold removes diacritical marks, leaving base letters intact.
// "Pārājika" → "Parajika". Input that fails to transform (invalid UTF-8)
// is returned unchanged.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return out
}

// Sanitize folds diacritics and drops everything that is not a letter,
// digit, or space. Quote marks, the ti-particle's punctuation, and em
// dashes all disappear: `“bhikkhū”ti.` → "bhikkhuti".
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range Fold(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Key returns the comparison key for a word: sanitized and lowercased.
func Key(s string) string {
	return strings.ToLower(Sanitize(s))
}

// caseEndings are nominal inflection suffixes stripped by Stem, longest
// first so that greedy matching wins ("assa" before "a").
var caseEndings = []string{
	"ssa", "smim", "ani", "aya", "ena", "ehi", "esu", "assa",
	"am", "an", "a", "e", "i", "o", "u", "m",
}

// Stem reduces an inflected Pali word to a crude stem for glossary lookup.
// Folds and lowercases first, then strips one known case ending when the
// remainder stays at least three letters long. This is a lookup key, not
// a linguistic analysis; ambiguous words simply miss the glossary.
func Stem(s string) string {
	w := strings.ToLower(Sanitize(s))
	for _, suffix := range caseEndings {
		if strings.HasSuffix(w, suffix) && len(w)-len(suffix) >= 3 {
			return w[:len(w)-len(suffix)]
		}
	}
	return w
}
