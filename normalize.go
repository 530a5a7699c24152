package main

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes accented characters and removes the combining
// marks (é -> e, ü -> u).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// quoteAndDashFolding maps the typographic glyph zoo down to plain ASCII
// punctuation so spelling variants compare equal.
var quoteAndDashFolding = strings.NewReplacer(
	"‘", "'", // ‘
	"’", "'", // ’
	"´", "'", // ´
	"`", "'",
	"“", `"`, // “
	"”", `"`, // ”
	"„", `"`, // „
	"–", "-", // –
	"—", "-", // —
	"−", "-", // −
)

// normalizeSongName maps a display string to its canonical comparison key.
// Two display strings denote the same song iff their normalized forms are
// equal. The function is pure and idempotent.
//
// Rules, in order: lowercase, strip accents, fold quote and dash glyphs,
// collapse whitespace runs to one space, trim.
func normalizeSongName(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}
	s = quoteAndDashFolding.Replace(s)
	// Collapse consecutive whitespace and trim in one pass.
	s = strings.Join(strings.Fields(s), " ")
	return s
}
