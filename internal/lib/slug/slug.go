package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a human readable name into a URL-safe slug: accents are folded,
// the result is lower-cased, every run of characters outside [a-z0-9] becomes
// a single "-" and leading/trailing dashes are trimmed.
//
//	"Estate 2025"          -> "estate-2025"
//	"Città & Caffè!"       -> "citta-caffe"
func Make(s string) string {
	return ID(fold(s))
}

// ID derives a block type identifier from a name without folding accents:
// lower-case, runs outside [a-z0-9] become "-", dashes trimmed.
//
//	"Caffè Città" -> "caff-citt"
func ID(s string) string {
	lower := strings.ToLower(s)
	dashed := nonAlnum.ReplaceAllString(lower, "-")
	return strings.Trim(dashed, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
