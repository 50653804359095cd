// Package fold normalizes text for keyword matching: lowercase, accent
// marks stripped, surrounding whitespace trimmed. OCR output and the
// configured keyword sets both pass through it, so "Qté", "QTE" and
// "qte" all compare equal.
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Norm returns the folded form of s: trimmed, lowercased, with
// combining marks removed. If the transform fails on malformed input,
// the lowercased original is returned unchanged.
func Norm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return folded
}
