// Package report renders a compliance report into a PDF document. The
// renderer consumes the report structure produced by the compliance package
// and never re-derives compliance logic.
package report

import "strings"

// unicodeReplacer substitutes the Unicode characters most commonly seen in
// standards text (units like µS/cm, ranges written with en dashes, ≤/≥
// limits) with ASCII equivalents the PDF core fonts can encode.
var unicodeReplacer = strings.NewReplacer(
	"—", "--", // em dash
	"–", "-", // en dash
	"‘", "'", // left single quote
	"’", "'", // right single quote / apostrophe
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"…", "...", // ellipsis
	"°", " deg", // degree sign
	"µ", "u", // micro sign (in uS/cm)
	"≥", ">=", // greater or equal
	"≤", "<=", // less or equal
	"×", "x", // multiplication
	"±", "+/-", // plus-minus
	"®", "(R)", // registered
	"™", "(TM)", // trademark
)

// sanitize encodes text for the PDF core fonts, which are limited to a
// Latin-1 style code page.
//
// Strategy (in order):
//  1. Replace known problematic Unicode characters with ASCII equivalents.
//  2. Replace any remaining non-Latin-1 runes with '?' so they appear as
//     placeholders in the PDF instead of breaking the encoder.
func sanitize(text string) string {
	text = unicodeReplacer.Replace(text)

	needsFallback := false
	for _, r := range text {
		if r > 0xFF {
			needsFallback = true
			break
		}
	}
	if !needsFallback {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r > 0xFF {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
