package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// spokenDecimalRegex rewrites dictated decimal points ("2 punto 5",
// "2 coma 5") into literals before any tokenization happens.
var spokenDecimalRegex = regexp.MustCompile(`(\d+)\s*(?:punto|coma)\s*(\d+)`)

// Normalize lowercases the input, strips combining diacritical marks
// (so "azúcar" and "azucar" compare equal) and canonicalizes spoken decimal
// markers. It is total over any string and idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	// A transform chain keeps internal buffers, so build one per call
	// rather than sharing it across goroutines.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	return spokenDecimalRegex.ReplaceAllString(stripped, "$1.$2")
}
