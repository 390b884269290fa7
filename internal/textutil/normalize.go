// Package textutil derives asset-lookup keys from human display names.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a display name into an asset-lookup key: the text
// is NFD-decomposed, combining diacritical marks are stripped and the result
// is upper-cased ("café" -> "CAFE"). The same function must be applied at
// upload time and at lookup time or stored assets silently stop resolving.
// Idempotent and total over any string input.
func Normalize(s string) string {
	// Transformers are stateful, so build a fresh chain per call rather
	// than sharing one across requests.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		// Malformed UTF-8 never stops key derivation; fall back to the input.
		out = s
	}
	return strings.ToUpper(out)
}
