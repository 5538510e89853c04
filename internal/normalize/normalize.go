// Package normalize provides utilities for normalizing user-entered names
// into canonical comparison keys.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters (NFD) and removes the combining marks,
// so "Estár" and "Estar" reduce to the same bytes.
//
//nolint:gochecknoglobals // Static transform chain, safe for concurrent use
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RoomKey reduces a free-text room name to a canonical key used only for
// equality comparison, never for display.
//
// Rules:
//  1. Strip diacritics ("Cozinhá" == "Cozinha")
//  2. Lowercase
//  3. Collapse whitespace runs to a single space
//  4. Trim leading/trailing whitespace
//
// If the transform fails on malformed input, diacritic stripping is skipped
// and the remaining rules still apply.
func RoomKey(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
