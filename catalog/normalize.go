// Package catalog holds the incremental loading core: text
// normalization, filtering, sorting, regions, the scroll/preload
// coordinator and the view-state projection.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize uppercases s, applies canonical decomposition and strips
// combining diacritical marks, so "Pokémon" and "POKEMON" compare
// equal. Idempotent; empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, strings.ToUpper(s))
	if err != nil {
		return strings.ToUpper(s)
	}
	return out
}

// ContainsNormalized reports whether text contains search after both
// sides are normalized.
func ContainsNormalized(text, search string) bool {
	return strings.Contains(Normalize(text), Normalize(search))
}
