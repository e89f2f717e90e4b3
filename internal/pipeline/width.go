package pipeline

import (
	"golang.org/x/text/width"
)

// isWide reports whether r is Fullwidth, Wide or Ambiguous per the East
// Asian Width property.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide, width.EastAsianAmbiguous:
		return true
	}
	return false
}

// RuneWidth returns the layout width of r: 2 for wide runes, 1 otherwise.
func RuneWidth(r rune) int {
	if isWide(r) {
		return 2
	}
	return 1
}

// DisplayWidth returns the summed layout width of s.
func DisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}
