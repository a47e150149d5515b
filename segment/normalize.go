// Package segment turns the flat top-level block sequence of an exported
// document into parts and sections, and repairs numbered lists that the
// editor split into several fragments.
package segment

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}]`)
	spaceRe   = regexp.MustCompile(`[\s\p{Z}]+`)
)

// Normalize derives a section identifier from heading text: lower-cased,
// everything but word characters and whitespace removed, whitespace runs
// replaced by a single hyphen. Different headings may normalize to the
// same identifier; the builder relies on that to reuse section bodies.
func Normalize(text string) string {
	s := cases.Lower(language.Und).String(norm.NFC.String(text))
	s = nonWordRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	return strings.ReplaceAll(s, " ", "-")
}
