// Package textclean normalizes search-term and keyword text so the two can
// be compared. Exports wrap phrase-match keywords in quotes, exact-match
// keywords in brackets, and prefix broad-match tokens with '+'; a term and
// the keyword that matched it only compare equal once that noise is gone.
package textclean

import (
	"regexp"
	"strings"
)

var (
	edgeNoise  = regexp.MustCompile(`^[\[\]"]+|[\[\]"]+$`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Clean lowercases s, strips leading/trailing bracket and quote characters,
// removes broad-match '+' markers, and collapses whitespace runs to single
// spaces. Clean is idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	s = edgeNoise.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.ReplaceAll(s, "+", ""))
	s = whitespace.ReplaceAllString(s, " ")
	return s
}
