package model

import "strings"

// genreSeparator joins genre tags in the genres column.
const genreSeparator = ", "

// JoinGenres encodes a genre list into its column form.  Blank entries are
// skipped so a form that submits an empty option does not leave a
// dangling separator behind.
func JoinGenres(genres []string) string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return strings.Join(out, genreSeparator)
}

// SplitGenres decodes the genres column.  It splits on commas and trims
// surrounding whitespace so values written as "Jazz,Swing" and
// "Jazz, Swing" decode the same way.  An empty column yields an empty
// (non-nil) slice.
func SplitGenres(s string) []string {
	out := []string{}
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
