package extract

import (
	"regexp"
	"strings"
)

// usernamePattern matches candidate identifiers with an optional leading "@".
// Candidates start and end with an alphanumeric so surrounding punctuation is
// not swallowed.
var usernamePattern = regexp.MustCompile(`@?([A-Za-z0-9](?:[A-Za-z0-9._]{0,28}[A-Za-z0-9])?)`)

// TokenSet scans free-form text for username candidates and returns the
// normalized set. Fields are delimited by newlines and commas; a field that is
// a single token is taken as a pasted list entry, while inside multi-word
// prose only "@" mentions and tokens carrying "." or "_" count as handles.
// Rejected tokens are dropped silently; an empty result is legitimate, not an
// error.
func TokenSet(text string) UserSet {
	out := make(UserSet)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})
	for _, field := range fields {
		words := strings.Fields(field)
		listEntry := len(words) == 1
		for _, word := range words {
			if !listEntry && !isHandleLike(word) {
				continue
			}
			// All matches within the word, so a glued token like "foo@bar"
			// contributes both halves.
			for _, m := range usernamePattern.FindAllStringSubmatch(word, -1) {
				if u, ok := Normalize(m[1]); ok {
					out.Add(u)
				}
			}
		}
	}
	return out
}

func isHandleLike(word string) bool {
	return strings.HasPrefix(word, "@") ||
		strings.ContainsAny(strings.Trim(word, "."), "._")
}
