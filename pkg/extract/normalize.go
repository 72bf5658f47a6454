package extract

import "strings"

const (
	minUsernameLen = 2
	maxUsernameLen = 30
)

// Normalize canonicalizes a raw token into the username identifier space:
// one leading "@" is stripped, trailing "." and "_" are trimmed, the result
// is lowercased and must be 2-30 chars of [a-z0-9._] and not purely numeric.
// The second return value is false when the token is rejected.
func Normalize(raw string) (string, bool) {
	s := strings.TrimPrefix(raw, "@")
	s = strings.TrimRight(s, "._")
	s = strings.ToLower(s)

	if len(s) < minUsernameLen || len(s) > maxUsernameLen {
		return "", false
	}

	digitsOnly := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			// still a digit run
		case c >= 'a' && c <= 'z', c == '.', c == '_':
			digitsOnly = false
		default:
			return "", false
		}
	}
	if digitsOnly {
		return "", false
	}
	return s, true
}
