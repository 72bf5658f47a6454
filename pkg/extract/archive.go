package extract

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrNoData is returned when an archive scan finds no usernames at all.
// It distinguishes "nothing recognizable in this archive" from a relation
// list that is legitimately empty.
var ErrNoData = errors.New("no follower data found in archive")

var (
	followerKeys  = map[string]bool{"followers": true, "relationships_followers": true}
	followingKeys = map[string]bool{"following": true, "relationships_following": true}
)

// IsArchive reports whether the payload starts with a zip container signature.
func IsArchive(b []byte) bool {
	return len(b) >= 4 && bytes.HasPrefix(b, []byte("PK\x03\x04"))
}

// ParseArchive scans every entry of a zip export and collects the following
// and followers sets. Malformed entries are skipped, never fatal. When the
// whole archive yields two empty sets the result is ErrNoData.
func ParseArchive(b []byte) (following UserSet, followers UserSet, err error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, nil, err
	}

	following = make(UserSet)
	followers = make(UserSet)

	for _, entry := range zr.File {
		name := strings.ToLower(entry.Name)

		rc, err := entry.Open()
		if err != nil {
			continue
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		switch {
		case strings.HasSuffix(name, ".json"):
			doc, ok := decodeStructured(raw)
			if !ok {
				continue
			}
			collectRelations(doc, followingKeys, following)
			collectRelations(doc, followerKeys, followers)

		case strings.HasSuffix(name, ".html"), strings.HasSuffix(name, ".htm"):
			users := markupTokens(raw)
			switch {
			case strings.Contains(name, "follower"):
				followers.Merge(users)
			case strings.Contains(name, "following"):
				following.Merge(users)
			default:
				followers.Merge(users)
				following.Merge(users)
			}
		}
	}

	if following.Len() == 0 && followers.Len() == 0 {
		return nil, nil, ErrNoData
	}
	return following, followers, nil
}

// decodeStructured parses a json entry, trying utf-8 first and falling back
// to a latin-1 reinterpretation of the bytes.
func decodeStructured(raw []byte) (any, bool) {
	var doc any
	if utf8.Valid(raw) {
		if err := json.Unmarshal(raw, &doc); err == nil {
			return doc, true
		}
	}
	if err := json.Unmarshal(latin1ToUTF8(raw), &doc); err == nil {
		return doc, true
	}
	return nil, false
}

func latin1ToUTF8(raw []byte) []byte {
	buf := make([]rune, len(raw))
	for i, b := range raw {
		buf[i] = rune(b)
	}
	return []byte(string(buf))
}

// collectRelations walks the decoded value tree and, whenever an object key
// matches one of the relation aliases and holds a list, pulls a username out
// of each list item. Recursion continues into every nested value so relation
// keys are found at any depth.
func collectRelations(v any, keys map[string]bool, into UserSet) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if keys[strings.ToLower(k)] {
				if list, ok := child.([]any); ok {
					for _, item := range list {
						if obj, ok := item.(map[string]any); ok {
							if u, ok := usernameFromItem(obj); ok {
								into.Add(u)
							}
						}
					}
				}
			}
			collectRelations(child, keys, into)
		}
	case []any:
		for _, item := range node {
			collectRelations(item, keys, into)
		}
	}
}

// usernameFromItem reads the direct "username" field or, when absent, the
// "value" field of the first element of "string_list_data".
func usernameFromItem(item map[string]any) (string, bool) {
	if u, ok := item["username"].(string); ok && u != "" {
		return Normalize(u)
	}
	if sld, ok := item["string_list_data"].([]any); ok && len(sld) > 0 {
		if first, ok := sld[0].(map[string]any); ok {
			if u, ok := first["value"].(string); ok && u != "" {
				return Normalize(u)
			}
		}
	}
	return "", false
}

// markupTokens strips markup with a tolerant streaming tokenizer and keeps
// the text nodes that look like usernames.
func markupTokens(raw []byte) UserSet {
	users := make(UserSet)
	tz := html.NewTokenizer(bytes.NewReader(raw))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			// io.EOF or a parse error the tokenizer could not recover from;
			// either way the tokens collected so far stand.
			return users
		}
		if tt != html.TextToken {
			continue
		}
		s := strings.TrimSpace(string(tz.Text()))
		if s == "" || len(s) > 50 || strings.Count(s, " ") > 1 {
			continue
		}
		if u, ok := Normalize(s); ok {
			users.Add(u)
		}
	}
}
