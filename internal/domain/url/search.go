package url

import (
	neturl "net/url"
	"strings"
)

// ParseBangShortcut extracts a bang shortcut from input.
// Input must start with "!" followed by shortcut key and a space.
// Returns (shortcutKey, query, found).
//
// Examples:
//
//	"!g golang"      → ("g", "golang", true)
//	"!gh repo name"  → ("gh", "repo name", true)
//	"!g"             → ("", "", false) - no query
//	"test !g"        → ("", "", false) - bang not at start
func ParseBangShortcut(input string) (shortcut, query string, found bool) {
	if !strings.HasPrefix(input, "!") {
		return "", "", false
	}

	spaceIdx := strings.Index(input, " ")
	if spaceIdx == -1 || spaceIdx == 1 {
		return "", "", false
	}

	shortcut = input[1:spaceIdx]
	query = strings.TrimSpace(input[spaceIdx+1:])

	if query == "" {
		return "", "", false
	}

	return shortcut, query, true
}

// Resolution says how Resolve interpreted the input.
type Resolution int

const (
	ResolvedEmpty Resolution = iota
	ResolvedURL
	ResolvedShortcut
	ResolvedSearch
)

// Resolve turns console input into something a surface can load.
//
// Order: bang shortcut, URL-like input, default search engine. Templates use
// a single %s placeholder which receives the query-escaped text.
func Resolve(input string, shortcutURLs map[string]string, defaultSearch string) (string, Resolution) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ResolvedEmpty
	}

	if key, query, found := ParseBangShortcut(input); found {
		if template, ok := shortcutURLs[key]; ok {
			return fillTemplate(template, query), ResolvedShortcut
		}
	}

	if LooksLikeURL(input) {
		return Normalize(input), ResolvedURL
	}

	if defaultSearch != "" {
		return fillTemplate(defaultSearch, input), ResolvedSearch
	}

	return input, ResolvedSearch
}

// BuildSearchURL is Resolve without the classification.
func BuildSearchURL(input string, shortcutURLs map[string]string, defaultSearch string) string {
	resolved, _ := Resolve(input, shortcutURLs, defaultSearch)
	return resolved
}

func fillTemplate(template, query string) string {
	return strings.Replace(template, "%s", neturl.QueryEscape(query), 1)
}
