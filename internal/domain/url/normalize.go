// Package url turns free-text omnibox/console input into loadable URLs.
package url

import (
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// loadableSchemes are passed through untouched.
var loadableSchemes = []string{
	"http://",
	"https://",
	"file://",
	"about:",
	"data:",
	"chrome://",
}

func hasLoadableScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, scheme := range loadableSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// Normalize adds a scheme to URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if hasLoadableScheme(input) {
		return input
	}

	if isLocalhost(input) {
		return "http://" + input
	}

	if path, ok := localFilePath(input); ok {
		return "file://" + path
	}

	if looksLikeHost(input) {
		return "https://" + input
	}

	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
// Returns true for strings like "github.com", "localhost:8080" or "https://x".
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	if hasLoadableScheme(input) || isLocalhost(input) {
		return true
	}
	if _, ok := localFilePath(input); ok {
		return true
	}
	return looksLikeHost(input)
}

// IsValid reports whether a normalized string parses as an absolute URL.
func IsValid(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return false
	}
	switch parsed.Scheme {
	case "http", "https":
		return parsed.Host != ""
	default:
		return true
	}
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Strips the "www." prefix so www.example.com and example.com match.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// looksLikeHost: contains a dot, no spaces, and the part before the first
// slash is not a bare number like "3.14".
func looksLikeHost(input string) bool {
	if strings.ContainsAny(input, " \t") || !strings.Contains(input, ".") {
		return false
	}
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if net.ParseIP(host) != nil {
		return true
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	tld := host[strings.LastIndex(host, ".")+1:]
	for _, r := range tld {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}

// isLocalhost matches "localhost", "localhost:port" and "localhost/path",
// but not domains that merely start with "localhost".
func isLocalhost(input string) bool {
	const host = "localhost"
	if !strings.HasPrefix(strings.ToLower(input), host) {
		return false
	}
	rest := input[len(host):]
	return rest == "" || rest[0] == ':' || rest[0] == '/'
}

// localFilePath resolves absolute, ./relative and ~/ paths that exist on disk.
func localFilePath(input string) (string, bool) {
	if !strings.HasPrefix(input, "/") && !strings.HasPrefix(input, "./") &&
		!strings.HasPrefix(input, "../") && !strings.HasPrefix(input, "~/") &&
		!strings.HasSuffix(strings.ToLower(input), ".html") {
		return "", false
	}

	path := ExpandHome(input)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(abs); err != nil {
		return "", false
	}
	return abs, true
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
