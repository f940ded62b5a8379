// Package validation holds field checks shared by config loading and the
// settings store. Checks return messages instead of errors so callers can
// report every problem at once.
package validation

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	searchPlaceholder     = "%s"
	maxShortcutDescLength = 200
)

var shortcutKeyRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,19}$`)

// ValidateShortcut checks one !bang shortcut: the key typed after "!", the
// URL template and its description.
func ValidateShortcut(key, template, description string) []string {
	var errs []string

	switch key = strings.TrimSpace(key); {
	case key == "":
		errs = append(errs, "shortcut key cannot be empty")
	case strings.HasPrefix(key, "!"):
		errs = append(errs, "shortcut key is written without the leading !")
	case !shortcutKeyRE.MatchString(key):
		errs = append(errs, "shortcut key must start with a letter and be 1-20 alphanumeric characters")
	}

	errs = append(errs, ValidateSearchTemplate("shortcut url", template)...)

	description = strings.TrimSpace(description)
	if strings.ContainsAny(description, "\r\n") {
		errs = append(errs, "shortcut description must not contain newlines")
	}
	if len(description) > maxShortcutDescLength {
		errs = append(errs, "shortcut description is too long")
	}
	return errs
}

// ValidateSearchTemplate checks an absolute URL with exactly one %s where
// the escaped query goes.
func ValidateSearchTemplate(field, template string) []string {
	template = strings.TrimSpace(template)
	switch n := strings.Count(template, searchPlaceholder); {
	case template == "":
		return []string{field + " cannot be empty"}
	case n == 0:
		return []string{field + " must contain %s placeholder for the search query"}
	case n > 1:
		return []string{field + " must contain a single %s placeholder"}
	}

	parsed, err := url.Parse(strings.Replace(template, searchPlaceholder, "query", 1))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return []string{field + " must be a valid absolute URL"}
	}
	return nil
}
