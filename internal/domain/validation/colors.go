package validation

import "regexp"

var hexColorRE = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRE.MatchString(value)
}

// ValidateHexColor reports a message keyed by field when value is not #RRGGBB.
func ValidateHexColor(field, value string) []string {
	if IsHexColor(value) {
		return nil
	}
	return []string{field + " must be a hex color like #RRGGBB"}
}
