package validation

import (
	"regexp"
	"strings"
)

var settingKeyRE = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)

const maxSettingValueLen = 4096

// ValidateSettingKey accepts dotted lower_snake keys like "console.last_input".
func ValidateSettingKey(value string) []string {
	var errs []string
	if strings.TrimSpace(value) == "" {
		errs = append(errs, "setting key cannot be empty")
		return errs
	}
	if len(value) > 128 {
		errs = append(errs, "setting key is too long")
	}
	if !settingKeyRE.MatchString(value) {
		errs = append(errs, "setting key must be dotted lower_snake_case")
	}
	return errs
}

func ValidateSettingValue(value string) []string {
	var errs []string
	if len(value) > maxSettingValueLen {
		errs = append(errs, "setting value is too long")
	}
	return errs
}
