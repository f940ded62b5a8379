package config

import (
	"fmt"
	"strings"

	"github.com/egdesk/taehwa/internal/domain/validation"
)

// validateConfig collects every problem instead of stopping at the first.
func validateConfig(config *Config) error {
	var validationErrors []string
	add := func(format string, args ...any) {
		validationErrors = append(validationErrors, fmt.Sprintf(format, args...))
	}

	switch config.Browser.Engine {
	case EngineCDP, EnginePlaywright:
	default:
		add("browser.engine must be one of: cdp, playwright (got: %s)", config.Browser.Engine)
	}
	if config.Browser.WindowWidth <= 0 || config.Browser.WindowHeight <= 0 {
		add("browser.window_width and browser.window_height must be positive")
	}
	if config.Browser.ResizePollMs < 0 {
		add("browser.resize_poll_ms must be non-negative")
	}

	if config.Layout.HeaderHeight < 0 {
		add("layout.header_height must be non-negative")
	}
	if config.Layout.ControlBarHeight < 0 {
		add("layout.control_bar_height must be non-negative")
	}
	if config.Layout.Padding < 0 {
		add("layout.padding must be non-negative")
	}
	if config.Layout.ConsoleRatio < 0 || config.Layout.ConsoleRatio >= 1 {
		add("layout.console_ratio must be in [0, 1) (got: %g)", config.Layout.ConsoleRatio)
	}
	if config.Layout.DebounceMs < 0 {
		add("layout.debounce_ms must be non-negative")
	}

	validationErrors = append(validationErrors, validation.ValidateSearchTemplate("search.default_engine", config.Search.DefaultEngine)...)
	for key, shortcut := range config.Search.Shortcuts {
		for _, msg := range validation.ValidateShortcut(key, shortcut.URL, shortcut.Description) {
			add("search.shortcuts.%s: %s", key, msg)
		}
	}

	if config.Session.SnapshotIntervalMs < 0 {
		add("session.snapshot_interval_ms must be non-negative")
	}
	if config.Session.MaxAgeDays < 0 {
		add("session.max_age_days must be non-negative")
	}

	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		add("logging.level must be one of: trace, debug, info, warn, error, fatal, panic (got: %s)", config.Logging.Level)
	}
	switch config.Logging.Format {
	case "console", "json", "text":
	default:
		add("logging.format must be one of: console, json, text (got: %s)", config.Logging.Format)
	}

	if config.Automation.ScriptTimeoutMs <= 0 {
		add("automation.script_timeout_ms must be positive")
	}
	if config.Automation.WaitPollIntervalMs <= 0 {
		add("automation.wait_poll_interval_ms must be positive")
	}

	validationErrors = append(validationErrors, validation.ValidateHexColor("console.accent_color", config.Console.AccentColor)...)
	if config.Console.MaxLogLines <= 0 {
		add("console.max_log_lines must be positive")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
