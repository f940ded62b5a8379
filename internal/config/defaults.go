package config

import "github.com/egdesk/taehwa/internal/domain/url"

// Default configuration constants
const (
	defaultWindowWidth  = 1400
	defaultWindowHeight = 900
	defaultResizePollMs = 250
	defaultHomepage     = "about:blank"

	// Layout defaults match the shell chrome: tab strip, URL bar, and the
	// command console docked on the right.
	defaultHeaderHeight     = 40
	defaultControlBarHeight = 44
	defaultPadding          = 8
	defaultConsoleRatio     = 0.3
	defaultDebounceMs       = 16

	defaultSearchEngine = "https://duckduckgo.com/?q=%s"

	defaultSnapshotIntervalMs = 5000
	defaultMaxSnapshots       = 20
	defaultMaxSnapshotAgeDays = 14

	defaultScriptTimeoutMs    = 30000
	defaultWaitPollIntervalMs = 250

	defaultAccentColor = "#2F80ED"
	defaultMaxLogLines = 500
)

// DefaultConfig returns the default configuration. Paths that depend on the
// environment are filled in by the Manager.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Engine:       EngineCDP,
			WindowWidth:  defaultWindowWidth,
			WindowHeight: defaultWindowHeight,
			Homepage:     defaultHomepage,
			ResizePollMs: defaultResizePollMs,
		},
		Layout: LayoutConfig{
			HeaderHeight:     defaultHeaderHeight,
			ControlBarHeight: defaultControlBarHeight,
			Padding:          defaultPadding,
			ConsoleRatio:     defaultConsoleRatio,
			DebounceMs:       defaultDebounceMs,
		},
		Security: SecurityConfig{
			AcceptInvalidCertificates: true,
		},
		Search: SearchConfig{
			DefaultEngine: defaultSearchEngine,
			Shortcuts:     GetDefaultSearchShortcuts(),
		},
		Session: SessionConfig{
			RestoreOnStartup:   true,
			SnapshotIntervalMs: defaultSnapshotIntervalMs,
			MaxSnapshots:       defaultMaxSnapshots,
			MaxAgeDays:         defaultMaxSnapshotAgeDays,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			LogDir: getDefaultLogDir(),
		},
		Automation: AutomationConfig{
			ScriptTimeoutMs:    defaultScriptTimeoutMs,
			WaitPollIntervalMs: defaultWaitPollIntervalMs,
		},
		Console: ConsoleConfig{
			AccentColor: defaultAccentColor,
			MaxLogLines: defaultMaxLogLines,
		},
	}
}

func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// GetDefaultSearchShortcuts returns the built-in bang shortcuts.
func GetDefaultSearchShortcuts() map[string]SearchShortcut {
	return map[string]SearchShortcut{
		"g":  {URL: "https://www.google.com/search?q=%s", Description: "Google"},
		"n":  {URL: "https://search.naver.com/search.naver?query=%s", Description: "Naver"},
		"gh": {URL: "https://github.com/search?q=%s", Description: "GitHub"},
		"w":  {URL: "https://en.wikipedia.org/wiki/Special:Search?search=%s", Description: "Wikipedia"},
		"wp": {URL: "https://wordpress.org/search/%s", Description: "WordPress"},
	}
}

// ShortcutURLs flattens the shortcuts into the key → template map used by
// url.Resolve.
func (c *SearchConfig) ShortcutURLs() map[string]string {
	out := make(map[string]string, len(c.Shortcuts))
	for key, s := range c.Shortcuts {
		out[key] = s.URL
	}
	return out
}

// Resolve turns free text into a loadable URL with these search settings.
func (c *SearchConfig) Resolve(input string) (string, url.Resolution) {
	return url.Resolve(input, c.ShortcutURLs(), c.DefaultEngine)
}
