// Package config loads egdesk's TOML configuration through Viper and keeps
// it current while the file changes on disk.
package config

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Engine selects the host backend.
type Engine string

const (
	EngineCDP        Engine = "cdp"
	EnginePlaywright Engine = "playwright"
)

// Config represents the complete configuration for egdesk.
type Config struct {
	Browser    BrowserConfig    `mapstructure:"browser" toml:"browser" json:"browser"`
	Layout     LayoutConfig     `mapstructure:"layout" toml:"layout" json:"layout"`
	Security   SecurityConfig   `mapstructure:"security" toml:"security" json:"security"`
	Search     SearchConfig     `mapstructure:"search" toml:"search" json:"search"`
	Session    SessionConfig    `mapstructure:"session" toml:"session" json:"session"`
	Database   DatabaseConfig   `mapstructure:"database" toml:"database" json:"database"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
	Automation AutomationConfig `mapstructure:"automation" toml:"automation" json:"automation"`
	Console    ConsoleConfig    `mapstructure:"console" toml:"console" json:"console"`
}

// BrowserConfig selects and launches the host backend.
type BrowserConfig struct {
	Engine Engine `mapstructure:"engine" toml:"engine" json:"engine" jsonschema:"enum=cdp,enum=playwright"`
	// Headless runs Chromium without a visible window. Bounds still apply
	// to the emulated viewport.
	Headless     bool   `mapstructure:"headless" toml:"headless" json:"headless"`
	ExecPath     string `mapstructure:"exec_path" toml:"exec_path" json:"exec_path"`
	WindowWidth  int    `mapstructure:"window_width" toml:"window_width" json:"window_width"`
	WindowHeight int    `mapstructure:"window_height" toml:"window_height" json:"window_height"`
	Homepage     string `mapstructure:"homepage" toml:"homepage" json:"homepage"`
	// ResizePollMs is how often the cdp backend polls the window size.
	ResizePollMs int `mapstructure:"resize_poll_ms" toml:"resize_poll_ms" json:"resize_poll_ms"`
}

// LayoutConfig holds the chrome sizes used to estimate surface bounds.
type LayoutConfig struct {
	HeaderHeight     int     `mapstructure:"header_height" toml:"header_height" json:"header_height"`
	ControlBarHeight int     `mapstructure:"control_bar_height" toml:"control_bar_height" json:"control_bar_height"`
	Padding          int     `mapstructure:"padding" toml:"padding" json:"padding"`
	ConsoleRatio     float64 `mapstructure:"console_ratio" toml:"console_ratio" json:"console_ratio"`
	DebounceMs       int     `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms"`
}

// SecurityConfig holds the certificate policy.
type SecurityConfig struct {
	AcceptInvalidCertificates bool `mapstructure:"accept_invalid_certificates" toml:"accept_invalid_certificates" json:"accept_invalid_certificates"`
}

// SearchShortcut represents a bang search shortcut.
type SearchShortcut struct {
	URL         string `mapstructure:"url" toml:"url" json:"url"`
	Description string `mapstructure:"description" toml:"description" json:"description"`
}

// SearchConfig holds free-text navigation settings.
type SearchConfig struct {
	// DefaultEngine is a URL template with a single %s placeholder.
	DefaultEngine string                    `mapstructure:"default_engine" toml:"default_engine" json:"default_engine"`
	Shortcuts     map[string]SearchShortcut `mapstructure:"shortcuts" toml:"shortcuts" json:"shortcuts"`
}

// SessionConfig controls snapshots of open tabs.
type SessionConfig struct {
	RestoreOnStartup   bool `mapstructure:"restore_on_startup" toml:"restore_on_startup" json:"restore_on_startup"`
	SnapshotIntervalMs int  `mapstructure:"snapshot_interval_ms" toml:"snapshot_interval_ms" json:"snapshot_interval_ms"`
	MaxSnapshots       int  `mapstructure:"max_snapshots" toml:"max_snapshots" json:"max_snapshots"`
	MaxAgeDays         int  `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level"`
	Format        string `mapstructure:"format" toml:"format" json:"format"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
}

// AutomationConfig holds limits for the command surface.
type AutomationConfig struct {
	ScriptTimeoutMs    int `mapstructure:"script_timeout_ms" toml:"script_timeout_ms" json:"script_timeout_ms"`
	WaitPollIntervalMs int `mapstructure:"wait_poll_interval_ms" toml:"wait_poll_interval_ms" json:"wait_poll_interval_ms"`
}

// ConsoleConfig styles the command console.
type ConsoleConfig struct {
	AccentColor string `mapstructure:"accent_color" toml:"accent_color" json:"accent_color"`
	MaxLogLines int    `mapstructure:"max_log_lines" toml:"max_log_lines" json:"max_log_lines"`
}
