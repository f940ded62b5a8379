package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "EGDESK"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	file           string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a configuration manager bound to file. An empty file
// selects $XDG_CONFIG_HOME/egdesk/config.toml.
func NewManager(file string) (*Manager, error) {
	if file == "" {
		var err error
		file, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("toml")

	// EGDESK_BROWSER_ENGINE, EGDESK_SESSION_MAX_SNAPSHOTS, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The logging variables are shared with logging.NewFromEnv and use the
	// shorter LOG_ names.
	if err := v.BindEnv("logging.level", "EGDESK_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind EGDESK_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "EGDESK_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind EGDESK_LOG_FORMAT: %w", err)
	}

	return &Manager{viper: v, file: file}, nil
}

// Load reads the config file, creating it with defaults on first run, and
// applies environment overrides.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensurePaths(config); err != nil {
		return err
	}
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if _, err := os.Stat(m.file); errors.Is(err, fs.ErrNotExist) {
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.file,
				createErr,
			)
		}
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.file, err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.file,
			err,
		)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = getDefaultLogDir()
	}
	config.Browser.Engine = Engine(strings.ToLower(string(config.Browser.Engine)))
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return cloneConfig(m.config)
}

// cloneConfig copies cfg deep enough that callers may mutate the result.
func cloneConfig(cfg *Config) *Config {
	out := *cfg
	out.Search.Shortcuts = maps.Clone(cfg.Search.Shortcuts)
	return &out
}

// Save validates cfg, writes it to disk, and makes it current.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.file), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(cfg, m.file); err != nil {
		return err
	}

	// The watcher fires for our own write. The in-memory copy is already
	// correct, so only viper's cache needs a refresh.
	if m.watching {
		m.skipNextReload = true
	}
	saved := *cfg
	m.config = &saved
	return nil
}

// GetConfigFile returns the path of the config file.
func (m *Manager) GetConfigFile() string {
	return m.file
}

func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.file), dirPerm); err != nil {
		return err
	}
	defaults := DefaultConfig()
	// Paths stay empty on disk so the XDG defaults follow the environment.
	defaults.Logging.LogDir = ""
	return WriteConfigOrdered(defaults, m.file)
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("browser.engine", string(defaults.Browser.Engine))
	m.viper.SetDefault("browser.headless", defaults.Browser.Headless)
	m.viper.SetDefault("browser.exec_path", defaults.Browser.ExecPath)
	m.viper.SetDefault("browser.window_width", defaults.Browser.WindowWidth)
	m.viper.SetDefault("browser.window_height", defaults.Browser.WindowHeight)
	m.viper.SetDefault("browser.homepage", defaults.Browser.Homepage)
	m.viper.SetDefault("browser.resize_poll_ms", defaults.Browser.ResizePollMs)

	m.viper.SetDefault("layout.header_height", defaults.Layout.HeaderHeight)
	m.viper.SetDefault("layout.control_bar_height", defaults.Layout.ControlBarHeight)
	m.viper.SetDefault("layout.padding", defaults.Layout.Padding)
	m.viper.SetDefault("layout.console_ratio", defaults.Layout.ConsoleRatio)
	m.viper.SetDefault("layout.debounce_ms", defaults.Layout.DebounceMs)

	m.viper.SetDefault("security.accept_invalid_certificates", defaults.Security.AcceptInvalidCertificates)

	m.viper.SetDefault("search.default_engine", defaults.Search.DefaultEngine)
	shortcuts := make(map[string]any, len(defaults.Search.Shortcuts))
	for key, s := range defaults.Search.Shortcuts {
		shortcuts[key] = map[string]any{"url": s.URL, "description": s.Description}
	}
	m.viper.SetDefault("search.shortcuts", shortcuts)

	m.viper.SetDefault("session.restore_on_startup", defaults.Session.RestoreOnStartup)
	m.viper.SetDefault("session.snapshot_interval_ms", defaults.Session.SnapshotIntervalMs)
	m.viper.SetDefault("session.max_snapshots", defaults.Session.MaxSnapshots)
	m.viper.SetDefault("session.max_age_days", defaults.Session.MaxAgeDays)

	m.viper.SetDefault("database.path", "")

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", "")
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)

	m.viper.SetDefault("automation.script_timeout_ms", defaults.Automation.ScriptTimeoutMs)
	m.viper.SetDefault("automation.wait_poll_interval_ms", defaults.Automation.WaitPollIntervalMs)

	m.viper.SetDefault("console.accent_color", defaults.Console.AccentColor)
	m.viper.SetDefault("console.max_log_lines", defaults.Console.MaxLogLines)
}
