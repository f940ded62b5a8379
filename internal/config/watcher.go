package config

import (
	"slices"

	"github.com/fsnotify/fsnotify"

	"github.com/egdesk/taehwa/internal/logging"
)

// Watch reloads the config file whenever it changes on disk. Invalid edits
// are logged and the previous configuration stays current.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	m.viper.OnConfigChange(m.handleFileEvent)
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange registers fn to run after every successful reload. fn gets
// its own copy of the new configuration.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, fn)
}

// handleFileEvent runs on viper's watcher goroutine.
func (m *Manager) handleFileEvent(e fsnotify.Event) {
	log := logging.NewFromEnv().With().
		Str("file", e.Name).
		Str("op", e.Op.String()).
		Logger()

	m.mu.Lock()
	var err error
	if m.skipNextReload {
		// Save already made the new config current; viper only needs to
		// catch up with the file.
		m.skipNextReload = false
		err = m.viper.ReadInConfig()
	} else {
		err = m.reload()
	}
	if err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config change ignored")
		return
	}
	current := m.config
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	log.Debug().Int("subscribers", len(callbacks)).Msg("config reloaded")
	for _, fn := range callbacks {
		fn(cloneConfig(current))
	}
}

// reload must be called with m.mu held for write.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	cfg, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensurePaths(cfg); err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}
