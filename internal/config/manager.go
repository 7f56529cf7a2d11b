package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment override, e.g. SYLLABUS_REPORT_ENDPOINT.
const EnvPrefix = "SYLLABUS"

// Manager loads configuration and reloads it when the file changes.
type Manager struct {
	viper     *viper.Viper
	log       *zap.Logger
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager. A non-empty file is read instead of
// searching the default locations.
func NewManager(file string) *Manager {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{viper: v, log: zap.NewNop()}
	m.setDefaults()
	return m
}

// SetLogger sets the logger used for reload diagnostics.
func (m *Manager) SetLogger(l *zap.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	m.log = l
}

func (m *Manager) setDefaults() {
	v := m.viper
	v.SetDefault("db.path", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("report.endpoint", "")
	v.SetDefault("report.timeout", "15s")
	v.SetDefault("report.offline", false)
	v.SetDefault("report.fixture_delay", "2200ms")
	v.SetDefault("ui.input", "auto")
	v.SetDefault("ui.layout", "auto")
	v.SetDefault("ui.frame_interval", "50ms")
	v.SetDefault("ui.wheel_delta", 100.0)
	v.SetDefault("interaction.wheel_cooldown", "400ms")
	v.SetDefault("interaction.wheel_noise_floor", 5.0)
	v.SetDefault("interaction.swipe_threshold", 50.0)
	v.SetDefault("interaction.unfocus_delay", "3s")
	v.SetDefault("interaction.feedback_lifetime", "900ms")
	v.SetDefault("interaction.feedback_cap", 32)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// BindFlags lets command-line flags override file and environment values.
// Only flags present in fs are bound.
func (m *Manager) BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"db":       "db.path",
		"catalog":  "catalog.path",
		"endpoint": "report.endpoint",
		"offline":  "report.offline",
		"input":    "ui.input",
		"layout":   "ui.layout",
	}
	for flag, key := range bindings {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := m.viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file when one exists, applies overrides and
// validates the result. A missing file in the default locations is not an
// error; a missing explicit file is.
func (m *Manager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := m.unmarshal()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return cfg, nil
}

func (m *Manager) unmarshal() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", m.viper.ConfigFileUsed(), err)
	}
	normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.UI.Input = strings.ToLower(strings.TrimSpace(cfg.UI.Input))
	cfg.UI.Layout = strings.ToLower(strings.TrimSpace(cfg.UI.Layout))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.DB.Path == "" {
		cfg.DB.Path = DefaultDBPath()
	}
}

// Config returns the most recently loaded configuration.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// FileUsed returns the path of the config file read, or "".
func (m *Manager) FileUsed() string {
	return m.viper.ConfigFileUsed()
}

// OnChange registers a callback invoked after a successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch reloads the configuration whenever the file changes. It is a no-op
// when no file was read.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching || m.viper.ConfigFileUsed() == "" {
		return
	}
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.reload(e)
	})
	m.viper.WatchConfig()
	m.watching = true
}

func (m *Manager) reload(e fsnotify.Event) {
	m.mu.Lock()
	log := m.log
	cfg, err := m.unmarshal()
	if err != nil {
		m.mu.Unlock()
		log.Warn("config reload rejected", zap.String("file", e.Name), zap.Error(err))
		return
	}
	m.config = cfg
	callbacks := append(([]func(*Config))(nil), m.callbacks...)
	m.mu.Unlock()

	log.Debug("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	for _, cb := range callbacks {
		cb(cfg)
	}
}

// ConfigDir returns $XDG_CONFIG_HOME/syllabus, falling back to ~/.config/syllabus.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "syllabus")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "syllabus")
}

// DefaultDBPath returns $XDG_DATA_HOME/syllabus/syllabus.db, falling back
// to ~/.local/share.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "syllabus", "syllabus.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "syllabus.db"
	}
	return filepath.Join(home, ".local", "share", "syllabus", "syllabus.db")
}
