// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ambar-lang/amb/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	dirPerm  = 0o755
	fileType = "json"
)

type (
	// Manager owns the single GlobalConfig of a process and its backing file.
	// Construct one at startup and pass it to whoever needs configuration;
	// all methods are safe for concurrent use.
	Manager struct {
		mu          sync.Mutex
		cfg         GlobalConfig
		initialized bool
		configPath  string

		homeDir string
		environ map[string]string
		logger  *log.Logger
	}

	// Option configures a Manager.
	Option func(*Manager)
)

// WithHomeDir sets the home directory defaults are derived from instead of
// os.UserHomeDir.
func WithHomeDir(dir string) Option {
	return func(m *Manager) { m.homeDir = dir }
}

// WithEnviron replaces the process environment as the source of AMBAR_*
// overrides.
func WithEnviron(environ map[string]string) Option {
	return func(m *Manager) { m.environ = environ }
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates an uninitialized manager. Call Initialize before use.
func NewManager(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.Default()
	}
	return m
}

// Initialize computes defaults, loads the config file, applies the environment
// and creates the managed directories. Only the first call does any work.
//
// A config file that cannot be loaded is reported as a warning and the
// defaults are kept. Only a directory that cannot be created is an error.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	root, overlay, envErr := parseEnv(m.environ)
	if envErr != nil {
		m.logger.Warn("Ignoring AMBAR_* value overrides; AMBAR_HOME still applies", "err", envErr)
	}

	home := m.homeDir
	if home == "" && root.Home == nil {
		h, err := os.UserHomeDir()
		if err != nil {
			return &DirectoryError{Path: "$HOME", Err: fmt.Errorf("resolve home directory: %w", err)}
		}
		home = h
	}

	m.cfg = DefaultConfig(home)
	if root.Home != nil && *root.Home != "" {
		m.cfg.setRoot(*root.Home)
		m.cfg.RegistryURL = FileURL(filepath.Join(m.cfg.AmbRootDir, RegistryDirName))
	}
	m.configPath = filepath.Join(m.cfg.AmbRootDir, ConfigFileName)

	if err := m.load(); err != nil {
		m.logger.Warn("Failed to load configuration, using defaults", "err", err)
	}

	overlay.applyValues(&m.cfg)

	if err := m.cfg.Validate(); err != nil {
		m.logger.Warn("Configuration has invalid values", "err", err)
	}

	for _, dir := range m.cfg.ManagedDirs() {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}

	m.initialized = true
	m.logger.Debug("Configuration initialized", "root", m.cfg.AmbRootDir, "file", m.configPath)
	return nil
}

// Load merges the config file into the current configuration. A missing file
// is not an error. On any failure the current configuration is left untouched.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() error {
	if m.configPath == "" {
		return nil
	}

	data, err := os.ReadFile(m.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.Debug("Config file not found, using defaults", "path", m.configPath)
		return nil
	}
	if err != nil {
		return &ConfigError{Op: "read", Path: m.configPath, Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return &ConfigError{Op: "parse", Path: m.configPath, Err: errors.New("file is empty")}
	}

	fv, err := readFile(data)
	if err != nil {
		return &ConfigError{Op: "parse", Path: m.configPath, Err: err}
	}

	next := m.cfg
	if fv.RegistryURL != nil {
		next.RegistryURL = *fv.RegistryURL
	}
	if fv.AllowInsecure != nil {
		next.AllowInsecure = *fv.AllowInsecure
	}
	if fv.NetworkTimeout != nil {
		next.NetworkTimeout = *fv.NetworkTimeout
	}
	m.cfg = next

	m.logger.Debug("Configuration loaded", "path", m.configPath)
	return nil
}

// Save writes the persisted keys to the config file, creating its directory
// when needed.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save()
}

func (m *Manager) save() error {
	if m.configPath == "" {
		return &ConfigError{Op: "write", Path: ConfigFileName, Err: errors.New("manager is not initialized")}
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), dirPerm); err != nil {
		return &ConfigError{Op: "write", Path: m.configPath, Err: err}
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.Set(KeyRegistryURL, m.cfg.RegistryURL)
	v.Set(KeyAllowInsecure, m.cfg.AllowInsecure)
	v.Set(KeyNetworkTimeout, m.cfg.NetworkTimeout)

	if err := v.WriteConfigAs(m.configPath); err != nil {
		return &ConfigError{Op: "write", Path: m.configPath, Err: err}
	}
	return nil
}

// mutate applies fn under the lock and persists the result. The in-memory
// change stays even when writing fails; the failure is logged and returned.
func (m *Manager) mutate(key string, fn func(*GlobalConfig)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(&m.cfg)
	if err := m.save(); err != nil {
		m.logger.Warn("Failed to persist configuration", "key", key, "err", err)
		return err
	}
	return nil
}

// SetRegistryURL changes the registry URL and persists it.
func (m *Manager) SetRegistryURL(url string) error {
	return m.mutate(KeyRegistryURL, func(c *GlobalConfig) { c.RegistryURL = url })
}

// SetAllowInsecure changes the insecure-transport flag and persists it.
func (m *Manager) SetAllowInsecure(allow bool) error {
	return m.mutate(KeyAllowInsecure, func(c *GlobalConfig) { c.AllowInsecure = allow })
}

// SetNetworkTimeout changes the network timeout in seconds and persists it.
func (m *Manager) SetNetworkTimeout(seconds int) error {
	return m.mutate(KeyNetworkTimeout, func(c *GlobalConfig) { c.NetworkTimeout = seconds })
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() GlobalConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Validate checks the current configuration.
func (m *Manager) Validate() error {
	return m.Config().Validate()
}

// IsInitialized reports whether Initialize has completed.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// ConfigPath returns the resolved config file path ("" before Initialize).
func (m *Manager) ConfigPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configPath
}

// AmbRoot returns the ambar root directory.
func (m *Manager) AmbRoot() string { return m.Config().AmbRootDir }

// CacheDir returns the package cache directory.
func (m *Manager) CacheDir() string { return m.Config().CacheDir }

// LibDir returns the global library directory.
func (m *Manager) LibDir() string { return m.Config().LibDir }

// TempDir returns the scratch directory.
func (m *Manager) TempDir() string { return m.Config().TempDir }

// RegistryPath returns the local path of a file-scheme registry, or "".
func (m *Manager) RegistryPath() string { return m.Config().RegistryPath() }

// EnsureDir creates dir and its parents. An existing directory is success.
func EnsureDir(dir string) error {
	return ensureDir(dir)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return &DirectoryError{Path: dir, Err: err}
	}
	return nil
}
