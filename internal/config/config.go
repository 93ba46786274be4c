// SPDX-License-Identifier: MPL-2.0

package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ambar-lang/amb/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "ambar"
	// ConfigFileName is the name of the persisted config file.
	ConfigFileName = "config.json"

	// CacheDirName, LibDirName and TempDirName are the managed subdirectories
	// of the ambar root.
	CacheDirName = "cache"
	LibDirName   = "lib"
	TempDirName  = "tmp"

	// RegistryDirName is the directory of the default file-scheme registry.
	RegistryDirName = "registry"

	// DefaultNetworkTimeout is the default network timeout in seconds.
	DefaultNetworkTimeout = 30
	// DefaultMaxRetries is the default retry budget for registry requests.
	DefaultMaxRetries = 3

	fileScheme = "file://"
)

// GlobalConfig is the process-wide configuration. Only RegistryURL,
// AllowInsecure and NetworkTimeout are persisted; the rest come from defaults
// and the environment.
type GlobalConfig struct {
	AmbRootDir string `key:"ambar_root" validate:"required"`
	CacheDir   string `key:"cache_dir" validate:"required"`
	LibDir     string `key:"lib_dir" validate:"required"`
	TempDir    string `key:"temp_dir" validate:"required"`

	RegistryURL    string `key:"registry_url" validate:"required,url"`
	RegistryAPIKey string `key:"registry_api_key"`

	NetworkTimeout int `key:"network_timeout" validate:"min=1,max=3600"`
	MaxRetries     int `key:"max_retries" validate:"min=0,max=10"`

	AllowInsecure bool `key:"allow_insecure"`
	VerifySSL     bool `key:"verify_ssl"`
	AutoUpdate    bool `key:"auto_update"`
	Verbose       bool `key:"verbose"`
	ColorOutput   bool `key:"color_output"`
}

// DefaultRoot returns the ambar root for the given home directory.
func DefaultRoot(home string) string {
	if runtime.GOOS == platform.Windows {
		return filepath.Join(home, "AppData", "Local", AppName)
	}
	return filepath.Join(home, "."+AppName)
}

// DefaultConfig returns the configuration derived from a home directory
// before any file or environment override is applied.
func DefaultConfig(home string) GlobalConfig {
	cfg := GlobalConfig{
		NetworkTimeout: DefaultNetworkTimeout,
		MaxRetries:     DefaultMaxRetries,
		VerifySSL:      true,
		ColorOutput:    true,
	}
	cfg.setRoot(DefaultRoot(home))
	cfg.RegistryURL = FileURL(filepath.Join(cfg.AmbRootDir, RegistryDirName))
	return cfg
}

// setRoot moves the ambar root and every managed directory under it.
func (c *GlobalConfig) setRoot(root string) {
	c.AmbRootDir = root
	c.CacheDir = filepath.Join(root, CacheDirName)
	c.LibDir = filepath.Join(root, LibDirName)
	c.TempDir = filepath.Join(root, TempDirName)
}

// ManagedDirs lists the directories the configuration requires, root first.
func (c GlobalConfig) ManagedDirs() []string {
	return []string{c.AmbRootDir, c.CacheDir, c.LibDir, c.TempDir}
}

// FileURL turns a local path into a file-scheme registry URL.
func FileURL(path string) string {
	return fileScheme + filepath.ToSlash(path)
}

// RegistryPath returns the local path of a file-scheme registry URL, or ""
// when the registry is remote.
func (c GlobalConfig) RegistryPath() string {
	path, ok := strings.CutPrefix(c.RegistryURL, fileScheme)
	if !ok {
		return ""
	}
	return filepath.FromSlash(path)
}
