// SPDX-License-Identifier: MPL-2.0

package appctx

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ambar-lang/amb/internal/config"
	"github.com/ambar-lang/amb/internal/discovery"
	"github.com/ambar-lang/amb/internal/logging"

	"github.com/charmbracelet/log"
)

const (
	// ModulesDirName is the per-project directory that holds installed packages.
	ModulesDirName = "ambar_modules"
	// ProjectLibDirName is the library directory under ModulesDirName.
	ProjectLibDirName = "lib"

	dryRunNotice = "DRY RUN MODE - no changes will be made"
)

type (
	// Context is the per-invocation application state. It is created once in
	// main, initialized once, and handed to every command.
	Context struct {
		mu sync.Mutex

		cfg    *config.Manager
		logger *log.Logger
		out    io.Writer
		errOut io.Writer

		workDir     string
		initialized bool
		verbose     bool
		dryRun      bool
		noticeShown bool

		projectRoot string
		inProject   bool
	}

	// Option configures a Context.
	Option func(*Context)
)

// WithWorkDir sets the directory project discovery starts from instead of the
// process working directory.
func WithWorkDir(dir string) Option {
	return func(c *Context) { c.workDir = dir }
}

// WithLogger sets the logger. Its level follows SetVerbose.
func WithLogger(logger *log.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

// WithOutput sets the streams commands write results and errors to.
func WithOutput(out, errOut io.Writer) Option {
	return func(c *Context) {
		c.out = out
		c.errOut = errOut
	}
}

// New creates an uninitialized context around cfg. Nil options fall back to
// the process defaults: os.Stdout, os.Stderr and the shared logger.
func New(cfg *config.Manager, opts ...Option) *Context {
	c := &Context{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.errOut == nil {
		c.errOut = os.Stderr
	}
	return c
}

// Initialize brings up the configuration, discovers the enclosing project and
// creates its module directories. Only the first successful call does any work.
// A directory that cannot be created is returned as *config.DirectoryError.
func (c *Context) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := c.cfg.Initialize(); err != nil {
		return err
	}

	settings := c.cfg.Config()
	if settings.Verbose {
		c.setVerbose(true)
	}
	if !settings.ColorOutput {
		logging.SetColor(c.logger, false)
	}

	workDir := c.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			c.logger.Warn("Cannot determine working directory, assuming no project", "err", err)
		}
		workDir = wd
	}
	c.workDir = workDir

	if workDir != "" {
		root, found, err := discovery.FindProjectRoot(workDir, discovery.WithExcludedDir(settings.AmbRootDir))
		if err != nil {
			c.logger.Warn("Project discovery failed", "dir", workDir, "err", err)
		}
		if found {
			c.projectRoot = root
			c.inProject = true
		}
	}

	if c.inProject {
		for _, dir := range []string{c.modulesDir(), c.projectLibDir()} {
			if err := config.EnsureDir(dir); err != nil {
				return err
			}
		}
		c.logger.Debug("Project detected", "root", c.projectRoot)
	} else {
		c.logger.Debug("Not inside a project", "dir", workDir)
	}

	c.initialized = true
	return nil
}

// IsInitialized reports whether Initialize has completed.
func (c *Context) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// IsInsideProject reports whether a project root was found.
func (c *Context) IsInsideProject() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inProject
}

// ProjectRoot returns the discovered project root.
func (c *Context) ProjectRoot() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectRoot, c.inProject
}

// ModulesDir returns <project>/ambar_modules, or "" outside a project.
func (c *Context) ModulesDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modulesDir()
}

// ProjectLibDir returns <project>/ambar_modules/lib, or "" outside a project.
func (c *Context) ProjectLibDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectLibDir()
}

func (c *Context) modulesDir() string {
	if !c.inProject {
		return ""
	}
	return filepath.Join(c.projectRoot, ModulesDirName)
}

func (c *Context) projectLibDir() string {
	if !c.inProject {
		return ""
	}
	return filepath.Join(c.projectRoot, ModulesDirName, ProjectLibDirName)
}

// WorkDir returns the directory project discovery started from.
func (c *Context) WorkDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workDir
}

// SetVerbose switches verbose output. Enabling it lowers the logger to debug.
func (c *Context) SetVerbose(verbose bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVerbose(verbose)
}

func (c *Context) setVerbose(verbose bool) {
	c.verbose = verbose
	if verbose {
		c.logger.SetLevel(log.DebugLevel)
		return
	}
	c.logger.SetLevel(log.InfoLevel)
}

// SetDryRun switches dry-run mode. The first time it is enabled a notice is
// logged; later calls stay quiet.
func (c *Context) SetDryRun(dryRun bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dryRun = dryRun
	if dryRun && !c.noticeShown {
		c.noticeShown = true
		c.logger.Info(dryRunNotice)
	}
}

// SetColor enables or disables ANSI styling of log and CLI output.
func (c *Context) SetColor(enabled bool) {
	logging.SetColor(c.logger, enabled)
}

// IsVerbose reports whether verbose output is on.
func (c *Context) IsVerbose() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verbose
}

// IsDryRun reports whether dry-run mode is on.
func (c *Context) IsDryRun() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dryRun
}

// Config returns the configuration manager.
func (c *Context) Config() *config.Manager { return c.cfg }

// Logger returns the invocation logger.
func (c *Context) Logger() *log.Logger { return c.logger }

// Out returns the stream for command results.
func (c *Context) Out() io.Writer { return c.out }

// Err returns the stream for user-facing errors.
func (c *Context) Err() io.Writer { return c.errOut }

// AmbRoot returns the ambar root directory.
func (c *Context) AmbRoot() string { return c.cfg.AmbRoot() }

// CacheDir returns the package cache directory.
func (c *Context) CacheDir() string { return c.cfg.CacheDir() }

// LibDir returns the global library directory.
func (c *Context) LibDir() string { return c.cfg.LibDir() }

// TempDir returns the scratch directory.
func (c *Context) TempDir() string { return c.cfg.TempDir() }
