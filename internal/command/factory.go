// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ambar-lang/amb/internal/logging"
	"github.com/ambar-lang/amb/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Factory maps command names to constructors. It is safe for concurrent
	// use; registration normally happens once at startup.
	Factory struct {
		mu      sync.RWMutex
		entries map[string]entry
		logger  *log.Logger
	}

	entry struct {
		ctor        Constructor
		description string
	}
)

// NewFactory creates an empty factory. A nil logger uses the shared logger.
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = logging.Default()
	}
	return &Factory{
		entries: make(map[string]entry),
		logger:  logger,
	}
}

// Register binds name to ctor, replacing any earlier binding with a warning.
// The constructor runs once here to cache the command's description; a failure
// leaves the description empty but keeps the registration.
func (f *Factory) Register(name string, ctor Constructor) {
	var description string
	if cmd, err := construct(name, ctor); err != nil {
		f.logger.Warn("Cannot describe command", "command", name, "err", err)
	} else {
		description = cmd.Description()
		if ok, errs := types.DescriptionText(description).IsValid(); !ok {
			f.logger.Warn("Command description is not a single line", "command", name, "err", errors.Join(errs...))
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[name]; ok {
		f.logger.Warn(fmt.Sprintf("Command '%s' already registered, overwriting", name))
	}
	f.entries[name] = entry{ctor: ctor, description: description}
}

// Create constructs a fresh command. Unknown names return *NotFoundError;
// failing or panicking constructors return *ConstructionError.
func (f *Factory) Create(name string) (Command, error) {
	f.mu.RLock()
	e, ok := f.entries[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	cmd, err := construct(name, e.ctor)
	if err != nil {
		f.logger.Error("Failed to create command", "command", name, "err", err)
		return nil, err
	}
	return cmd, nil
}

// List returns every registered name in ascending order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Exists reports whether name is registered.
func (f *Factory) Exists(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.entries[name]
	return ok
}

// Describe returns the cached description of name, or "" when unknown.
func (f *Factory) Describe(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.entries[name].description
}

// construct runs ctor and converts errors, nil results and panics into
// *ConstructionError.
func construct(name string, ctor Constructor) (cmd Command, err error) {
	defer func() {
		if r := recover(); r != nil {
			cmd = nil
			err = &ConstructionError{Name: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if ctor == nil {
		return nil, &ConstructionError{Name: name, Err: errors.New("nil constructor")}
	}
	cmd, err = ctor()
	if err != nil {
		return nil, &ConstructionError{Name: name, Err: err}
	}
	if cmd == nil {
		return nil, &ConstructionError{Name: name, Err: errors.New("constructor returned no command")}
	}
	return cmd, nil
}
