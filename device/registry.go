package device

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/gogpu/gprint/text"
)

// Config carries construction parameters for registered devices.
type Config struct {
	// Capabilities overrides the device defaults when non-zero.
	Capabilities Capabilities

	// Width and Height are the page size in device units for devices that
	// allocate page storage. Zero means the capability page size.
	Width, Height int

	// Fonts are extra faces for devices that resolve SelectFont against
	// font files. They are matched by family name.
	Fonts []*text.FontSource

	// Logger receives device diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// Factory creates a device instance from a configuration.
type Factory func(cfg Config) (Device, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a device factory available under name.
//
// Register panics if factory is nil or if name is already registered, so
// that duplicate registrations surface during program initialization.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("device: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("device: Register called twice for " + name)
	}
	factories[name] = factory
}

// Open creates a device by name.
// The error mentions a forgotten import when name is unknown.
func Open(name string, cfg Config) (Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("device: unknown device %q (forgotten import?)", name)
	}
	return factory(cfg)
}

// Devices returns the registered device names in sorted order.
func Devices() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a device named name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
