package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapfrag/pkg/core"
)

// Factory builds an unconnected adapter. A nil logger discards output.
type Factory func(*slog.Logger) Adapter

// ErrNoAdapterType is returned when a verify config names no engine.
var ErrNoAdapterType = errors.New("adapter type not specified")

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes an engine available under name. Engines call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// NewAdapter builds the adapter named by cfg.Type.
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, ErrNoAdapterType
	}
	factory, ok := Lookup(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{Type: cfg.Type, Available: ListAdapters()}
	}
	return factory(logger), nil
}

// ListAdapters returns the registered engine names, sorted.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

// UnknownAdapterError is returned for an engine nobody registered.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q (available: %s); set verify.type in leapfrag.yaml or pass --type",
		e.Type, strings.Join(e.Available, ", "))
}
