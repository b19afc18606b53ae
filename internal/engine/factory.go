package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ErrUnknownEngine is wrapped by Get when no engine has the requested name.
var ErrUnknownEngine = errors.New("unknown engine")

// optionalEngines holds engines compiled in behind build tags.
var optionalEngines []Engine

// Factory resolves engines by name.
type Factory interface {
	// Get returns the engine registered under name.
	Get(name string) (Engine, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered engine, sorted by name.
	GetAll() []Engine
	// Register adds or replaces an engine.
	Register(name string, e Engine)
}

// DefaultFactory is a concurrency-safe engine registry.
type DefaultFactory struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewFactory returns an empty registry.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{engines: make(map[string]Engine)}
}

// NewDefaultFactory returns a registry holding the native engines, the
// math/big reference engine and any engine enabled by build tags.
func NewDefaultFactory() *DefaultFactory {
	f := NewFactory()
	for _, e := range []Engine{
		NewNativeEngine("native", bigint.MulAuto),
		NewNativeEngine("native-small", bigint.MulSmall),
		NewNativeEngine("native-general", bigint.MulGeneral),
		BigEngine{},
	} {
		f.Register(e.Name(), e)
	}
	for _, e := range optionalEngines {
		f.Register(e.Name(), e)
	}
	return f
}

// Register implements Factory.
func (f *DefaultFactory) Register(name string, e Engine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.engines[name] = e
}

// Get implements Factory.
func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, name)
	}
	return e, nil
}

// List implements Factory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.engines))
	for name := range f.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements Factory.
func (f *DefaultFactory) GetAll() []Engine {
	names := f.List()
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make([]Engine, 0, len(names))
	for _, name := range names {
		if e, ok := f.engines[name]; ok {
			all = append(all, e)
		}
	}
	return all
}
