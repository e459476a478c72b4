package ocr

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Config carries the settings every engine factory may draw from.
type Config struct {
	ServerURL string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	Languages []string
}

// Factory builds an engine from config.
type Factory func(cfg Config) (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes an engine available to New under name. Registering the same
// name twice replaces the earlier factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// New builds the engine registered under name.
func New(name string, cfg Config) (Engine, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ocr engine %q is not available (have %v)", name, Engines())
	}
	return f(cfg)
}

// Engines lists registered engine names.
func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
