package container

import (
	"strings"
	"sync"

	"github.com/km-arc/go-artax/framework/notation"
)

// ConfigStore holds, per symbolic name, the parameters whose declared type
// should be replaced by another symbolic name. Absence is not an error.
type ConfigStore interface {
	Get(name string) (map[string]string, bool)
}

// Bindings is the in-memory ConfigStore. Type names and parameter names are
// stored lower-cased, so lookups are case-insensitive.
type Bindings struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewBindings creates an empty store.
func NewBindings() *Bindings {
	return &Bindings{items: make(map[string]map[string]string)}
}

// Get implements ConfigStore. The returned map is a copy.
func (b *Bindings) Get(name string) (map[string]string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	params, ok := b.items[notation.Canonical(name)]
	if !ok {
		return nil, false
	}
	return copyParams(params), true
}

// Set maps param of name to target and returns the store for chaining.
//
//	b.Set("app.service", "logger", "app.fileLogger")
func (b *Bindings) Set(name, param, target string) *Bindings {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := notation.Canonical(name)
	if b.items[key] == nil {
		b.items[key] = make(map[string]string)
	}
	b.items[key][strings.ToLower(param)] = target
	return b
}

// Replace swaps the whole table in one step.
func (b *Bindings) Replace(all map[string]map[string]string) {
	next := make(map[string]map[string]string, len(all))
	for name, params := range all {
		key := notation.Canonical(name)
		if next[key] == nil {
			next[key] = make(map[string]string, len(params))
		}
		for param, target := range params {
			next[key][strings.ToLower(param)] = target
		}
	}

	b.mu.Lock()
	b.items = next
	b.mu.Unlock()
}

// All returns a snapshot of the table.
func (b *Bindings) All() map[string]map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]map[string]string, len(b.items))
	for name, params := range b.items {
		out[name] = copyParams(params)
	}
	return out
}

// Len returns the number of configured type names.
func (b *Bindings) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// configured looks param up in specd, exactly first, then ignoring case on
// both sides. Stores other than Bindings may keep keys as written.
func configured(specd map[string]string, param string) (string, bool) {
	if target, ok := specd[param]; ok {
		return target, true
	}
	for key, target := range specd {
		if strings.EqualFold(key, param) {
			return target, true
		}
	}
	return "", false
}

func copyParams(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// emptyStore is used when a Container is built without a ConfigStore.
type emptyStore struct{}

func (emptyStore) Get(string) (map[string]string, bool) { return nil, false }
