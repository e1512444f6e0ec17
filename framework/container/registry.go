package container

import (
	"fmt"
	"sort"
	"sync"

	"github.com/km-arc/go-artax/framework/notation"
)

// NameResolver maps a symbolic name to the type it stands for.
type NameResolver interface {
	Resolve(name string) (*Type, error)
}

// deferredLoad runs a deferred registration at most once. A load that
// panics leaves err set for every later lookup.
type deferredLoad struct {
	once sync.Once
	load func()
	err  error
}

func (d *deferredLoad) run() error {
	d.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				d.err = fmt.Errorf("deferred registration panicked: %v", r)
			}
		}()
		d.load()
	})
	return d.err
}

// Registry is the table of constructors the Container instantiates from.
// All keys are canonical symbolic names.
type Registry struct {
	mu sync.RWMutex

	// name → type
	types map[string]*Type

	// alias → name
	aliases map[string]string

	// name → loader registering it on first lookup
	deferred map[string]*deferredLoad
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:    make(map[string]*Type),
		aliases:  make(map[string]string),
		deferred: make(map[string]*deferredLoad),
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a constructor under the symbolic name of the type it
// returns. names label the constructor's parameters in order; leave them out
// for zero-argument constructors and parameter objects.
//
//	r.Register(app.NewService, "logger", "mailer") // "app.Service"
func (r *Registry) Register(ctor any, names ...string) error {
	t, err := newType("", ctor, names)
	if err != nil {
		return err
	}
	return r.add(notation.FromType(t.out), t)
}

// RegisterAs adds a constructor under an explicit symbolic name.
//
//	r.RegisterAs("app.fileLogger", app.NewFileLogger, "path")
func (r *Registry) RegisterAs(name string, ctor any, names ...string) error {
	t, err := newType("", ctor, names)
	if err != nil {
		return err
	}
	return r.add(name, t)
}

// RegisterType adds a type that has no constructor. Make returns a pointer
// to a new zero value of sample's type.
//
//	r.RegisterType("app.clock", app.Clock{})
func (r *Registry) RegisterType(name string, sample any) error {
	t, err := newBareType("", sample)
	if err != nil {
		return err
	}
	return r.add(name, t)
}

// MustRegister panics on registration error; intended for provider code.
func (r *Registry) MustRegister(ctor any, names ...string) {
	if err := r.Register(ctor, names...); err != nil {
		panic(err)
	}
}

// MustRegisterAs panics on registration error; intended for provider code.
func (r *Registry) MustRegisterAs(name string, ctor any, names ...string) {
	if err := r.RegisterAs(name, ctor, names...); err != nil {
		panic(err)
	}
}

func (r *Registry) add(name string, t *Type) error {
	key, err := notation.Parse(name)
	if err != nil {
		return fmt.Errorf("register %s: %w", t.out, err)
	}
	t.name = key

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	if _, exists := r.aliases[key]; exists {
		return fmt.Errorf("%w: %q is already an alias", ErrDuplicate, key)
	}
	r.types[key] = t
	return nil
}

// Alias makes abstract resolve to whatever name resolves to. This is how an
// interface's symbolic name is pointed at an implementation.
//
//	r.Alias("app.Logger", "app.fileLogger")
func (r *Registry) Alias(abstract, name string) error {
	from, err := notation.Parse(abstract)
	if err != nil {
		return err
	}
	to, err := notation.Parse(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[from]; exists {
		return fmt.Errorf("%w: %q is a registered type", ErrDuplicate, from)
	}
	for hop := to; ; {
		if hop == from {
			return fmt.Errorf("%w: %q -> %q", ErrSelfAlias, from, to)
		}
		next, ok := r.aliases[hop]
		if !ok {
			break
		}
		hop = next
	}
	r.aliases[from] = to
	return nil
}

// Defer registers load to run the first time any of names is looked up and
// not found. load usually calls Register for those names.
func (r *Registry) Defer(names []string, load func()) error {
	d := &deferredLoad{load: load}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		key, err := notation.Parse(name)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		r.deferred[key] = d
	}
	return nil
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Resolve implements NameResolver.
func (r *Registry) Resolve(name string) (*Type, error) {
	key, err := notation.Parse(name)
	if err != nil {
		return nil, ResolutionError{Name: name, Kind: InvalidSymbolicName, Err: err}
	}

	if t, ok := r.lookup(key); ok {
		return t, nil
	}

	r.mu.RLock()
	d := r.deferred[r.canonical(key)]
	r.mu.RUnlock()
	if d != nil {
		if err := d.run(); err != nil {
			return nil, ResolutionError{Name: name, Kind: UnknownSymbolicName, Err: err}
		}
		if t, ok := r.lookup(key); ok {
			return t, nil
		}
	}
	return nil, ResolutionError{Name: name, Kind: UnknownSymbolicName}
}

// Has reports whether name resolves without running deferred loaders.
func (r *Registry) Has(name string) bool {
	key, err := notation.Parse(name)
	if err != nil {
		return false
	}
	_, ok := r.lookup(key)
	return ok
}

// Names returns all registered names and aliases, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types)+len(r.aliases))
	for k := range r.types {
		out = append(out, k)
	}
	for k := range r.aliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) lookup(key string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[r.canonical(key)]
	return t, ok
}

// canonical follows aliases (must hold mu). Alias never creates cycles.
func (r *Registry) canonical(key string) string {
	for {
		target, ok := r.aliases[key]
		if !ok {
			return key
		}
		key = target
	}
}
