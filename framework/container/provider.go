package container

import "sync"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the registrations of one part of an application.
//
//	// Laravel:
//	// class AppServiceProvider extends ServiceProvider {
//	//     public function register(): void { $this->app->bind(...); }
//	// }
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(types *container.Registry, b *container.Bindings) {
//	    types.MustRegisterAs("app.service", NewService, "logger")
//	    b.When("app.service").Needs("logger").Give("app.fileLogger")
//	}
type ServiceProvider interface {
	// Register adds constructors and bindings. Do not call Make here.
	Register(types *Registry, bindings *Bindings)

	// Boot runs after all eager providers are registered. Make is safe here.
	Boot(c *Container)

	// Provides lists the symbolic names a deferred provider registers.
	Provides() []string

	// IsDeferred reports whether Register waits until one of Provides() is
	// first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders, including deferred
// ones.
type ProviderRegistry struct {
	mu         sync.Mutex
	types      *Registry
	bindings   *Bindings
	container  *Container
	eager      []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry feeding types and bindings and
// booting against c.
func NewProviderRegistry(types *Registry, bindings *Bindings, c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		types:      types,
		bindings:   bindings,
		container:  c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method unless it is
// deferred. Registering the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true
	booted := r.booted
	r.mu.Unlock()

	if provider.IsDeferred() {
		return r.types.Defer(provider.Provides(), func() {
			provider.Register(r.types, r.bindings)
			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()
			if booted {
				provider.Boot(r.container)
			}
		})
	}

	provider.Register(r.types, r.bindings)
	r.mu.Lock()
	r.eager = append(r.eager, provider)
	r.mu.Unlock()

	if booted {
		provider.Boot(r.container)
	}
	return nil
}

// Boot calls Boot on every eager provider. Later calls are no-ops.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.container)
	}
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
