package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
	"github.com/km-arc/go-artax/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider makes the loaded configuration injectable.
//
// Registered names:
//   - "config.Config"  → *config.Config
//   - "app.config"     → alias of the above
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(types *container.Registry, _ *container.Bindings) {
	cfg := p.Config
	types.MustRegister(func() *config.Config { return cfg })
	if err := types.Alias("app.config", "config.Config"); err != nil {
		panic(err)
	}
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider makes the application logger injectable. Every
// constructor declaring a *zap.Logger parameter receives it.
//
// Registered names:
//   - "zap.Logger" → *zap.Logger
type LogServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LogServiceProvider) Register(types *container.Registry, _ *container.Bindings) {
	logger := p.Logger
	types.MustRegister(func() *zap.Logger { return logger })
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Registered names:
//   - "routing.Router" → *routing.Router, logging through "zap.Logger"
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(types *container.Registry, _ *container.Bindings) {
	types.MustRegister(routing.New, "logger")
}
