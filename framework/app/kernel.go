package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
	gohttp "github.com/km-arc/go-artax/framework/http"
	"github.com/km-arc/go-artax/framework/log"
	"github.com/km-arc/go-artax/framework/providers"
	"github.com/km-arc/go-artax/framework/routing"
	"github.com/km-arc/go-artax/framework/tracing"
)

// Application is the top-level application container.
// It embeds the Container and exposes the Registry, Bindings and
// ProviderRegistry feeding it, like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Config    *config.Config
	Logger    *zap.Logger
	Types     *container.Registry
	Bindings  *container.Bindings
	Providers *container.ProviderRegistry

	tracing *tracing.Provider
}

// New creates the application: logger, tracer, registry, bindings (from
// cfg.Artax.Bindings when set) and the framework core providers.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	logger, err := log.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	tp, err := tracing.NewProvider(ctx, cfg.App.Name, cfg.Trace)
	if err != nil {
		return nil, err
	}

	types := container.NewRegistry()
	bindings := container.NewBindings()
	table, err := config.LoadBindings(cfg.Artax.Bindings)
	if err != nil {
		return nil, err
	}
	bindings.Replace(table)

	c := container.New(types, bindings,
		container.WithLogger(logger.Named("container")),
		container.WithTracer(tp.Tracer()),
	)

	a := &Application{
		Container: c,
		Config:    cfg,
		Logger:    logger,
		Types:     types,
		Bindings:  bindings,
		Providers: container.NewProviderRegistry(types, bindings, c),
		tracing:   tp,
	}

	// Framework core providers
	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LogServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{},
	} {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Router builds the HTTP router with the inspection endpoints mounted.
func (a *Application) Router() (*routing.Router, error) {
	router, err := container.Resolve[*routing.Router](a.Container, "routing.Router", nil)
	if err != nil {
		return nil, fmt.Errorf("building router: %w", err)
	}
	gohttp.NewInspector(a.Types, a.Bindings, a.Container, a.Config.Artax.Bindings, a.Logger.Named("http")).Routes(router)
	return router, nil
}

// Run boots the application (if needed), serves HTTP on APP_PORT and, with
// ARTAX_WATCH, reloads the bindings file on change. It returns when ctx is
// done or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	router, err := a.Router()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.Config.Artax.Watch && a.Config.Artax.Bindings != "" {
		go func() {
			if err := config.WatchBindings(ctx, a.Config.Artax.Bindings, a.Bindings, a.Logger.Named("bindings")); err != nil {
				a.Logger.Error("bindings watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	a.Logger.Info("serving",
		zap.String("app", a.Config.App.Name),
		zap.String("addr", "http://localhost"+srv.Addr),
		zap.String("env", a.Config.App.Env),
	)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

// Shutdown flushes traces and logs.
func (a *Application) Shutdown(ctx context.Context) error {
	err := a.tracing.Shutdown(ctx)
	_ = a.Logger.Sync()
	return err
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
