// Package container provides a reflective dependency injector with
// Laravel-style ergonomics.
//
// # Overview
//
// Types are registered under dotted symbolic names ("app.service"). Make
// looks a name up, inspects the constructor's parameters and builds each
// of them recursively before calling the constructor. Every Make builds a
// fresh object graph; there are no singletons.
//
// # Registering
//
//	types := container.NewRegistry()
//
//	// Named after the returned type: "app.Service"
//	types.Register(app.NewService, "logger", "mailer")
//
//	// Explicit name
//	types.RegisterAs("app.fileLogger", app.NewFileLogger)
//
//	// No constructor: Make returns a *app.Clock
//	types.RegisterType("app.clock", app.Clock{})
//
//	// Interface name → implementation
//	types.Alias("app.Logger", "app.fileLogger")
//
// Go keeps no parameter names at run time, so positional constructors list
// them at registration. Constructors may instead take a parameter object:
//
//	type ServiceParams struct {
//	    container.In
//
//	    Logger app.Logger
//	    Mailer *app.Mailer `name:"mail"`
//	}
//
// # Resolving
//
// For each parameter, in declaration order, the first of these wins:
//
//  1. the caller's override map: c.Make("app.service", map[string]any{"logger": l})
//  2. the ConfigStore entry for the type being built (contextual binding):
//     bindings.When("app.service").Needs("logger").Give("app.consoleLogger")
//  3. the symbolic name of the parameter's declared Go type
//
// Overrides apply only to the type named in the Make call, never to the
// dependencies built on its behalf.
//
//	// Laravel: $app->make(Service::class)
//	svc, err := c.Make("app.service", nil)
//
//	// Generic
//	svc, err := container.Resolve[*app.Service](c, "app.service", nil)
//
// # Errors
//
// Make is all-or-nothing. It returns a ResolutionError when a name is
// unknown or not dot notation (a string parameter with no override ends up
// here), a ConstructionError when the constructor cannot be called with the
// assembled arguments or fails, and a CyclicDependencyError when a type
// reappears among its own dependencies.
//
// # Service Providers
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) IsDeferred() bool   { return true }
//	func (p *MailProvider) Provides() []string { return []string{"app.mailer"} }
//	func (p *MailProvider) Register(types *container.Registry, _ *container.Bindings) {
//	    types.MustRegisterAs("app.mailer", app.NewMailer, "transport")
//	}
//
//	providers := container.NewProviderRegistry(types, bindings, c)
//	providers.Register(&MailProvider{})
//	providers.Boot()
package container
