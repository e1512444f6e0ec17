package container

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/km-arc/go-artax/framework/container"

// ── Container ─────────────────────────────────────────────────────────────────

// Container builds instances by symbolic name, injecting every constructor
// parameter from one of three sources, in order:
//
//  1. the caller's overrides, by parameter name
//  2. the ConfigStore mapping for the type being built, which names the
//     symbolic name to build instead of the declared type
//  3. the parameter's declared type
//
// Nothing is cached: every Make builds a fresh graph. A Container has no
// mutable state and is safe for concurrent use as long as its NameResolver
// and ConfigStore are.
type Container struct {
	names  NameResolver
	store  ConfigStore
	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures a Container.
type Option func(*Container)

// WithLogger logs every injected parameter at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer records one span per resolved type. The default is the global
// otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Container) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a container over names. store may be nil.
func New(names NameResolver, store ConfigStore, opts ...Option) *Container {
	if store == nil {
		store = emptyStore{}
	}
	c := &Container{
		names:  names,
		store:  store,
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make builds a new instance of the type registered under name. custom
// supplies ready-made values for name's own constructor parameters; it is
// not passed on to the dependencies Make builds along the way.
//
//	// Laravel: $app->make(Service::class, ['logger' => $logger])
//	svc, err := c.Make("app.service", map[string]any{"logger": logger})
func (c *Container) Make(name string, custom map[string]any) (any, error) {
	return c.MakeContext(context.Background(), name, custom)
}

// MakeContext is Make with a parent context for tracing.
func (c *Container) MakeContext(ctx context.Context, name string, custom map[string]any) (any, error) {
	return c.make(ctx, name, custom, nil, "")
}

// MustMake is like Make but panics on error.
func (c *Container) MustMake(name string, custom map[string]any) any {
	instance, err := c.Make(name, custom)
	if err != nil {
		panic(err)
	}
	return instance
}

// make resolves name requested by param of the last type in path.
func (c *Container) make(ctx context.Context, name string, custom map[string]any, path []string, param string) (any, error) {
	ctx, span := c.tracer.Start(ctx, "container.make", trace.WithAttributes(
		attribute.String("artax.name", name),
		attribute.Int("artax.depth", len(path)),
	))
	defer span.End()

	instance, err := c.build(ctx, name, custom, path, param)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return instance, nil
}

func (c *Container) build(ctx context.Context, name string, custom map[string]any, path []string, param string) (any, error) {
	specd, _ := c.store.Get(name)
	typ, path, err := c.resolve(name, path, param)
	if err != nil {
		return nil, err
	}
	return c.getInjectedInstance(ctx, typ, specd, custom, path)
}

// resolve asks the NameResolver for name and pushes the result onto path.
func (c *Container) resolve(name string, path []string, param string) (*Type, []string, error) {
	typ, err := c.names.Resolve(name)
	if err != nil {
		var re ResolutionError
		if !errors.As(err, &re) {
			re = ResolutionError{Name: name, Kind: UnknownSymbolicName, Err: err}
		}
		re.Param = param
		re.Path = slices.Clone(path)
		return nil, nil, re
	}

	if i := slices.Index(path, typ.Name()); i >= 0 {
		cycle := append(slices.Clone(path[i:]), typ.Name())
		return nil, nil, CyclicDependencyError{Path: cycle}
	}
	return typ, append(slices.Clone(path), typ.Name()), nil
}

// getInjectedInstance builds one instance of typ. path ends with typ.
func (c *Container) getInjectedInstance(ctx context.Context, typ *Type, specd map[string]string, custom map[string]any, path []string) (any, error) {
	specs := parseConstructorArgs(typ)
	args := make([]reflect.Value, len(specs))

	for i, spec := range specs {
		source, target := choose(spec, specd, custom)

		var value any
		if source == SourceCustom {
			value = custom[spec.Name]
		} else {
			dep, err := c.make(ctx, target, nil, path, spec.Name)
			if err != nil {
				return nil, err
			}
			value = dep
		}

		arg, err := argValue(spec, value)
		if err != nil {
			return nil, ConstructionError{Name: typ.Name(), Path: path, Err: err}
		}
		args[i] = arg

		c.logger.Debug("injected parameter",
			zap.String("type", typ.Name()),
			zap.String("param", spec.Name),
			zap.Stringer("source", source),
			zap.String("target", target),
		)
	}

	instance, err := typ.construct(specs, args)
	if err != nil {
		return nil, ConstructionError{Name: typ.Name(), Path: path, Err: err}
	}
	return instance, nil
}

// ── Sources ───────────────────────────────────────────────────────────────────

// Source says where a parameter's value comes from.
type Source int

const (
	// SourceCustom: the caller's override map.
	SourceCustom Source = iota
	// SourceConfigured: the ConfigStore names another symbolic name.
	SourceConfigured
	// SourceDeclared: the parameter's own declared type.
	SourceDeclared
)

func (s Source) String() string {
	switch s {
	case SourceCustom:
		return "custom"
	case SourceConfigured:
		return "configured"
	case SourceDeclared:
		return "declared"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// MarshalText renders the source by name in JSON.
func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// choose applies the override precedence to one parameter. target is the
// symbolic name to build, empty for SourceCustom.
func choose(spec ParameterSpec, specd map[string]string, custom map[string]any) (Source, string) {
	if _, ok := custom[spec.Name]; ok {
		return SourceCustom, ""
	}
	if target, ok := configured(specd, spec.Name); ok {
		return SourceConfigured, target
	}
	return SourceDeclared, spec.DeclaredType
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	svc, err := container.Resolve[*app.Service](c, "app.service", nil)
func Resolve[T any](c *Container, name string, custom map[string]any) (T, error) {
	var zero T
	instance, err := c.Make(name, custom)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			Name:     name,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Actual:   fmt.Sprintf("%T", instance),
		}
	}
	return typed, nil
}
