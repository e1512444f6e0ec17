package http

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
	"github.com/km-arc/go-artax/framework/http/validation"
	"github.com/km-arc/go-artax/framework/routing"
)

// Catalog lists the symbolic names a resolver knows. *container.Registry
// satisfies it.
type Catalog interface {
	Names() []string
}

// Inspector serves a read-mostly JSON view of a container.
type Inspector struct {
	types    Catalog
	bindings *container.Bindings
	c        *container.Container
	logger   *zap.Logger

	// bindingsPath receives PUT /bindings; empty keeps changes in memory.
	bindingsPath string
}

// NewInspector creates an Inspector. bindingsPath may be empty.
func NewInspector(types Catalog, bindings *container.Bindings, c *container.Container, bindingsPath string, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{types: types, bindings: bindings, c: c, bindingsPath: bindingsPath, logger: logger}
}

// Routes mounts the inspection endpoints:
//
//	GET  /healthz
//	GET  /types
//	GET  /bindings
//	PUT  /bindings
//	GET  /explain/{name}?custom=a,b
//	POST /make/{name}
func (i *Inspector) Routes(r *routing.Router) {
	r.Get("/healthz", i.Health)
	r.Get("/types", i.Types)
	r.Get("/bindings", i.Bindings)
	r.Put("/bindings", i.ReplaceBindings)
	r.Get("/explain/{name}", i.Explain)
	r.Post("/make/{name}", i.Make)
}

func (i *Inspector) Health(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(map[string]string{"status": "ok"})
}

func (i *Inspector) Types(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(i.types.Names())
}

func (i *Inspector) Bindings(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(i.bindings.All())
}

// ReplaceBindings swaps the whole bindings table, and writes it to the
// bindings file when one is configured.
func (i *Inspector) ReplaceBindings(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	var table map[string]map[string]string
	if err := req.Bind(&table); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if errs := validation.Bindings(table); errs.Has() {
		res.ValidationError(errs)
		return
	}

	if i.bindingsPath != "" {
		if err := config.SaveBindings(i.bindingsPath, table); err != nil {
			i.logger.Error("saving bindings", zap.String("path", i.bindingsPath), zap.Error(err))
			res.ServerError(err.Error())
			return
		}
	}
	i.bindings.Replace(table)
	i.logger.Info("bindings replaced", zap.Int("types", len(table)))
	res.Success(i.bindings.All())
}

// Explain reports the plan for building {name}. Parameters listed in
// ?custom= are treated as caller-supplied.
func (i *Inspector) Explain(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	custom := make(map[string]any)
	for _, param := range req.QueryList("custom") {
		custom[param] = nil
	}

	plan, err := i.c.Explain(req.RouteParam("name"), custom)
	if err != nil {
		res.ContainerError(err)
		return
	}
	res.Success(plan)
}

// makeRequest is the optional body of POST /make/{name}.
type makeRequest struct {
	Custom map[string]any `json:"custom"`
}

// Make builds {name} once and reports the Go type it produced. JSON
// overrides only suit parameters of string, bool, float64 or map/slice
// types.
func (i *Inspector) Make(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	var body makeRequest
	if err := req.Bind(&body); err != nil && !errors.Is(err, ErrEmptyBody) {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	name := req.RouteParam("name")
	instance, err := i.c.MakeContext(r.Context(), name, body.Custom)
	if err != nil {
		res.ContainerError(err)
		return
	}
	res.Created(map[string]string{"name": name, "type": fmt.Sprintf("%T", instance)})
}
