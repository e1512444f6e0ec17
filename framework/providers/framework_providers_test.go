package providers_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
	"github.com/km-arc/go-artax/framework/providers"
	"github.com/km-arc/go-artax/framework/routing"
)

func boot(t *testing.T, ps ...container.ServiceProvider) *container.Container {
	t.Helper()
	types := container.NewRegistry()
	bindings := container.NewBindings()
	c := container.New(types, bindings)
	reg := container.NewProviderRegistry(types, bindings, c)
	for _, p := range ps {
		if err := reg.Register(p); err != nil {
			t.Fatal(err)
		}
	}
	reg.Boot()
	return c
}

func TestConfigServiceProvider(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "Test"}}
	c := boot(t, &providers.ConfigServiceProvider{Config: cfg})

	for _, name := range []string{"config.Config", "app.config"} {
		got, err := container.Resolve[*config.Config](c, name, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != cfg {
			t.Errorf("%s: got a different *config.Config", name)
		}
	}
}

func TestRoutingServiceProvider_InjectsLogger(t *testing.T) {
	logger := zap.NewNop()
	c := boot(t, &providers.LogServiceProvider{Logger: logger}, &providers.RoutingServiceProvider{})

	r, err := container.Resolve[*routing.Router](c, "routing.Router", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r == nil {
		t.Fatal("router is nil")
	}
}

func TestRoutingServiceProvider_NeedsLogger(t *testing.T) {
	c := boot(t, &providers.RoutingServiceProvider{})

	if _, err := c.Make("routing.Router", nil); err == nil {
		t.Error("router without a logger provider should fail to resolve")
	}
}
