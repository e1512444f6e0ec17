package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	gohttp "github.com/km-arc/go-artax/framework/http"
	"github.com/km-arc/go-artax/framework/routing"
)

func TestRequest_Bind(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/bindings", strings.NewReader(`{"app.service": {"logger": "app.fileLogger"}}`))
	var table map[string]map[string]string
	if err := gohttp.NewRequest(r).Bind(&table); err != nil {
		t.Fatal(err)
	}
	if table["app.service"]["logger"] != "app.fileLogger" {
		t.Errorf("got %v", table)
	}
}

func TestRequest_Bind_EmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/bindings", nil)
	var v map[string]any
	if err := gohttp.NewRequest(r).Bind(&v); !errors.Is(err, gohttp.ErrEmptyBody) {
		t.Errorf("got %v want ErrEmptyBody", err)
	}
}

func TestRequest_Bind_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/bindings", strings.NewReader("{"))
	var v map[string]any
	if err := gohttp.NewRequest(r).Bind(&v); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRequest_Query(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/explain/app.x?exporter=otlp", nil)
	req := gohttp.NewRequest(r)

	if got := req.Query("exporter"); got != "otlp" {
		t.Errorf("Query: got %q", got)
	}
	if got := req.Query("missing", "none"); got != "none" {
		t.Errorf("Query fallback: got %q", got)
	}
}

func TestRequest_QueryList(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/explain/app.x?custom=a,b&custom=c&custom=,", nil)
	got := gohttp.NewRequest(r).QueryList("custom")
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("QueryList: got %v want %v", got, want)
	}
}

func TestRequest_RouteParam(t *testing.T) {
	router := routing.New(nil)
	var got string
	router.Get("/explain/{name}", func(w http.ResponseWriter, r *http.Request) {
		got = gohttp.NewRequest(r).RouteParam("name")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/explain/app.service", nil))
	if got != "app.service" {
		t.Errorf("RouteParam: got %q want %q", got, "app.service")
	}
}
