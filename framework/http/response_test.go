package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-artax/framework/container"
	gohttp "github.com/km-arc/go-artax/framework/http"
	"github.com/km-arc/go-artax/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	m := decodeJSON(t, rr)
	if m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_SuccessAndCreated(t *testing.T) {
	res, rr := newResponse(t)
	res.Success("ok")
	if rr.Code != http.StatusOK || decodeJSON(t, rr)["data"] != "ok" {
		t.Errorf("Success: got %d", rr.Code)
	}

	res, rr = newResponse(t)
	res.Created("made")
	if rr.Code != http.StatusCreated || decodeJSON(t, rr)["data"] != "made" {
		t.Errorf("Created: got %d", rr.Code)
	}
}

func TestResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		send    func(*gohttp.Response)
		status  int
		message string
	}{
		{"Error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad input") }, 400, "bad input"},
		{"NotFound default", func(r *gohttp.Response) { r.NotFound() }, 404, "Not found."},
		{"NotFound custom", func(r *gohttp.Response) { r.NotFound("no such type") }, 404, "no such type"},
		{"ServerError", func(r *gohttp.Response) { r.ServerError() }, 500, "Server Error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.send(res)
			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.message {
				t.Errorf("message: got %v want %q", m["message"], tt.message)
			}
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	res, rr := newResponse(t)
	v := validation.Make(map[string]string{"type": "nodots"}, validation.Rules{"type": "symbolic"})
	v.Fails()
	res.ValidationError(v.Errors())

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
	errs, ok := decodeJSON(t, rr)["errors"].(map[string]any)
	if !ok || errs["type"] == nil {
		t.Errorf("expected errors.type in body")
	}
}

func TestResponse_ContainerError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"resolution", container.ResolutionError{Name: "app.x", Kind: container.UnknownSymbolicName}, 404},
		{"cycle", container.CyclicDependencyError{Path: []string{"a.a", "a.b", "a.a"}}, 409},
		{"construction", container.ConstructionError{Name: "app.x", Err: errors.New("boom")}, 500},
		{"construction wrapping resolution", container.ConstructionError{
			Name: "app.x",
			Err:  container.ResolutionError{Name: "app.y", Kind: container.UnknownSymbolicName},
		}, 500},
		{"other", errors.New("disk on fire"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			res.ContainerError(tt.err)
			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.err.Error() {
				t.Errorf("message: got %v", m["message"])
			}
		})
	}
}
