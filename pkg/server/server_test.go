package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/structogram/pkg/cache"
	"github.com/matzehuels/structogram/pkg/config"
	"github.com/matzehuels/structogram/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "test:"), logger)
	srv := httptest.NewServer(New(runner, config.Default(), logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func classJSON(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := os.ReadFile("../io/testdata/calculator.json")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["status"] != "ok" {
		t.Errorf("body = %v, err %v", body, err)
	}
}

func TestRequestIDEcho(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		in   string
		echo bool
	}{
		{"client id", "abc-123", true},
		{"blank", "", false},
		{"with space", "a b", false},
		{"too long", strings.Repeat("x", 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
			if tt.in != "" {
				req.Header.Set(RequestIDHeader, tt.in)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			got := resp.Header.Get(RequestIDHeader)
			if tt.echo && got != tt.in {
				t.Errorf("request ID = %q, want echo of %q", got, tt.in)
			}
			if !tt.echo && (got == tt.in || len(got) != 36) {
				t.Errorf("request ID = %q, want a fresh UUID", got)
			}
		})
	}
}

func TestStyles(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/styles")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body["styles"]) < 2 {
		t.Errorf("styles = %v", body["styles"])
	}
}

func TestMethods(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/methods", MethodsRequest{Class: classJSON(t)})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Class   string       `json:"class"`
		Methods []MethodInfo `json:"methods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Class != "Calculator" || len(body.Methods) != 3 {
		t.Fatalf("body = %+v", body)
	}
	if body.Methods[0].Declaration != "public static int max(int a, int b)" {
		t.Errorf("declaration = %q", body.Methods[0].Declaration)
	}
	if body.Methods[2].HasBody {
		t.Error("reset has no body")
	}
}

func TestStructogram(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name        string
		req         RenderRequest
		contentType string
		contains    string
	}{
		{"svg default", RenderRequest{Method: "max"}, "image/svg+xml", "<svg"},
		{"text", RenderRequest{Method: "sum", Format: "txt"}, "text/plain; charset=utf-8", "public int sum(int[] values)"},
		{"json by line", RenderRequest{Line: 4, Format: "json"}, "application/json", `"primitives"`},
		{"placeholder", RenderRequest{Method: "reset", Format: "txt"}, "text/plain; charset=utf-8", "No structogram available"},
		{"dot", RenderRequest{Method: "max", VizType: "nodelink", Format: "dot"}, "text/vnd.graphviz; charset=utf-8", "digraph G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Class = classJSON(t)
			resp := post(t, srv, "/v1/structogram", tt.req)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body does not contain %q:\n%s", tt.contains, body)
			}
		})
	}
}

func TestStructogramCacheHeader(t *testing.T) {
	srv := newTestServer(t)
	req := RenderRequest{Class: classJSON(t), Method: "max", Format: "txt"}

	if got := post(t, srv, "/v1/structogram", req).Header.Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}
	if got := post(t, srv, "/v1/structogram", req).Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestStructogramErrors(t *testing.T) {
	srv := newTestServer(t)
	class := classJSON(t)
	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing class", RenderRequest{Method: "max"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", map[string]any{"klass": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad model", RenderRequest{Class: json.RawMessage(`{"name": 1}`)}, http.StatusBadRequest, "INVALID_MODEL"},
		{"unknown method", RenderRequest{Class: class, Method: "divide"}, http.StatusNotFound, "METHOD_NOT_FOUND"},
		{"bad method ref", RenderRequest{Class: class, Method: "max()"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"ambiguous", RenderRequest{Class: class}, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", RenderRequest{Class: class, Method: "max", Format: "gif"}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad style", RenderRequest{Class: class, Method: "max", Style: "neon"}, http.StatusBadRequest, "INVALID_STYLE"},
		{"bad viz", RenderRequest{Class: class, Method: "max", VizType: "tower"}, http.StatusBadRequest, "INVALID_VIZ_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/structogram", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if e.Code != tt.code {
				t.Errorf("code = %q (%s), want %q", e.Code, e.Message, tt.code)
			}
			if e.RequestID == "" || e.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id = %q, header %q", e.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 64
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), cfg, logger).Handler())
	defer srv.Close()

	resp := post(t, srv, "/v1/structogram", RenderRequest{Class: classJSON(t), Method: "max"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if e := decodeError(t, resp); !strings.Contains(e.Message, "exceeds 64 bytes") {
		t.Errorf("message = %q", e.Message)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v2/nothing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound || decodeError(t, resp).Code != "NOT_FOUND" {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/v1/structogram")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/structogram status = %d, want 405", resp2.StatusCode)
	}
}
