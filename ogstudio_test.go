package ogstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, fns ...Option) *httptest.Server {
	t.Helper()
	fns = append([]Option{WithLogf(nil), WithRequestLog(false)}, fns...)
	router, err := NewRouter(context.Background(), fns...)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func TestRouter_ServesStudioPage(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `id="studio-image"`) {
		t.Fatalf("expected studio page markup")
	}
}

func TestRouter_RendersCards(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/render?title=Hello&theme=dark")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("unexpected cache control %q", cc)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 1200 || cfg.Height != 630 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRouter_CustomRenderPath(t *testing.T) {
	srv := newTestServer(t, WithRenderPath("/og"))

	resp, _ := get(t, srv.URL+"/og")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected card at custom path, got %d", resp.StatusCode)
	}

	_, page := get(t, srv.URL+"/")
	if !strings.Contains(string(page), `src="/og?title=`) {
		t.Fatalf("expected page preview to use the custom path")
	}

	_, doc := get(t, srv.URL+"/openapi.json")
	var parsed struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if _, ok := parsed.Paths["/og"]; !ok {
		t.Fatalf("expected document to describe /og, got %v", parsed.Paths)
	}
}

func TestRouter_ServesRuntimeAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/static/studio.js")
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		t.Fatalf("runtime: status %d, %d bytes", resp.StatusCode, len(body))
	}

	resp, body = get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz: status %d body %q", resp.StatusCode, body)
	}

	resp, _ = get(t, srv.URL+"/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", resp.StatusCode)
	}
}

func TestRouter_GuardAppliesToRenderer(t *testing.T) {
	srv := newTestServer(t, WithGuard(func(r *http.Request) error {
		if r.URL.Query().Get("token") != "secret" {
			return http.ErrNoCookie
		}
		return nil
	}))

	resp, _ := get(t, srv.URL+"/render")
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected guard to reject request without token")
	}
	resp, _ = get(t, srv.URL+"/render?token=secret")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected guarded request to succeed, got %d", resp.StatusCode)
	}
}

func TestRouter_FormDefaultsDoNotChangeRenderDefaults(t *testing.T) {
	custom := FormState{Title: "Launch Day", Theme: "light"}
	withDefaults := newTestServer(t, WithDefaults(custom))
	plain := newTestServer(t)

	_, page := get(t, withDefaults.URL+"/")
	if !strings.Contains(string(page), `value="Launch Day"`) {
		t.Fatalf("expected studio to be prefilled from defaults")
	}

	_, a := get(t, withDefaults.URL+"/render")
	_, b := get(t, plain.URL+"/render")
	if !bytes.Equal(a, b) {
		t.Fatalf("expected bare render to ignore studio form defaults")
	}
}

func TestRouter_TemplatesDirShadowsStudioPage(t *testing.T) {
	dir := t.TempDir()
	page := []byte(`<h1 class="custom">{{ heading }}</h1><img src="{{ preview_url }}">`)
	if err := os.WriteFile(filepath.Join(dir, "studio.html"), page, 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	srv := newTestServer(t, WithTemplates(dir, ".html"), WithHeading("Custom Studio"))
	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `<h1 class="custom">Custom Studio</h1>`) {
		t.Fatalf("expected template from dir, got:\n%s", body)
	}
	if !strings.Contains(string(body), `src="/render?title=`) {
		t.Fatalf("expected preview url in custom page")
	}
}

func TestNewRouter_RejectsMissingTemplatesDir(t *testing.T) {
	_, err := NewRouter(context.Background(), WithLogf(nil), WithTemplates(filepath.Join(t.TempDir(), "missing"), ""))
	if err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}
