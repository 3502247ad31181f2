package gotemplate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tpl": {Data: []byte("{{ name|shout }}")},
		"attr.tpl":       {Data: []byte(`<div data-fields="{{ fields|tojson }}"></div>`)},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" || buf.String() != result {
		t.Fatalf("unexpected output result=%q writer=%q", result, buf.String())
	}
}

func TestEngine_RenderDispatchesInlineContent(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", struct {
		A string `json:"a"`
		B string `json:"b"`
	}{A: "x", B: "2"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "x-2" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
	if err := engine.RegisterFilter("", nil); err == nil {
		t.Fatalf("expected error for empty filter registration")
	}
}

func TestEngine_ToJSONFilterIsEscaped(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("attr", map[string]any{"fields": []string{"title"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != `<div data-fields="[&quot;title&quot;]"></div>` {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestEngine_BaseDirWithExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte("dir {{ name }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := New(WithBaseDir(dir), WithExtension("html"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.RenderTemplate("page", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "dir Ada" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_BaseDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Override {{ name }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	files := fstest.MapFS{
		"hello.tpl": {Data: []byte("Hello {{ name }}!")},
		"other.tpl": {Data: []byte("Other {{ name }}")},
	}

	engine, err := New(WithBaseDir(dir), WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	for name, want := range map[string]string{"hello": "Override Ada", "other": "Other Ada"} {
		got, err := engine.RenderTemplate(name, map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if got != want {
			t.Fatalf("render %s: got %q want %q", name, got, want)
		}
	}
}

func TestNew_RejectsMissingBaseDir(t *testing.T) {
	if _, err := New(WithBaseDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for missing base dir")
	}
}
