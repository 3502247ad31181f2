package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("ogstudio", nil, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_OverlaysOnlyPresentKeys(t *testing.T) {
	cfg := Default()
	doc := `
addr: ":9000"
quiet_period: 350ms
defaults:
  title: Launch Day
  badge: BETA
  theme: light
`
	if err := Decode(strings.NewReader(doc), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := Default()
	want.Addr = ":9000"
	want.QuietPeriod = 350 * time.Millisecond
	want.Defaults.Title = "Launch Day"
	want.Defaults.Badge = "BETA"
	want.Defaults.Theme = "light"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	if err := Decode(strings.NewReader("listen: :80\n"), &cfg); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestParse_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ogstudio.yaml")
	doc := "addr: \":9000\"\nrender_path: og/\nheading: From File\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Parse("ogstudio", []string{"-config", path, "-addr", ":7000", "-theme", "LIGHT"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("expected flag to win, got addr %q", cfg.Addr)
	}
	if cfg.RenderPath != "/og" {
		t.Fatalf("expected normalised render path, got %q", cfg.RenderPath)
	}
	if cfg.Heading != "From File" {
		t.Fatalf("expected heading from file, got %q", cfg.Heading)
	}
	if cfg.Defaults.Theme != "light" {
		t.Fatalf("expected theme normalised to light, got %q", cfg.Defaults.Theme)
	}
}

func TestParse_RejectsReservedRenderPath(t *testing.T) {
	for _, path := range []string{"/", "/healthz", "/static/img"} {
		if _, err := Parse("ogstudio", []string{"-render-path", path}, io.Discard); err == nil {
			t.Errorf("expected %q to be rejected", path)
		}
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	cfg := Default()
	if err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParse_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Parse("ogstudio", []string{"-templates", dir, "-template-ext", "html"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.TemplatesDir != dir || cfg.TemplateExt != ".html" {
		t.Fatalf("unexpected templates settings dir=%q ext=%q", cfg.TemplatesDir, cfg.TemplateExt)
	}

	missing := filepath.Join(dir, "missing")
	if _, err := Parse("ogstudio", []string{"-templates", missing}, io.Discard); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}

	file := filepath.Join(dir, "studio.tpl")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Parse("ogstudio", []string{"-templates", file}, io.Discard); err == nil {
		t.Fatalf("expected error when templates dir is a file")
	}
}
