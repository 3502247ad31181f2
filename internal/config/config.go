// Package config loads the server settings from an optional YAML file and
// command line flags. Flags win over the file; anything left unset keeps the
// built-in default.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ogstudio/pkg/studio"
)

// Config holds everything cmd/ogstudio needs to start.
type Config struct {
	Addr          string           `yaml:"addr"`
	ShutdownGrace time.Duration    `yaml:"shutdown_grace"`
	RenderPath    string           `yaml:"render_path"`
	QuietPeriod   time.Duration    `yaml:"quiet_period"`
	Heading       string           `yaml:"heading"`
	IntroHTML     string           `yaml:"intro_html"`
	Defaults      studio.FormState `yaml:"defaults"`

	// TemplatesDir holds page templates that shadow the embedded ones.
	TemplatesDir string `yaml:"templates_dir"`
	TemplateExt  string `yaml:"template_ext"`
}

// Default returns the settings used when neither file nor flags say otherwise.
func Default() Config {
	return Config{
		Addr:          ":8383",
		ShutdownGrace: 5 * time.Second,
		RenderPath:    "/render",
		QuietPeriod:   studio.DefaultQuietPeriod,
		Heading:       "OG Image Studio",
		Defaults:      studio.DefaultFormState(),
		TemplateExt:   ".tpl",
	}
}

// Decode overlays the YAML document in r onto cfg. Keys missing from the
// document keep their current values; unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("config: read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	if err := Decode(f, cfg); err != nil {
		return fmt.Errorf("%w (file %s)", err, path)
	}
	return nil
}

// Parse reads flags from args, loads the file named by -config when given,
// then applies the flags that were set explicitly.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	def := Default()
	var (
		path    = fs.String("config", "", "YAML configuration file")
		addr    = fs.String("addr", def.Addr, "HTTP listen address")
		grace   = fs.Duration("grace", def.ShutdownGrace, "Shutdown grace period")
		render  = fs.String("render-path", def.RenderPath, "Route serving rendered images")
		quiet   = fs.Duration("quiet", def.QuietPeriod, "Preview quiet period before the image refreshes")
		heading = fs.String("heading", def.Heading, "Studio page heading")
		theme   = fs.String("theme", def.Defaults.Theme, "Initial studio theme (dark or light)")
		tplDir  = fs.String("templates", "", "Directory with page templates overriding the embedded ones")
		tplExt  = fs.String("template-ext", def.TemplateExt, "Extension of the page templates")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if p := strings.TrimSpace(*path); p != "" {
		if err := LoadFile(p, &cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "grace":
			cfg.ShutdownGrace = *grace
		case "render-path":
			cfg.RenderPath = *render
		case "quiet":
			cfg.QuietPeriod = *quiet
		case "heading":
			cfg.Heading = *heading
		case "theme":
			cfg.Defaults.Theme = *theme
		case "templates":
			cfg.TemplatesDir = *tplDir
		case "template-ext":
			cfg.TemplateExt = *tplExt
		}
	})

	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalise() {
	def := Default()
	c.Addr = strings.TrimSpace(c.Addr)
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = def.ShutdownGrace
	}
	c.RenderPath = strings.TrimSpace(c.RenderPath)
	if c.RenderPath == "" {
		c.RenderPath = def.RenderPath
	}
	if !strings.HasPrefix(c.RenderPath, "/") {
		c.RenderPath = "/" + c.RenderPath
	}
	if len(c.RenderPath) > 1 {
		c.RenderPath = strings.TrimRight(c.RenderPath, "/")
	}
	if c.QuietPeriod < 0 {
		c.QuietPeriod = def.QuietPeriod
	}
	if strings.TrimSpace(c.Heading) == "" {
		c.Heading = def.Heading
	}
	c.Defaults = studio.FromValues(nil, c.Defaults)
	c.TemplatesDir = strings.TrimSpace(c.TemplatesDir)
	c.TemplateExt = strings.TrimSpace(c.TemplateExt)
	if c.TemplateExt == "" {
		c.TemplateExt = def.TemplateExt
	}
	if !strings.HasPrefix(c.TemplateExt, ".") {
		c.TemplateExt = "." + c.TemplateExt
	}
}

// reservedPaths are routed by the server itself.
var reservedPaths = map[string]bool{
	"/":             true,
	"/openapi.json": true,
	"/healthz":      true,
	"/static":       true,
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if reservedPaths[c.RenderPath] || strings.HasPrefix(c.RenderPath, "/static/") {
		return fmt.Errorf("config: render path %q collides with a built-in route", c.RenderPath)
	}
	if c.Addr == "" {
		return errors.New("config: listen address is empty")
	}
	if c.TemplatesDir != "" {
		info, err := os.Stat(c.TemplatesDir)
		if err != nil {
			return fmt.Errorf("config: templates dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: templates dir %q is not a directory", c.TemplatesDir)
		}
	}
	return nil
}
