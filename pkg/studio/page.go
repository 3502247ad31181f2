package studio

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-ogstudio/pkg/apidoc"
	"github.com/goliatone/go-ogstudio/pkg/palette"
	"github.com/goliatone/go-ogstudio/pkg/render/template"
	"github.com/goliatone/go-ogstudio/pkg/render/template/gotemplate"
)

// PageTemplate is the template name rendered for the studio page.
const PageTemplate = "studio"

type PageOptions struct {
	Engine      template.TemplateRenderer
	Fields      []apidoc.Field
	Defaults    FormState
	Heading     string
	IntroHTML   string
	RenderPath  string
	StaticPath  string
	QuietPeriod time.Duration
	Logf        func(format string, args ...any)
}

type PageOptionFn func(*PageOptions)

func DefaultPageOptions() PageOptions {
	return PageOptions{
		Defaults:    DefaultFormState(),
		Heading:     "OG Image Studio",
		RenderPath:  "/render",
		StaticPath:  "/static",
		QuietPeriod: DefaultQuietPeriod,
		Logf:        log.Printf,
	}
}

func WithEngine(engine template.TemplateRenderer) PageOptionFn {
	return func(o *PageOptions) { o.Engine = engine }
}

func WithFields(fields []apidoc.Field) PageOptionFn {
	return func(o *PageOptions) { o.Fields = append([]apidoc.Field(nil), fields...) }
}

func WithDefaults(state FormState) PageOptionFn {
	return func(o *PageOptions) { o.Defaults = state }
}

func WithHeading(heading string) PageOptionFn {
	return func(o *PageOptions) { o.Heading = heading }
}

// WithIntroHTML sets markup shown under the heading. It is sanitized with a
// user-content policy before use.
func WithIntroHTML(html string) PageOptionFn {
	return func(o *PageOptions) { o.IntroHTML = html }
}

func WithRenderPath(path string) PageOptionFn {
	return func(o *PageOptions) { o.RenderPath = path }
}

func WithStaticPath(path string) PageOptionFn {
	return func(o *PageOptions) { o.StaticPath = path }
}

func WithQuietPeriod(d time.Duration) PageOptionFn {
	return func(o *PageOptions) { o.QuietPeriod = d }
}

func WithPageLogf(logf func(string, ...any)) PageOptionFn {
	return func(o *PageOptions) { o.Logf = logf }
}

// Page serves the studio form. Query parameters prefill the form, so a
// studio URL can be shared the same way as a render URL.
type Page struct {
	opts  PageOptions
	intro string
}

// NewPage builds the page handler. Without WithEngine the embedded templates
// are used.
func NewPage(fns ...PageOptionFn) (*Page, error) {
	opts := DefaultPageOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if len(opts.Fields) == 0 {
		return nil, errors.New("studio: page needs at least one form field")
	}
	if opts.RenderPath == "" {
		opts.RenderPath = "/render"
	}
	opts.StaticPath = strings.TrimRight(opts.StaticPath, "/")
	if opts.QuietPeriod < 0 {
		opts.QuietPeriod = DefaultQuietPeriod
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	if opts.Engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("studio: template engine: %w", err)
		}
		opts.Engine = engine
	}

	return &Page{
		opts:  opts,
		intro: sanitizeIntro(opts.IntroHTML),
	}, nil
}

type pageOption struct {
	Value    string
	Selected bool
}

type pageField struct {
	Name        string
	Label       string
	Help        string
	Placeholder string
	Kind        string
	Value       string
	Options     []pageOption
}

// Data builds the template context for state.
func (p *Page) Data(state FormState) (map[string]any, error) {
	sel, err := palette.NewSelector(nil).Select("", state.Theme)
	if err != nil {
		return nil, fmt.Errorf("studio: select theme: %w", err)
	}
	cfg := palette.RendererConfig(sel)

	fields := make([]pageField, 0, len(p.opts.Fields))
	names := make([]string, 0, len(p.opts.Fields))
	for _, f := range p.opts.Fields {
		pf := pageField{
			Name:        f.Name,
			Label:       f.Label,
			Help:        f.Help,
			Placeholder: f.Placeholder,
			Kind:        string(f.Kind),
			Value:       state.Get(f.Name),
		}
		for _, option := range f.Options {
			pf.Options = append(pf.Options, pageOption{Value: option, Selected: option == pf.Value})
		}
		fields = append(fields, pf)
		names = append(names, f.Name)
	}

	return map[string]any{
		"heading":     p.opts.Heading,
		"intro":       p.intro,
		"fields":      fields,
		"field_names": names,
		"preview_url": state.PreviewURL(p.opts.RenderPath),
		"render_path": p.opts.RenderPath,
		"static_path": p.opts.StaticPath,
		"quiet_ms":    int(p.opts.QuietPeriod / time.Millisecond),
		"theme":       cfg.Variant,
		"theme_style": palette.CSSVarsStyle(cfg.CSSVars),
	}, nil
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	html, err := p.Render(FromValues(r.URL.Query(), p.opts.Defaults))
	if err != nil {
		p.opts.Logf("studio: render page: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(html))
}

// Render returns the page markup for state.
func (p *Page) Render(state FormState) (string, error) {
	data, err := p.Data(state)
	if err != nil {
		return "", err
	}
	return p.opts.Engine.RenderTemplate(PageTemplate, data)
}

var (
	introPolicyOnce sync.Once
	introPolicy     *bluemonday.Policy
)

func sanitizeIntro(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	introPolicyOnce.Do(func() {
		introPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(introPolicy.Sanitize(trimmed))
}
