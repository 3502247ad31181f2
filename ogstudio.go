// Package ogstudio wires the card renderer, the studio page, and the API
// description into a single HTTP handler.
package ogstudio

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-ogstudio/components/ogimage"
	"github.com/goliatone/go-ogstudio/pkg/apidoc"
	"github.com/goliatone/go-ogstudio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-ogstudio/pkg/studio"
)

// RenderRequest is the normalized set of card inputs.
type RenderRequest = ogimage.RenderRequest

// FormState is the studio form value set.
type FormState = studio.FormState

// Options configures NewRouter.
type Options struct {
	RenderPath  string
	QuietPeriod time.Duration
	Heading     string
	IntroHTML   string
	Defaults    studio.FormState
	Renderer    ogimage.Renderer
	Guard       ogimage.GuardFunc
	Logf        func(format string, args ...any)
	// RequestLog enables chi's request logger.
	RequestLog bool
	// TemplatesDir shadows the embedded page templates with files on disk.
	TemplatesDir string
	TemplateExt  string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the settings used by NewRouter before options apply.
func DefaultOptions() Options {
	return Options{
		RenderPath:  "/render",
		QuietPeriod: studio.DefaultQuietPeriod,
		Heading:     "OG Image Studio",
		Defaults:    studio.DefaultFormState(),
		Logf:        log.Printf,
		RequestLog:  true,
	}
}

func WithRenderPath(path string) Option {
	return func(o *Options) { o.RenderPath = path }
}

func WithQuietPeriod(d time.Duration) Option {
	return func(o *Options) { o.QuietPeriod = d }
}

func WithHeading(heading string) Option {
	return func(o *Options) { o.Heading = heading }
}

func WithIntroHTML(html string) Option {
	return func(o *Options) { o.IntroHTML = html }
}

func WithDefaults(state studio.FormState) Option {
	return func(o *Options) { o.Defaults = state }
}

func WithRenderer(r ogimage.Renderer) Option {
	return func(o *Options) { o.Renderer = r }
}

func WithGuard(guard ogimage.GuardFunc) Option {
	return func(o *Options) { o.Guard = guard }
}

// WithLogf routes component logs; nil silences them.
func WithLogf(logf func(string, ...any)) Option {
	return func(o *Options) { o.Logf = logf }
}

func WithRequestLog(enabled bool) Option {
	return func(o *Options) { o.RequestLog = enabled }
}

// WithTemplates loads page templates from dir first, falling back to the
// embedded ones. ext defaults to ".tpl".
func WithTemplates(dir, ext string) Option {
	return func(o *Options) {
		o.TemplatesDir = dir
		o.TemplateExt = ext
	}
}

// NewEngine builds the page template engine for opts.
func NewEngine(opts Options) (*gotemplate.Engine, error) {
	fns := []gotemplate.Option{gotemplate.WithFS(EmbeddedTemplates())}
	if dir := strings.TrimSpace(opts.TemplatesDir); dir != "" {
		fns = append(fns, gotemplate.WithBaseDir(dir))
	}
	if opts.TemplateExt != "" {
		fns = append(fns, gotemplate.WithExtension(opts.TemplateExt))
	}
	engine, err := gotemplate.New(fns...)
	if err != nil {
		return nil, fmt.Errorf("ogstudio: template engine: %w", err)
	}
	return engine, nil
}

// LoadDocument loads the API description with the render operation mounted
// at renderPath.
func LoadDocument(ctx context.Context, renderPath string) (*apidoc.Document, error) {
	return apidoc.Load(ctx, renderPath)
}

// NewComponent builds the render component used by the router and the CLI.
// Form defaults only prefill the studio; a query without a title still
// renders ogimage.DefaultTitle.
func NewComponent(opts Options) *ogimage.Component {
	return ogimage.New(
		ogimage.WithRoutePath(opts.RenderPath),
		ogimage.WithRenderer(opts.Renderer),
		ogimage.WithGuard(opts.Guard),
		ogimage.WithLogf(opts.Logf),
	)
}

// NewRouter mounts the studio page at "/", the renderer at the render path,
// the API description at "/openapi.json", the browser runtime under
// "/static/", and a liveness probe at "/healthz".
func NewRouter(ctx context.Context, fns ...Option) (chi.Router, error) {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	opts.RenderPath = strings.TrimSpace(opts.RenderPath)
	if opts.RenderPath == "" {
		opts.RenderPath = "/render"
	}

	doc, err := LoadDocument(ctx, opts.RenderPath)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}

	page, err := studio.NewPage(
		studio.WithEngine(engine),
		studio.WithFields(doc.Fields()),
		studio.WithDefaults(opts.Defaults),
		studio.WithHeading(opts.Heading),
		studio.WithIntroHTML(opts.IntroHTML),
		studio.WithRenderPath(opts.RenderPath),
		studio.WithStaticPath("/static"),
		studio.WithQuietPeriod(opts.QuietPeriod),
		studio.WithPageLogf(opts.Logf),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz)
	r.Head("/healthz", healthz)
	r.Handle("/openapi.json", doc.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(RuntimeAssetsFS())))

	if _, err := NewComponent(opts).RegisterRoutes(r, "/"); err != nil {
		return nil, fmt.Errorf("ogstudio: mount renderer: %w", err)
	}
	r.Handle("/", page)

	return r, nil
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte("ok"))
}
