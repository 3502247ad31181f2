package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ogstudio "github.com/goliatone/go-ogstudio"
	"github.com/goliatone/go-ogstudio/internal/config"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, err := ogstudio.NewRouter(ctx,
		ogstudio.WithRenderPath(cfg.RenderPath),
		ogstudio.WithQuietPeriod(cfg.QuietPeriod),
		ogstudio.WithHeading(cfg.Heading),
		ogstudio.WithIntroHTML(cfg.IntroHTML),
		ogstudio.WithDefaults(cfg.Defaults),
		ogstudio.WithTemplates(cfg.TemplatesDir, cfg.TemplateExt),
	)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening on %s (render path %s)", cfg.Addr, cfg.RenderPath)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
