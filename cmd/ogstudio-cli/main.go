package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"

	ogstudio "github.com/goliatone/go-ogstudio"
	"github.com/goliatone/go-ogstudio/internal/prompt"
	"github.com/goliatone/go-ogstudio/pkg/studio"
)

func main() {
	defaults := studio.DefaultFormState()
	var (
		outputFlag      = flag.String("output", "og.png", "File the rendered card is written to")
		interactiveFlag = flag.Bool("interactive", false, "Prompt for each field")
		liveFlag        = flag.Bool("live", false, "Rewrite the output while answering prompts, after each quiet period")
		quietFlag       = flag.Duration("quiet", studio.DefaultQuietPeriod, "Quiet period used by -live")
	)
	flag.String("title", defaults.Title, "Card title")
	flag.String("subtitle", defaults.Subtitle, "Card subtitle (empty removes the row)")
	flag.String("emoji", defaults.Emoji, "Emoji kept in the shareable URL")
	flag.String("badge", defaults.Badge, "Badge text (empty removes the pill)")
	flag.String("theme", defaults.Theme, "Theme: dark or light")
	flag.String("bg", "", "Custom background color (hex or rgb)")
	flag.Parse()

	state := defaults
	flag.Visit(func(f *flag.Flag) {
		state = state.With(f.Name, f.Value.String())
	})
	state = studio.FromValues(nil, state)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &cardWriter{
		component: ogstudio.NewComponent(ogstudio.DefaultOptions()),
		path:      *outputFlag,
	}

	if !*interactiveFlag {
		if err := w.write(ctx, state.Query()); err != nil {
			log.Fatalf("render: %v", err)
		}
		fmt.Printf("Card written to %s\n%s\n", w.path, state.PreviewURL("/render"))
		return
	}

	driver := prompt.NewSurveyDriver(os.Stderr)
	overwrite, err := prompt.ConfirmOverwrite(ctx, driver, w.path)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			log.Printf("aborted")
			return
		}
		log.Fatalf("output: %v", err)
	}
	if !overwrite {
		log.Printf("keeping existing %s", w.path)
		return
	}

	doc, err := ogstudio.LoadDocument(ctx, "/render")
	if err != nil {
		log.Fatalf("document: %v", err)
	}

	var onAnswer func(studio.FormState)
	var preview *studio.Preview
	if *liveFlag {
		if err := w.write(ctx, state.Query()); err != nil {
			log.Fatalf("render: %v", err)
		}
		preview = studio.NewPreview(state, "", *quietFlag, func(u string) {
			if err := w.write(ctx, queryOf(u)); err != nil {
				log.Printf("live render: %v", err)
			}
		})
		onAnswer = preview.Update
	}

	state, err = prompt.AskForm(ctx, driver, doc.Fields(), state, onAnswer)
	if err != nil {
		if preview != nil {
			preview.Close()
		}
		if errors.Is(err, prompt.ErrAborted) {
			log.Printf("aborted")
			return
		}
		log.Fatalf("prompt: %v", err)
	}

	if preview != nil {
		preview.Flush()
	} else if err := w.write(ctx, state.Query()); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("Card written to %s\n%s\n", w.path, state.PreviewURL("/render"))
}

// cardWriter serializes renders so live commits and the final write never
// interleave on the output file.
type cardWriter struct {
	mu        sync.Mutex
	component interface {
		Render(ctx context.Context, values url.Values) ([]byte, error)
	}
	path string
}

func (c *cardWriter) write(ctx context.Context, rawQuery string) error {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	body, err := c.component.Render(ctx, values)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, body, 0o644)
}

func queryOf(previewURL string) string {
	u, err := url.Parse(previewURL)
	if err != nil {
		return ""
	}
	return u.RawQuery
}
