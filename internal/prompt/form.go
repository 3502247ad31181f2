package prompt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-ogstudio/pkg/apidoc"
	"github.com/goliatone/go-ogstudio/pkg/cssclr"
	"github.com/goliatone/go-ogstudio/pkg/studio"
)

// AskForm walks fields in order, prefilled from state, and returns the
// answered state. onAnswer, when set, sees the state after every answer.
func AskForm(ctx context.Context, d Driver, fields []apidoc.Field, state studio.FormState, onAnswer func(studio.FormState)) (studio.FormState, error) {
	for _, field := range fields {
		current := state.Get(field.Name)
		var (
			answer string
			err    error
		)
		switch field.Kind {
		case apidoc.FieldSelect:
			answer, err = askSelect(ctx, d, field, current)
		default:
			answer, err = d.Input(ctx, InputConfig{
				Message:   field.Label + ":",
				Default:   current,
				Help:      field.Help,
				Validator: validatorFor(field.Name),
			})
		}
		if err != nil {
			return state, fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		state = state.With(field.Name, answer)
		if onAnswer != nil {
			onAnswer(state)
		}
	}
	return state, nil
}

func askSelect(ctx context.Context, d Driver, field apidoc.Field, current string) (string, error) {
	idx, err := d.Select(ctx, SelectConfig{
		Message:      field.Label + ":",
		Options:      field.Options,
		DefaultIndex: indexOf(field.Options, current),
		Help:         field.Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(field.Options) {
		return current, nil
	}
	return field.Options[idx], nil
}

// validatorFor rejects background values the renderer would fail on. Empty
// means "use the theme background" and is always accepted.
func validatorFor(name string) func(string) error {
	if name != "bg" {
		return nil
	}
	return func(value string) error {
		if value == "" {
			return nil
		}
		if _, err := cssclr.Parse(value); err != nil {
			return fmt.Errorf("unsupported color %q", value)
		}
		return nil
	}
}

// ConfirmOverwrite asks before replacing an existing file at path. A missing
// file needs no confirmation.
func ConfirmOverwrite(ctx context.Context, d Driver, path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("prompt: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("prompt: %s is a directory", path)
	}
	ok, err := d.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s exists. Overwrite?", path),
		Default: false,
	})
	if err != nil {
		return false, fmt.Errorf("prompt: confirm overwrite: %w", err)
	}
	return ok, nil
}
