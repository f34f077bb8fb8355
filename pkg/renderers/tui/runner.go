// Package tui fills forms interactively in a terminal. Every answer becomes an
// edit event on a session and the form is submitted once all fields were
// asked; rejected submits print the failing fields and re-ask only those.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/session"
)

// Runner drives a session through a PromptDriver.
type Runner struct {
	driver      PromptDriver
	maxAttempts int
	failure     *color.Color
	success     *color.Color
}

// Option configures a Runner.
type Option func(*Runner)

// WithDriver swaps the prompt implementation.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithMaxAttempts caps the number of submits; zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		r.maxAttempts = n
	}
}

// NewRunner returns a runner using survey prompts on stdout by default.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		driver:  NewSurveyDriver(os.Stdout),
		failure: color.New(color.FgRed),
		success: color.New(color.FgGreen, color.Bold),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewWriterRunner is NewRunner with informational output sent to out.
func NewWriterRunner(out io.Writer, opts ...Option) *Runner {
	return NewRunner(append([]Option{WithDriver(NewSurveyDriver(out))}, opts...)...)
}

// Fill asks for every field, submits, and keeps asking for the failing
// fields until the submit is accepted. The returned outcome is the last
// submit's.
func (r *Runner) Fill(ctx context.Context, s *session.Session) (session.Outcome, error) {
	def := s.Definition()
	if def.Title != "" {
		if err := r.driver.Info(ctx, def.Title); err != nil {
			return session.Outcome{}, err
		}
	}

	pending := def.Names()
	for attempt := 1; ; attempt++ {
		if err := r.ask(ctx, s, pending); err != nil {
			return session.Outcome{}, err
		}

		outcome, err := s.Submit(ctx)
		if err != nil {
			return outcome, err
		}
		if outcome.Accepted {
			if err := r.driver.Info(ctx, r.success.Sprintf("%s saved", titleOf(def))); err != nil {
				return outcome, err
			}
			return outcome, nil
		}

		if err := r.report(ctx, s); err != nil {
			return outcome, err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return outcome, ErrTooManyAttempts
		}
		retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Fix the highlighted fields?", Default: true})
		if err != nil {
			return outcome, err
		}
		if !retry {
			return outcome, ErrAborted
		}
		pending = outcome.State.Failures()
	}
}

func (r *Runner) ask(ctx context.Context, s *session.Session, names []string) error {
	def := s.Definition()
	views := make(map[string]session.FieldView, len(def.Fields))
	for _, view := range s.View() {
		views[view.Name] = view
	}

	for _, spec := range def.Fields {
		if !contains(names, spec.Name) {
			continue
		}
		view := views[spec.Name]
		value, err := r.prompt(ctx, spec, view)
		if err != nil {
			return err
		}
		if err := s.Edit(spec.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) prompt(ctx context.Context, spec form.FieldSpec, view session.FieldView) (string, error) {
	if len(spec.Options) > 0 {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      view.Label,
			Options:      spec.Options,
			DefaultIndex: indexOf(spec.Options, view.Value),
			Help:         view.HelperText,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(spec.Options) {
			return "", nil
		}
		return spec.Options[idx], nil
	}
	return r.driver.Input(ctx, InputConfig{
		Message: view.Label,
		Default: view.Value,
		Help:    view.HelperText,
	})
}

func (r *Runner) report(ctx context.Context, s *session.Session) error {
	for _, view := range s.View() {
		if !view.Error {
			continue
		}
		line := r.failure.Sprintf("  %s: %s", view.Label, view.HelperText)
		if err := r.driver.Info(ctx, line); err != nil {
			return fmt.Errorf("tui: report: %w", err)
		}
	}
	return nil
}

func titleOf(def form.Definition) string {
	if def.Title != "" {
		return def.Title
	}
	return def.ID
}

func contains(values []string, value string) bool {
	return indexOf(values, value) >= 0
}

func indexOf(values []string, value string) int {
	for idx, candidate := range values {
		if candidate == value {
			return idx
		}
	}
	return -1
}
