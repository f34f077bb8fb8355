package tui

import "errors"

var (
	// ErrAborted is returned when the user interrupts a prompt or declines to
	// correct a rejected form.
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the form is still invalid after the
	// configured number of submits.
	ErrTooManyAttempts = errors.New("tui: too many rejected submits")
)
