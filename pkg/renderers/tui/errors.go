package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoChoices is returned when a choice prompt has nothing to offer.
	ErrNoChoices = errors.New("tui: no choices available")
	// ErrNotRendered is returned when the form is filled before a successful
	// render.
	ErrNotRendered = errors.New("tui: form has not been rendered")
)
