package model

import "errors"

var (
	// ErrNotFound is returned when a document or collection cannot be resolved.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the current user lacks the ability for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrNoTemplate is returned when templatizing completed without producing a template.
	ErrNoTemplate = errors.New("no template was created")

	// ErrInvalidWorkspace is returned for malformed workspace files.
	ErrInvalidWorkspace = errors.New("invalid workspace")
)
