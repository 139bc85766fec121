package editor

import "errors"

var (
	// ErrSessionNotFound is returned for unknown, expired, or foreign session ids.
	ErrSessionNotFound = errors.New("editor session not found")
	// ErrUnknownSection is returned when a patch names a section that does not exist.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownStep is returned when navigation targets a step that does not exist.
	ErrUnknownStep = errors.New("unknown step")
)
