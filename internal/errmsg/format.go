// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

const (
	// Session lifecycle
	OpAcquire Op = "start playback session"

	// Playback controls
	OpToggle Op = "toggle playback"
	OpSeek   Op = "seek"
	OpWindow Op = "change track"
	OpStop   Op = "stop playback"

	// Engine
	OpPlayback Op = "play source"

	// Persistence
	OpRestore Op = "restore session"
	OpSave    Op = "save session"
	OpHistory Op = "read session history"
)

// Error is an operation failure kept for display.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string {
	return FormatWith(e.Op, e.Context, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap annotates err with op. A nil err stays nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
