// Package apperr provides the error taxonomy shared by every stage of a run.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind uint8

const (
	// KindUnknown is for unclassified errors
	KindUnknown Kind = iota
	// KindSpawn means the tool binary was missing or could not be launched
	KindSpawn
	// KindToolExit means the tool ran but exited non-zero
	KindToolExit
	// KindParse means a tool produced unexpected or malformed output
	KindParse
	// KindIO covers file read, write and copy failures
	KindIO
	// KindConfig covers invalid flags, environment or rc values
	KindConfig
	// KindUpload covers image upload failures
	KindUpload
	// KindCancelled means the user dismissed a dialog
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindSpawn:
		return "spawn"
	case KindToolExit:
		return "tool exit"
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	case KindUpload:
		return "upload"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrCancelled is returned when the user closes a dialog without choosing.
var ErrCancelled = New(KindCancelled, "", "cancelled by user")

// Error is a classified error. Op names the operation (usually the tool or stage),
// Code carries the exit status for KindToolExit.
type Error struct {
	Kind Kind
	Op   string
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if e.Op != "" {
		if msg == "" {
			msg = e.Op
		} else {
			msg = e.Op + ": " + msg
		}
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind so errors.Is(err, ErrCancelled) works
// for every cancellation regardless of which dialog produced it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// New builds an unwrapped error.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Newf builds an unwrapped error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(err error, kind Kind, op, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// ToolExit reports a tool that ran and returned a non-zero status.
func ToolExit(op string, code int) *Error {
	return &Error{Kind: KindToolExit, Op: op, Code: code, Msg: fmt.Sprintf("exit status %d", code)}
}

// Cancelled reports a dismissed dialog.
func Cancelled(op string) *Error {
	return &Error{Kind: KindCancelled, Op: op, Msg: "cancelled by user"}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsCancelled reports whether err is a user cancellation.
func IsCancelled(err error) bool {
	return KindOf(err) == KindCancelled
}

// ExitCode returns the tool exit status carried by err, or -1.
func ExitCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindToolExit {
		return e.Code
	}
	return -1
}
