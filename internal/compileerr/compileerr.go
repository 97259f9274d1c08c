// Package compileerr wraps the I/O-level errors a compilation run can
// produce (opening the source file, writing report artifacts) with a
// human-readable summary separate from the underlying cause. It is never
// used for the three collected diagnostic lists (lexical/syntax/semantic
// errors), which are data, not Go errors: no error aborts a run, only a
// failure to read input or write output does. Adapted from
// internal/tqerrors/tqerrors.go's wrap-and-tag error style.
package compileerr

import "fmt"

// Error wraps a triggering cause with a short summary meant for a banner or
// log line, keeping the full technical detail available via Unwrap/Error.
type Error struct {
	summary string
	cause   error
}

// New creates an Error with summary and no further wrapped cause.
func New(summary string) *Error {
	return &Error{summary: summary}
}

// Wrap creates an Error wrapping cause, with summary describing what the
// caller was trying to do when cause occurred.
func Wrap(cause error, summary string) *Error {
	return &Error{summary: summary, cause: cause}
}

// Wrapf is Wrap with a formatted summary.
func Wrapf(cause error, format string, args ...any) *Error {
	return &Error{summary: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.summary, e.cause.Error())
	}
	return e.summary
}

// Summary returns just the human-readable summary, without the wrapped
// cause's technical detail.
func (e *Error) Summary() string {
	return e.summary
}

func (e *Error) Unwrap() error {
	return e.cause
}
