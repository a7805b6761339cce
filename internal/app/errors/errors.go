package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
)

// Pipeline error kinds. Match them with the standard errors.Is.
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")

	// Stage errors
	ErrTransport       = New("transport failure")
	ErrDeserialization = New("unexpected response shape")
	ErrTimeout         = New("transcript polling timed out")
	ErrJobFailed       = New("transcription job failed")
	ErrSummarization   = New("summarization failed")
	ErrMissingFilePath = New("file path unavailable")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Mark tags err with kind so that errors.Is(result, kind) holds while the
// original cause stays reachable through Unwrap.
func Mark(err error, kind *Error) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: kind.message,
		cause:   err,
	}
}

// Transport marks err as ErrTransport. A *url.Error is reduced to its
// operation, host and cause, so a request URL that embeds a credential
// (Telegram puts the bot token in the path) never reaches logs.
func Transport(err error) error {
	if err == nil {
		return nil
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		host := "unknown host"
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil && u.Host != "" {
			host = u.Host
		}
		err = fmt.Errorf("%s %s: %w", urlErr.Op, host, urlErr.Err)
	}
	return Mark(err, ErrTransport)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Kind returns a short label for the pipeline error kind of err, used for
// metrics and log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case stderrors.Is(err, ErrTransport):
		return "transport"
	case stderrors.Is(err, ErrDeserialization):
		return "deserialization"
	case stderrors.Is(err, ErrTimeout):
		return "timeout"
	case stderrors.Is(err, ErrJobFailed):
		return "job_failed"
	case stderrors.Is(err, ErrSummarization):
		return "summarization"
	case stderrors.Is(err, ErrMissingFilePath):
		return "missing_file_path"
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
