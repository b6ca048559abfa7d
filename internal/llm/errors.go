package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a request or normalization failure at the site where
// it is detected, so callers never have to inspect message text.
type ErrorKind int

const (
	// KindMissingCredential means no API key was available from the
	// preference override or the environment. Detected before any network call.
	KindMissingCredential ErrorKind = iota
	// KindAccessDenied maps provider status 403.
	KindAccessDenied
	// KindQuotaExceeded maps provider status 429.
	KindQuotaExceeded
	// KindMalformedResponse means the raw text was not valid JSON after
	// fence stripping.
	KindMalformedResponse
	// KindInvalidShape means the parsed JSON carried an expected array field
	// that was present but not an array.
	KindInvalidShape
	// KindRequestFailed covers any other provider failure.
	KindRequestFailed
)

// Error is the classified error surfaced by this package. Message is the
// human-readable text shown to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// User-facing messages for the fixed error kinds.
const (
	msgMissingCredential = "Missing API Key. Please add your Gemini API Key in Settings."
	msgAccessDenied      = "Invalid API Key or permission denied."
	msgQuotaExceeded     = "API Quota exceeded. Please try again later."
)

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func malformedError(cause error) *Error {
	return newError(KindMalformedResponse, fmt.Sprintf("Failed to parse model response: %v", cause), cause)
}

// IsKind reports whether err is a classified Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
