package errs

import "strings"

// FieldError represents a field-level validation error.
//
// Example:
//
//	{ "field": "email", "error": "invalid email format" }
type FieldError struct {
	// Field is the field name the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect; Value holds the target.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional "what the client should do next" instruction.
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the client/UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. redirect URL).
	Value string `json:"value"`
}

// HTTPError is the error type for API responses. It is designed to be
// serialized directly to JSON by the global error handler.
type HTTPError struct {
	// Code is a machine-friendly error code (e.g. "BAD_REQUEST",
	// "ACCOUNT_NAME_RESERVED").
	Code string `json:"code"`

	// Message is the human-friendly message shown to the client.
	Message string `json:"message"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Override tells clients the message is safe to display verbatim.
	Override bool `json:"override"`

	// Errors holds field-level validation errors, typically for form inputs.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`

	// cause is the wrapped underlying error, kept for logging only.
	cause error
}

// Error satisfies the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also an *HTTPError. It deliberately does
// not compare Code or Status; matching on type is enough for the places
// that only need "has this already been converted".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithCause returns a copy of this HTTPError carrying err as its cause.
func (e *HTTPError) WithCause(err error) *HTTPError {
	clone := *e
	clone.cause = err
	return &clone
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES form, used for stable machine-readable
// codes. Both spaces and dots become underscores, so HTTP status text
// ("Bad Request") and message keys ("account.name.reserved") produce
// "BAD_REQUEST" and "ACCOUNT_NAME_RESERVED".
func MakeUpperCaseWithUnderscores(str string) string {
	replaced := strings.NewReplacer(" ", "_", ".", "_").Replace(str)
	return strings.ToUpper(replaced)
}
