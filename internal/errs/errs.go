// Package errs defines the application error types.
//
// Its purpose is to give every failure that reaches a client one
// consistent shape (HTTPError): a machine-readable code, a human-readable
// message, field-level validation errors where relevant, and an optional
// client action hint. The real underlying cause stays attached for
// logging but is never serialized.
package errs
