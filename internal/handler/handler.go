// Package handler is the HTTP entry point after the router.
//
// It parses requests, validates input via the validation package, and
// calls the appropriate service. It acts as the interface between the
// HTTP request and the core business logic.
package handler
