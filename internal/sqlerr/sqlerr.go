// Package sqlerr handles database driver errors.
//
// It does two things:
//
//   - classify raw Postgres errors (constraint violations, no-rows, etc.)
//     into application HTTPErrors with user-friendly messages, and
//   - intercept deliberately raised user errors: messages following the
//     "app-exception: key|name:value" convention raised by database-side
//     routines, which are parsed and translated before being returned to
//     the client.
package sqlerr
