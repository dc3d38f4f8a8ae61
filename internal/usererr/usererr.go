// Package usererr parses user-error messages raised by database-side
// routines.
//
// A user-error message is a compact string convention: a message key,
// optionally followed by a pipe-delimited list of name:value parameters.
// Both the key and parameter values may be double-quote delimited, with
// SQL-style quote doubling ("" -> ") as the only escape:
//
//	account.balance.insufficient|amount:12.50|currency:"EUR"
//	"quoted ""key"""|note:"contains a | pipe"
//
// Parsing never fails. Input that does not decompose into a key plus
// parameters is returned whole as the key with no parameters.
package usererr
