package sqlerr

// Code classifies a database error into the categories the application
// reacts to. Anything unrecognized maps to Other.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	InvalidTextRepresentation
	StringDataTruncation
	RaiseException
)

// sqlstateToCode maps Postgres SQLSTATE values to Codes.
//
// RaiseException (P0001) is the state produced by RAISE EXCEPTION in
// PL/pgSQL, which is how database routines signal user errors.
var sqlstateToCode = map[string]Code{
	"23505": UniqueViolation,
	"23503": ForeignKeyViolation,
	"23502": NotNullViolation,
	"23514": CheckViolation,
	"22P02": InvalidTextRepresentation,
	"22001": StringDataTruncation,
	"P0001": RaiseException,
}

// MapCode maps a SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	if code, ok := sqlstateToCode[sqlstate]; ok {
		return code
	}
	return Other
}

// Severity mirrors the severity reported by the Postgres server.
type Severity int

const (
	SeverityOther Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// MapSeverity maps the server's severity string to a Severity.
func MapSeverity(s string) Severity {
	switch s {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityOther
	}
}

// Error is the structured form of a Postgres server error. It keeps the
// original SQLSTATE and the schema metadata needed to phrase messages.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	// driverErr is the original driver error, kept for Unwrap and logging.
	driverErr error
}

// Error satisfies the error interface with the server's own message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
