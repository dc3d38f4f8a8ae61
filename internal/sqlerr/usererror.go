package sqlerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/language"

	"github.com/rvandam/usererr/internal/errs"
	"github.com/rvandam/usererr/internal/i18n"
	"github.com/rvandam/usererr/internal/usererr"
)

const (
	// DefaultPrefix is the message prefix that marks a driver error as a
	// deliberately raised user error.
	DefaultPrefix = "app-exception: "

	// RaiseExceptionState is the SQLSTATE produced by RAISE EXCEPTION,
	// watched by default.
	RaiseExceptionState = "P0001"
)

// InterceptorConfig configures user-error interception. Both the prefix
// and the watched SQLSTATE set are explicit configuration rather than
// process-wide state.
type InterceptorConfig struct {
	// Prefix must match the start of the (unwrapped) driver message for
	// the error to be treated as a user error. Defaults to DefaultPrefix.
	Prefix string

	// Codes lists the SQLSTATE values to inspect. Defaults to
	// RaiseExceptionState only.
	Codes []string
}

// Interceptor detects user errors among database driver errors and
// replaces them with translated application errors.
//
// Detection is strict: the error must unwrap into a *pgconn.PgError, its
// SQLSTATE must be watched, and its message (after driver unwrapping)
// must carry the configured prefix. Everything else passes through
// untouched.
type Interceptor struct {
	prefix     string
	codes      map[string]struct{}
	translator *i18n.Translator
}

// NewInterceptor builds an Interceptor from cfg, filling in defaults for
// the zero values.
func NewInterceptor(cfg InterceptorConfig, translator *i18n.Translator) *Interceptor {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	codes := cfg.Codes
	if len(codes) == 0 {
		codes = []string{RaiseExceptionState}
	}
	watched := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		watched[code] = struct{}{}
	}

	return &Interceptor{
		prefix:     prefix,
		codes:      watched,
		translator: translator,
	}
}

// Intercept inspects err and, when it is a recognized user error, returns
// the translated replacement error and true. The replacement is an
// *errs.HTTPError whose message is localized for locale and whose cause
// chain still contains the original driver error.
//
// When err is not a user error, Intercept returns (nil, false) and the
// caller keeps handling the original error.
func (in *Interceptor) Intercept(err error, locale language.Tag) (error, bool) {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return nil, false
	}
	if _, ok := in.codes[pgerr.Code]; !ok {
		return nil, false
	}

	msg := unwrapDriverMessage(pgerr.Message, pgerr.Code)
	if !strings.HasPrefix(msg, in.prefix) {
		return nil, false
	}

	parsed := usererr.Parse(strings.TrimPrefix(msg, in.prefix))
	localized := in.translator.Translate(locale, parsed.Key, parsed.Params)

	return errs.NewUserError(localized, parsed.Key, err), true
}

// unwrapDriverMessage strips driver/server decoration from a raised
// message. Some paths deliver the bare message, others wrap it with a
// severity prefix and/or a trailing SQLSTATE marker:
//
//	ERROR: app-exception: some.key|a:1 (SQLSTATE P0001)
func unwrapDriverMessage(msg, sqlstate string) string {
	for _, severity := range []string{"ERROR: ", "FATAL: ", "PANIC: "} {
		if strings.HasPrefix(msg, severity) {
			msg = strings.TrimPrefix(msg, severity)
			break
		}
	}
	msg = strings.TrimSuffix(msg, " (SQLSTATE "+sqlstate+")")
	return msg
}
