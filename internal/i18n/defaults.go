package i18n

import "golang.org/x/text/language"

// defaultMessages are the built-in English templates for the user errors
// raised by this service's own database routines. File catalogs loaded on
// top of these may override any entry.
var defaultMessages = map[string]string{
	"account.name.reserved":           "The name %name% is reserved and cannot be used",
	"account.not_found":               "No account exists with id %id%",
	"account.withdraw.invalid_amount": "%amount% is not a valid withdrawal amount",
	"account.balance.insufficient":    "Cannot withdraw %amount%: only %balance% available",
	"account.email.blocked":           "The email address %email% is not allowed to register",
}

// NewDefaultTranslator builds a Translator preloaded with the built-in
// English catalog.
func NewDefaultTranslator(fallback language.Tag) *Translator {
	t := NewTranslator(fallback)
	t.Add(language.English, defaultMessages)
	return t
}
