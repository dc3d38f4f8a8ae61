package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/rvandam/usererr/internal/i18n"
)

// LocaleKey is the echo context key for the negotiated locale.
const LocaleKey = "locale"

// LocaleMiddleware negotiates the response language for each request.
// An explicit ?lang query parameter wins over the Accept-Language
// header; when neither matches a supported locale, the translator's
// fallback is used.
type LocaleMiddleware struct {
	translator *i18n.Translator
}

func NewLocaleMiddleware(translator *i18n.Translator) *LocaleMiddleware {
	return &LocaleMiddleware{translator: translator}
}

func (lm *LocaleMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(LocaleKey, lm.resolve(c))
			return next(c)
		}
	}
}

func (lm *LocaleMiddleware) resolve(c echo.Context) language.Tag {
	if lm.translator == nil {
		return language.English
	}

	matcher := lm.translator.Matcher()

	if lang := c.QueryParam("lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			matched, _, _ := matcher.Match(tag)
			return matched
		}
	}

	accept := c.Request().Header.Get("Accept-Language")
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return lm.translator.Fallback()
	}

	matched, _, _ := matcher.Match(tags...)
	return matched
}

// GetLocale returns the negotiated locale for the current request, or
// English when the middleware did not run.
func GetLocale(c echo.Context) language.Tag {
	if tag, ok := c.Get(LocaleKey).(language.Tag); ok {
		return tag
	}
	return language.English
}
