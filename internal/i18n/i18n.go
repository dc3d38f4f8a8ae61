// Package i18n provides the translation lookup for user-error messages.
//
// A Translator holds one catalog per locale: a flat mapping from message
// key to a template containing %name% placeholders. Catalogs ship as JSON
// files in a configured directory (one file per locale, e.g. en.json) and
// can be supplemented programmatically.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rvandam/usererr/internal/usererr"
	"golang.org/x/text/language"
)

// Translator resolves message keys to localized strings and substitutes
// placeholders. It is built once at startup and read-only afterwards, so
// it may be shared across requests without locking.
type Translator struct {
	fallback language.Tag
	catalogs map[string]map[string]string
	tags     []language.Tag
}

// NewTranslator creates a Translator whose lookups fall back to the given
// locale when a key is missing from the requested one.
func NewTranslator(fallback language.Tag) *Translator {
	t := &Translator{
		fallback: fallback,
		catalogs: make(map[string]map[string]string),
	}
	t.addTag(fallback)
	return t
}

// Add merges messages into the catalog for a locale. Existing keys are
// overwritten, which lets file-based catalogs refine built-in defaults.
func (t *Translator) Add(tag language.Tag, messages map[string]string) {
	t.addTag(tag)
	catalog, ok := t.catalogs[tag.String()]
	if !ok {
		catalog = make(map[string]string, len(messages))
		t.catalogs[tag.String()] = catalog
	}
	for key, tmpl := range messages {
		catalog[key] = tmpl
	}
}

// LoadDir loads every *.json catalog from dir. The file base name is the
// locale tag (en.json, nl.json, de-AT.json). Nested JSON objects flatten
// into dotted keys, so {"account":{"locked":"..."}} serves the key
// "account.locked".
func (t *Translator) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		tag, err := language.Parse(name)
		if err != nil {
			return fmt.Errorf("catalog %s: invalid locale %q: %w", entry.Name(), name, err)
		}

		k := koanf.New(".")
		if err := k.Load(file.Provider(filepath.Join(dir, entry.Name())), kjson.Parser()); err != nil {
			return fmt.Errorf("loading catalog %s: %w", entry.Name(), err)
		}

		messages := make(map[string]string)
		for key, value := range k.All() {
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("catalog %s: key %q is not a string", entry.Name(), key)
			}
			messages[key] = s
		}
		t.Add(tag, messages)
	}

	return nil
}

// Translate renders the message for key in the requested locale,
// substituting every parameter placeholder in order of appearance.
//
// Lookup falls back from the exact locale through its parents (de-AT ->
// de) to the Translator's fallback locale. A key absent everywhere
// renders as the key itself, which keeps unknown user errors visible
// instead of blank.
func (t *Translator) Translate(tag language.Tag, key string, params *usererr.Params) string {
	tmpl, ok := t.lookup(tag, key)
	if !ok {
		tmpl = key
	}
	if params == nil {
		return tmpl
	}
	for _, placeholder := range params.Placeholders() {
		value, _ := params.Get(placeholder)
		tmpl = strings.ReplaceAll(tmpl, placeholder, value)
	}
	return tmpl
}

// Matcher returns a language matcher over all loaded locales, with the
// fallback locale as the preferred default.
func (t *Translator) Matcher() language.Matcher {
	return language.NewMatcher(t.tags)
}

// Fallback returns the Translator's fallback locale.
func (t *Translator) Fallback() language.Tag {
	return t.fallback
}

func (t *Translator) lookup(tag language.Tag, key string) (string, bool) {
	for ; tag != language.Und; tag = tag.Parent() {
		if catalog, ok := t.catalogs[tag.String()]; ok {
			if tmpl, ok := catalog[key]; ok {
				return tmpl, true
			}
		}
	}
	if catalog, ok := t.catalogs[t.fallback.String()]; ok {
		if tmpl, ok := catalog[key]; ok {
			return tmpl, true
		}
	}
	return "", false
}

func (t *Translator) addTag(tag language.Tag) {
	for _, existing := range t.tags {
		if existing == tag {
			return
		}
	}
	t.tags = append(t.tags, tag)
}
