package usererr

// Message is the structured form of a user-error message: a translation
// key plus the substitution parameters that appeared after it.
//
// A Message is a plain value. It is built once by Parse and never mutated
// afterwards, so it is safe to share across goroutines.
type Message struct {
	// Key is the translation-lookup identifier. Surrounding whitespace is
	// trimmed and, when the key was quoted, the quotes are unwrapped and
	// doubled quotes unescaped.
	Key string

	// Params holds the %name%-style placeholders in order of appearance.
	Params *Params
}

// Params is an insertion-ordered mapping from placeholder to value.
//
// Placeholders have the form %name%. A parameter name that appears more
// than once keeps its original position but takes the last value.
type Params struct {
	order  []string
	values map[string]string
}

// NewParams returns an empty parameter mapping.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set records a parameter under its %name% placeholder. Re-setting an
// existing name overwrites the value in place.
func (p *Params) Set(name, value string) {
	placeholder := "%" + name + "%"
	if _, ok := p.values[placeholder]; !ok {
		p.order = append(p.order, placeholder)
	}
	p.values[placeholder] = value
}

// Get returns the value stored under a %name% placeholder.
func (p *Params) Get(placeholder string) (string, bool) {
	v, ok := p.values[placeholder]
	return v, ok
}

// Len reports the number of distinct parameters.
func (p *Params) Len() int {
	return len(p.order)
}

// Placeholders returns the %name% keys in order of first appearance.
func (p *Params) Placeholders() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Map returns the parameters as a plain map keyed by placeholder.
// The result is a copy; mutating it does not affect the Params.
func (p *Params) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
