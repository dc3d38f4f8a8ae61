package usererr

import "strings"

// Parse converts one raw user-error string into a Message.
//
// The input is everything after the configured message prefix; Parse never
// sees the prefix itself. It works in two stages: first it locates the key
// boundary (respecting quoting), then it repeatedly consumes |name:value
// segments from the remainder.
//
// Parse never returns an error. If the key cannot be read at all (an
// unterminated quoted key), the entire input is returned untrimmed and
// unmodified as the key with no parameters.
func Parse(raw string) Message {
	key, tail, ok := splitKey(raw)
	if !ok {
		return Message{Key: raw, Params: NewParams()}
	}

	msg := Message{Key: normalize(key), Params: NewParams()}

	// No delimiter anywhere past the key means there is nothing to
	// extract; skip the parameter scan entirely.
	if !strings.Contains(tail, "|") {
		return msg
	}

	scanParams(tail, msg.Params)
	return msg
}

// splitKey locates the boundary between the key and the parameter tail.
//
// A key is either a quoted token or an unquoted run up to the first pipe.
// A quoted token only counts as the key when it is followed, after
// whitespace, by a pipe or the end of input; with trailing text the key is
// re-read as an unquoted run, which mirrors how the whole message would
// match the coarse grammar. ok is false only for an unterminated quoted
// key, the single case where the grammar cannot be applied at all.
func splitKey(raw string) (key, tail string, ok bool) {
	i := 0
	for i < len(raw) && isSpace(raw[i]) {
		i++
	}

	if i < len(raw) && raw[i] == '"' {
		end, terminated := scanQuoted(raw, i)
		if !terminated {
			return "", "", false
		}
		j := end
		for j < len(raw) && isSpace(raw[j]) {
			j++
		}
		switch {
		case j == len(raw):
			return raw[i:end], "", true
		case raw[j] == '|':
			return raw[i:end], raw[j:], true
		}
		// Trailing text after the closing quote: fall through to the
		// unquoted reading.
	}

	if p := strings.IndexByte(raw, '|'); p >= 0 {
		return raw[:p], raw[p:], true
	}
	return raw, "", true
}

// scanParams extracts every |name:value segment from tail in left-to-right
// order. A segment whose name does not match [a-zA-Z_][a-zA-Z0-9_]* (or
// that lacks a colon) is skipped without disturbing segments after it.
func scanParams(tail string, params *Params) {
	i := 0
	for i < len(tail) {
		if tail[i] != '|' {
			i++
			continue
		}
		name, value, next, ok := scanParam(tail, i)
		if !ok {
			i++
			continue
		}
		params.Set(name, normalize(value))
		i = next
	}
}

// scanParam reads one parameter starting at the pipe at position i.
// It returns the raw (untrimmed, still-quoted) value and the position to
// resume scanning from.
func scanParam(s string, i int) (name, value string, next int, ok bool) {
	j := i + 1
	for j < len(s) && isSpace(s[j]) {
		j++
	}

	nameStart := j
	if j >= len(s) || !isNameStart(s[j]) {
		return "", "", 0, false
	}
	j++
	for j < len(s) && isNamePart(s[j]) {
		j++
	}
	name = s[nameStart:j]

	if j >= len(s) || s[j] != ':' {
		return "", "", 0, false
	}
	j++

	// A quoted value must open immediately after the colon; otherwise the
	// value is an unquoted run up to the next pipe, quotes included.
	if j < len(s) && s[j] == '"' {
		if end, terminated := scanQuoted(s, j); terminated {
			return name, s[j:end], end, true
		}
	}
	end := len(s)
	if p := strings.IndexByte(s[j:], '|'); p >= 0 {
		end = j + p
	}
	return name, s[j:end], end, true
}

// scanQuoted walks a quoted token starting at the opening quote. Doubled
// quotes are part of the token. end is the index just past the closing
// quote.
func scanQuoted(s string, start int) (end int, terminated bool) {
	i := start + 1
	for i < len(s) {
		if s[i] != '"' {
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i += 2
			continue
		}
		return i + 1, true
	}
	return len(s), false
}

// normalize trims surrounding whitespace and, when the result opens with
// a quote, strips one character from each end and collapses doubled
// quotes. The leading quote alone decides quotedness; an unterminated
// quoted token loses its opening quote and final character rather than
// leaking a dangling quote into the output.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if len(v) == 0 || v[0] != '"' {
		return v
	}
	if len(v) == 1 {
		return ""
	}
	return strings.ReplaceAll(v[1:len(v)-1], `""`, `"`)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
