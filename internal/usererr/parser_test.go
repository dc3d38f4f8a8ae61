package usererr_test

import (
	"testing"

	"github.com/rvandam/usererr/internal/usererr"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		desc       string
		input      string
		wantKey    string
		wantParams map[string]string
		wantOrder  []string
	}{
		{
			desc:    "plain key without parameters",
			input:   "foo.bar",
			wantKey: "foo.bar",
		},
		{
			desc:    "empty input",
			input:   "",
			wantKey: "",
		},
		{
			desc:    "key with surrounding whitespace",
			input:   "  account.locked  ",
			wantKey: "account.locked",
		},
		{
			desc:    "quoted key is unwrapped",
			input:   `"foo.bar"`,
			wantKey: "foo.bar",
		},
		{
			desc:    "quoted key with escaped quotes",
			input:   `"quoted ""key"""`,
			wantKey: `quoted "key"`,
		},
		{
			desc:    "leading pipe yields empty key with parameters",
			input:   "|x:1",
			wantKey: "",
			wantParams: map[string]string{
				"%x%": "1",
			},
			wantOrder: []string{"%x%"},
		},
		{
			desc:    "key with single parameter",
			input:   "some.key|name:value",
			wantKey: "some.key",
			wantParams: map[string]string{
				"%name%": "value",
			},
			wantOrder: []string{"%name%"},
		},
		{
			desc:    "quoted parameter value keeps inner pipe",
			input:   `some.key|name:value|other:"has a | pipe"`,
			wantKey: "some.key",
			wantParams: map[string]string{
				"%name%":  "value",
				"%other%": "has a | pipe",
			},
			wantOrder: []string{"%name%", "%other%"},
		},
		{
			desc:    "quoted key and quoted value with escaping",
			input:   `"quoted ""key"""|p:"a""b"`,
			wantKey: `quoted "key"`,
			wantParams: map[string]string{
				"%p%": `a"b`,
			},
			wantOrder: []string{"%p%"},
		},
		{
			desc:    "duplicate parameter names keep last value",
			input:   "k|x:1|x:2",
			wantKey: "k",
			wantParams: map[string]string{
				"%x%": "2",
			},
			wantOrder: []string{"%x%"},
		},
		{
			desc:    "duplicate keeps first-seen position",
			input:   "k|x:1|y:2|x:3",
			wantKey: "k",
			wantParams: map[string]string{
				"%x%": "3",
				"%y%": "2",
			},
			wantOrder: []string{"%x%", "%y%"},
		},
		{
			desc:    "malformed parameter name is excluded",
			input:   "k|1bad:val",
			wantKey: "k",
		},
		{
			desc:    "malformed segment does not disturb later segments",
			input:   "k|1bad:val|good:v",
			wantKey: "k",
			wantParams: map[string]string{
				"%good%": "v",
			},
			wantOrder: []string{"%good%"},
		},
		{
			desc:    "segment without colon is skipped",
			input:   "k|nocolon|a:1",
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "1",
			},
			wantOrder: []string{"%a%"},
		},
		{
			desc:    "parameter values are trimmed",
			input:   "k|a:  spaced out  |b:v",
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "spaced out",
				"%b%": "v",
			},
			wantOrder: []string{"%a%", "%b%"},
		},
		{
			desc:    "whitespace inside quoted value is preserved",
			input:   `k|a:"  padded  "`,
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "  padded  ",
			},
			wantOrder: []string{"%a%"},
		},
		{
			desc:    "parameter name casing is preserved",
			input:   "k|MixedCase:v|snake_case:w",
			wantKey: "k",
			wantParams: map[string]string{
				"%MixedCase%":  "v",
				"%snake_case%": "w",
			},
			wantOrder: []string{"%MixedCase%", "%snake_case%"},
		},
		{
			desc:    "whitespace allowed between pipe and name",
			input:   "k| a:1 | b:2",
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "1",
				"%b%": "2",
			},
			wantOrder: []string{"%a%", "%b%"},
		},
		{
			desc:    "empty parameter value",
			input:   "k|a:|b:2",
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "",
				"%b%": "2",
			},
			wantOrder: []string{"%a%", "%b%"},
		},
		{
			desc:    "quoted key followed by parameters",
			input:   `"a|b"|x:1`,
			wantKey: "a|b",
			wantParams: map[string]string{
				"%x%": "1",
			},
			wantOrder: []string{"%x%"},
		},
		{
			desc:    "trailing text after quoted key reads as unquoted run",
			input:   `"foo" extra|x:1`,
			wantKey: `foo" extr`,
			wantParams: map[string]string{
				"%x%": "1",
			},
			wantOrder: []string{"%x%"},
		},
		{
			desc:    "trailing text after quoted key without pipe reads as unquoted run",
			input:   `"foo" extra`,
			wantKey: `foo" extr`,
		},
		{
			desc:    "unterminated quoted key falls back to whole input",
			input:   `"abc|x:1`,
			wantKey: `"abc|x:1`,
		},
		{
			desc:    "unterminated quoted value is still dequoted",
			input:   `k|a:"abc`,
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "ab",
			},
			wantOrder: []string{"%a%"},
		},
		{
			desc:    "quote opening after whitespace stops at the pipe",
			input:   `k|a: "has | pipe"`,
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "ha",
			},
			wantOrder: []string{"%a%"},
		},
		{
			desc:    "lone quote value becomes empty",
			input:   `k|a:"`,
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "",
			},
			wantOrder: []string{"%a%"},
		},
		{
			desc:    "junk between quoted value and next pipe is ignored",
			input:   `k|a:"v" junk|b:2`,
			wantKey: "k",
			wantParams: map[string]string{
				"%a%": "v",
				"%b%": "2",
			},
			wantOrder: []string{"%a%", "%b%"},
		},
		{
			desc:    "unquoted key may contain interior quotes",
			input:   `ab"cd|x:1`,
			wantKey: `ab"cd`,
			wantParams: map[string]string{
				"%x%": "1",
			},
			wantOrder: []string{"%x%"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			msg := usererr.Parse(tc.input)

			assert.Equal(t, tc.wantKey, msg.Key)
			assert.Equal(t, len(tc.wantParams), msg.Params.Len())
			for placeholder, want := range tc.wantParams {
				got, ok := msg.Params.Get(placeholder)
				assert.True(t, ok, "missing %s", placeholder)
				assert.Equal(t, want, got, "value of %s", placeholder)
			}
			if tc.wantOrder != nil {
				assert.Equal(t, tc.wantOrder, msg.Params.Placeholders())
			}
		})
	}
}

// A key extracted once must survive a second pass unchanged.
func TestParseIdempotentKey(t *testing.T) {
	inputs := []string{
		"foo.bar",
		`"quoted ""key"""`,
		"  spaced.key  ",
		"some.key|a:1|b:2",
	}

	for _, input := range inputs {
		first := usererr.Parse(input)
		second := usererr.Parse(first.Key)

		assert.Equal(t, first.Key, second.Key, "input %q", input)
		assert.Zero(t, second.Params.Len(), "input %q", input)
	}
}

func TestParamsMapIsACopy(t *testing.T) {
	msg := usererr.Parse("k|a:1")

	m := msg.Params.Map()
	m["%a%"] = "tampered"

	got, ok := msg.Params.Get("%a%")
	assert.True(t, ok)
	assert.Equal(t, "1", got)
}
