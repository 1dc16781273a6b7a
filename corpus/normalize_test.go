package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEscapes(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no escapes here", "no escapes here"},
		{"newline", `first\nsecond`, "first\nsecond"},
		{"tab and cr", `a\tb\rc`, "a\tb\rc"},
		{"backslash", `a\\b`, `a\b`},
		{"quotes", `it\'s \"fine\"`, `it's "fine"`},
		{"hex", `caf\xe9`, "café"},
		{"unicode", `café latte`, "café latte"},
		{"long unicode", `\U0001F600`, "\U0001F600"},
		{"octal", `\101\102`, "AB"},
		{"unknown escape kept", `who\q what`, `who\q what`},
		{"trailing backslash kept", `ends with \`, `ends with \`},
		{"empty", "", ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := DecodeEscapes([]byte(test.in))
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestDecodeEscapesErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
	}{
		{"truncated hex", `oops \x4`},
		{"truncated unicode", `oops \u00e`},
		{"bad hex digits", `oops \xzz`},
		{"bad unicode digits", `oops \u12g4`},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeEscapes([]byte(test.in))
			assert.Error(t, err)
		})
	}
}
