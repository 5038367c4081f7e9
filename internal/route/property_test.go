package route

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Truncation never splits a UTF-8 code point and never exceeds the
// byte budget, for arbitrary bodies and budgets.
func TestProperty_TruncationUTF8Safe(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("truncated bodies are valid UTF-8 within budget", prop.ForAll(
		func(body string, max int) bool {
			got := truncateUTF8([]byte(body), max)
			if max > 0 && len(got) > max {
				return false
			}
			if !bytes.HasPrefix([]byte(body), got) {
				return false
			}
			return utf8.Valid(got)
		},
		gen.AnyString(),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// For a fixed (prompt, index) pair the emitted bytes are identical
// across invocations against a warm cache.
func TestProperty_OutputDeterminism(t *testing.T) {
	properties := gopter.NewProperties(nil)
	rt := newTestRouter(t)

	properties.Property("reruns are byte-identical", prop.ForAll(
		func(prompt string) bool {
			stdin := `{"prompt":` + quoteJSON(prompt) + `}`
			first := runRaw(rt, stdin)
			second := runRaw(rt, stdin)
			return bytes.Equal(first, second)
		},
		gen.OneConstOf(
			"Help me do a code review of this pull request",
			"Add 2FA to harden our login",
			"429 Too Many Requests error from my API",
			"Write tests for this function",
			"帮我审查一下这段代码的质量",
			"What time is it?",
		),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func runRaw(rt *Router, stdin string) []byte {
	var out bytes.Buffer
	rt.Run(context.Background(), strings.NewReader(stdin), &out)
	return out.Bytes()
}

func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
