package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSet(t *testing.T) {
	got := tokenSet("Help me do a Code-Review of PR #42!")
	want := []string{"help", "me", "do", "a", "code", "review", "of", "pr", "42"}
	assert.Len(t, got, len(want))
	for _, w := range want {
		_, ok := got[w]
		assert.True(t, ok, "missing token %q", w)
	}
}

func TestTokenSetMixedScripts(t *testing.T) {
	got := tokenSet("帮我review代码")
	_, hasEN := got["review"]
	assert.True(t, hasEN, "ASCII run should form its own token")
	_, hasZH1 := got["帮我"]
	_, hasZH2 := got["代码"]
	assert.True(t, hasZH1 && hasZH2, "CJK runs should form their own tokens")
}

func TestCountPhraseEN(t *testing.T) {
	cases := []struct {
		prompt string
		phrase string
		want   int
	}{
		{"do a code review of this pull request", "code review", 1},
		{"do a code review of this pull request", "pull request", 1},
		{"variable names", "aria", 0},          // substring without boundary
		{"ARIA labels are missing", "aria", 1}, // case-insensitive
		{"429 Too Many Requests error", "429", 1},
		{"error 4290 happened", "429", 0}, // digit neighbor breaks the boundary
		{"test test test", "test", 3},
		{"retest contest", "test", 0},
		{"帮我review代码", "review", 1}, // CJK neighbors count as boundaries
		{"", "review", 0},
		{"review", "", 0},
	}

	for _, tc := range cases {
		if got := countPhraseEN(tc.prompt, tc.phrase); got != tc.want {
			t.Errorf("countPhraseEN(%q, %q) = %d, want %d", tc.prompt, tc.phrase, got, tc.want)
		}
	}
}

func TestCountPhraseZH(t *testing.T) {
	cases := []struct {
		prompt string
		phrase string
		want   int
	}{
		{"帮我审查一下这段代码", "审查", 1},
		{"审查审查", "审查", 2},
		{"帮我看看", "审查", 0},
		{"代码审查和代码质量", "代码", 2},
	}

	for _, tc := range cases {
		if got := countPhraseZH(tc.prompt, tc.phrase); got != tc.want {
			t.Errorf("countPhraseZH(%q, %q) = %d, want %d", tc.prompt, tc.phrase, got, tc.want)
		}
	}
}
