package route

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/traylinx/skill-router/internal/match"
	"github.com/traylinx/skill-router/internal/skill"
)

func TestTruncateUTF8(t *testing.T) {
	cases := []struct {
		name string
		body string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte kept whole", "日本語", 6, "日本"},
		{"multibyte cut mid-sequence", "日本語", 5, "日"},
		{"multibyte cut mid-sequence 2", "日本語", 4, "日"},
		{"zero max keeps body", "abc", 0, "abc"},
		{"empty body", "", 5, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncateUTF8([]byte(tc.body), tc.max)
			assert.Equal(t, tc.want, string(got))
			assert.True(t, utf8.Valid(got))
		})
	}
}

func TestBuildEnvelopeFormat(t *testing.T) {
	winner := &skill.Descriptor{ID: "code-review", Name: "Code Review", Category: "coding"}
	sel := &match.Selection{Top: match.Score{SkillID: "code-review", Weighted: 47.9}}

	envelope := buildEnvelope(winner, sel, nil, []byte("BODY TEXT"))
	require.NotNil(t, envelope)

	require.True(t, gjson.ValidBytes(envelope))
	msg := gjson.GetBytes(envelope, "systemMessage").String()

	want := strings.Join([]string{
		"[skill-router] Automatically loaded skill: **Code Review** (category: coding, score: 47)",
		"",
		"--- BEGIN SKILL INSTRUCTIONS ---",
		"BODY TEXT",
		"--- END SKILL INSTRUCTIONS ---",
		"",
		"[skill-router] Apply these skill instructions to the user's request.",
		"If the skill doesn't seem relevant, ignore these instructions and respond normally.",
	}, "\n")
	assert.Equal(t, want, msg)
}

func TestBuildEnvelopeAmbiguousFormat(t *testing.T) {
	winner := &skill.Descriptor{ID: "unit-testing", Name: "Unit Testing", Category: "testing"}
	runnerUp := &skill.Descriptor{ID: "tdd", Name: "TDD", Category: "testing"}
	ru := match.Score{SkillID: "tdd", Weighted: 34.93}
	sel := &match.Selection{
		Top:       match.Score{SkillID: "unit-testing", Weighted: 41.0},
		RunnerUp:  &ru,
		Ambiguous: true,
	}

	envelope := buildEnvelope(winner, sel, runnerUp, []byte("B"))
	require.NotNil(t, envelope)
	msg := gjson.GetBytes(envelope, "systemMessage").String()

	want := strings.Join([]string{
		"[skill-router] Automatically loaded skill: **Unit Testing** (category: testing, score: 41)",
		"[skill-router] Note: also considered TDD (score: 34).",
		"               If the loaded skill seems wrong, the user may have meant the other one.",
		"",
		"--- BEGIN SKILL INSTRUCTIONS ---",
		"B",
		"--- END SKILL INSTRUCTIONS ---",
		"",
		"[skill-router] Apply these skill instructions to the user's request.",
		"If the skill doesn't seem relevant, ignore these instructions and respond normally.",
	}, "\n")
	assert.Equal(t, want, msg)
}

func TestScoresTruncateNotRound(t *testing.T) {
	winner := &skill.Descriptor{ID: "x", Name: "X", Category: "coding"}
	sel := &match.Selection{Top: match.Score{SkillID: "x", Weighted: 29.999}}

	envelope := buildEnvelope(winner, sel, nil, []byte("b"))
	msg := gjson.GetBytes(envelope, "systemMessage").String()
	assert.Contains(t, msg, "score: 29)")
}
