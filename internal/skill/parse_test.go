package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	raw := []byte(`{
		"generated_at": 1767225600,
		"skills": [
			{
				"id": "code-review",
				"name": "Code Review",
				"category": "coding",
				"short_description": "Review code changes",
				"tags": ["review", "quality"],
				"trigger_keywords": {"en": ["code review"], "zh": ["审查"]},
				"intent_patterns": {"en": ["review.{0,30}code"]},
				"negative_keywords": {},
				"body_path": "skills/code-review/SKILL.md",
				"body_hash": "ABCDEF0123"
			}
		]
	}`)

	idx, err := ParseIndex(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1767225600), idx.GeneratedAt)
	require.Len(t, idx.Skills, 1)

	d := idx.Skills[0]
	assert.Equal(t, "code-review", d.ID)
	assert.Equal(t, "Code Review", d.Name)
	assert.Equal(t, []string{"code review"}, d.TriggerKeywords.EN)
	assert.Equal(t, []string{"审查"}, d.TriggerKeywords.ZH)
	// Hash is normalized to lowercase hex.
	assert.Equal(t, "abcdef0123", d.BodyHash)

	// Missing optional sets are empty, never nil.
	assert.NotNil(t, d.IntentPatterns.ZH)
	assert.Empty(t, d.IntentPatterns.ZH)
	assert.NotNil(t, d.NegativeKeywords.EN)
	assert.NotNil(t, d.Tags)
}

func TestParseIndexTimestampString(t *testing.T) {
	idx, err := ParseIndex([]byte(`{"generated_at": "2026-01-01T00:00:00Z", "skills": []}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1767225600), idx.GeneratedAt)
}

func TestParseIndexDropsBadEntries(t *testing.T) {
	raw := []byte(`{
		"skills": [
			{"id": "dup", "name": "First"},
			{"id": "dup", "name": "Second"},
			{"name": "no id"},
			{"id": "   "},
			"not an object",
			{"id": "named-by-id"}
		]
	}`)

	idx, err := ParseIndex(raw)
	require.NoError(t, err)
	require.Len(t, idx.Skills, 2)

	// Duplicate ids: first wins.
	assert.Equal(t, "First", idx.Skills[0].Name)

	// Missing name defaults to the id.
	assert.Equal(t, "named-by-id", idx.Skills[1].Name)
}

func TestParseIndexToleratesLooseLists(t *testing.T) {
	raw := []byte(`{
		"skills": [
			{
				"id": "x",
				"tags": ["ok", 42, null, "  ", "also-ok"],
				"trigger_keywords": {"en": "not a list"}
			}
		]
	}`)

	idx, err := ParseIndex(raw)
	require.NoError(t, err)
	require.Len(t, idx.Skills, 1)
	assert.Equal(t, []string{"ok", "also-ok"}, idx.Skills[0].Tags)
	assert.Empty(t, idx.Skills[0].TriggerKeywords.EN)
}

func TestParseIndexMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":         `{"skills": [`,
		"not an object":    `[1, 2, 3]`,
		"skills missing":   `{"generated_at": 0}`,
		"skills not array": `{"skills": {"a": 1}}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIndex([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
