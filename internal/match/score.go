// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package match implements the five-level scoring engine that ranks
// skill descriptors against a user prompt. Scoring is a pure function
// of the (prompt, index) pair: no I/O, no clock, no randomness.
package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/traylinx/skill-router/internal/skill"
)

// Level weights. They must sum to 1.0 so the weighted total stays in
// [0,100].
const (
	weightTrigger     = 0.40
	weightIntent      = 0.35
	weightTag         = 0.15
	weightDescription = 0.10
)

// Score is the per-skill, per-prompt scoring record.
type Score struct {
	SkillID string

	// Raw level scores, each in [0,100].
	Trigger     float64
	Intent      float64
	Tag         float64
	Description float64

	// Excluded is the level-1 negative-keyword veto.
	Excluded bool

	// Weighted is the weighted total in [0,100].
	Weighted float64
}

// Engine scores and ranks an index against prompts.
type Engine struct {
	threshold    float64
	ambiguityGap float64
}

// NewEngine creates a scoring engine with the given selection
// threshold and ambiguity gap.
func NewEngine(threshold, ambiguityGap float64) *Engine {
	return &Engine{threshold: threshold, ambiguityGap: ambiguityGap}
}

// promptView carries the per-invocation derived forms of the prompt so
// they are computed once, not per skill.
type promptView struct {
	raw    string
	lang   Language
	tokens map[string]struct{}
}

func newPromptView(prompt string) *promptView {
	return &promptView{
		raw:    prompt,
		lang:   Detect(prompt),
		tokens: tokenSet(prompt),
	}
}

// Rank scores every descriptor and returns the non-excluded,
// above-threshold records sorted by weighted total descending, ties
// broken by id ascending.
func (e *Engine) Rank(prompt string, idx *skill.Index) []Score {
	p := newPromptView(prompt)

	ranked := make([]Score, 0, len(idx.Skills))
	for i := range idx.Skills {
		sc := e.score(p, &idx.Skills[i])
		if sc.Excluded || sc.Weighted < e.threshold {
			continue
		}
		ranked = append(ranked, sc)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weighted != ranked[j].Weighted {
			return ranked[i].Weighted > ranked[j].Weighted
		}
		return ranked[i].SkillID < ranked[j].SkillID
	})
	return ranked
}

// score computes the full scoring record for one descriptor.
func (e *Engine) score(p *promptView, d *skill.Descriptor) Score {
	sc := Score{SkillID: d.ID}

	// Level 1: negative-keyword veto. Excluded skills skip all further
	// work, including intent pattern compilation.
	if excludedByNegatives(p, d.NegativeKeywords) {
		sc.Excluded = true
		return sc
	}

	sc.Trigger = stepScore(gatedPhraseHits(p, d.TriggerKeywords), 40, 15)
	sc.Intent = stepScore(gatedPatternHits(p, d.IntentPatterns), 50, 35)
	sc.Tag = overlapScore(p.tokens, tagSet(d.Tags))
	sc.Description = overlapScore(p.tokens, descriptionSet(d.ShortDescription))

	sc.Weighted = weightTrigger*sc.Trigger +
		weightIntent*sc.Intent +
		weightTag*sc.Tag +
		weightDescription*sc.Description
	return sc
}

// stepScore maps a hit count onto the base+step ladder, capped at 100.
func stepScore(hits int, base, step float64) float64 {
	if hits <= 0 {
		return 0
	}
	s := base + step*float64(hits-1)
	if s > 100 {
		return 100
	}
	return s
}

// gatedPhraseHits counts distinct trigger phrases that matched, under
// the language gating: en consults English only, both sums both lists,
// zh consults Chinese first and falls back to English when no Chinese
// phrase hit.
func gatedPhraseHits(p *promptView, lists skill.Bilingual) int {
	switch p.lang {
	case LangZH:
		if h := phraseHits(p.raw, lists.ZH, countPhraseZH); h > 0 {
			return h
		}
		return phraseHits(p.raw, lists.EN, countPhraseEN)
	case LangBoth:
		return phraseHits(p.raw, lists.EN, countPhraseEN) +
			phraseHits(p.raw, lists.ZH, countPhraseZH)
	default:
		return phraseHits(p.raw, lists.EN, countPhraseEN)
	}
}

func phraseHits(prompt string, phrases []string, count func(string, string) int) int {
	hits := 0
	for _, ph := range phrases {
		if count(prompt, ph) > 0 {
			hits++
		}
	}
	return hits
}

// gatedPatternHits counts distinct intent patterns that matched, under
// the same gating as phrases. Patterns compile lazily per invocation;
// invalid pattern sources are skipped.
func gatedPatternHits(p *promptView, lists skill.Bilingual) int {
	switch p.lang {
	case LangZH:
		if h := patternHits(p.raw, lists.ZH); h > 0 {
			return h
		}
		return patternHits(p.raw, lists.EN)
	case LangBoth:
		return patternHits(p.raw, lists.EN) + patternHits(p.raw, lists.ZH)
	default:
		return patternHits(p.raw, lists.EN)
	}
}

func patternHits(prompt string, patterns []string) int {
	hits := 0
	for _, src := range patterns {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			continue
		}
		if re.MatchString(prompt) {
			hits++
		}
	}
	return hits
}

// excludedByNegatives applies the level-1 veto. One matching
// multi-word negative excludes outright; single-word negatives need
// two matches in total, counting repeated occurrences.
func excludedByNegatives(p *promptView, neg skill.Bilingual) bool {
	var multi, single int
	switch p.lang {
	case LangZH:
		multi, single = negativeCounts(p.raw, neg.ZH, countPhraseZH)
		if multi == 0 && single == 0 {
			multi, single = negativeCounts(p.raw, neg.EN, countPhraseEN)
		}
	case LangBoth:
		m1, s1 := negativeCounts(p.raw, neg.EN, countPhraseEN)
		m2, s2 := negativeCounts(p.raw, neg.ZH, countPhraseZH)
		multi, single = m1+m2, s1+s2
	default:
		multi, single = negativeCounts(p.raw, neg.EN, countPhraseEN)
	}
	return multi >= 1 || single >= 2
}

func negativeCounts(prompt string, phrases []string, count func(string, string) int) (multi, single int) {
	for _, ph := range phrases {
		occ := count(prompt, ph)
		if occ == 0 {
			continue
		}
		if len(strings.Fields(ph)) >= 2 {
			multi++
		} else {
			single += occ
		}
	}
	return multi, single
}

// overlapScore is the shared L4/L5 ratio: 100·|P∩T|/max(1,|T|),
// capped at 100.
func overlapScore(promptTokens map[string]struct{}, target map[string]struct{}) float64 {
	if len(target) == 0 {
		return 0
	}
	inter := 0
	for t := range target {
		if _, ok := promptTokens[t]; ok {
			inter++
		}
	}
	s := 100 * float64(inter) / float64(len(target))
	if s > 100 {
		return 100
	}
	return s
}

// tagSet lowercases the descriptor's tags into a distinct set. Tags
// are matched verbatim, not re-tokenized.
func tagSet(tags []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

// descriptionSet tokenizes the short description and removes the
// frozen stop-word set.
func descriptionSet(desc string) map[string]struct{} {
	tokens := tokenSet(desc)
	for w := range stopWords {
		delete(tokens, w)
	}
	return tokens
}
