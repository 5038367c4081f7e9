// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package match

import (
	"strings"
	"unicode"
)

// isASCIIAlnum reports whether r is an ASCII letter or digit. These are
// the word characters for English boundary checks; CJK neighbors count
// as boundaries so phrases match inside mixed-script prompts.
func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// tokenSet splits text on non-alphanumeric runes, lowercases, and
// returns the distinct token set. ASCII and non-ASCII runs form
// separate tokens so "帮我review" yields both "帮我" and "review".
func tokenSet(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var b strings.Builder
	prevASCII := false

	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = struct{}{}
			b.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		wordRune := unicode.IsLetter(r) || unicode.IsDigit(r)
		if !wordRune {
			flush()
			continue
		}
		ascii := isASCIIAlnum(r)
		if b.Len() > 0 && ascii != prevASCII {
			flush()
		}
		b.WriteRune(r)
		prevASCII = ascii
	}
	flush()
	return tokens
}

// countPhraseEN counts case-insensitive occurrences of an English
// phrase on word boundaries: each occurrence must be delimited by a
// non-alphanumeric rune or the string edge on both sides.
func countPhraseEN(prompt, phrase string) int {
	p := strings.ToLower(prompt)
	ph := strings.ToLower(strings.TrimSpace(phrase))
	if ph == "" {
		return 0
	}

	count := 0
	for start := 0; ; {
		i := strings.Index(p[start:], ph)
		if i < 0 {
			break
		}
		i += start
		end := i + len(ph)
		if boundaryBefore(p, i) && boundaryAfter(p, end) {
			count++
		}
		start = i + 1
	}
	return count
}

// countPhraseZH counts substring occurrences of a Chinese phrase.
// No word boundaries; word segmentation is deliberately not attempted.
func countPhraseZH(prompt, phrase string) int {
	ph := strings.ToLower(strings.TrimSpace(phrase))
	if ph == "" {
		return 0
	}
	return strings.Count(strings.ToLower(prompt), ph)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(s[i-1])
	if r >= 0x80 {
		return true
	}
	return !isASCIIAlnum(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	if r >= 0x80 {
		return true
	}
	return !isASCIIAlnum(r)
}
