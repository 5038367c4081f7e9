// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package match

// Language classifies which keyword lists a prompt consults.
type Language int

const (
	// LangEN consults only the English lists.
	LangEN Language = iota

	// LangZH consults the Chinese lists first, falling back to English
	// at the phrase-based levels when no Chinese entry hits.
	LangZH

	// LangBoth consults both lists and sums their hits.
	LangBoth
)

// String implements fmt.Stringer for log output.
func (l Language) String() string {
	switch l {
	case LangZH:
		return "zh"
	case LangBoth:
		return "both"
	}
	return "en"
}

// Detect classifies a prompt by its characters. A character is Chinese
// if it falls in U+4E00..U+9FFF (CJK Unified Ideographs). Prompts with
// neither Chinese characters nor ASCII letters default to English.
func Detect(prompt string) Language {
	hasZH := false
	hasEN := false
	for _, r := range prompt {
		if r >= 0x4E00 && r <= 0x9FFF {
			hasZH = true
		} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasEN = true
		}
		if hasZH && hasEN {
			return LangBoth
		}
	}
	if hasZH {
		return LangZH
	}
	return LangEN
}
