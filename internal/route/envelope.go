// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package route

import (
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"

	"github.com/traylinx/skill-router/internal/match"
	"github.com/traylinx/skill-router/internal/skill"
)

// truncateUTF8 cuts body down to at most max bytes without splitting a
// multi-byte sequence. Backing off to the previous rune start keeps
// the result valid UTF-8.
func truncateUTF8(body []byte, max int) []byte {
	if max <= 0 || len(body) <= max {
		return body
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}

// buildEnvelope renders the systemMessage injection payload. Scores
// render as integers, truncated not rounded. The runner-up note
// appears only on ambiguous results.
func buildEnvelope(winner *skill.Descriptor, sel *match.Selection, runnerUp *skill.Descriptor, body []byte) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "[skill-router] Automatically loaded skill: **%s** (category: %s, score: %d)",
		winner.Name, winner.Category, int(sel.Top.Weighted))

	if sel.Ambiguous && runnerUp != nil && sel.RunnerUp != nil {
		fmt.Fprintf(&b, "\n[skill-router] Note: also considered %s (score: %d).", runnerUp.Name, int(sel.RunnerUp.Weighted))
		b.WriteString("\n               If the loaded skill seems wrong, the user may have meant the other one.")
	}

	b.WriteString("\n\n--- BEGIN SKILL INSTRUCTIONS ---\n")
	b.Write(body)
	b.WriteString("\n--- END SKILL INSTRUCTIONS ---\n\n")
	b.WriteString("[skill-router] Apply these skill instructions to the user's request.\n")
	b.WriteString("If the skill doesn't seem relevant, ignore these instructions and respond normally.")

	envelope, err := sjson.SetBytes([]byte(`{}`), "systemMessage", b.String())
	if err != nil {
		log.Debugf("route: failed to build envelope: %v", err)
		return nil
	}
	return envelope
}
