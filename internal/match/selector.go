// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package match

// Selection is the outcome of picking a winner from ranked scores.
type Selection struct {
	// Top is the winning score record.
	Top Score

	// RunnerUp is the second-ranked record, present only when the
	// result is ambiguous.
	RunnerUp *Score

	// Ambiguous is set when the runner-up scored within the ambiguity
	// gap of the winner. The winner is still injected; the runner-up is
	// informational only.
	Ambiguous bool
}

// Select picks the winner from a ranked list. Returns nil when the
// list is empty. Ties in the weighted total were already broken by id
// during ranking, so the first element always wins.
func (e *Engine) Select(ranked []Score) *Selection {
	if len(ranked) == 0 {
		return nil
	}

	sel := &Selection{Top: ranked[0]}
	if len(ranked) > 1 && ranked[0].Weighted-ranked[1].Weighted < e.ambiguityGap {
		ru := ranked[1]
		sel.RunnerUp = &ru
		sel.Ambiguous = true
	}
	return sel
}
