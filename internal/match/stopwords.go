package match

// stopWords is the closed stop-word set removed from description
// tokens before the overlap ratio is computed. The set is frozen:
// changing it changes scores, and scores must be stable across
// releases for identical (prompt, index) pairs.
var stopWords = map[string]struct{}{
	// English function words
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "shall": {},
	"to": {}, "of": {}, "in": {}, "for": {}, "on": {}, "with": {}, "at": {},
	"by": {}, "from": {}, "as": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "and": {}, "but": {}, "or": {}, "nor": {},
	"not": {}, "so": {}, "yet": {}, "both": {}, "either": {}, "neither": {},
	"each": {}, "every": {}, "all": {}, "any": {}, "few": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {}, "no": {}, "only": {},
	"own": {}, "same": {}, "than": {}, "too": {}, "very": {}, "just": {},
	"that": {}, "this": {}, "it": {}, "its": {},

	// Chinese particles and pronouns
	"的": {}, "了": {}, "吗": {}, "呢": {}, "是": {}, "在": {},
	"我": {}, "你": {}, "他": {}, "它": {}, "们": {},
}
