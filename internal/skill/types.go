package skill

// Bilingual holds the English and Chinese variants of a phrase or
// pattern list. Absent lists are empty slices, never nil-as-wildcard.
type Bilingual struct {
	EN []string `json:"en"`
	ZH []string `json:"zh"`
}

// Descriptor is one validated skill entry from the index.
type Descriptor struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	ShortDescription string    `json:"short_description"`
	Tags             []string  `json:"tags"`
	TriggerKeywords  Bilingual `json:"trigger_keywords"`
	IntentPatterns   Bilingual `json:"intent_patterns"`
	NegativeKeywords Bilingual `json:"negative_keywords"`
	BodyPath         string    `json:"body_path"`
	BodyHash         string    `json:"body_hash"`
}

// Index is the catalog of all skill descriptors, without bodies.
// It is read-only after construction.
type Index struct {
	GeneratedAt int64        `json:"generated_at"`
	Skills      []Descriptor `json:"skills"`
}
