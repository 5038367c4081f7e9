// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package skill defines the skill descriptor records and the single
// parsing boundary that converts the loose wire index into validated
// records. Everywhere past this boundary descriptors are structurally
// complete: optional sets are present as empty slices.
package skill

import (
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ErrMalformed is returned when the index document cannot be parsed
// into a usable catalog.
var ErrMalformed = errors.New("skill index is malformed")

// ParseIndex converts a raw index document into a validated Index.
//
// The wire format is loosely typed: keys may be absent, lists may
// contain non-strings. ParseIndex tolerates all of that, dropping
// entries without an id and duplicate ids (first wins). It fails only
// when the document is not a JSON object or `skills` is not an array.
func ParseIndex(raw []byte) (*Index, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformed
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, ErrMalformed
	}

	skillsVal := root.Get("skills")
	if !skillsVal.Exists() || !skillsVal.IsArray() {
		return nil, ErrMalformed
	}

	idx := &Index{
		GeneratedAt: parseTimestamp(root.Get("generated_at")),
		Skills:      make([]Descriptor, 0),
	}

	seen := make(map[string]bool)
	skillsVal.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		id := strings.TrimSpace(entry.Get("id").String())
		if id == "" {
			log.Debug("skill: dropping index entry without id")
			return true
		}
		if seen[id] {
			log.Debugf("skill: dropping duplicate index entry %q", id)
			return true
		}
		seen[id] = true

		d := Descriptor{
			ID:               id,
			Name:             entry.Get("name").String(),
			Category:         entry.Get("category").String(),
			ShortDescription: entry.Get("short_description").String(),
			Tags:             stringList(entry.Get("tags")),
			TriggerKeywords:  bilingual(entry.Get("trigger_keywords")),
			IntentPatterns:   bilingual(entry.Get("intent_patterns")),
			NegativeKeywords: bilingual(entry.Get("negative_keywords")),
			BodyPath:         entry.Get("body_path").String(),
			BodyHash:         strings.ToLower(strings.TrimSpace(entry.Get("body_hash").String())),
		}
		if d.Name == "" {
			d.Name = id
		}
		idx.Skills = append(idx.Skills, d)
		return true
	})

	return idx, nil
}

// parseTimestamp accepts either a unix integer or an RFC3339 string.
func parseTimestamp(v gjson.Result) int64 {
	switch v.Type {
	case gjson.Number:
		return v.Int()
	case gjson.String:
		if t, err := time.Parse(time.RFC3339, v.String()); err == nil {
			return t.Unix()
		}
	}
	return 0
}

// bilingual extracts {en, zh} string lists from a loose object.
func bilingual(v gjson.Result) Bilingual {
	return Bilingual{
		EN: stringList(v.Get("en")),
		ZH: stringList(v.Get("zh")),
	}
}

// stringList extracts the string members of a loose array.
// Non-string members and blanks are dropped.
func stringList(v gjson.Result) []string {
	out := make([]string, 0)
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			s := strings.TrimSpace(item.String())
			if s != "" {
				out = append(out, s)
			}
		}
		return true
	})
	return out
}
