// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cache persists the skill index and skill bodies on local
// disk. Entries carry a TTL and a content hash; expired entries are
// kept and served as the stale tier of the offline fallback, never
// auto-deleted. The three-tier retrieval policy itself lives in the
// route package.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/skill-router/internal/config"
	"github.com/traylinx/skill-router/internal/skill"
)

// Freshness classifies a cache lookup result.
type Freshness int

const (
	// Missing means no usable entry exists.
	Missing Freshness = iota

	// Stale means the entry exists but its TTL has elapsed.
	Stale

	// Fresh means the entry exists and is within its TTL.
	Fresh
)

// String implements fmt.Stringer for log output.
func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	}
	return "missing"
}

const (
	indexFileName = "index.json"
	metaFileName  = "cache-meta.json"
	bodiesDirName = "bodies"
)

// meta is the JSON sidecar recording fetch timestamps and hashes.
// Payloads stay byte-exact in their own files; only bookkeeping lives
// here.
type meta struct {
	Index  indexMeta           `json:"index"`
	Bodies map[string]bodyMeta `json:"bodies"`
}

type indexMeta struct {
	FetchedAt int64 `json:"fetched_at"`
}

type bodyMeta struct {
	FetchedAt int64  `json:"fetched_at"`
	Hash      string `json:"hash"`
}

// Stats summarizes the cache state for the `cache stats` command.
type Stats struct {
	Root           string
	IndexCached    bool
	IndexFreshness Freshness
	IndexFetchedAt time.Time
	IndexSkills    int
	BodyCount      int
	BodyIDs        []string
	TotalBytes     int64
}

// Store is the disk-backed cache over a single root directory.
type Store struct {
	root     string
	indexTTL time.Duration
	bodyTTL  time.Duration

	// now is swappable for TTL tests.
	now func() time.Time
}

// NewStore creates a cache store rooted at cfg.CacheDir.
func NewStore(cfg *config.Config) *Store {
	return &Store{
		root:     cfg.CacheDir,
		indexTTL: cfg.IndexTTL,
		bodyTTL:  cfg.BodyTTL,
		now:      time.Now,
	}
}

// GetIndex loads the cached index and reports its freshness.
// A missing, unreadable, or unparsable file reads as Missing.
func (s *Store) GetIndex() (*skill.Index, Freshness) {
	raw, err := os.ReadFile(filepath.Join(s.root, indexFileName))
	if err != nil {
		return nil, Missing
	}

	idx, err := skill.ParseIndex(raw)
	if err != nil {
		log.Debugf("cache: corrupt index cache: %v", err)
		return nil, Missing
	}

	m := s.loadMeta()
	if s.expired(m.Index.FetchedAt, s.indexTTL) {
		return idx, Stale
	}
	return idx, Fresh
}

// PutIndex stores the index and stamps its fetch time.
func (s *Store) PutIndex(idx *skill.Index) error {
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	if err := secureWrite(filepath.Join(s.root, indexFileName), raw, 0o644); err != nil {
		return err
	}

	m := s.loadMeta()
	m.Index.FetchedAt = s.now().Unix()
	s.saveMeta(m)
	return nil
}

// GetBody loads a cached skill body and reports its freshness.
// The payload is re-hashed on every read; a mismatch against
// expectedHash reads as Missing so the caller re-fetches.
func (s *Store) GetBody(id, expectedHash string) ([]byte, Freshness) {
	if id == "" || expectedHash == "" {
		return nil, Missing
	}

	body, err := os.ReadFile(s.bodyPath(id, expectedHash))
	if err != nil {
		return nil, Missing
	}

	sum := sha256.Sum256(body)
	if hex.EncodeToString(sum[:]) != expectedHash {
		log.Debugf("cache: integrity mismatch for body %s, treating as missing", id)
		return nil, Missing
	}

	m := s.loadMeta()
	bm, ok := m.Bodies[id]
	if !ok || s.expired(bm.FetchedAt, s.bodyTTL) {
		return body, Stale
	}
	return body, Fresh
}

// PutBody stores a skill body keyed by id and hash.
func (s *Store) PutBody(id, hash string, body []byte) error {
	if err := secureWrite(s.bodyPath(id, hash), body, 0o644); err != nil {
		return err
	}

	m := s.loadMeta()
	m.Bodies[id] = bodyMeta{FetchedAt: s.now().Unix(), Hash: hash}
	s.saveMeta(m)
	return nil
}

// Stats collects a summary of the cache contents.
func (s *Store) Stats() Stats {
	st := Stats{Root: s.root, IndexFreshness: Missing}

	if idx, fr := s.GetIndex(); fr != Missing {
		st.IndexCached = true
		st.IndexFreshness = fr
		st.IndexSkills = len(idx.Skills)
		m := s.loadMeta()
		if m.Index.FetchedAt > 0 {
			st.IndexFetchedAt = time.Unix(m.Index.FetchedAt, 0)
		}
	}
	if fi, err := os.Stat(filepath.Join(s.root, indexFileName)); err == nil {
		st.TotalBytes += fi.Size()
	}

	entries, err := os.ReadDir(filepath.Join(s.root, bodiesDirName))
	if err == nil {
		ids := make(map[string]bool)
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
				continue
			}
			if fi, err := e.Info(); err == nil {
				st.TotalBytes += fi.Size()
			}
			// bodies/<id>.<hash>.txt
			name := strings.TrimSuffix(e.Name(), ".txt")
			if i := strings.LastIndex(name, "."); i > 0 {
				ids[name[:i]] = true
			}
		}
		for id := range ids {
			st.BodyIDs = append(st.BodyIDs, id)
		}
		sort.Strings(st.BodyIDs)
		st.BodyCount = len(st.BodyIDs)
	}

	return st
}

// Clear removes every cache entry under the root.
func (s *Store) Clear() error {
	for _, name := range []string{indexFileName, metaFileName} {
		if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.RemoveAll(filepath.Join(s.root, bodiesDirName)); err != nil {
		return err
	}
	return nil
}

func (s *Store) bodyPath(id, hash string) string {
	return filepath.Join(s.root, bodiesDirName, id+"."+hash+".txt")
}

func (s *Store) expired(fetchedAt int64, ttl time.Duration) bool {
	if fetchedAt <= 0 {
		return true
	}
	return s.now().Sub(time.Unix(fetchedAt, 0)) > ttl
}

// loadMeta reads the sidecar; corruption degrades to an empty sidecar,
// which reads every entry as stale until the next put.
func (s *Store) loadMeta() meta {
	m := meta{Bodies: make(map[string]bodyMeta)}
	raw, err := os.ReadFile(filepath.Join(s.root, metaFileName))
	if err != nil {
		return m
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		log.Debugf("cache: corrupt meta sidecar: %v", err)
		return meta{Bodies: make(map[string]bodyMeta)}
	}
	if m.Bodies == nil {
		m.Bodies = make(map[string]bodyMeta)
	}
	return m
}

func (s *Store) saveMeta(m meta) {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return
	}
	if err := secureWrite(filepath.Join(s.root, metaFileName), raw, 0o644); err != nil {
		log.Debugf("cache: failed to save meta sidecar: %v", err)
	}
}
