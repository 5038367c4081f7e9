// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package route wires the registry, cache, and scoring engine into the
// routing pipeline behind a single Router value. Router.Run is the
// outermost error fence: whatever goes wrong inside, the process emits
// nothing and exits 0. Blocking the user's input is the one failure
// mode this program must not have.
package route

import (
	"context"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/traylinx/skill-router/internal/cache"
	"github.com/traylinx/skill-router/internal/config"
	"github.com/traylinx/skill-router/internal/match"
	"github.com/traylinx/skill-router/internal/registry"
	"github.com/traylinx/skill-router/internal/skill"
)

// maxStdinBytes bounds the hook envelope read from stdin.
const maxStdinBytes = 10 << 20

// minPromptRunes skips prompts too short to carry intent, typically
// bare slash commands or typos.
const minPromptRunes = 5

// Router owns one routing invocation's collaborators. It is built once
// per process from the resolved configuration; no state survives the
// invocation except what the cache store persists.
type Router struct {
	cfg    *config.Config
	reg    registry.Registry
	store  *cache.Store
	engine *match.Engine
}

// New constructs a Router from the configuration.
func New(cfg *config.Config) *Router {
	return &Router{
		cfg:    cfg,
		reg:    registry.New(cfg),
		store:  cache.NewStore(cfg),
		engine: match.NewEngine(cfg.Threshold, cfg.AmbiguityGap),
	}
}

// Run executes one routing invocation: read the hook envelope from r,
// match, and write at most one systemMessage envelope to w.
//
// Run never fails. Malformed input, registry trouble, cache
// corruption, and programming errors all collapse into a silent empty
// emission; with debug logging on, the cause lands on stderr.
func (rt *Router) Run(ctx context.Context, r io.Reader, w io.Writer) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("route: recovered from panic: %v", rec)
		}
	}()

	prompt, ok := readPrompt(r)
	if !ok {
		log.Debug("route: no usable prompt, skipping")
		return
	}

	idx := rt.loadIndex(ctx)
	if idx == nil || len(idx.Skills) == 0 {
		log.Debug("route: no index available, skipping")
		return
	}

	ranked := rt.engine.Rank(prompt, idx)
	sel := rt.engine.Select(ranked)
	if sel == nil {
		log.Debugf("route: no match above threshold (%dms)", time.Since(start).Milliseconds())
		return
	}

	winner := descriptorByID(idx, sel.Top.SkillID)
	if winner == nil {
		return
	}

	body := rt.loadBody(ctx, winner)
	if body == nil {
		log.Debugf("route: could not load body for %q, skipping", winner.ID)
		return
	}

	var runnerUp *skill.Descriptor
	if sel.Ambiguous && sel.RunnerUp != nil {
		runnerUp = descriptorByID(idx, sel.RunnerUp.SkillID)
	}

	envelope := buildEnvelope(winner, sel, runnerUp, truncateUTF8(body, rt.cfg.BodyMaxChars))
	if envelope == nil {
		return
	}
	if _, err := w.Write(envelope); err != nil {
		log.Debugf("route: failed to write envelope: %v", err)
		return
	}

	log.Debugf("route: injected %q (score=%.1f, ambiguous=%v, %dms)",
		winner.ID, sel.Top.Weighted, sel.Ambiguous, time.Since(start).Milliseconds())
}

// readPrompt parses the stdin hook envelope. Anything that is not a
// JSON object carrying a non-empty string `prompt` reads as "no
// prompt". Unknown fields are ignored.
func readPrompt(r io.Reader) (string, bool) {
	raw, err := io.ReadAll(io.LimitReader(r, maxStdinBytes))
	if err != nil {
		return "", false
	}
	if !gjson.ValidBytes(raw) {
		return "", false
	}

	v := gjson.GetBytes(raw, "prompt")
	if v.Type != gjson.String {
		return "", false
	}

	prompt := v.String()
	if len([]rune(strings.TrimSpace(prompt))) < minPromptRunes {
		return "", false
	}
	return prompt, true
}

// loadIndex applies the three-tier retrieval policy to the index:
// fresh cache, then remote fetch, then stale cache, then give up.
func (rt *Router) loadIndex(ctx context.Context) *skill.Index {
	cached, freshness := rt.store.GetIndex()
	if freshness == cache.Fresh {
		log.Debug("route: index loaded from fresh cache")
		return cached
	}

	fetched, err := rt.reg.FetchIndex(ctx)
	if err == nil {
		if putErr := rt.store.PutIndex(fetched); putErr != nil {
			log.Debugf("route: failed to cache index: %v", putErr)
		}
		log.Debug("route: index fetched from registry")
		return fetched
	}
	log.Debugf("route: index fetch failed: %v", err)

	if freshness == cache.Stale {
		log.Debug("route: index loaded from stale cache (offline fallback)")
		return cached
	}
	return nil
}

// loadBody applies the same three-tier policy to the winner's body.
// Every tier enforces the descriptor's hash: a cached body that fails
// integrity reads as missing, and a fetched body that fails integrity
// is discarded by the registry.
func (rt *Router) loadBody(ctx context.Context, d *skill.Descriptor) []byte {
	cached, freshness := rt.store.GetBody(d.ID, d.BodyHash)
	if freshness == cache.Fresh {
		log.Debugf("route: body %q loaded from fresh cache", d.ID)
		return cached
	}

	fetched, err := rt.reg.FetchBody(ctx, d.BodyPath, d.BodyHash)
	if err == nil {
		if putErr := rt.store.PutBody(d.ID, d.BodyHash, fetched); putErr != nil {
			log.Debugf("route: failed to cache body %q: %v", d.ID, putErr)
		}
		log.Debugf("route: body %q fetched from registry", d.ID)
		return fetched
	}
	log.Debugf("route: body fetch for %q failed: %v", d.ID, err)

	if freshness == cache.Stale {
		log.Debugf("route: body %q loaded from stale cache (offline fallback)", d.ID)
		return cached
	}
	return nil
}

func descriptorByID(idx *skill.Index, id string) *skill.Descriptor {
	for i := range idx.Skills {
		if idx.Skills[i].ID == id {
			return &idx.Skills[i]
		}
	}
	return nil
}
