// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package registry provides the data abstraction layer over skill
// sources. Two variants exist: a static HTTPS tree and a local
// filesystem mirror with the same layout. Callers cannot tell them
// apart.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/traylinx/skill-router/internal/config"
	"github.com/traylinx/skill-router/internal/skill"
)

// Error kinds surfaced by registry operations. Callers match these
// with errors.Is; none of them ever reach the user.
var (
	// ErrNotFound means the source answered but the document does not exist.
	ErrNotFound = errors.New("registry: not found")

	// ErrNetworkUnavailable covers transport failures and timeouts.
	ErrNetworkUnavailable = errors.New("registry: network unavailable")

	// ErrMalformed means the index document failed schema validation.
	ErrMalformed = errors.New("registry: malformed index")

	// ErrIntegrityMismatch means a fetched body's SHA-256 disagrees with
	// the hash the descriptor promised.
	ErrIntegrityMismatch = errors.New("registry: body integrity mismatch")
)

// Registry is the skill data source.
type Registry interface {
	// FetchIndex retrieves and validates the skill index.
	FetchIndex(ctx context.Context) (*skill.Index, error)

	// FetchBody retrieves one skill body by its index path and verifies
	// it against expectedHash. An empty expectedHash skips verification.
	FetchBody(ctx context.Context, bodyPath, expectedHash string) ([]byte, error)
}

// New builds the registry variant selected by the configuration.
func New(cfg *config.Config) Registry {
	if cfg.RegistryKind == config.RegistryLocal {
		return NewLocalRegistry(cfg.RegistryURL)
	}
	return NewHTTPRegistry(cfg.RegistryURL, cfg.FetchTimeout)
}

// BodyHash returns the lowercase hex SHA-256 of a body payload.
func BodyHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// verifyBody checks a fetched body against the expected hash.
func verifyBody(body []byte, expectedHash string) error {
	if expectedHash == "" {
		return nil
	}
	if got := BodyHash(body); got != expectedHash {
		return fmt.Errorf("%w: got %s want %s", ErrIntegrityMismatch, got, expectedHash)
	}
	return nil
}
