// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/traylinx/skill-router/internal/skill"
)

// localRegistry reads skills from a local mirror laid out identically
// to the HTTPS tree: <root>/index.json plus body documents addressed
// by their index paths. Used for development and air-gapped setups.
type localRegistry struct {
	root string
}

// NewLocalRegistry creates the filesystem registry variant.
func NewLocalRegistry(root string) Registry {
	return &localRegistry{root: root}
}

func (r *localRegistry) FetchIndex(ctx context.Context) (*skill.Index, error) {
	raw, err := r.read(ctx, "index.json")
	if err != nil {
		return nil, err
	}
	idx, err := skill.ParseIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return idx, nil
}

func (r *localRegistry) FetchBody(ctx context.Context, bodyPath, expectedHash string) ([]byte, error) {
	body, err := r.read(ctx, bodyPath)
	if err != nil {
		return nil, err
	}
	if err := verifyBody(body, expectedHash); err != nil {
		return nil, err
	}
	return body, nil
}

func (r *localRegistry) read(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	if r.root == "" {
		return nil, fmt.Errorf("%w: registry path not configured", ErrNotFound)
	}

	// Body paths come from a remote-authored index; keep them inside the
	// mirror root.
	rel = filepath.FromSlash(strings.TrimLeft(rel, "/"))
	full := filepath.Join(r.root, rel)
	if !strings.HasPrefix(full, filepath.Clean(r.root)+string(os.PathSeparator)) {
		return nil, fmt.Errorf("%w: path escapes mirror root", ErrNotFound)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, full)
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	return data, nil
}
