// Copyright 2026 The skill-router Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/traylinx/skill-router/internal/buildinfo"
	"github.com/traylinx/skill-router/internal/skill"
)

// maxDocumentBytes bounds a single fetched document. Index files for
// ~100 skills stay well under this; bodies get truncated later anyway.
const maxDocumentBytes = 4 << 20

// httpRegistry fetches skills from a static HTTPS tree, e.g. a raw
// GitHub branch. No authentication.
type httpRegistry struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRegistry creates the HTTPS registry variant. Every request is
// subject to the hard timeout; on timeout the caller sees
// ErrNetworkUnavailable and falls back to the stale cache.
func NewHTTPRegistry(baseURL string, timeout time.Duration) Registry {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &httpRegistry{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *httpRegistry) FetchIndex(ctx context.Context) (*skill.Index, error) {
	raw, err := r.fetch(ctx, r.baseURL+"/index.json")
	if err != nil {
		return nil, err
	}
	idx, err := skill.ParseIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return idx, nil
}

func (r *httpRegistry) FetchBody(ctx context.Context, bodyPath, expectedHash string) ([]byte, error) {
	body, err := r.fetch(ctx, r.baseURL+"/"+strings.TrimLeft(bodyPath, "/"))
	if err != nil {
		return nil, err
	}
	if err := verifyBody(body, expectedHash); err != nil {
		return nil, err
	}
	return body, nil
}

// fetch performs one GET and maps transport failures onto the registry
// error kinds.
func (r *httpRegistry) fetch(ctx context.Context, url string) ([]byte, error) {
	if r.baseURL == "" {
		return nil, fmt.Errorf("%w: registry URL not configured", ErrNetworkUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := r.client.Do(req)
	if err != nil {
		log.Debugf("registry: fetch failed: %s -> %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		log.Debugf("registry: fetch failed: %s -> status %d", url, resp.StatusCode)
		return nil, fmt.Errorf("%w: server returned status %d", ErrNetworkUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	return data, nil
}
