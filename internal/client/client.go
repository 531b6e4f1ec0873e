// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client implements the search trigger the web frontend runs: it
// turns a typed query into one GET against the backend search endpoint and
// renders either the returned JSON or a fixed Korean error message.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/openimpact/pkg/types"
)

const (
	// DefaultBaseURL is the backend endpoint the frontend talks to.
	DefaultBaseURL = "http://localhost:8000"

	// ErrorMessage is the single user-visible failure string. Every failure
	// mode (network error, bad status, unparsable body) collapses into it;
	// the underlying cause goes to the log only.
	ErrorMessage = "검색 중 오류가 발생했습니다."

	resultPrefix = "검색 결과: "
)

// Trigger bridges a user-initiated search to a network call and a display
// update.
type Trigger struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

// New builds a Trigger. The query value is passed through unmodified apart
// from URL encoding; no timeout is set unless the config provides one.
func New(cfg types.ClientConfig, logger *zap.SugaredLogger) *Trigger {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Trigger{
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Search issues one GET to the backend with query as the "query" parameter
// and writes the display text to w: the result line when the response body
// is valid JSON, the fixed error message otherwise. Failures are reported
// to the log and never returned; each invocation performs exactly one
// request and one write. Concurrent invocations race independently, so
// under rapid repeated triggering the last write wins.
func (t *Trigger) Search(ctx context.Context, query string, w io.Writer) {
	body, err := t.fetch(ctx, query)
	if err != nil {
		t.logger.Errorw("search request failed", "query", query, "error", err)
		fmt.Fprint(w, ErrorMessage)
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.logger.Errorw("search response is not JSON", "query", query, "error", err)
		fmt.Fprint(w, ErrorMessage)
		return
	}

	rendered, err := json.Marshal(payload)
	if err != nil {
		t.logger.Errorw("re-encoding search response", "query", query, "error", err)
		fmt.Fprint(w, ErrorMessage)
		return
	}

	fmt.Fprint(w, resultPrefix+string(rendered))
}

func (t *Trigger) fetch(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search endpoint request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}
	return body, nil
}
