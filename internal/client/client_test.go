// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/openimpact/pkg/types"
)

func newTrigger(baseURL string) *Trigger {
	return New(types.ClientConfig{BaseURL: baseURL}, zap.NewNop().Sugar())
}

func TestSearchRendersJSON(t *testing.T) {
	var calls int32
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"count": 2}`))
	}))
	defer ts.Close()

	var out bytes.Buffer
	newTrigger(ts.URL).Search(context.Background(), "transformer", &out)

	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1", calls)
	}
	if gotPath != "/search" {
		t.Errorf("path = %q, want /search", gotPath)
	}
	if gotQuery != "transformer" {
		t.Errorf("query param = %q, want transformer", gotQuery)
	}
	if !strings.HasPrefix(out.String(), "검색 결과: ") {
		t.Errorf("output %q missing result prefix", out.String())
	}
	if !strings.Contains(out.String(), `{"count":2}`) {
		t.Errorf("output %q missing JSON payload", out.String())
	}
}

func TestSearchEmptyQueryStillIssued(t *testing.T) {
	var gotRawQuery string
	var hasParam bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		_, hasParam = r.URL.Query()["query"]
		w.Write([]byte(`{"count": 0}`))
	}))
	defer ts.Close()

	var out bytes.Buffer
	newTrigger(ts.URL).Search(context.Background(), "", &out)

	if !hasParam {
		t.Errorf("request %q missing query parameter", gotRawQuery)
	}
	if got := out.String(); got != `검색 결과: {"count":0}` {
		t.Errorf("output = %q", got)
	}
}

func TestSearchEncodesSpecialCharacters(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	input := "어텐션 & transformers? 100%"
	var out bytes.Buffer
	newTrigger(ts.URL).Search(context.Background(), input, &out)

	if gotQuery != input {
		t.Errorf("query param = %q, want %q round-tripped through encoding", gotQuery, input)
	}
}

func TestSearchNetworkFailure(t *testing.T) {
	// Closed server yields connection refused.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	var out bytes.Buffer
	newTrigger(url).Search(context.Background(), "transformer", &out)

	if got := out.String(); got != ErrorMessage {
		t.Errorf("output = %q, want exactly the fixed error message", got)
	}
}

func TestSearchNonJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>Internal Server Error</html>"))
	}))
	defer ts.Close()

	var out bytes.Buffer
	newTrigger(ts.URL).Search(context.Background(), "transformer", &out)

	if got := out.String(); got != ErrorMessage {
		t.Errorf("output = %q, want exactly the fixed error message", got)
	}
}

func TestSearchBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	var out bytes.Buffer
	newTrigger(ts.URL).Search(context.Background(), "transformer", &out)

	if got := out.String(); got != ErrorMessage {
		t.Errorf("output = %q, want exactly the fixed error message", got)
	}
}

func TestSearchValidJSONScalar(t *testing.T) {
	// Any JSON value is rendered verbatim, not just objects.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[1, 2, 3]`))
	}))
	defer ts.Close()

	var out bytes.Buffer
	newTrigger(ts.URL).Search(context.Background(), "x", &out)

	if got := out.String(); got != "검색 결과: [1,2,3]" {
		t.Errorf("output = %q", got)
	}
}

func TestDefaultBaseURL(t *testing.T) {
	tr := New(types.ClientConfig{}, zap.NewNop().Sugar())
	if tr.baseURL != "http://localhost:8000" {
		t.Errorf("baseURL = %q, want the fixed localhost endpoint", tr.baseURL)
	}
}
