// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryStepDelay controls the step duration for linear backoff on failed
// requests. Tests override this to avoid real sleeps.
var RetryStepDelay = 15 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes an HTTP request and retries on connection errors and
// HTTP 429 (Too Many Requests) with linear backoff. The wait before retry
// attempt n (zero-based) is (n+1) * RetryStepDelay: 15 s, 30 s, 45 s.
//
// When maxRetries is 0 the default (3) is used. On each 429 the response
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last error or 429 response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries — surface the last failure as-is.
		if attempt >= maxRetries {
			return resp, err
		}

		if resp != nil {
			// Drain and close the body before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(attempt+1) * RetryStepDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
