// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for upstream API calls.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// Do waits for a token from limiter, then executes req with client. A nil
// limiter disables waiting. Do never retries: whatever the first attempt
// returns is handed back to the caller, including non-2xx responses.
//
// If the context is cancelled while waiting for the limiter the request
// is not sent and the limiter error is returned.
func Do(ctx context.Context, client *http.Client, limiter *rate.Limiter, req *http.Request) (*http.Response, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	return client.Do(req.WithContext(ctx))
}

// Discard drains and closes a response body so the connection can be reused.
func Discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// NewLimiter returns a limiter allowing perSecond requests with a burst of
// one, or nil when perSecond is zero or negative.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}
