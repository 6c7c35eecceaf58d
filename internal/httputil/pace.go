// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by provider clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of a failed response body is quoted in errors.
const maxErrorBody = 512

// NewLimiter returns a token bucket that admits one request per interval
// after an initial burst. A non-positive interval yields an unlimited bucket.
func NewLimiter(interval time.Duration, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Every(interval), burst)
}

// DoPaced waits for a token from limiter and then executes req exactly once.
// A nil limiter skips pacing. If the context ends before a token is available
// the request is not sent.
//
// Responses with a status other than 200 are drained, closed and reported as
// a *StatusError carrying the start of the body.
func DoPaced(ctx context.Context, client *http.Client, limiter *rate.Limiter, req *http.Request) (*http.Response, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := client.Do(req.Clone(ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	io.Copy(io.Discard, resp.Body)
	return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
}

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}
