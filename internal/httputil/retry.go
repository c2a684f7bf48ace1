// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the ADS client.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

// RetryBaseDelay controls the first backoff interval. Tests override this
// to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// Retryable reports whether an HTTP status is worth retrying: 429 and 5xx.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// DoWithRetry executes an HTTP request and retries transport errors, HTTP
// 429 and HTTP 5xx with exponential backoff starting at RetryBaseDelay and
// doubling each attempt.
//
// A maxRetries of 0 or less sends the request once. On each retryable response
// the body is drained and closed before sleeping. If the context is
// cancelled during a backoff wait the function returns ctx.Err(). After
// exhausting retries the last retryable response is returned so the caller
// can inspect it; a transport error is returned as-is.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, logger hclog.Logger) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = RetryBaseDelay
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = time.Minute
	eb.MaxElapsedTime = 0

	var (
		resp    *http.Response
		attempt int
	)
	op := func() error {
		defer func() { attempt++ }()

		r, err := client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		if !Retryable(r.StatusCode) || attempt >= maxRetries {
			resp = r
			return nil
		}

		io.Copy(io.Discard, r.Body)
		r.Body.Close()
		return fmt.Errorf("HTTP %d from %s", r.StatusCode, req.URL.Host)
	}
	notify := func(err error, wait time.Duration) {
		logger.Debug("retrying request", "url", req.URL.Redacted(), "error", err, "wait", wait, "attempt", attempt, "max", maxRetries)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(maxRetries)), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return resp, nil
}
