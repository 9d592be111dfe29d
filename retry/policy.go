// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// A Policy controls which failed attempts the default transport
// retries and how long it waits before each retry.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It is a composition of DefaultDecider for retry decisions
// and DefaultWaiter for wait time calculations.
var DefaultPolicy Policy = policy{DefaultDecider, DefaultWaiter}

// Never is a policy that never retries, whatever the RetryMax option.
var Never Policy = policy{DeciderFunc(never), DefaultWaiter}

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil || w == nil {
		panic("restkit/retry: nil decider or waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(resp *http.Response, err error) bool {
	return p.decider.Decide(resp, err)
}

func (p policy) Wait(min, max time.Duration, attempt int, resp *http.Response) time.Duration {
	return p.waiter.Wait(min, max, attempt, resp)
}

// CheckRetry adapts d to a retryablehttp.CheckRetry. The returned
// function never retries once ctx is done, and never returns an error
// otherwise, so the last response is always handed back.
func CheckRetry(d Decider) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return d.Decide(resp, err), nil
	}
}

// Backoff adapts w to a retryablehttp.Backoff.
func Backoff(w Waiter) retryablehttp.Backoff {
	return func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		return w.Wait(min, max, attemptNum, resp)
	}
}
