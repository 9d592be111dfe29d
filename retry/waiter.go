// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// A Waiter specifies how long to wait before retrying a failed request
// attempt. The attempt index is zero for the wait after the first
// attempt. Min and max are the wait bounds from request.Options, and
// resp is the response to the failed attempt, or nil.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines.
//
// The default transport will not call the Waiter on a retry policy if
// the policy Decider returned false.
type Waiter interface {
	Wait(min, max time.Duration, attempt int, resp *http.Response) time.Duration
}

// DefaultWaiter is the default retry wait policy. It honors a
// Retry-After header in seconds on 429 and 503 responses, and otherwise
// uses a jittered exponential backoff between the bounds.
var DefaultWaiter = RetryAfter(NewExpWaiter(time.Now()))

// NewFixedWaiter constructs a Waiter that always returns the given
// duration, ignoring the bounds.
//
// Use NewFixedWaiter to obtain a constant retry backoff.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing an exponential backoff
// formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// The wait bounds control the exponential calculation of the ceiling:
//
//	ceil := min(waitMin * 2**attempt, waitMax)
//
// A non-positive waitMin yields a zero wait.
//
// Parameter jitter is used to generate a random number between 0 and
// ceil. To make a waiter that does not jitter and simply returns
// ceil on each attempt, pass nil for jitter. Otherwise you may specify
// either a random number generator seed value (as a time.Time, int, or
// int64) or a random number generator (as a rand.Source). If a seed
// value is specified, it is used to seed a random number generator
// for calculating jitter. If a rand.Source is specified, it is used to
// calculate jitter.
func NewExpWaiter(jitter interface{}) Waiter {
	return &jitterExpWaiter{
		rand: jitterToRand(jitter),
	}
}

type jitterExpWaiter struct {
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(min, max time.Duration, attempt int, _ *http.Response) time.Duration {
	if min <= 0 {
		return 0
	}
	if max < min {
		max = min
	}

	exp := int64(1) << uint(attempt)
	if exp < 1 || attempt >= 63 {
		exp = 1<<63 - 1
	}

	ceil := int64(min) * exp
	if ceil/exp != int64(min) || ceil < int64(min) || int64(max) < ceil {
		ceil = int64(max)
	}

	duration := ceil
	if ceil > 0 && w.rand != nil {
		w.lock.Lock()
		defer w.lock.Unlock()
		duration = w.rand.Int63n(ceil)
	}

	return time.Duration(duration)
}

// RetryAfter wraps a Waiter so that a 429 or 503 response carrying a
// Retry-After header with a number of seconds waits that long, capped
// at the upper bound. Other attempts are delegated to w.
func RetryAfter(w Waiter) Waiter {
	return retryAfterWaiter{w}
}

type retryAfterWaiter struct {
	next Waiter
}

func (w retryAfterWaiter) Wait(min, max time.Duration, attempt int, resp *http.Response) time.Duration {
	if resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s >= 0 {
			d := time.Duration(s) * time.Second
			if max > 0 && d > max {
				d = max
			}
			return d
		}
	}
	return w.next.Wait(min, max, attempt, resp)
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("restkit/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("restkit/retry: invalid jitter type")
	}
	return rand.New(s)
}
