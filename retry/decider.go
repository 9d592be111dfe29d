// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"

	"github.com/gogama/restkit/transient"
)

// A Decider decides if a retry should be done after an attempt which
// ended with the given response or error. Exactly one of resp and err
// is non-nil.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
//
// Use the built-in constructor StatusCode and the built-in decider
// TransientErr, or implement your own Decider. Use DeciderFunc to
// convert an ordinary function into a Decider, and to compose deciders
// logically using DeciderFunc.And and DeciderFunc.Or.
type Decider interface {
	Decide(resp *http.Response, err error) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It implements the Decider interface, and
// also provides the logical composition methods And and Or.
type DeciderFunc func(resp *http.Response, err error) bool

// DefaultDecider is a general-purpose retry decider. It retries in the
// case of a transient error (TransientErr) or if a response is received
// with one of the following status codes: 429 (Too Many Requests); 502
// (Bad Gateway); 503 (Service Unavailable); or 504 (Gateway Timeout).
var DefaultDecider = StatusCode(429, 502, 503, 504).Or(TransientErr)

// TransientErr is a decider that indicates a retry if the error is a
// timeout, a refused connection or a reset connection according to
// transient.Categorize. It always returns false if a response was
// received.
var TransientErr DeciderFunc = transientErr

// Decide calls f(resp, err).
func (f DeciderFunc) Decide(resp *http.Response, err error) bool {
	return f(resp, err)
}

// And composes two retry deciders into a new decider which returns true
// if both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(resp *http.Response, err error) bool {
		return f(resp, err) && g(resp, err)
	}
}

// Or composes two retry deciders into a new decider which returns
// true if either of the two sub-deciders returns true, but false if
// they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(resp *http.Response, err error) bool {
		return f(resp, err) || g(resp, err)
	}
}

// StatusCode constructs a retry decider allowing retries based on the
// HTTP response status code. If the attempt received a response and
// its status code is contained in the list ss, the decider returns
// true. Otherwise, it returns false.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(resp *http.Response, _ error) bool {
		if resp == nil {
			return false
		}
		for _, s := range ss2 {
			if resp.StatusCode == s {
				return true
			}
		}
		return false
	}
}

func never(_ *http.Response, _ error) bool {
	return false
}

func transientErr(resp *http.Response, err error) bool {
	if resp != nil {
		return false
	}
	switch transient.Categorize(err) {
	case transient.Timeout, transient.ConnRefused, transient.ConnReset:
		return true
	default:
		return false
	}
}
