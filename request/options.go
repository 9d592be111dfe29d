// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"time"
)

// Options specifies transport tuning for a call. The zero value means
// no timeout, no proxy, full TLS verification, no retries and no rate
// limit.
//
// Options is comparable. The default transport keeps one underlying
// HTTP client per distinct Options value, so calls that share options
// share connections.
type Options struct {
	// Timeout bounds the whole call, including connection setup,
	// redirects, retries and reading the response body. Zero means no
	// timeout beyond the call's context.
	Timeout time.Duration

	// Proxy is the URL of an HTTP proxy. Empty means the proxy is taken
	// from the environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY).
	Proxy string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// RetryMax is the maximum number of retries the transport may make
	// after a connection error or a 5XX response. Zero disables retry.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	// Zero values use the transport defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RateLimit is the maximum sustained number of requests per second.
	// Zero means unlimited.
	RateLimit float64

	// RateBurst is the token bucket size used with RateLimit. Values
	// below one are treated as one.
	RateBurst int
}

// Validate returns an error if any field holds a negative value, or if
// RetryWaitMax is set below RetryWaitMin.
func (o Options) Validate() error {
	switch {
	case o.Timeout < 0:
		return errors.New("restkit/request: negative timeout")
	case o.RetryMax < 0:
		return errors.New("restkit/request: negative retry max")
	case o.RetryWaitMin < 0 || o.RetryWaitMax < 0:
		return errors.New("restkit/request: negative retry wait")
	case o.RetryWaitMax > 0 && o.RetryWaitMax < o.RetryWaitMin:
		return errors.New("restkit/request: retry wait max below retry wait min")
	case o.RateLimit < 0:
		return errors.New("restkit/request: negative rate limit")
	case o.RateBurst < 0:
		return errors.New("restkit/request: negative rate burst")
	default:
		return nil
	}
}
