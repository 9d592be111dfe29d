// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides policies for retrying failed request attempts
// in the default transport, and how long to wait before retrying.
//
// The restkit pipeline itself never retries. Retries happen inside the
// default transport, transport.Resty, which hands each Policy to the
// underlying retryablehttp client. The number of retries and the wait
// bounds come from request.Options (RetryMax, RetryWaitMin and
// RetryWaitMax); the Policy decides which attempts are retried and how
// the wait grows between those bounds.
//
// A Policy is composed of a Decider and a Waiter. Both have
// constructors for common use cases, so that a useful policy can be
// quickly assembled:
//
//	decider := retry.StatusCode(500, 503).Or(retry.TransientErr)
//	waiter := retry.NewExpWaiter(time.Now())
//	policy := retry.NewPolicy(decider, waiter)
//
// If the built-in functionality is insufficient, fully custom retry
// policies can be created via custom implementations of Decider and
// Waiter.
package retry
