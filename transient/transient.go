// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the category of a particular transport failure, as
// reported by function Categorize().
type Category int

const (
	// Not indicates a nil error or a failure that fits no other
	// category.
	Not Category = iota
	// Timeout indicates a client-side timeout, including an expired
	// context deadline.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// Canceled indicates the call's context was canceled before the
	// transport could finish.
	//
	// Function Categorize() will return Canceled if the error is not a
	// Timeout and the error or any of its wrapped causes is
	// context.Canceled.
	Canceled
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
)

var categoryNames = []string{
	"not",
	"timeout",
	"canceled",
	"conn_refused",
	"conn_reset",
}

// Categorize returns the category of the given transport failure. A
// nil error, and an error that fits none of the specific categories,
// both produce the return value Not.
//
// In assessing the category, Categorize looks at wrapped cause errors
// contained within err, not just err itself. Timeout takes precedence
// over every other category.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

// IsTimeout is shorthand for Categorize(err) == Timeout.
func IsTimeout(err error) bool {
	return Categorize(err) == Timeout
}

// Name returns the name of the category. Names are lower case and
// suitable for use as a metric label value.
func (c Category) Name() string {
	if c < Not || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// String returns the name of the category.
func (c Category) String() string {
	return c.Name()
}

type hasTimeout interface {
	Timeout() bool
}
