// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"

	"github.com/gogama/restkit/kind"
)

// A Dispatcher decides which error kind, if any, an HTTP response
// status code represents.
//
// Implementations of Dispatcher must be safe for concurrent use by
// multiple goroutines, and must only return kinds from the response
// lineage (kind.Kind.IsResponseKind).
type Dispatcher interface {
	// Dispatch returns the error kind for status and true, or false if
	// status does not represent an error.
	Dispatch(status int) (kind.Kind, bool)
}

// The DispatcherFunc type is an adapter to allow the use of ordinary
// functions as dispatchers. It implements the Dispatcher interface, and
// also provides the composition method Or.
type DispatcherFunc func(status int) (kind.Kind, bool)

// Default is the standard status code policy. Exact matches for 401,
// 403, 404, 408, 409, 422 and 429 are checked first, followed by the
// 400-499 range (BadRequestError) and the 500-599 range (ServerError).
// Every other status code, including 1XX, 2XX and 3XX, is not an error.
var Default = Status(kind.UnauthorizedError, 401).
	Or(Status(kind.ForbiddenError, 403)).
	Or(Status(kind.NotFoundError, 404)).
	Or(Status(kind.RequestTimeoutError, 408)).
	Or(Status(kind.ConflictError, 409)).
	Or(Status(kind.UnprocessableEntityError, 422)).
	Or(Status(kind.TooManyRequestsError, 429)).
	Or(Range(400, 499, kind.BadRequestError)).
	Or(Range(500, 599, kind.ServerError))

// Never is a dispatcher that never reports an error.
var Never DispatcherFunc = never

// Dispatch returns f(status).
func (f DispatcherFunc) Dispatch(status int) (kind.Kind, bool) {
	return f(status)
}

// Or composes two dispatchers into a new dispatcher which returns the
// result of f if f claims the status code, and the result of g
// otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f claims
// the status code.
func (f DispatcherFunc) Or(g Dispatcher) DispatcherFunc {
	return func(status int) (kind.Kind, bool) {
		if k, ok := f(status); ok {
			return k, true
		}
		return g.Dispatch(status)
	}
}

// Status constructs a dispatcher which maps each of the listed status
// codes to kind k. Status panics if k is not a response lineage kind.
func Status(k kind.Kind, codes ...int) DispatcherFunc {
	mustBeResponseKind(k)
	codes2 := make([]int, len(codes))
	copy(codes2, codes)
	return func(status int) (kind.Kind, bool) {
		for _, code := range codes2 {
			if status == code {
				return k, true
			}
		}
		return kind.Error, false
	}
}

// Range constructs a dispatcher which maps every status code in the
// closed interval [lo, hi] to kind k. Range panics if lo > hi or if k
// is not a response lineage kind.
func Range(lo, hi int, k kind.Kind) DispatcherFunc {
	if lo > hi {
		panic(fmt.Sprintf("restkit/dispatch: empty range [%d, %d]", lo, hi))
	}
	mustBeResponseKind(k)
	return func(status int) (kind.Kind, bool) {
		if lo <= status && status <= hi {
			return k, true
		}
		return kind.Error, false
	}
}

func never(_ int) (kind.Kind, bool) {
	return kind.Error, false
}

func mustBeResponseKind(k kind.Kind) {
	if !k.IsResponseKind() {
		panic(fmt.Sprintf("restkit/dispatch: %s is not a response error kind", k))
	}
}
