// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apierr

import (
	"errors"
	"net/http"

	"github.com/gogama/restkit/kind"
	"github.com/gogama/restkit/request"
)

// An Error is a failed API call, or one of the sentinel values of a
// Taxonomy.
//
// Request lineage errors (TimeoutError, UnexpectedError) carry only a
// Message derived from the transport failure and the failure itself,
// available through Unwrap. Response lineage errors carry the Status,
// parsed Body, Header and Response of the unsuccessful response.
type Error struct {
	// Kind is the kind of the error.
	Kind kind.Kind

	// Message describes the error. For request lineage errors it has
	// the form "<cause type>: <cause message>". For response lineage
	// errors it summarizes the response.
	Message string

	// Status is the HTTP status code, or zero if no response was
	// received.
	Status int

	// Body is the response body as returned by the call's parser, or
	// the raw body bytes if parsing was disabled.
	Body interface{}

	// Header contains the response header fields.
	Header http.Header

	// Response is the response received, or nil.
	Response *request.Response

	// Err is the transport failure behind a request lineage error.
	Err error

	tax      *Taxonomy
	sentinel bool
}

// Error returns the message, prefixed with the owner and kind.
func (e *Error) Error() string {
	prefix := e.Kind.Name()
	if e.tax != nil && e.tax.owner != "" {
		prefix = e.tax.owner + "." + prefix
	}
	if e.Message == "" {
		return prefix
	}
	return prefix + ": " + e.Message
}

// Unwrap returns the transport failure, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same Taxonomy whose
// kind is e's kind or one of its ancestors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	return t.tax != nil && t.tax == e.tax && e.Kind.IsA(t.Kind)
}

// Sentinel reports whether e is one of the sentinel values of a
// Taxonomy rather than the result of a call.
func (e *Error) Sentinel() bool {
	return e.sentinel
}

// Owner returns the name of the API whose taxonomy produced e.
func (e *Error) Owner() string {
	if e.tax == nil {
		return ""
	}
	return e.tax.owner
}

// KindOf returns the kind of the first *Error in err's chain. The
// second return value is false if there is none.
func KindOf(err error) (kind.Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return kind.Error, false
}

// IsKind reports whether err's chain contains an *Error whose kind IsA
// k, regardless of which API produced it.
func IsKind(err error, k kind.Kind) bool {
	actual, ok := KindOf(err)
	return ok && actual.IsA(k)
}

// Status returns the HTTP status code carried by the first *Error in
// err's chain, or zero.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
