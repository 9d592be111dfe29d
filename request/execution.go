// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/restkit/transient"
)

// An Execution represents the state of a single API call.
//
// When a call is made, an Execution is created for it. The Execution is
// updated as the call progresses (for example when the response becomes
// available) and is passed to each event handler.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. However, they
// should treat the structure's exported field values as immutable, as
// the execution state is vital to the correct functioning of the
// pipeline. A limited exception is adding headers to the plan before it
// is sent, for example to sign the request.
type Execution struct {
	// Plan specifies the plan being executed. It is never nil.
	Plan *Plan

	// Client is the name of the API whose client is making the call.
	Client string

	// Start is the time the plan was handed to the transport. It is
	// zero until then.
	Start time.Time

	// End is the end time of the call. It contains the zero value until
	// the call ends.
	End time.Time

	// Response is the response received from the transport. It is nil
	// before the transport returns, and if the transport failed.
	Response *Response

	// Err is the error the call will return, or nil. Once the call has
	// Ended, Err will not change and has the same value as the error
	// returned by the client method.
	Err error

	// Result is the value the call returns on success: the parsed body,
	// or the raw body if parsing was disabled. It is only set once the
	// call has ended without error.
	Result interface{}

	// data contains arbitrary handler data. Event handlers may interact
	// with it via the Value and SetValue methods.
	data context.Context
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.Status
}

// Header returns the HTTP response headers. If there is no HTTP
// response, the nil header is returned.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the plan has been handed to the transport.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
//
// If the return value is true, then End is a non-zero time and there
// will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a transport timeout.
func (e *Execution) Timeout() bool {
	return transient.IsTimeout(e.Err)
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
