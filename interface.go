// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restkit

import (
	"context"
	"net/http"
)

// Doer is the interface that wraps the basic Do method.
//
// Do makes a call with the given method to the given path and returns
// the parsed response body (and error, if any). Client and API
// implement the Doer interface, and any other Doer implementation must
// behave substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(ctx context.Context, method, path string, opts ...CallOption) (interface{}, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, path string, opts ...CallOption) (interface{}, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(ctx context.Context, path string, opts ...CallOption) (interface{}, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(ctx context.Context, path string, opts ...CallOption) (interface{}, error)
}

// Patcher is the interface that wraps the basic Patch method.
//
// Any Doer can be used to emulate a Patcher via the Patch function.
type Patcher interface {
	Patch(ctx context.Context, path string, opts ...CallOption) (interface{}, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(ctx context.Context, path string, opts ...CallOption) (interface{}, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying transport supports it, CloseIdleConnections closes
// any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, Post, Put,
// Patch and Delete methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Poster
	Putter
	Patcher
	Deleter
}

// Get uses the specified Doer to issue a GET to the specified path.
func Get(d Doer, ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return d.Do(ctx, http.MethodGet, path, opts...)
}

// Post uses the specified Doer to issue a POST to the specified path.
func Post(d Doer, ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return d.Do(ctx, http.MethodPost, path, opts...)
}

// Put uses the specified Doer to issue a PUT to the specified path.
func Put(d Doer, ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return d.Do(ctx, http.MethodPut, path, opts...)
}

// Patch uses the specified Doer to issue a PATCH to the specified path.
func Patch(d Doer, ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return d.Do(ctx, http.MethodPatch, path, opts...)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// path.
func Delete(d Doer, ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return d.Do(ctx, http.MethodDelete, path, opts...)
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("restkit: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(ctx context.Context, method, path string, opts ...CallOption) (interface{}, error) {
	return i.doer.Do(ctx, method, path, opts...)
}

func (i inflated) Get(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Get(i.doer, ctx, path, opts...)
}

func (i inflated) Post(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Post(i.doer, ctx, path, opts...)
}

func (i inflated) Put(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Put(i.doer, ctx, path, opts...)
}

func (i inflated) Patch(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Patch(i.doer, ctx, path, opts...)
}

func (i inflated) Delete(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Delete(i.doer, ctx, path, opts...)
}
