// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	urlpkg "net/url"
)

const (
	nilCtxMsg = "restkit/request: nil context"
)

// A Plan describes one logical API call for execution by a transport.
//
// Path is resolved against the endpoint of the client that owns the
// transport. For GET and DELETE, Params are sent as the query string.
// For POST, PUT and PATCH, Body is sent as the request body and Params
// is informational only.
//
// Like the http.Request structure, a Plan has a context which controls
// the call and can be used to cancel it at any time.
type Plan struct {
	// Method specifies the HTTP method: GET, POST, PUT, PATCH or
	// DELETE.
	Method string

	// Path is the path, relative to the client endpoint, of the
	// resource to access. An absolute URL overrides the endpoint.
	Path string

	// Params holds the caller's parameters as given. It may be nil.
	Params interface{}

	// Header contains the request header fields to be sent, in
	// addition to the client's default headers. Keys are canonical.
	Header http.Header

	// Body is the converted request body. It is nil when no body is to
	// be sent, and otherwise typically a string or []byte.
	Body interface{}

	// Options specifies transport tuning for the call.
	Options Options

	// ctx allows the call to be cancelled. It should only be modified
	// by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, path string) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, path)
}

// NewPlanWithContext returns a new Plan given a method and path. An
// empty method means GET.
func NewPlanWithContext(ctx context.Context, method, path string) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("restkit/request: invalid method %q", method)
	}
	if _, err := urlpkg.Parse(path); err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		Path:   path,
		Header: make(http.Header),
	}, nil
}

// Context returns the plan's context. To change the context, use
// WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// HasBody reports whether the plan's method carries a request body.
// It is true for POST, PUT and PATCH.
func (p *Plan) HasBody() bool {
	return methodHasBody(p.Method)
}

// ContentType returns the value of the Content-Type header.
func (p *Plan) ContentType() string {
	return p.Header.Get("Content-Type")
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
func (p *Plan) SetBasicAuth(username, password string) {
	p.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// basicAuth is lifted verbatim from net/http/client.go.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
