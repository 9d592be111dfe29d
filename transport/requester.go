// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"net/url"
	"strings"

	"github.com/gogama/restkit/request"
)

// A Requester sends the request described by a plan and returns the
// response received, whatever its status code.
//
// Implementations of Requester must be safe for concurrent use by
// multiple goroutines.
type Requester interface {
	Request(p *request.Plan) (*request.Response, error)
}

// The RequesterFunc type is an adapter to allow the use of ordinary
// functions as requesters.
type RequesterFunc func(p *request.Plan) (*request.Response, error)

// Request calls f(p).
func (f RequesterFunc) Request(p *request.Plan) (*request.Response, error) {
	return f(p)
}

// An IdleCloser closes idle connections. A Requester that pools
// connections should implement IdleCloser.
type IdleCloser interface {
	CloseIdleConnections()
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.Path,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
