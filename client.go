// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restkit

import (
	"context"
	"errors"
	"time"

	"github.com/gogama/restkit/body"
	"github.com/gogama/restkit/kind"
	"github.com/gogama/restkit/request"
	"github.com/gogama/restkit/transient"
	"github.com/gogama/restkit/transport"
)

var errNilResponse = errors.New("restkit: transport returned neither response nor error")

// A Client makes calls to an API. Create a Client with API.New.
//
// The client's transport typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines.
//
// Every call runs the same pipeline: the call's parameters are
// converted into the request body (or query string), the plan is sent
// through the transport, and the response status is dispatched. A
// status the API's dispatcher maps to an error kind is returned as an
// *apierr.Error from the API's taxonomy, carrying the status, headers
// and parsed body. Any other status succeeds and the parsed body is
// returned.
type Client struct {
	api       *API
	requester transport.Requester
}

// API returns the API the client belongs to.
func (c *Client) API() *API {
	return c.api
}

// Do makes a call with the given method to the given path, which is
// resolved against the API endpoint.
//
// On success, Do returns the parsed response body, which is nil for an
// empty body. If parsing is disabled for the call, Do returns the raw
// body as a []byte.
//
// Any returned error is an *apierr.Error from the API's taxonomy. A
// transport failure is a TimeoutError if it was a timeout, and an
// UnexpectedError otherwise. An unsuccessful status is one of the
// UnsuccessfulResponseError kinds.
func (c *Client) Do(ctx context.Context, method, path string, opts ...CallOption) (interface{}, error) {
	a := c.api
	cl := newCall(opts)
	converter, parser := a.codecs()
	if cl.converterSet {
		converter = cl.converter
	}
	if cl.parserSet {
		parser = cl.parser
	}

	p, err := request.NewPlanWithContext(ctx, method, path)
	if err != nil {
		p = &request.Plan{Method: method, Path: path, Header: request.CanonicalHeader(cl.header)}
		e := &request.Execution{Plan: p, Client: a.Name}
		e.Err = a.Errors.NewRequestError(kind.UnexpectedError, err)
		return c.end(e)
	}

	p.Params = cl.params
	p.Header = request.CanonicalHeader(cl.header)
	p.Options = a.options
	if cl.options != nil {
		p.Options = *cl.options
	}

	e := &request.Execution{Plan: p, Client: a.Name}

	if p.HasBody() {
		if p.Params != nil && p.ContentType() == "" {
			p.Header.Set("Content-Type", body.JSON)
		}
		if converter == nil {
			p.Body = p.Params
		} else if p.Body, err = converter.Convert(p.ContentType(), p.Params); err != nil {
			e.Err = a.Errors.NewRequestError(kind.UnexpectedError, err)
			return c.end(e)
		}
	}

	a.handlers.run(BeforeSend, e)
	e.Start = time.Now()

	resp, err := c.requester.Request(p)
	if err == nil && resp == nil {
		err = errNilResponse
	}
	if err != nil {
		k := kind.UnexpectedError
		if transient.IsTimeout(err) {
			k = kind.TimeoutError
		}
		e.Err = a.Errors.NewRequestError(k, err)
		a.handlers.run(AfterSendError, e)
		return c.end(e)
	}

	e.Response = resp
	a.handlers.run(AfterResponse, e)

	result := parse(parser, resp.Body)
	if k, ok := a.Dispatch(resp.Status); ok {
		if !k.IsResponseKind() {
			k = kind.UnsuccessfulResponseError
		}
		e.Err = a.Errors.NewResponseError(k, resp.String(), resp.Status, result, resp.Header, resp)
		return c.end(e)
	}

	e.Result = result
	return c.end(e)
}

func (c *Client) end(e *request.Execution) (interface{}, error) {
	e.End = time.Now()
	c.api.handlers.run(AfterCall, e)
	if e.Err != nil {
		return nil, e.Err
	}

	return e.Result, nil
}

func parse(p body.Parser, raw []byte) interface{} {
	if p == nil {
		return raw
	}

	return p.Parse(raw)
}

// Get issues a GET to the specified path. Params given with the
// Params option are sent as the query string.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Get(c, ctx, path, opts...)
}

// Post issues a POST to the specified path. Params given with the
// Params option are converted into the request body according to the
// Content-Type header, which defaults to application/json.
func (c *Client) Post(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Post(c, ctx, path, opts...)
}

// Put issues a PUT to the specified path, converting params the same
// way as Post.
func (c *Client) Put(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Put(c, ctx, path, opts...)
}

// Patch issues a PATCH to the specified path, converting params the
// same way as Post.
func (c *Client) Patch(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Patch(c, ctx, path, opts...)
}

// Delete issues a DELETE to the specified path. Params are sent as the
// query string.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Delete(c, ctx, path, opts...)
}

// CloseIdleConnections invokes the same method on the client's
// transport.
//
// If the transport has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.requester.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

