// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restkit

import (
	"context"
	"net/http"
	"sync"

	"github.com/gogama/restkit/apierr"
	"github.com/gogama/restkit/body"
	"github.com/gogama/restkit/dispatch"
	"github.com/gogama/restkit/kind"
	"github.com/gogama/restkit/request"
	"github.com/gogama/restkit/retry"
	"github.com/gogama/restkit/transport"
	"go.uber.org/zap"
)

// A TransportFunc builds the Requester used by one Client. It is
// called once per Client, with the API the client belongs to.
type TransportFunc func(a *API) transport.Requester

// An API is a client type: a named endpoint together with the
// conventions every call to it follows. An API owns the Taxonomy of
// sentinel errors its clients' calls are matched against.
//
// Create an API with Define. An API is immutable once defined and is
// safe for concurrent use by multiple goroutines.
type API struct {
	// Name identifies the API. It is the default User-Agent header
	// value and prefixes error messages.
	Name string

	// Endpoint is the base URL call paths are resolved against.
	Endpoint string

	// Errors holds the sentinel errors of the API.
	Errors *apierr.Taxonomy

	dispatcher dispatch.Dispatcher
	transport  TransportFunc
	header     http.Header
	options    request.Options
	handlers   *HandlerGroup
	logger     *zap.Logger
	policy     retry.Policy

	once      sync.Once
	converter body.Converter
	parser    body.Parser
}

// An Option configures an API.
type Option func(*API)

// WithTransport replaces the transport. By default each Client uses a
// transport.Resty sending to the API endpoint with the API headers.
func WithTransport(f TransportFunc) Option {
	return func(a *API) {
		a.transport = f
	}
}

// WithDispatcher replaces the status code policy. The default is
// dispatch.Default.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(a *API) {
		a.dispatcher = d
	}
}

// WithHeader sets a header sent on every call unless the call sets the
// same header. Use it to replace the default User-Agent.
func WithHeader(key, value string) Option {
	return func(a *API) {
		a.header.Set(key, value)
	}
}

// WithRequestOptions sets the transport options used by calls that do
// not specify their own.
func WithRequestOptions(o request.Options) Option {
	return func(a *API) {
		a.options = o
	}
}

// WithRequestBodyConverter replaces the default converter,
// body.DefaultConverter.
func WithRequestBodyConverter(c body.Converter) Option {
	return func(a *API) {
		a.converter = c
	}
}

// WithResponseBodyParser replaces the default parser,
// body.DefaultParser.
func WithResponseBodyParser(p body.Parser) Option {
	return func(a *API) {
		a.parser = p
	}
}

// WithHandlers installs event handlers.
func WithHandlers(g *HandlerGroup) Option {
	return func(a *API) {
		if g != nil {
			a.handlers = g
		}
	}
}

// WithLogger sets the logger handed to the default transport.
func WithLogger(l *zap.Logger) Option {
	return func(a *API) {
		a.logger = l
	}
}

// WithRetryPolicy sets the retry policy of the default transport. The
// default is retry.DefaultPolicy. It has no effect on a transport set
// with WithTransport.
func WithRetryPolicy(p retry.Policy) Option {
	return func(a *API) {
		a.policy = p
	}
}

// Define creates an API with the given name and endpoint. Define panics
// if name is empty.
func Define(name, endpoint string, opts ...Option) *API {
	if name == "" {
		panic("restkit: empty API name")
	}

	a := &API{
		Name:       name,
		Endpoint:   endpoint,
		Errors:     apierr.NewTaxonomy(name),
		dispatcher: dispatch.Default,
		transport:  DefaultTransport,
		header:     http.Header{"User-Agent": {name}},
		handlers:   &HandlerGroup{},
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// DefaultTransport is the TransportFunc used unless WithTransport is
// given.
func DefaultTransport(a *API) transport.Requester {
	return transport.NewResty(a.Endpoint,
		transport.WithHeader(a.Header()),
		transport.WithLogger(a.logger),
		transport.WithRetryPolicy(a.policy))
}

// New returns a new Client for the API, with its own transport.
func (a *API) New() *Client {
	return &Client{
		api:       a,
		requester: a.transport(a),
	}
}

// Header returns a copy of the headers sent on every call.
func (a *API) Header() http.Header {
	return a.header.Clone()
}

// Logger returns the API logger, or nil.
func (a *API) Logger() *zap.Logger {
	return a.logger
}

// Options returns the default transport options.
func (a *API) Options() request.Options {
	return a.options
}

// Dispatch returns the error kind the API assigns to status, and false
// if status is not an error.
func (a *API) Dispatch(status int) (kind.Kind, bool) {
	return a.dispatcher.Dispatch(status)
}

// Do makes a call with a new Client, then closes the client's idle
// connections. Use a Client directly to reuse connections across
// calls.
func (a *API) Do(ctx context.Context, method, path string, opts ...CallOption) (interface{}, error) {
	c := a.New()
	defer c.CloseIdleConnections()
	return c.Do(ctx, method, path, opts...)
}

// Get issues a GET with a new Client.
func (a *API) Get(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Get(a, ctx, path, opts...)
}

// Post issues a POST with a new Client.
func (a *API) Post(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Post(a, ctx, path, opts...)
}

// Put issues a PUT with a new Client.
func (a *API) Put(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Put(a, ctx, path, opts...)
}

// Patch issues a PATCH with a new Client.
func (a *API) Patch(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Patch(a, ctx, path, opts...)
}

// Delete issues a DELETE with a new Client.
func (a *API) Delete(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return Delete(a, ctx, path, opts...)
}

// codecs returns the API converter and parser, resolving defaults the
// first time it is called.
func (a *API) codecs() (body.Converter, body.Parser) {
	a.once.Do(func() {
		if a.converter == nil {
			a.converter = body.DefaultConverter
		}
		if a.parser == nil {
			a.parser = body.DefaultParser
		}
	})
	return a.converter, a.parser
}
