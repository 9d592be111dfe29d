// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/gogama/restkit/body"
	"github.com/gogama/restkit/request"
	"github.com/gogama/restkit/retry"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Resty is the default Requester. It resolves plan paths against a
// fixed endpoint, adds default headers, and keeps one underlying
// client per distinct request.Options value.
//
// Resty is safe for concurrent use by multiple goroutines. Its zero
// value is not usable; create instances with NewResty.
type Resty struct {
	endpoint string
	header   http.Header
	base     http.RoundTripper
	logger   *zap.Logger
	policy   retry.Policy

	mu    sync.Mutex
	conns map[request.Options]*conn
}

// conn is the underlying client built for one request.Options value.
type conn struct {
	resty   *resty.Client
	inner   *http.Client
	limiter *rate.Limiter
}

// An Option configures a Resty.
type Option func(*Resty)

// WithHeader sets headers sent on every request unless the plan sets
// the same header.
func WithHeader(h http.Header) Option {
	return func(r *Resty) {
		r.header = h.Clone()
	}
}

// WithBase replaces the innermost round tripper, which by default is a
// pooled *http.Transport. When a base round tripper is given, the
// Proxy and InsecureSkipVerify options have no effect.
func WithBase(rt http.RoundTripper) Option {
	return func(r *Resty) {
		r.base = rt
	}
}

// WithRetryPolicy sets the policy deciding which failed attempts are
// retried, up to the RetryMax option, and how long to wait between
// them. The default is retry.DefaultPolicy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(r *Resty) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithLogger sets the logger used for retry and transport diagnostics.
// A nil logger disables them, which is the default.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resty) {
		r.logger = l
	}
}

// NewResty returns a Resty sending requests to endpoint.
func NewResty(endpoint string, opts ...Option) *Resty {
	r := &Resty{
		endpoint: endpoint,
		header:   make(http.Header),
		policy:   retry.DefaultPolicy,
		conns:    make(map[request.Options]*conn),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request sends the request described by p. GET and DELETE params are
// encoded as the query string. For POST, PUT and PATCH the plan body is
// sent, and must be nil, a string, a []byte or an io.Reader.
func (r *Resty) Request(p *request.Plan) (*request.Response, error) {
	c, err := r.conn(p.Options)
	if err != nil {
		return nil, urlErrorWrap(p, err)
	}

	ctx := p.Context()
	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, urlErrorWrap(p, limiterErr(ctx, err))
		}
	}

	req := c.resty.R().SetContext(ctx)
	for key, values := range p.Header {
		req.Header[key] = append([]string(nil), values...)
	}

	if p.HasBody() {
		b, err := request.BodyBytes(p.Body)
		if err != nil {
			return nil, urlErrorWrap(p, err)
		}
		if len(b) > 0 {
			req.SetBody(b)
		}
	} else if p.Params != nil {
		q, err := body.Values(p.Params)
		if err != nil {
			return nil, urlErrorWrap(p, err)
		}
		req.SetQueryParamsFromValues(q)
	}

	resp, err := req.Execute(p.Method, p.Path)
	if err != nil {
		return nil, urlErrorWrap(p, err)
	}

	out := request.NewResponse(p.Method, resp.Request.URL, resp.StatusCode(), resp.Status(), resp.Header(), resp.Body())
	out.Raw = resp.RawResponse
	return out, nil
}

// CloseIdleConnections closes idle connections held by every underlying
// client.
func (r *Resty) CloseIdleConnections() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		c.inner.CloseIdleConnections()
	}
}

func (r *Resty) conn(o request.Options) (*conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[o]; ok {
		return c, nil
	}
	c, err := r.newConn(o)
	if err != nil {
		return nil, err
	}
	r.conns[o] = c
	return c, nil
}

func (r *Resty) newConn(o request.Options) (*conn, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = o.RetryMax
	if o.RetryWaitMin > 0 {
		rc.RetryWaitMin = o.RetryWaitMin
	}
	if o.RetryWaitMax > 0 {
		rc.RetryWaitMax = o.RetryWaitMax
	}
	if rc.RetryWaitMax < rc.RetryWaitMin {
		rc.RetryWaitMax = rc.RetryWaitMin
	}
	rc.CheckRetry = retry.CheckRetry(r.policy)
	rc.Backoff = retry.Backoff(r.policy)
	rc.ErrorHandler = keepResponse
	if r.logger != nil {
		rc.Logger = retryLogger{r.logger.Sugar()}
	} else {
		rc.Logger = nil
	}

	if r.base != nil {
		rc.HTTPClient.Transport = r.base
	} else if ht, ok := rc.HTTPClient.Transport.(*http.Transport); ok {
		if o.Proxy != "" {
			u, err := url.Parse(o.Proxy)
			if err != nil {
				return nil, fmt.Errorf("restkit/transport: invalid proxy: %w", err)
			}
			ht.Proxy = http.ProxyURL(u)
		}
		if o.InsecureSkipVerify {
			ht.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}

	c := resty.NewWithClient(rc.StandardClient()).SetBaseURL(r.endpoint)
	if o.Timeout > 0 {
		c.SetTimeout(o.Timeout)
	}
	if r.logger != nil {
		c.SetLogger(r.logger.Sugar())
	} else {
		c.SetLogger(zap.NewNop().Sugar())
	}
	for key, values := range r.header {
		for _, value := range values {
			c.Header.Add(key, value)
		}
	}

	var limiter *rate.Limiter
	if o.RateLimit > 0 {
		burst := o.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(o.RateLimit), burst)
	}

	return &conn{
		resty:   c,
		inner:   rc.HTTPClient,
		limiter: limiter,
	}, nil
}

// keepResponse is a retryablehttp.ErrorHandler which hands back the
// last response received, whatever its status, once retries are
// exhausted. Only a failure to get any response is an error.
func keepResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

// limiterErr makes a rate limiter wait failure caused by the context
// deadline look like one.
func limiterErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return deadlineError{err}
	}
	return err
}

// deadlineError is a rate limiter wait failure which would have
// outlasted the context deadline.
type deadlineError struct {
	err error
}

func (e deadlineError) Error() string {
	return e.err.Error()
}

func (e deadlineError) Timeout() bool {
	return true
}

func (e deadlineError) Unwrap() error {
	return context.DeadlineExceeded
}
