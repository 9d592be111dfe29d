// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogama/restkit/request"
	"github.com/gogama/restkit/retry"
	"github.com/gogama/restkit/transient"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const endpoint = "https://example.com"

func TestResty(t *testing.T) {
	t.Run("GET", testRestyGet)
	t.Run("POST", testRestyPost)
	t.Run("status passthrough", testRestyStatusPassthrough)
	t.Run("retry", testRestyRetry)
	t.Run("headers", testRestyHeaders)
	t.Run("failures", testRestyFailures)
	t.Run("rate limit", testRestyRateLimit)
	t.Run("connection cache", testRestyConnCache)
}

func newMockResty(t *testing.T, opts ...Option) (*Resty, *httpmock.MockTransport) {
	mt := httpmock.NewMockTransport()
	opts = append([]Option{WithBase(mt)}, opts...)
	r := NewResty(endpoint, opts...)
	t.Cleanup(r.CloseIdleConnections)
	return r, mt
}

func newPlan(t *testing.T, method, path string) *request.Plan {
	p, err := request.NewPlan(method, path)
	require.NoError(t, err)
	return p
}

func testRestyGet(t *testing.T) {
	r, mt := newMockResty(t)
	mt.RegisterResponderWithQuery("GET", endpoint+"/users", "page=10&per=1",
		httpmock.NewStringResponder(200, `{"users":[{"id":1,"name":"tarou"}]}`))
	mt.RegisterResponder("DELETE", endpoint+"/users/1", httpmock.NewStringResponder(204, ""))

	t.Run("with params", func(t *testing.T) {
		p := newPlan(t, "GET", "/users")
		p.Params = map[string]interface{}{"page": 10, "per": 1}
		resp, err := r.Request(p)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.Equal(t, "OK", resp.Reason)
		assert.Equal(t, "GET", resp.Method)
		u, err := url.Parse(resp.URL)
		require.NoError(t, err)
		assert.Equal(t, "example.com", u.Host)
		assert.Equal(t, "/users", u.Path)
		assert.Equal(t, url.Values{"page": {"10"}, "per": {"1"}}, u.Query())
		assert.Equal(t, `{"users":[{"id":1,"name":"tarou"}]}`, string(resp.Body))
		assert.NotNil(t, resp.Raw)
	})
	t.Run("DELETE no content", func(t *testing.T) {
		resp, err := r.Request(newPlan(t, "DELETE", "/users/1"))
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status)
		assert.Empty(t, resp.Body)
	})
	t.Run("bad params", func(t *testing.T) {
		p := newPlan(t, "GET", "/users")
		p.Params = []int{1}
		resp, err := r.Request(p)
		assert.Nil(t, resp)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Equal(t, "Get", urlErr.Op)
		assert.Equal(t, "/users", urlErr.URL)
	})
}

func testRestyPost(t *testing.T) {
	r, mt := newMockResty(t)
	var gotBody, gotContentType string
	mt.RegisterResponder("POST", endpoint+"/users", func(req *http.Request) (*http.Response, error) {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		gotBody = string(b)
		gotContentType = req.Header.Get("Content-Type")
		return httpmock.NewStringResponse(201, `{"id":2}`), nil
	})

	t.Run("string body", func(t *testing.T) {
		p := newPlan(t, "POST", "/users")
		p.Header.Set("Content-Type", "application/json")
		p.Body = `{"name":"jirou"}`
		resp, err := r.Request(p)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.Status)
		assert.Equal(t, `{"name":"jirou"}`, gotBody)
		assert.Equal(t, "application/json", gotContentType)
	})
	t.Run("form body", func(t *testing.T) {
		p := newPlan(t, "POST", "/users")
		p.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		p.Body = []byte("message=test")
		_, err := r.Request(p)
		require.NoError(t, err)
		assert.Equal(t, "message=test", gotBody)
		assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	})
	t.Run("no body", func(t *testing.T) {
		gotBody = "unchanged"
		_, err := r.Request(newPlan(t, "POST", "/users"))
		require.NoError(t, err)
		assert.Equal(t, "", gotBody)
	})
	t.Run("unsendable body", func(t *testing.T) {
		p := newPlan(t, "POST", "/users")
		p.Header.Set("Content-Type", "text/plain")
		p.Body = map[string]interface{}{"message": "test"}
		resp, err := r.Request(p)
		assert.Nil(t, resp)
		assert.ErrorContains(t, err, "cannot send body of type map[string]interface {}")
		assert.Equal(t, transient.Not, transient.Categorize(err))
	})
}

func testRestyStatusPassthrough(t *testing.T) {
	r, mt := newMockResty(t)
	for _, status := range []int{400, 404, 429, 500, 503} {
		mt.RegisterResponder("GET", endpoint+"/status", httpmock.NewStringResponder(status, `{"message":"nope"}`))
		resp, err := r.Request(newPlan(t, "GET", "/status"))
		require.NoError(t, err, "status %d", status)
		assert.Equal(t, status, resp.Status)
		assert.Equal(t, http.StatusText(status), resp.Reason)
		assert.Equal(t, `{"message":"nope"}`, string(resp.Body))
	}
	assert.Equal(t, 5, mt.GetTotalCallCount())
}

func testRestyRetry(t *testing.T) {
	r, mt := newMockResty(t)
	var calls int32
	mt.RegisterResponder("GET", endpoint+"/flaky", func(*http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			return httpmock.NewStringResponse(503, "unavailable"), nil
		}
		return httpmock.NewStringResponse(200, "ok"), nil
	})

	p := newPlan(t, "GET", "/flaky")
	p.Options = request.Options{RetryMax: 2, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond}
	resp, err := r.Request(p)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	t.Run("exhausted", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		p := newPlan(t, "GET", "/flaky")
		p.Options = request.Options{RetryMax: 1, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond}
		resp, err := r.Request(p)
		require.NoError(t, err)
		assert.Equal(t, 503, resp.Status)
		assert.Equal(t, "unavailable", string(resp.Body))
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
	t.Run("policy", func(t *testing.T) {
		testCases := []struct {
			name     string
			policy   retry.Policy
			expected int32
		}{
			{"never", retry.Never, 1},
			{"custom status", retry.NewPolicy(retry.StatusCode(500), retry.NewFixedWaiter(0)), 3},
			{"default", retry.DefaultPolicy, 1},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				r, mt := newMockResty(t, WithRetryPolicy(testCase.policy))
				var calls int32
				mt.RegisterResponder("GET", endpoint+"/fail", func(*http.Request) (*http.Response, error) {
					atomic.AddInt32(&calls, 1)
					return httpmock.NewStringResponse(500, "fail"), nil
				})
				p := newPlan(t, "GET", "/fail")
				p.Options = request.Options{RetryMax: 2, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond}
				resp, err := r.Request(p)
				require.NoError(t, err)
				assert.Equal(t, 500, resp.Status)
				assert.Equal(t, testCase.expected, atomic.LoadInt32(&calls))
			})
		}
	})
}

func testRestyHeaders(t *testing.T) {
	r, mt := newMockResty(t,
		WithHeader(http.Header{"User-Agent": {"DummyClient"}, "X-Api-Version": {"2"}}),
		WithLogger(zap.NewNop()))
	var got http.Header
	mt.RegisterResponder("GET", endpoint+"/me", func(req *http.Request) (*http.Response, error) {
		got = req.Header.Clone()
		return httpmock.NewStringResponse(200, ""), nil
	})

	t.Run("defaults", func(t *testing.T) {
		_, err := r.Request(newPlan(t, "GET", "/me"))
		require.NoError(t, err)
		assert.Equal(t, "DummyClient", got.Get("User-Agent"))
		assert.Equal(t, "2", got.Get("X-Api-Version"))
	})
	t.Run("plan overrides", func(t *testing.T) {
		p := newPlan(t, "GET", "/me")
		p.Header.Set("User-Agent", "Custom/1.0")
		p.Header.Set("Authorization", "Bearer secret")
		_, err := r.Request(p)
		require.NoError(t, err)
		assert.Equal(t, "Custom/1.0", got.Get("User-Agent"))
		assert.Equal(t, "Bearer secret", got.Get("Authorization"))
		assert.Equal(t, "2", got.Get("X-Api-Version"))
	})
}

func testRestyFailures(t *testing.T) {
	r, mt := newMockResty(t)
	mt.RegisterResponder("GET", endpoint+"/timeout", httpmock.NewErrorResponder(context.DeadlineExceeded))
	mt.RegisterResponder("GET", endpoint+"/broken", httpmock.NewErrorResponder(errors.New("connection reset by peer")))

	t.Run("timeout", func(t *testing.T) {
		resp, err := r.Request(newPlan(t, "GET", "/timeout"))
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, transient.Timeout, transient.Categorize(err))
	})
	t.Run("expired context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()
		p, err := request.NewPlanWithContext(ctx, "GET", "/broken")
		require.NoError(t, err)
		resp, err := r.Request(p)
		assert.Nil(t, resp)
		assert.Equal(t, transient.Timeout, transient.Categorize(err))
	})
	t.Run("other", func(t *testing.T) {
		resp, err := r.Request(newPlan(t, "GET", "/broken"))
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, transient.Not, transient.Categorize(err))
		assert.ErrorContains(t, err, "connection reset by peer")
	})
	t.Run("invalid options", func(t *testing.T) {
		p := newPlan(t, "GET", "/broken")
		p.Options = request.Options{Timeout: -time.Second}
		_, err := r.Request(p)
		assert.ErrorContains(t, err, "negative timeout")
	})
	t.Run("invalid proxy", func(t *testing.T) {
		plain := NewResty(endpoint)
		p := newPlan(t, "GET", "/broken")
		p.Options = request.Options{Proxy: "://bad"}
		_, err := plain.Request(p)
		assert.ErrorContains(t, err, "invalid proxy")
	})
}

func testRestyRateLimit(t *testing.T) {
	r, mt := newMockResty(t)
	mt.RegisterResponder("GET", endpoint+"/limited", httpmock.NewStringResponder(200, "ok"))
	o := request.Options{RateLimit: 0.001, RateBurst: 1}

	p := newPlan(t, "GET", "/limited")
	p.Options = o
	_, err := r.Request(p)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p = p.WithContext(ctx)
	resp, err := r.Request(p)
	assert.Nil(t, resp)
	assert.Equal(t, transient.Timeout, transient.Categorize(err))
	assert.Equal(t, 1, mt.GetTotalCallCount())
}

func testRestyConnCache(t *testing.T) {
	r, mt := newMockResty(t)
	mt.RegisterResponder("GET", endpoint+"/ping", httpmock.NewStringResponder(200, "pong"))

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			p, err := request.NewPlan("GET", "/ping")
			if err != nil {
				return err
			}
			p.Options = request.Options{Timeout: time.Duration(1+i%2) * time.Second}
			_, err = r.Request(p)
			return err
		})
	}
	require.NoError(t, g.Wait())

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Len(t, r.conns, 2)
	assert.Equal(t, 32, mt.GetTotalCallCount())
	a, b := r.conns[request.Options{Timeout: time.Second}], r.conns[request.Options{Timeout: 2 * time.Second}]
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotSame(t, a.resty, b.resty)
}

func TestRequesterFunc(t *testing.T) {
	want := &request.Response{Status: 200}
	var f Requester = RequesterFunc(func(p *request.Plan) (*request.Response, error) {
		assert.Equal(t, "/x", p.Path)
		return want, nil
	})
	p, err := request.NewPlan("GET", "/x")
	require.NoError(t, err)
	got, err := f.Request(p)
	assert.NoError(t, err)
	assert.Same(t, want, got)
}

func TestKeepResponse(t *testing.T) {
	resp := &http.Response{StatusCode: 503}
	got, err := keepResponse(resp, errors.New("giving up"), 3)
	assert.Same(t, resp, got)
	assert.NoError(t, err)
	cause := errors.New("dial failed")
	got, err = keepResponse(nil, cause, 1)
	assert.Nil(t, got)
	assert.Same(t, cause, err)
}
