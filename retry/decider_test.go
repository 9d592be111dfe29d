// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDecider(t *testing.T) {
	t.Run("Retryable status codes", func(t *testing.T) {
		for i, code := range []int{429, 502, 503, 504} {
			t.Run(fmt.Sprintf("codes[%d]=%d", i, code), func(t *testing.T) {
				assert.True(t, DefaultDecider(&http.Response{StatusCode: code}, nil))
			})
		}
	})
	t.Run("Non-retryable status codes", func(t *testing.T) {
		for i, code := range []int{200, 201, 204, 301, 400, 401, 403, 404, 500, 501} {
			t.Run(fmt.Sprintf("codes[%d]=%d", i, code), func(t *testing.T) {
				assert.False(t, DefaultDecider(&http.Response{StatusCode: code}, nil))
			})
		}
	})
	t.Run("Transient errors", func(t *testing.T) {
		for i, te := range transientErrs {
			t.Run(fmt.Sprintf("transientErrs[%d]=%v", i, te), func(t *testing.T) {
				assert.True(t, DefaultDecider(nil, te))
			})
		}
	})
	t.Run("Non-transient errors", func(t *testing.T) {
		for i, nte := range nonTransientErrs {
			t.Run(fmt.Sprintf("nonTransientErrs[%d]=%v", i, nte), func(t *testing.T) {
				assert.False(t, DefaultDecider(nil, nte))
			})
		}
	})
}

func TestTransientErr(t *testing.T) {
	for i, te := range transientErrs {
		t.Run(fmt.Sprintf("transientErrs[%d]=%v", i, te), func(t *testing.T) {
			assert.True(t, transientErr(nil, te))
			assert.True(t, transientErr(nil, &url.Error{Err: te}))
			assert.False(t, transientErr(&http.Response{StatusCode: 200}, te))
		})
	}
	for j, nte := range nonTransientErrs {
		t.Run(fmt.Sprintf("nonTransientErrs[%d]=%v", j, nte), func(t *testing.T) {
			assert.False(t, transientErr(nil, nte))
			assert.False(t, transientErr(nil, &url.Error{Err: nte}))
		})
	}
}

func TestDeciderAnd(t *testing.T) {
	true_ := DeciderFunc(func(_ *http.Response, _ error) bool { return true })
	false_ := DeciderFunc(func(_ *http.Response, _ error) bool { return false })
	assert.True(t, true_.And(true_)(nil, nil))
	assert.False(t, true_.And(false_)(nil, nil))
	assert.False(t, false_.And(true_)(nil, nil))
	assert.False(t, false_.And(false_)(nil, nil))
}

func TestDeciderOr(t *testing.T) {
	true_ := DeciderFunc(func(_ *http.Response, _ error) bool { return true })
	false_ := DeciderFunc(func(_ *http.Response, _ error) bool { return false })
	assert.True(t, true_.Or(true_)(nil, nil))
	assert.True(t, true_.Or(false_)(nil, nil))
	assert.True(t, false_.Or(true_).Decide(nil, nil))
	assert.False(t, false_.Or(false_).Decide(nil, nil))
}

func TestStatusCode(t *testing.T) {
	empty := StatusCode()
	assert.False(t, empty(nil, nil))
	one := StatusCode(602)
	assert.False(t, one(nil, errors.New("no response")))
	r := http.Response{}
	assert.False(t, empty(&r, nil))
	assert.False(t, one(&r, nil))
	r.StatusCode = 602
	assert.True(t, one(&r, nil))
	two := StatusCode(509, 602)
	assert.True(t, two(&r, nil))
	r.StatusCode = 509
	assert.True(t, two(&r, nil))
	r.StatusCode = 508
	assert.False(t, two(&r, nil))
}

var (
	transientErrs = []error{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ETIMEDOUT,
		context.DeadlineExceeded,
	}
	nonTransientErrs = []error{
		nil,
		errors.New("ain't transient"),
		context.Canceled,
		syscall.EHOSTUNREACH,
		syscall.ENETDOWN,
	}
)
