// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	t.Run("Not", func(t *testing.T) {
		assert.Equal(t, Not, Categorize(nil))
		assert.Equal(t, Not, Categorize(errors.New("foo")))
		assert.Equal(t, Not, Categorize(wrapper{errors.New("bar")}))
		assert.Equal(t, Not, Categorize(&url.Error{Op: "Get", URL: "http://x", Err: errors.New("unsupported protocol scheme")}))
	})
	t.Run("Timeout", func(t *testing.T) {
		assert.Equal(t, Timeout, Categorize(syscall.ETIMEDOUT))
		assert.Equal(t, Timeout, Categorize(timeout{}))
		assert.Equal(t, Timeout, Categorize(context.DeadlineExceeded))
		assert.Equal(t, Timeout, Categorize(&url.Error{Op: "Post", Err: context.DeadlineExceeded}))
		assert.Equal(t, Timeout, Categorize(fmt.Errorf("resty: %w", &url.Error{Err: timeout{}})))
		assert.Equal(t, Timeout, Categorize(wrapper{wrapper{timeout{}}}))
		assert.Equal(t, Timeout, Categorize(timeoutWrapper{true, syscall.ECONNRESET}))
		assert.Equal(t, Timeout, Categorize(timeoutWrapper{true, context.Canceled}))
	})
	t.Run("Canceled", func(t *testing.T) {
		assert.Equal(t, Canceled, Categorize(context.Canceled))
		assert.Equal(t, Canceled, Categorize(&url.Error{Op: "Get", Err: context.Canceled}))
		assert.Equal(t, Canceled, Categorize(timeoutWrapper{false, context.Canceled}))
	})
	t.Run("Conn", func(t *testing.T) {
		assert.Equal(t, ConnReset, Categorize(syscall.ECONNRESET))
		assert.Equal(t, ConnReset, Categorize(wrapper{syscall.ECONNRESET}))
		assert.Equal(t, ConnReset, Categorize(timeoutWrapper{false, syscall.ECONNRESET}))
		assert.Equal(t, ConnRefused, Categorize(syscall.ECONNREFUSED))
		assert.Equal(t, ConnRefused, Categorize(&url.Error{Err: wrapper{timeoutWrapper{false, syscall.ECONNREFUSED}}}))
	})
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(context.Canceled))
	assert.False(t, IsTimeout(nil))
}

func TestCategory_Name(t *testing.T) {
	assert.Equal(t, "not", Not.Name())
	assert.Equal(t, "timeout", Timeout.String())
	assert.Equal(t, "canceled", Canceled.Name())
	assert.Equal(t, "conn_refused", ConnRefused.Name())
	assert.Equal(t, "conn_reset", ConnReset.Name())
	assert.Equal(t, "unknown", Category(-1).Name())
	assert.Equal(t, "unknown", Category(len(categoryNames)).Name())
}

type timeout struct{}

func (err timeout) Error() string {
	return "timeout"
}

func (timeout) Timeout() bool {
	return true
}

type wrapper struct {
	wrappedError error
}

func (err wrapper) Error() string {
	return fmt.Sprintf("wrapper - wraps %v", err.wrappedError)
}

func (err wrapper) Unwrap() error {
	return err.wrappedError
}

type timeoutWrapper struct {
	timeout      bool
	wrappedError error
}

func (err timeoutWrapper) Error() string {
	return fmt.Sprintf("timeoutWrapper - timeout %t, wraps %v", err.timeout, err.wrappedError)
}

func (err timeoutWrapper) Timeout() bool {
	return err.timeout
}

func (err timeoutWrapper) Unwrap() error {
	return err.wrappedError
}
