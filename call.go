// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restkit

import (
	"net/http"

	"github.com/gogama/restkit/body"
	"github.com/gogama/restkit/request"
)

// A CallOption customizes a single call.
type CallOption func(*call)

type call struct {
	params       interface{}
	header       http.Header
	options      *request.Options
	converter    body.Converter
	converterSet bool
	parser       body.Parser
	parserSet    bool
}

func newCall(opts []CallOption) *call {
	c := &call{header: make(http.Header)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params sets the call's parameters. GET and DELETE send them as the
// query string, so they must be a type body.Values accepts. POST, PUT
// and PATCH convert them into the request body.
func Params(params interface{}) CallOption {
	return func(c *call) {
		c.params = params
	}
}

// Header adds a request header. Keys are case-insensitive: "accept"
// and "Accept" name the same header.
func Header(key, value string) CallOption {
	return func(c *call) {
		c.header[key] = append(c.header[key], value)
	}
}

// Headers adds every entry of h as a request header.
func Headers(h map[string]string) CallOption {
	return func(c *call) {
		for key, value := range h {
			c.header[key] = append(c.header[key], value)
		}
	}
}

// RequestOptions sets the transport options for the call, replacing the
// API's default options.
func RequestOptions(o request.Options) CallOption {
	return func(c *call) {
		c.options = &o
	}
}

// RequestBodyConverter sets the converter for the call, replacing the
// API's converter. A nil converter sends params unchanged. GET and
// DELETE ignore the converter.
func RequestBodyConverter(conv body.Converter) CallOption {
	return func(c *call) {
		c.converter = conv
		c.converterSet = true
	}
}

// ResponseBodyParser sets the parser for the call, replacing the API's
// parser. A nil parser disables parsing, so the call returns the raw
// body as a []byte.
func ResponseBodyParser(p body.Parser) CallOption {
	return func(c *call) {
		c.parser = p
		c.parserSet = true
	}
}
