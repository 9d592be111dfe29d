// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package body converts request parameters into request bodies and parses
response bodies.

A Converter turns the params passed to a POST, PUT or PATCH call into
the body the transport sends, choosing its strategy from the request's
Content-Type header value. DefaultConverter understands two content
types:

	application/json                  → JSON text
	application/x-www-form-urlencoded → key=value&key=value

Any other content type, including none, passes params through
unchanged.

A Parser turns a raw response body into a value. DefaultParser decodes
JSON and falls back to the raw bytes when the body is not JSON, so
parsing never fails.

JSON encoding and decoding are done with github.com/bytedance/sonic.
*/
package body
