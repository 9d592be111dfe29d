// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"io"
	"net/http"
)

// BodyBytes converts a converted request body to a byte slice for use
// on the wire.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself and no error is returned.
//
// • If body is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If body is an io.Reader or io.ReadCloser, the result of reading
// the whole contents of the reader (and closing it if it implements
// Closer) is returned.
//
// • If body is any other type, for example a map passed through
// unchanged because its content type is not one the converter
// recognizes, a nil byte slice and an error is returned.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, fmt.Errorf("restkit/request: cannot send body of type %T "+
			"(use a recognized content type, or nil, string, []byte or io.Reader)", body)
	}
}

// CanonicalHeader returns a copy of h with every key converted to its
// canonical form, so that "content-type" and "Content-Type" name the
// same header. Values for keys which collide after canonicalization are
// merged in map iteration order.
func CanonicalHeader(h http.Header) http.Header {
	c := make(http.Header, len(h))
	for key, values := range h {
		ck := http.CanonicalHeaderKey(key)
		c[ck] = append(c[ck], values...)
	}
	return c
}
