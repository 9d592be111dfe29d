// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

// A Parser transforms a raw response body into a value.
//
// Implementations of Parser must be safe for concurrent use by multiple
// goroutines. A Parser has no error return: a body it cannot make sense
// of should be returned in raw form.
type Parser interface {
	Parse(raw []byte) interface{}
}

// The ParserFunc type is an adapter to allow the use of ordinary
// functions as parsers.
type ParserFunc func(raw []byte) interface{}

// Parse calls f(raw).
func (f ParserFunc) Parse(raw []byte) interface{} {
	return f(raw)
}

// DefaultParser is the parser used when none is configured.
//
// An empty body parses to nil. Otherwise the body is decoded as JSON:
// objects become map[string]interface{}, arrays become []interface{},
// integers become int64 and other numbers float64. If the body is not
// valid JSON, DefaultParser returns raw unchanged.
var DefaultParser Parser = ParserFunc(parse)

func parse(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}

	var v interface{}
	if err := codec.Unmarshal(raw, &v); err != nil {
		return raw
	}

	return v
}
