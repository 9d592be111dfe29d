// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Recognized content types.
const (
	JSON = "application/json"
	Form = "application/x-www-form-urlencoded"
)

// codec is the JSON configuration shared by the converter and the
// parser. Sorted keys keep request bodies deterministic.
var codec = sonic.Config{
	SortMapKeys:    true,
	UseInt64:       true,
	CopyString:     true,
	ValidateString: true,
}.Froze()

// A Converter transforms request parameters into a request body
// according to a content type.
//
// Implementations of Converter must be safe for concurrent use by
// multiple goroutines.
type Converter interface {
	// Convert returns the body to send for params. A nil params must
	// produce a nil body.
	Convert(contentType string, params interface{}) (interface{}, error)
}

// The ConverterFunc type is an adapter to allow the use of ordinary
// functions as converters.
type ConverterFunc func(contentType string, params interface{}) (interface{}, error)

// Convert calls f(contentType, params).
func (f ConverterFunc) Convert(contentType string, params interface{}) (interface{}, error) {
	return f(contentType, params)
}

// DefaultConverter is the converter used when none is configured.
//
// A nil params yields a nil body. For content type JSON, params is
// encoded as a JSON string with object keys sorted. For content type
// Form, params is flattened with Values and encoded as a URL-encoded
// string. For every other content type, including the empty string,
// params is returned unchanged.
//
// Content types are matched exactly, so a parameterized value such as
// "application/json; charset=utf-8" passes params through unchanged.
var DefaultConverter Converter = ConverterFunc(convert)

// Identity is a converter which always returns params unchanged.
var Identity Converter = ConverterFunc(identity)

func convert(contentType string, params interface{}) (interface{}, error) {
	if params == nil {
		return nil, nil
	}

	switch contentType {
	case JSON:
		s, err := codec.MarshalToString(params)
		if err != nil {
			return nil, fmt.Errorf("restkit/body: json: %w", err)
		}
		return s, nil
	case Form:
		v, err := Values(params)
		if err != nil {
			return nil, err
		}
		return v.Encode(), nil
	default:
		return params, nil
	}
}

func identity(_ string, params interface{}) (interface{}, error) {
	return params, nil
}
