// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"net/http"
)

// Redacted replaces the value of a header which carries credentials.
const Redacted = "[token]"

var sensitive = []string{
	"Authorization",
	"Proxy-Authorization",
}

// RedactHeader returns a copy of h in which every value of a header
// carrying credentials is replaced by Redacted. Keys are matched
// case-insensitively. The input is not modified.
func RedactHeader(h http.Header) http.Header {
	c := make(http.Header, len(h))
	for key, values := range h {
		ck := http.CanonicalHeaderKey(key)
		if isSensitive(ck) {
			redacted := make([]string, len(values))
			for i := range redacted {
				redacted[i] = Redacted
			}
			c[ck] = append(c[ck], redacted...)
			continue
		}
		c[ck] = append(c[ck], values...)
	}
	return c
}

func isSensitive(key string) bool {
	for _, s := range sensitive {
		if key == s {
			return true
		}
	}
	return false
}
