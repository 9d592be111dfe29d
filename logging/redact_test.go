// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactHeader(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, RedactHeader(nil))
	})
	t.Run("mixed", func(t *testing.T) {
		h := http.Header{
			"Authorization":       {"Bearer secret"},
			"proxy-authorization": {"Basic abc", "Basic def"},
			"Accept":              {"application/json"},
		}
		r := RedactHeader(h)
		assert.Equal(t, http.Header{
			"Authorization":       {Redacted},
			"Proxy-Authorization": {Redacted, Redacted},
			"Accept":              {"application/json"},
		}, r)
		assert.Equal(t, []string{"Bearer secret"}, h["Authorization"])
	})
}
