// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWaiter(t *testing.T) {
	min, max := 50*time.Millisecond, time.Second
	ceil := []time.Duration{
		50 * time.Millisecond,
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1 * time.Second,
		1 * time.Second,
	}
	for i := 0; i < len(ceil); i++ {
		wait := DefaultWaiter.Wait(min, max, i, nil)
		assert.GreaterOrEqual(t, wait, time.Duration(0))
		assert.LessOrEqual(t, wait, ceil[i])
	}
	t.Run("Retry-After", func(t *testing.T) {
		resp := &http.Response{StatusCode: 429, Header: http.Header{"Retry-After": {"3"}}}
		assert.Equal(t, 3*time.Second, DefaultWaiter.Wait(min, time.Minute, 0, resp))
		assert.Equal(t, max, DefaultWaiter.Wait(min, max, 0, resp))
		resp.StatusCode = 500
		assert.LessOrEqual(t, DefaultWaiter.Wait(min, max, 0, resp), min)
		resp.StatusCode = 503
		resp.Header.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
		assert.LessOrEqual(t, DefaultWaiter.Wait(min, max, 0, resp), min)
	})
}

func TestNewFixedWaiter(t *testing.T) {
	w := NewFixedWaiter(7 * time.Millisecond)
	assert.Equal(t, 7*time.Millisecond, w.Wait(time.Second, time.Hour, 3, nil))
}

func TestNewExpWaiter(t *testing.T) {
	min, max := 1*time.Millisecond, 1*time.Hour
	t.Run("invalid jitter", func(t *testing.T) {
		assert.PanicsWithValue(t, "restkit/retry: invalid jitter type", func() {
			NewExpWaiter(float64(1))
		}, "float64")
		var nilRand *rand.Rand
		assert.Panics(t, func() {
			NewExpWaiter(nilRand)
		}, "nil *rand.Rand")
	})
	t.Run("no jitter", func(t *testing.T) {
		var j *jitterExpWaiter
		j = newJitterExpWaiter(t, nil, "explicit nil")
		assert.Nil(t, j.rand, "explicit nil")
		var s rand.Source
		j = newJitterExpWaiter(t, s, "nil rand.Source")
		assert.Nil(t, j.rand, "nil rand.Source")
		for i := 0; i < 10; i++ {
			ceil := 1 << i
			assert.Equal(t, time.Duration(ceil)*time.Millisecond, j.Wait(min, max, i, nil))
		}
		assert.Equal(t, max, j.Wait(min, max, 25, nil))
		assert.Equal(t, max, j.Wait(min, max, 62, nil))
		assert.Equal(t, max, j.Wait(min, max, 1000, nil))
		assert.Equal(t, max, j.Wait(min, max, math.MaxInt32, nil))
	})
	t.Run("degenerate bounds", func(t *testing.T) {
		j := newJitterExpWaiter(t, nil, "degenerate")
		assert.Equal(t, time.Duration(0), j.Wait(0, max, 3, nil))
		assert.Equal(t, 5*time.Millisecond, j.Wait(5*time.Millisecond, time.Millisecond, 3, nil))
	})
	t.Run("with jitter", func(t *testing.T) {
		jitters := []struct {
			name  string
			value interface{}
		}{
			{"zero time.Time", time.Time{}},
			{"time.Now()", time.Now()},
			{"int", 1},
			{"int64", int64(1)},
			{"rand.Source", rand.NewSource(0)},
			{"*rand.Rand", rand.New(rand.NewSource(0))},
		}
		for i, jitter := range jitters {
			t.Run(fmt.Sprintf("jitters[%d]=%s", i, jitter.name), func(t *testing.T) {
				w := NewExpWaiter(jitter.value)
				for j := 0; j < 100; j++ {
					d := w.Wait(min, max, j, nil)
					assert.GreaterOrEqual(t, d, time.Duration(0))
					assert.LessOrEqual(t, d, max)
				}
			})
		}
	})
	t.Run("concurrent rand.Source usage", func(t *testing.T) {
		w := NewExpWaiter(0)
		var wg sync.WaitGroup
		var mu sync.Mutex
		total := time.Duration(0)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 22; j++ {
					d := w.Wait(min, max, j, nil)
					ceil := (1 << j) * time.Millisecond
					assert.GreaterOrEqual(t, d, time.Duration(0))
					assert.LessOrEqual(t, d, ceil)
					mu.Lock()
					total += d
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Greater(t, total, time.Duration(0))
	})
}

func newJitterExpWaiter(t *testing.T, jitter interface{}, message string) *jitterExpWaiter {
	j := NewExpWaiter(jitter)
	assert.IsType(t, &jitterExpWaiter{}, j, message)
	return j.(*jitterExpWaiter)
}
