// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the failures a transport reports when
// it cannot complete an HTTP request. The restkit pipeline uses the
// classification to decide between a TimeoutError and an
// UnexpectedError, and the logging and metrics packages use it to
// bucket failures.
//
// Package transient depends only on the standard library packages
// "context", "errors" and "syscall".
package transient
