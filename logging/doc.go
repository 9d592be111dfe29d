// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package logging provides structured logging for restkit clients using
uber/zap.

New builds a zap logger in one of two modes: production, which writes
JSON, and development, which writes colored console output. Hand the
logger to restkit.WithLogger to log retry activity in the default
transport.

NewHandler returns an event handler that logs each call. Install it in
every event of a handler group:

	logger, err := logging.New(logging.DefaultConfig())
	if err != nil {
		...
	}
	handlers := &restkit.HandlerGroup{}
	handlers.PushBackAll(logging.NewHandler(logger))
	api := restkit.Define("Example", "https://api.example.com",
		restkit.WithHandlers(handlers),
		restkit.WithLogger(logger))

Header values which carry credentials are never logged. See
RedactHeader.
*/
package logging
