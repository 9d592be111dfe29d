// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the Requester, the collaborator that puts a
request.Plan on the wire, and provides the default implementation,
Resty.

A Requester does nothing but speak HTTP. It returns a request.Response
for every status code, leaving status interpretation, body parsing and
error classification to the restkit pipeline. It returns an error only
when it cannot obtain a response at all; a timeout must be reported as
an error with a Timeout() method returning true somewhere in its chain.

Resty is built on github.com/go-resty/resty/v2 layered over a
github.com/hashicorp/go-retryablehttp client, with optional token bucket
rate limiting from golang.org/x/time/rate. It keeps one underlying
client per distinct request.Options value, created the first time the
options are seen:

	r := transport.NewResty("https://api.example.com",
		transport.WithHeader(http.Header{"User-Agent": {"ExampleClient"}}),
		transport.WithLogger(logger))
	defer r.CloseIdleConnections()
*/
package transport
