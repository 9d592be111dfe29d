// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package restkit is a toolkit for building REST API clients that share
one set of request, response and error conventions.

Define an API once, naming it and binding its endpoint:

	var GitHub = restkit.Define("GitHubClient", "https://api.github.com",
		restkit.WithHeader("Accept", "application/vnd.github+json"))

Then make calls, either through a Client, which keeps its connections
for reuse, or through the API shorthands, which use a fresh Client for
each call:

	client := GitHub.New()
	user, err := client.Get(ctx, "/users/octocat")
	...
	repo, err := GitHub.Post(ctx, "/user/repos",
		restkit.Params(map[string]interface{}{"name": "hello"}),
		restkit.Header("Authorization", "Bearer "+token))

Every call returns the response body parsed by the API's parser (JSON by
default, falling back to the raw bytes) or an error. GET and DELETE
params become the query string. POST, PUT and PATCH params are converted
into the request body according to the Content-Type header, which
defaults to application/json when params are given.

Every error a call returns is an *apierr.Error whose kind comes from the
fixed hierarchy in package kind. Transport failures are TimeoutError or
UnexpectedError. Unsuccessful responses map from their status code by
the API's dispatcher: 404 is NotFoundError, other 4XX codes are
BadRequestError or one of its more specific descendants, 5XX is
ServerError. Match errors against the API's own sentinels:

	if errors.Is(err, GitHub.Errors.NotFoundError) {
		...
	}

Sentinels of one API never match errors of another, so callers can tell
apart failures from the different services they talk to.

To hook into a call, install a handler into the appropriate handler
chain:

	handlers := &restkit.HandlerGroup{}
	handlers.PushBack(restkit.AfterCall, restkit.HandlerFunc(
		func(_ restkit.Event, e *request.Execution) {
			log.Printf("%s %s took %s", e.Plan.Method, e.Plan.Path, e.Duration())
		}))
	api := restkit.Define("ExampleClient", "https://example.com",
		restkit.WithHandlers(handlers))

Packages logging and metrics provide ready-made handlers. To replace the
transport altogether, for example with a fake in tests, use
WithTransport.
*/
package restkit
