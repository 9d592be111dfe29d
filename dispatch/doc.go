// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package dispatch maps HTTP response status codes to error kinds.

A Dispatcher inspects the status code of a received response and
either names the error kind the response represents, or reports that
the response is not an error at all. The Default dispatcher gives every
restkit client its standard behavior:

	401 → UnauthorizedError
	403 → ForbiddenError
	404 → NotFoundError
	408 → RequestTimeoutError
	409 → ConflictError
	422 → UnprocessableEntityError
	429 → TooManyRequestsError
	other 4XX → BadRequestError
	5XX → ServerError
	anything else → no error

Build a custom dispatcher by composing the constructors Status and
Range with DispatcherFunc.Or. Composition is ordered: the first
sub-dispatcher that claims a status code wins, so list exact matches
ahead of the ranges that contain them.

	custom := dispatch.Status(kind.ConflictError, 412).Or(dispatch.Default)
*/
package dispatch
