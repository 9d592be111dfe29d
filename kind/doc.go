// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package kind enumerates the fixed hierarchy of error kinds a restkit
client can produce.

The hierarchy has a single root, Error, and two lineages below it. The
request lineage describes failures in which the remote system was never
heard from:

	Error
	└── RequestError
	    ├── TimeoutError
	    └── UnexpectedError

The response lineage describes failures in which the remote system
answered with an unsuccessful HTTP status code:

	Error
	└── UnsuccessfulResponseError
	    ├── BadRequestError
	    │   ├── UnauthorizedError
	    │   ├── ForbiddenError
	    │   ├── NotFoundError
	    │   ├── RequestTimeoutError
	    │   ├── ConflictError
	    │   ├── UnprocessableEntityError
	    │   └── TooManyRequestsError
	    └── ServerError

Use Kind.IsA to check ancestry. Every kind IsA itself and every one of
its ancestors, and nothing else.

Package kind depends only on the standard library, so it is safe to
import from any package in the module.
*/
package kind
