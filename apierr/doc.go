// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package apierr contains the error type returned by restkit clients and
the per-API taxonomy of sentinel errors used to match it.

Every restkit API owns a Taxonomy: fourteen sentinel *Error values, one
per kind.Kind. Errors produced by that API's clients match a sentinel
with errors.Is when their kind IsA the sentinel's kind and both come
from the same Taxonomy:

	_, err := github.Get(ctx, "/users/nobody")
	if errors.Is(err, github.Errors.NotFoundError) {
		...
	} else if errors.Is(err, github.Errors.BadRequestError) {
		// any other 4XX, including 401, 403, 408, 409, 422 and 429
	}

Errors from different APIs never match each other's sentinels, even
when their kinds are equal. Use KindOf or IsKind to inspect the kind
without regard to the owning API, and errors.As to get at the response
details:

	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		log.Println(apiErr.Status, apiErr.Body)
	}
*/
package apierr
