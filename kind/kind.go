// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package kind

import "strconv"

// A Kind identifies one node in the error kind hierarchy.
type Kind int

const (
	// Error is the root of the hierarchy. Every other kind IsA Error.
	Error Kind = iota
	// RequestError is the root of the request lineage: the request
	// could not be completed, so no HTTP response is available.
	RequestError
	// TimeoutError indicates the transport gave up waiting for the
	// remote system.
	TimeoutError
	// UnexpectedError indicates any other transport failure, such as a
	// refused connection or a malformed request.
	UnexpectedError
	// UnsuccessfulResponseError is the root of the response lineage:
	// an HTTP response was received but its status code indicates
	// failure.
	UnsuccessfulResponseError
	// BadRequestError covers the 4XX status codes which have no more
	// specific kind.
	BadRequestError
	// UnauthorizedError corresponds to 401 Unauthorized.
	UnauthorizedError
	// ForbiddenError corresponds to 403 Forbidden.
	ForbiddenError
	// NotFoundError corresponds to 404 Not Found.
	NotFoundError
	// RequestTimeoutError corresponds to 408 Request Timeout. It is a
	// response lineage kind and has nothing in common with
	// TimeoutError.
	RequestTimeoutError
	// ConflictError corresponds to 409 Conflict.
	ConflictError
	// UnprocessableEntityError corresponds to 422 Unprocessable Entity.
	UnprocessableEntityError
	// TooManyRequestsError corresponds to 429 Too Many Requests.
	TooManyRequestsError
	// ServerError covers the 5XX status codes.
	ServerError
	// kindSentinel provides the total number of kinds typed as a Kind.
	kindSentinel

	// Count is the total number of kinds.
	Count = int(kindSentinel)
)

var kindNames = []string{
	"Error",
	"RequestError",
	"TimeoutError",
	"UnexpectedError",
	"UnsuccessfulResponseError",
	"BadRequestError",
	"UnauthorizedError",
	"ForbiddenError",
	"NotFoundError",
	"RequestTimeoutError",
	"ConflictError",
	"UnprocessableEntityError",
	"TooManyRequestsError",
	"ServerError",
}

// parents maps each kind to its immediate parent. The root is its own
// parent.
var parents = []Kind{
	Error,
	Error,
	RequestError,
	RequestError,
	Error,
	UnsuccessfulResponseError,
	BadRequestError,
	BadRequestError,
	BadRequestError,
	BadRequestError,
	BadRequestError,
	BadRequestError,
	BadRequestError,
	UnsuccessfulResponseError,
}

// Kinds returns a slice containing every kind, root first, in
// declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, Count)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Error && k < kindSentinel
}

// Parent returns the immediate parent of k. The second return value is
// false if k is the root or is not a valid kind.
func (k Kind) Parent() (Kind, bool) {
	if !k.Valid() || k == Error {
		return Error, false
	}
	return parents[k], true
}

// IsA reports whether k is ancestor or descends from ancestor. The
// relation is reflexive, so every valid kind IsA itself.
func (k Kind) IsA(ancestor Kind) bool {
	if !k.Valid() || !ancestor.Valid() {
		return false
	}
	for {
		if k == ancestor {
			return true
		}
		p, ok := k.Parent()
		if !ok {
			return false
		}
		k = p
	}
}

// Lineage returns k followed by each of its ancestors, ending with the
// root. It returns nil for an invalid kind.
func (k Kind) Lineage() []Kind {
	if !k.Valid() {
		return nil
	}
	lineage := []Kind{k}
	for {
		p, ok := k.Parent()
		if !ok {
			return lineage
		}
		lineage = append(lineage, p)
		k = p
	}
}

// IsRequestKind reports whether k belongs to the request lineage.
func (k Kind) IsRequestKind() bool {
	return k.IsA(RequestError)
}

// IsResponseKind reports whether k belongs to the response lineage.
func (k Kind) IsResponseKind() bool {
	return k.IsA(UnsuccessfulResponseError)
}

// Name returns the name of the kind.
func (k Kind) Name() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// String returns the name of the kind.
func (k Kind) String() string {
	return k.Name()
}
