// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apierr

import (
	"fmt"
	"net/http"

	"github.com/gogama/restkit/kind"
	"github.com/gogama/restkit/request"
)

// A Taxonomy is the set of sentinel errors belonging to one API. Each
// exported field is the sentinel for the like-named kind.
//
// Taxonomy values are independent: sentinels of one Taxonomy never
// match errors made by another. Create a Taxonomy with NewTaxonomy; the
// zero value is not usable.
type Taxonomy struct {
	Error                     *Error
	RequestError              *Error
	TimeoutError              *Error
	UnexpectedError           *Error
	UnsuccessfulResponseError *Error
	BadRequestError           *Error
	UnauthorizedError         *Error
	ForbiddenError            *Error
	NotFoundError             *Error
	RequestTimeoutError       *Error
	ConflictError             *Error
	UnprocessableEntityError  *Error
	TooManyRequestsError      *Error
	ServerError               *Error

	owner  string
	byKind []*Error
}

// NewTaxonomy returns a new Taxonomy whose sentinels and errors are
// attributed to owner, typically the API name.
func NewTaxonomy(owner string) *Taxonomy {
	t := &Taxonomy{
		owner:  owner,
		byKind: make([]*Error, kind.Count),
	}
	for _, k := range kind.Kinds() {
		t.byKind[k] = &Error{Kind: k, tax: t, sentinel: true}
	}
	t.Error = t.byKind[kind.Error]
	t.RequestError = t.byKind[kind.RequestError]
	t.TimeoutError = t.byKind[kind.TimeoutError]
	t.UnexpectedError = t.byKind[kind.UnexpectedError]
	t.UnsuccessfulResponseError = t.byKind[kind.UnsuccessfulResponseError]
	t.BadRequestError = t.byKind[kind.BadRequestError]
	t.UnauthorizedError = t.byKind[kind.UnauthorizedError]
	t.ForbiddenError = t.byKind[kind.ForbiddenError]
	t.NotFoundError = t.byKind[kind.NotFoundError]
	t.RequestTimeoutError = t.byKind[kind.RequestTimeoutError]
	t.ConflictError = t.byKind[kind.ConflictError]
	t.UnprocessableEntityError = t.byKind[kind.UnprocessableEntityError]
	t.TooManyRequestsError = t.byKind[kind.TooManyRequestsError]
	t.ServerError = t.byKind[kind.ServerError]
	return t
}

// Owner returns the name the taxonomy was created with.
func (t *Taxonomy) Owner() string {
	return t.owner
}

// Of returns the sentinel for kind k. Of panics if k is not a valid
// kind.
func (t *Taxonomy) Of(k kind.Kind) *Error {
	if !k.Valid() {
		panic(fmt.Sprintf("restkit/apierr: invalid kind %d", int(k)))
	}
	return t.byKind[k]
}

// Owns reports whether err's chain contains an error made by, or a
// sentinel of, t.
func (t *Taxonomy) Owns(err error) bool {
	return t.Error != nil && isFrom(err, t)
}

// NewRequestError returns a request lineage error of kind k wrapping
// the transport failure cause. The message has the form
// "<cause type>: <cause message>".
//
// NewRequestError panics if k is not a request lineage kind.
func (t *Taxonomy) NewRequestError(k kind.Kind, cause error) *Error {
	if !k.IsRequestKind() {
		panic(fmt.Sprintf("restkit/apierr: %s is not a request error kind", k))
	}
	msg := ""
	if cause != nil {
		msg = fmt.Sprintf("%T: %s", cause, cause.Error())
	}
	return &Error{
		Kind:    k,
		Message: msg,
		Err:     cause,
		tax:     t,
	}
}

// NewResponseError returns a response lineage error of kind k carrying
// the given message, status, parsed body, header and response.
//
// NewResponseError panics if k is not a response lineage kind.
func (t *Taxonomy) NewResponseError(k kind.Kind, message string, status int, body interface{}, header http.Header, resp *request.Response) *Error {
	if !k.IsResponseKind() {
		panic(fmt.Sprintf("restkit/apierr: %s is not a response error kind", k))
	}
	return &Error{
		Kind:     k,
		Message:  message,
		Status:   status,
		Body:     body,
		Header:   header,
		Response: resp,
		tax:      t,
	}
}

func isFrom(err error, t *Taxonomy) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.tax == t {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
