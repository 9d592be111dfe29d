// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"strconv"
	"strings"
)

// maxSummaryBody is the number of body bytes included in a response
// summary.
const maxSummaryBody = 512

// A Response is the result of a transport successfully speaking HTTP
// with the remote system, regardless of the status code. A Response is
// immutable once produced.
type Response struct {
	// Method and URL identify the request that produced the response.
	Method string
	URL    string

	// Status is the HTTP status code.
	Status int

	// Reason is the reason phrase, for example "Not Found".
	Reason string

	// Header contains the response header fields.
	Header http.Header

	// Body is the complete, buffered response body. It may be empty.
	Body []byte

	// Raw is the underlying response as received by the transport, if
	// the transport has one. Its body has already been consumed.
	Raw *http.Response
}

// Metadata summarizes a response for error messages and logs. It never
// contains request headers or the raw response.
type Metadata struct {
	Method string
	URL    string
	Status int
	Reason string
	Header http.Header
	Body   string
}

// NewResponse returns a Response for the given status code, filling in
// the reason phrase from statusLine, which may be a full status line
// such as "404 Not Found", a bare reason phrase or empty.
func NewResponse(method, url string, status int, statusLine string, header http.Header, body []byte) *Response {
	return &Response{
		Method: method,
		URL:    url,
		Status: status,
		Reason: reason(status, statusLine),
		Header: header,
		Body:   body,
	}
}

// Metadata returns the response metadata. The body is truncated to a
// few hundred bytes.
func (r *Response) Metadata() Metadata {
	body := r.Body
	truncated := false
	if len(body) > maxSummaryBody {
		body = body[:maxSummaryBody]
		truncated = true
	}
	s := string(body)
	if truncated {
		s += "..."
	}
	return Metadata{
		Method: r.Method,
		URL:    r.URL,
		Status: r.Status,
		Reason: r.Reason,
		Header: r.Header,
		Body:   s,
	}
}

// String returns the metadata in the form:
//
//	GET https://example.com/users/1: 404 Not Found: {"message":"Not Found"}
//
// The trailing body section is omitted when the body is empty.
func (m Metadata) String() string {
	var b strings.Builder
	b.WriteString(m.Method)
	b.WriteByte(' ')
	b.WriteString(m.URL)
	b.WriteString(": ")
	b.WriteString(strconv.Itoa(m.Status))
	if m.Reason != "" {
		b.WriteByte(' ')
		b.WriteString(m.Reason)
	}
	if body := strings.TrimSpace(m.Body); body != "" {
		b.WriteString(": ")
		b.WriteString(body)
	}
	return b.String()
}

func reason(status int, statusLine string) string {
	s := strings.TrimSpace(statusLine)
	if prefix := strconv.Itoa(status); strings.HasPrefix(s, prefix) {
		s = strings.TrimSpace(s[len(prefix):])
	}
	if s == "" {
		return http.StatusText(status)
	}
	return s
}

// String returns the response metadata as a string.
func (r *Response) String() string {
	return r.Metadata().String()
}
