// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restkit

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in an API to extend its clients with
// custom functionality.
type Event int

const (
	// BeforeSend identifies the event that occurs after the plan is
	// complete and immediately before it is handed to the transport.
	//
	// When the pipeline fires BeforeSend, the plan's headers are
	// canonical and its body converted. Handlers may add headers to
	// the plan, for example to sign the request.
	BeforeSend Event = iota
	// AfterSendError identifies the event that occurs after the
	// transport failed to get a response.
	//
	// When the pipeline fires AfterSendError, the execution's error
	// field is set to a TimeoutError or an UnexpectedError wrapping the
	// transport failure.
	AfterSendError
	// AfterResponse identifies the event that occurs after the
	// transport returns a response, whatever its status code, and
	// before the status code is dispatched.
	AfterResponse
	// AfterCall identifies the event that occurs after the call ends.
	//
	// When the pipeline fires AfterCall, the end time is set and either
	// the execution's error or its result holds the call's outcome.
	// AfterCall fires on every call, including calls that failed before
	// reaching the transport.
	AfterCall
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeSend",
	"AfterSendError",
	"AfterResponse",
	"AfterCall",
}

// Events returns a slice containing all events which can occur during
// a call, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeSend,
		AfterSendError,
		AfterResponse,
		AfterCall,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
