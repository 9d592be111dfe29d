// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types that flow between a restkit client
and its transport: Plan (describes one logical API call), Options
(transport tuning for a call), Response (what the transport received)
and Execution (the state of a call, as seen by event handlers).

A Plan is what the pipeline hands to a transport.Requester. By the time
a transport sees a Plan, its body has already been converted and its
header keys canonicalized, so the transport only needs to put bytes on
the wire:

	p, err := request.NewPlanWithContext(ctx, "POST", "/users")
	...
	p.Header.Set("Content-Type", "application/json")
	p.Body = `{"name":"tarou"}`
	resp, err := requester.Request(p)
	...

The Plan's context controls cancellation and deadlines of the call. An
expired deadline is reported by the transport as a timeout.

Options is a comparable struct, so transports may use it as a map key to
cache one underlying HTTP client per distinct configuration.

Execution is handed to event handlers during a call. You will typically
not allocate Execution instances yourself, but will instead work with
the ones handed out by the restkit pipeline.
*/
package request
