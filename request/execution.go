// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/httpretry/transient"
)

// An Execution represents the state of a single Plan execution.
//
// When a plan execution is requested, an Execution is created for it.
// The Execution is updated as the plan execution progresses and is
// ultimately returned as the result of the plan execution.
//
// After an attempt fails, the Execution is also the failure event
// handed to retry conditions and delays: Response and Err describe the
// failed attempt, Code names the error, and Plan refers back to the
// request being executed.
//
// Retry conditions, delays and event handlers may set values on an
// Execution using its SetValue method and read them back using Value.
// They should otherwise treat the exported fields as read-only.
type Execution struct {
	// Plan specifies the HTTP request plan being executed. It is never
	// nil during a client execution, but may be nil when an Execution is
	// built by hand to evaluate a retry condition.
	Plan *Plan

	// Start is the start time of the plan execution.
	Start time.Time

	// End is the end time of the plan execution. It contains the zero
	// value until the plan execution ends.
	End time.Time

	// Attempt is the zero-based number of the current HTTP request
	// attempt: zero on the initial attempt, one on the first retry,
	// and so on.
	Attempt int

	// AttemptTimeouts is the count of the number of times an HTTP
	// request attempt timed out during the execution.
	AttemptTimeouts int

	// Request specifies the HTTP request to be made in the current
	// attempt, or already made in the last attempt.
	Request *http.Request

	// Response specifies the HTTP response received in the most recent
	// request attempt. It will be nil if the most recent attempt ended
	// in a transport error, if an attempt is underway, or before the
	// execution starts.
	//
	// Response may be non-nil together with a non-nil Err, when the
	// response status was rejected by the client or reading the body
	// failed.
	Response *http.Response

	// Err indicates the error received while making the most recent
	// request attempt. It is nil if the most recent attempt succeeded.
	//
	// Whenever Err is non-nil, it has the type *url.Error.
	Err error

	// Body is the complete response body read from the response after
	// the most recent request attempt.
	Body []byte

	// Wait is the delay before the next attempt. It is set when a
	// retry is scheduled and cleared when the next attempt starts.
	Wait time.Duration

	data context.Context
}

// StatusCode returns the status code of the HTTP response from the
// most recent request attempt in the execution. If there is no HTTP
// response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent request
// attempt in the execution. If there is no HTTP response, the nil
// header is returned, which is safe for read-only operations.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}

	return e.Response.Header
}

// Code returns the transport error code of Err, as computed by
// transient.Code, or the empty string if Err is nil.
func (e *Execution) Code() string {
	return transient.Code(e.Err)
}

// Method returns the HTTP method of the plan being executed, upper-cased
// and with the empty method resolved to "GET". The second return value
// is false if the execution has no plan.
func (e *Execution) Method() (string, bool) {
	if e.Plan == nil {
		return "", false
	}

	return normalizeMethod(e.Plan.Method), true
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout, either of the most recent attempt or of
// the whole plan.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows retry conditions, delays and event handlers to store
// arbitrary data in the request plan execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
