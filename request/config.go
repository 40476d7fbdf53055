// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "time"

// A RetryConfig is a set of retry settings, each of which is optional.
// A nil pointer or nil function means "not set".
//
// The same structure is used for a client's global defaults and for
// the per-request override on a Plan. When the two are merged, every
// field set on the Plan wins over the same field set on the client,
// independently of the other fields. Package retry implements the
// merge (retry.Resolve) and provides ready-made conditions and delays.
type RetryConfig struct {
	// Retries is the maximum number of retries after the initial
	// attempt. Default 3.
	Retries *int

	// Condition decides whether a failed attempt is eligible for a
	// retry. Default retry.IsNetworkOrIdempotentRequestError.
	Condition func(e *Execution) bool

	// Delay returns how long to wait before the given retry. The
	// attempt number is one-based: 1 for the first retry. A negative
	// delay vetoes the retry. An error aborts the execution and is
	// returned to the caller. Default retry.NoDelay.
	Delay func(attempt int, e *Execution) (time.Duration, error)

	// ShouldResetTimeout, if true, keeps the plan's full timeout budget
	// on every retry instead of shrinking it. Default false.
	ShouldResetTimeout *bool
}
