// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "time"

// RetryState is the mutable retry bookkeeping of one logical request.
// It is attached to a Plan (see Plan.RetryState) and lives exactly as
// long as the Plan.
//
// The state is mutated only by the plan execution logic of the client
// executing the plan. There is no locking: attempts of one plan are
// strictly sequential.
type RetryState struct {
	// Count is the number of retries scheduled so far. It starts at
	// zero and never exceeds the effective retry limit.
	Count int

	// LastRequestTime is the time the most recent attempt was
	// dispatched. It is the zero time until the first dispatch.
	LastRequestTime time.Time
}

// Touch records an attempt dispatched at time now.
func (s *RetryState) Touch(now time.Time) {
	s.LastRequestTime = now
}

// Dispatched reports whether at least one attempt has been dispatched.
func (s *RetryState) Dispatched() bool {
	return !s.LastRequestTime.IsZero()
}
