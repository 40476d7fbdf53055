// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/httpretry/request"
)

// A Policy defines a timeout policy which may be plugged into the HTTP
// client (httpretry.Client) to direct how to set the timeout of each
// request attempt.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next HTTP request
	// attempt within the plan execution e.
	Timeout(e *request.Execution) time.Duration
}

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Budget is a timeout policy that uses the plan's own timeout budget,
// request.Plan.Timeout, for every attempt. A zero budget means no
// timeout. Since the budget shrinks between retries, so does the
// attempt timeout.
var Budget Policy = budget{}

// DefaultPolicy is the default timeout policy, Budget.
var DefaultPolicy = Budget

// Fixed constructs a timeout policy that uses the same value to set
// every attempt timeout, ignoring the plan's budget.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (f fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(f)
}

type budget struct{}

func (budget) Timeout(e *request.Execution) time.Duration {
	if e.Plan == nil || e.Plan.Timeout <= 0 {
		return Infinite.Timeout(e)
	}

	return e.Plan.Timeout
}
