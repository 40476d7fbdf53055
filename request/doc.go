// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes one logical
HTTP request), Execution (describes a Plan execution, and doubles as
the failure event of a failed attempt), RetryState (the retry
bookkeeping attached to a Plan), and RetryConfig (optional retry
settings).

Create a plan to make a request with retries:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...
	e, err := client.Do(p)
	...

Override the client's retry defaults for one request by setting the
plan's Retry field. Unset fields keep the client's defaults:

	p.Retry = &request.RetryConfig{
		Retries: retry.Int(0),
	}

A plan may be assigned a context to allow the entire plan execution to
be cancelled, including a pending retry wait:

	p, err := request.NewPlanWithContext(ctx, "POST", "https://example.com/upload", body)
	...

The plan's Timeout field is a budget for each attempt which, unless
ShouldResetTimeout is set, shrinks before each retry by the time
already spent, so that the overall request stays within roughly the
original budget.
*/
package request
