// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/timeout"
)

// A Decision is the outcome of Decide for one failed attempt.
type Decision struct {
	// Retry is true if the plan should be dispatched again.
	Retry bool
	// Delay is the wait before the retry. It is only meaningful when
	// Retry is true.
	Delay time.Duration
	// Policy is the effective policy the decision was made under. It is
	// the zero Policy if the execution has no plan.
	Policy Policy
}

// Decide decides whether the failed attempt described by e is retried,
// and how long to wait first. Parameter defaults holds the client-wide
// retry configuration and may be nil.
//
// An attempt is retried if the effective policy's condition accepts it,
// the plan's retry count is below the policy's retry limit, and the
// delay is not negative. When the first two hold, the retry count is
// incremented before the delay is computed, even if the delay then
// vetoes the retry.
//
// An execution without a plan is never retried. If the delay function
// fails, Decide returns its error and the attempt must not be retried.
func Decide(defaults *request.RetryConfig, e *request.Execution) (Decision, error) {
	if e.Plan == nil {
		return Decision{}, nil
	}

	d := Decision{Policy: Resolve(defaults, e.Plan.Retry)}
	state := e.Plan.RetryState()
	if !d.Policy.Condition(e) || state.Count >= d.Policy.Retries {
		return d, nil
	}

	state.Count++
	delay, err := d.Policy.Delay(state.Count, e)
	if err != nil {
		return d, err
	}
	if delay < 0 {
		return d, nil
	}

	d.Retry = true
	d.Delay = delay
	return d, nil
}

// Prepare mutates plan p for a retry that will be dispatched after
// delay, given that the current time is now.
//
// Unless pol.ShouldResetTimeout is set, a positive timeout budget is
// shrunk by the time elapsed since the last dispatch plus the delay,
// never going below timeout.Floor. The body transformer is removed
// since the body was already transformed for the first dispatch.
func Prepare(p *request.Plan, pol Policy, delay time.Duration, now time.Time) {
	state := p.RetryState()
	if !pol.ShouldResetTimeout && p.Timeout > 0 && state.Dispatched() {
		p.Timeout = timeout.Shrink(p.Timeout, now.Sub(state.LastRequestTime), delay)
	}
	p.TransformBody = nil
}
