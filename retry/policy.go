// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "github.com/gogama/httpretry/request"

// DefaultRetries is the retry limit used when neither the client nor
// the plan sets one.
const DefaultRetries = 3

// A Policy is the effective retry configuration for one failed attempt,
// obtained by merging the client defaults with the plan's override
// using Resolve. Every field is set.
type Policy struct {
	// Retries is the maximum number of retries after the initial attempt.
	Retries int
	// Condition decides whether a failed attempt is eligible for retry.
	Condition ConditionFunc
	// Delay computes the wait before a retry, or vetoes it.
	Delay DelayFunc
	// ShouldResetTimeout keeps the full timeout budget on every retry.
	ShouldResetTimeout bool
}

// DefaultPolicy is the policy Resolve returns when no configuration is
// set at all.
var DefaultPolicy = Policy{
	Retries:   DefaultRetries,
	Condition: DefaultCondition,
	Delay:     DefaultDelay,
}

// Never is a retry configuration that disables retries. Set it as the
// client's defaults, or as a plan's override, to turn retrying off.
var Never = &request.RetryConfig{Retries: Int(0)}

// Resolve merges the client defaults with a plan's override into the
// effective Policy. Each field set in override wins over the same field
// in defaults, which in turn wins over DefaultPolicy. Either argument
// may be nil.
//
// Resolve has no side effects, so calling it repeatedly with the same
// arguments gives the same Policy.
func Resolve(defaults, override *request.RetryConfig) Policy {
	p := DefaultPolicy
	p.overlay(defaults)
	p.overlay(override)
	return p
}

func (p *Policy) overlay(c *request.RetryConfig) {
	if c == nil {
		return
	}
	if c.Retries != nil {
		p.Retries = *c.Retries
		if p.Retries < 0 {
			p.Retries = 0
		}
	}
	if c.Condition != nil {
		p.Condition = c.Condition
	}
	if c.Delay != nil {
		p.Delay = c.Delay
	}
	if c.ShouldResetTimeout != nil {
		p.ShouldResetTimeout = *c.ShouldResetTimeout
	}
}

// Int returns a pointer to n, for setting request.RetryConfig.Retries.
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b, for setting
// request.RetryConfig.ShouldResetTimeout.
func Bool(b bool) *bool {
	return &b
}
