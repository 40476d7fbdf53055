// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/transient"
)

// The ConditionFunc type is an adapter to allow the use of ordinary
// functions as retry conditions. A retry condition examines a failed
// attempt and reports whether it is eligible for a retry. Whether the
// retry actually happens also depends on the retry limit and the delay.
//
// Every ConditionFunc must be safe for concurrent use by multiple
// goroutines.
//
// Simple ConditionFunc functions can be composed into complex decision
// trees using the logical composition functions ConditionFunc.And and
// ConditionFunc.Or.
type ConditionFunc func(e *request.Execution) bool

// DefaultCondition is the retry condition used when neither the client
// nor the plan sets one.
var DefaultCondition ConditionFunc = IsNetworkOrIdempotentRequestError

// TransientErr is a retry condition that is true if the current error
// is transient according to transient.Categorize.
//
// TransientErr only looks at the error, so it will always return false
// if the attempt failed only because of its HTTP status. Compose it with
// other conditions, for example a status code condition constructed with
// StatusCode, to get more complex functionality.
var TransientErr ConditionFunc = transientErr

// And composes two retry conditions into a new condition which returns
// true if both sub-conditions return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f ConditionFunc) And(g ConditionFunc) ConditionFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two retry conditions into a new condition which returns
// true if either of the two sub-conditions returns true, but false if
// they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f ConditionFunc) Or(g ConditionFunc) ConditionFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// IsNetworkError reports whether the attempt failed at the network
// level: no response was received, the error has a code other than
// transient.CodeAborted, and transient.Allowed approves the code.
func IsNetworkError(e *request.Execution) bool {
	if e.Response != nil {
		return false
	}
	code := e.Code()
	return code != "" && code != transient.CodeAborted && transient.Allowed(code)
}

// IsRetryableError reports whether the attempt failed in a way that is
// usually transient: the error is not transient.CodeAborted, and either
// no response was received or the response status is 429 (Too Many
// Requests) or in the 5xx range.
func IsRetryableError(e *request.Execution) bool {
	if e.Code() == transient.CodeAborted {
		return false
	}
	if e.Response == nil {
		return true
	}
	s := e.StatusCode()
	return s == 429 || (500 <= s && s <= 599)
}

// IsSafeRequestError reports whether IsRetryableError is true and the
// plan's method is safe: GET, HEAD or OPTIONS. It is false if the
// execution has no plan.
func IsSafeRequestError(e *request.Execution) bool {
	return methodIn(e, safeMethods) && IsRetryableError(e)
}

// IsIdempotentRequestError reports whether IsRetryableError is true and
// the plan's method is idempotent: GET, HEAD, OPTIONS, PUT or DELETE.
// It is false if the execution has no plan.
func IsIdempotentRequestError(e *request.Execution) bool {
	return methodIn(e, idempotentMethods) && IsRetryableError(e)
}

// IsNetworkOrIdempotentRequestError is true if either IsNetworkError or
// IsIdempotentRequestError is true.
func IsNetworkOrIdempotentRequestError(e *request.Execution) bool {
	return IsNetworkError(e) || IsIdempotentRequestError(e)
}

// Before constructs a retry condition allowing retries until a certain
// amount of time has elapsed since the start of the logical HTTP request
// plan execution. The returned condition returns true while the execution
// duration is less than d, and false afterward.
func Before(d time.Duration) ConditionFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode constructs a retry condition allowing retries based on the
// HTTP response status code. If the most recent request attempt within
// the plan execution received an HTTP response, and the response status
// code is contained in the list ss, the condition returns true.
// Otherwise, it returns false.
func StatusCode(ss ...int) ConditionFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(e *request.Execution) bool {
		for _, s := range ss2 {
			if e.StatusCode() == s {
				return true
			}
		}
		return false
	}
}

var (
	safeMethods = map[string]bool{
		"GET":     true,
		"HEAD":    true,
		"OPTIONS": true,
	}
	idempotentMethods = map[string]bool{
		"GET":     true,
		"HEAD":    true,
		"OPTIONS": true,
		"PUT":     true,
		"DELETE":  true,
	}
)

func methodIn(e *request.Execution, set map[string]bool) bool {
	m, ok := e.Method()
	return ok && set[m]
}

func transientErr(e *request.Execution) bool {
	return transient.Categorize(e.Err) != transient.Not
}
