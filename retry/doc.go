// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether a failed attempt during an HTTP request
// plan execution is retried, and how long to wait before retrying.
//
// Retry behavior is configured with request.RetryConfig, once on the
// client as defaults and optionally per plan as an override. Resolve
// merges the two into an effective Policy. Decide applies a Policy to a
// failed attempt and Prepare adjusts the plan before it is dispatched
// again.
//
// The package provides ready-made retry conditions and delays which can
// be used in a RetryConfig or composed into custom ones:
//
//	cfg := &request.RetryConfig{
//		Retries: retry.Int(5),
//		Condition: retry.ConditionFunc(retry.IsIdempotentRequestError).
//			Or(retry.StatusCode(409)).
//			And(retry.Before(10 * time.Second)),
//		Delay: retry.ExponentialDelay,
//	}
//
// The default condition, IsNetworkOrIdempotentRequestError, retries
// network failures for any method and 5xx and 429 responses for
// idempotent methods. The default delay is NoDelay and the default
// retry limit is DefaultRetries.
package retry
