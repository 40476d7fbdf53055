// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from HTTP request execution as
// transient or non-transient, and names them with short transport error
// codes. This is handy for writing retry conditions, and for other
// purposes such as bucketing error metrics.
//
// Categorize reports a coarse transience category. Code reduces an
// error to a string code such as "ECONNRESET" or "ENOTFOUND", and
// Allowed is the trust policy deciding whether an error carrying a
// given code is ever safe to retry.
//
// Package transient depends only on the standard library, so it doesn't
// bring any significant dependencies when imported as a standalone
// package.
package transient
