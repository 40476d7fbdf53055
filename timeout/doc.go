// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the timeout of each HTTP
// request attempt during a plan execution, and the arithmetic used to
// shrink a plan's timeout budget between retries.
package timeout
