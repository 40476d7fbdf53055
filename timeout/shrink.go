// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import "time"

// Floor is the smallest timeout budget Shrink ever returns. A zero or
// negative timeout means "no timeout" to most transports, so a budget
// that is used up must stay positive.
const Floor = time.Millisecond

// Shrink returns what is left of the timeout budget after elapsed time
// has been spent on the previous attempt and delay will be spent
// waiting for the next one. The result is never less than Floor.
func Shrink(budget, elapsed, delay time.Duration) time.Duration {
	if elapsed < 0 {
		elapsed = 0
	}
	if delay < 0 {
		delay = 0
	}

	left := budget - elapsed - delay
	if left < Floor || left > budget {
		return Floor
	}

	return left
}
