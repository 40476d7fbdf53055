// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShrink(t *testing.T) {
	testCases := []struct {
		budget, elapsed, delay time.Duration
		expected               time.Duration
	}{
		{time.Second, 0, 0, time.Second},
		{time.Second, 200 * time.Millisecond, 300 * time.Millisecond, 500 * time.Millisecond},
		{time.Second, 999 * time.Millisecond, 0, time.Millisecond},
		{time.Second, time.Second, 0, Floor},
		{time.Second, 2 * time.Second, time.Second, Floor},
		{time.Second, -time.Second, -time.Second, time.Second},
		{10 * time.Millisecond, 0, time.Duration(math.MaxInt64), Floor},
		{time.Duration(math.MaxInt64), time.Duration(math.MaxInt64), 0, Floor},
	}

	for i, testCase := range testCases {
		t.Run(fmt.Sprintf("testCases[%d]", i), func(t *testing.T) {
			actual := Shrink(testCase.budget, testCase.elapsed, testCase.delay)
			assert.Equal(t, testCase.expected, actual)
			assert.GreaterOrEqual(t, actual, Floor)
		})
	}
}
