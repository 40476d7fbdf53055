// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogama/httpretry/request"
)

// The DelayFunc type is an adapter to allow the use of ordinary
// functions as retry delays. A retry delay returns how long to wait
// before a retry, given the one-based retry number (1 for the first
// retry) and the failed attempt.
//
// A negative delay vetoes the retry. A non-nil error aborts the whole
// plan execution and is returned to the caller without retrying.
//
// Every DelayFunc must be safe for concurrent use by multiple
// goroutines, and must not do I/O.
type DelayFunc func(attempt int, e *request.Execution) (time.Duration, error)

// DefaultDelay is the retry delay used when neither the client nor the
// plan sets one.
var DefaultDelay DelayFunc = NoDelay

// A RetryAfterError is returned by RetryAfter when the Retry-After
// header is neither a number of seconds nor an HTTP date.
type RetryAfterError struct {
	// Value is the offending header value.
	Value string
}

func (err *RetryAfterError) Error() string {
	return "httpretry/retry: unexpected Retry-After value " + strconv.Quote(err.Value)
}

// NoDelay is a retry delay which always returns zero.
func NoDelay(_ int, _ *request.Execution) (time.Duration, error) {
	return 0, nil
}

// Fixed constructs a retry delay which always returns d.
func Fixed(d time.Duration) DelayFunc {
	return func(_ int, _ *request.Execution) (time.Duration, error) {
		return d, nil
	}
}

const (
	expUnit     = 100 * time.Millisecond
	expMaxShift = 36
	maxDuration = time.Duration(1<<63 - 1)
)

// ExponentialDelay is a retry delay that doubles with every retry. For
// retry number n the base delay is 2**n * 100 milliseconds, and up to
// 20% of the base is added as random jitter. The result lies between
// 100 * 2**n and 120 * 2**n milliseconds until it saturates at the
// maximum time.Duration.
func ExponentialDelay(attempt int, _ *request.Execution) (time.Duration, error) {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > expMaxShift {
		return maxDuration, nil
	}

	base := expUnit << uint(attempt)
	jitter := time.Duration(rand.Int63n(int64(base/5) + 1))
	return base + jitter, nil
}

// RetryAfter is a retry delay which obeys the Retry-After header of the
// failed attempt's response.
//
// If there is no header, the delay is zero. Surrounding whitespace is
// ignored. An integer number of seconds is converted into a duration; a
// negative number gives a negative delay, vetoing the retry. An HTTP date gives the time remaining until
// that date, which is negative if the date is in the past, vetoing the
// retry. Any other value is a configuration error and RetryAfter returns
// a *RetryAfterError.
func RetryAfter(_ int, e *request.Execution) (time.Duration, error) {
	v := strings.TrimSpace(e.Header().Get("Retry-After"))
	if v == "" {
		return 0, nil
	}

	s, err := strconv.ParseInt(v, 10, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		const limit = int64(maxDuration / time.Second)
		switch {
		case s > limit:
			return maxDuration, nil
		case s < -limit:
			return -maxDuration, nil
		}
		return time.Duration(s) * time.Second, nil
	}

	if t, err := http.ParseTime(v); err == nil {
		return t.Sub(now()), nil
	}

	return 0, &RetryAfterError{Value: v}
}

var now = time.Now

// NewExpDelay constructs a retry delay implementing an exponential
// backoff formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// ceiling for retry number n:
//
//	ceil := min(base * 2**(n-1), max)
//
// Base and max must be positive values, and max must be at least equal
// to base.
//
// Parameter jitter is used to generate a random number between 0 and
// ceil. To make a delay that does not jitter and simply returns ceil on
// each retry, pass nil for jitter. Otherwise you may specify either a
// random number generator seed value (as a time.Time, int, or int64) or
// a random number generator (as a *rand.Rand or rand.Source).
func NewExpDelay(base, max time.Duration, jitter interface{}) DelayFunc {
	if base < 1 {
		panic("httpretry/retry: base must be positive")
	}
	if max < base {
		panic("httpretry/retry: max must be at least base")
	}
	d := &expDelay{
		base: base,
		max:  max,
		rand: jitterToRand(jitter),
	}
	return d.delay
}

type expDelay struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (d *expDelay) delay(attempt int, _ *request.Execution) (time.Duration, error) {
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	exp := int64(1) << uint(shift)
	if exp < 1 || shift > 62 {
		exp = 1<<63 - 1
	}

	ceil := int64(d.base) * exp
	if ceil/exp != int64(d.base) || int64(d.max) < ceil {
		ceil = int64(d.max)
	}

	duration := ceil
	if d.rand != nil {
		d.lock.Lock()
		defer d.lock.Unlock()
		duration = d.rand.Int63n(ceil)
	}

	return time.Duration(duration), nil
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("httpretry/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("httpretry/retry: invalid jitter type")
	}
	return rand.New(s)
}
