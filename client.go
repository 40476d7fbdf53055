// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpretry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/retry"
	"github.com/gogama/httpretry/timeout"
	"github.com/gogama/httpretry/transient"
	"github.com/rs/zerolog"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var (
	emptyHandlers = HandlerGroup{}
	nopLogger     = zerolog.Nop()
)

// A StatusError is the error recorded for an attempt whose HTTP
// response status was rejected by the client's status validation.
// In an Execution it is always wrapped in a *url.Error.
type StatusError struct {
	// StatusCode is the rejected HTTP status code.
	StatusCode int
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("httpretry: request failed with status code %d", err.StatusCode)
}

// Code returns transient.CodeBadResponse.
func (err *StatusError) Code() string {
	return transient.CodeBadResponse
}

// DefaultValidateStatus accepts every 2XX status code. It is the status
// validation used when Client.ValidateStatus is nil.
func DefaultValidateStatus(code int) bool {
	return 200 <= code && code <= 299
}

// A Client is an HTTP client with retry support. Its zero value is a
// valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, the built-in retry defaults of package retry, the timeout
// budget on each plan as the attempt timeout, 2XX-only status
// validation, no logging and an empty handler group (no event
// handlers/plug-ins).
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines,
// but a single request.Plan must not be executed by more than one
// goroutine at a time.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is responsible
// for all details of sending the HTTP request and receiving the response,
// while Client builds on top of the HTTPDoer's feature set. On top of
// the HTTPDoer, Client:
//
// • reads and buffers the entire HTTP response body into a []byte
// (returned as the Execution.Body field);
//
// • treats responses whose status fails validation as failed attempts;
//
// • retries failed attempts according to its default retry
// configuration merged with the plan's own;
//
// • sets individual request attempt timeouts from the plan's timeout
// budget, shrinking the budget between retries; and
//
// • invokes user-provided handler functions at designated plug-in
// points within the attempt/retry loop.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Retry holds the client-wide retry defaults. Each field set in a
	// plan's own Retry configuration overrides the same field here.
	//
	// If Retry is nil, or a field is unset, the defaults of package
	// retry are used. Set it to retry.Never to disable retries.
	Retry *request.RetryConfig
	// TimeoutPolicy specifies how to set timeouts on individual request
	// attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used, which
	// uses the plan's timeout budget.
	TimeoutPolicy timeout.Policy
	// ValidateStatus reports whether an HTTP response status code is
	// acceptable. An attempt receiving an unacceptable status fails
	// with a *StatusError.
	//
	// If ValidateStatus is nil, DefaultValidateStatus is used.
	ValidateStatus func(code int) bool
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives debug messages about retry decisions and warnings
	// about retry configuration errors.
	//
	// If Logger is nil, nothing is logged.
	Logger *zerolog.Logger
}

// Do executes an HTTP request plan and returns the results, following
// the retry configuration and timeout policy set on Client and the plan,
// and low-level policy set on the underlying HTTPDoer.
//
// The result returned is the result after the final HTTP request
// attempt made during the plan execution.
//
// An error is returned if, after doing any retries, the final attempt
// failed. An attempt fails due to failure to speak HTTP (for example a
// network connectivity problem), because of a timeout, because of policy
// on the underlying HTTPDoer (for example relating to redirects), or
// because the response status failed validation. When retrying stops,
// either because the failure is not eligible or because the retry limit
// is reached, the final attempt's error is returned unchanged. The
// caller can tell the two cases apart using the plan's retry count,
// Plan.RetryState().Count.
//
// If the retry delay fails, for example because of an invalid
// Retry-After header, the delay's error is returned instead and the
// attempt is not retried. If the plan's body transformer fails, its
// error is returned and no attempt is made.
//
// The returned Execution is never nil. If an error was returned, the
// Err field of the Execution always references the same error. Any
// returned error is of type *url.Error. The url.Error's Timeout method,
// and the Execution's Timeout method, will return true if the final
// request attempt timed out, or if the entire plan timed out.
//
// For simple use cases, the Get, Head, Post, and PostForm methods may
// prove easier to use than Do.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	e := request.Execution{
		Plan: p,
	}

	doer := c.doer()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	validate := c.ValidateStatus
	if validate == nil {
		validate = DefaultValidateStatus
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	logger := c.logger()

	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

RetryLoop:
	for {
		if err := p.ApplyTransform(); err != nil {
			e.Err = urlErrorWrap(p, err)
			break
		}
		sendAndReceive(p, &e, doer, handlers, timeoutPolicy, validate)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		planCtxErr := p.Context().Err()
		if planCtxErr == context.DeadlineExceeded {
			handlers.run(AfterPlanTimeout, &e)
			break
		} else if planCtxErr != nil {
			e.Err = urlErrorWrap(p, planCtxErr)
			break
		} else if e.Err == nil {
			break
		}

		d, err := retry.Decide(c.Retry, &e)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("method", p.Method).
				Str("url", p.URL.String()).
				Int("attempt", e.Attempt).
				Msg("retry delay failed")
			e.Err = urlErrorWrap(p, err)
			break
		} else if !d.Retry {
			logger.Debug().
				Str("method", p.Method).
				Str("url", p.URL.String()).
				Int("attempt", e.Attempt).
				Int("retries", p.RetryState().Count).
				Int("status", e.StatusCode()).
				Str("code", e.Code()).
				Msg("not retrying")
			break
		}

		e.Wait = d.Delay
		logger.Debug().
			Str("method", p.Method).
			Str("url", p.URL.String()).
			Int("attempt", e.Attempt).
			Int("retries", p.RetryState().Count).
			Int("status", e.StatusCode()).
			Str("code", e.Code()).
			Dur("delay", e.Wait).
			Msg("retry scheduled")
		handlers.run(BeforeRetry, &e)
		wait := nonNegative(e.Wait)
		retry.Prepare(p, d.Policy, wait, time.Now())

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-p.Context().Done():
			timer.Stop()
			err := p.Context().Err()
			e.Err = urlErrorWrap(p, err)
			if err == context.DeadlineExceeded {
				handlers.run(AfterPlanTimeout, &e)
			}
			break RetryLoop
		}
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Wait = 0
		e.Attempt++
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

func sendAndReceive(p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy, validate func(int) bool) {
	ctx, cancel := context.WithTimeout(p.Context(), timeoutPolicy.Timeout(e))
	defer cancel()
	e.Request = p.ToRequest(ctx)
	p.RetryState().Touch(time.Now())
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
		return
	}
	readBody(p, e, handlers)
	if e.Err == nil && !validate(e.Response.StatusCode) {
		e.Err = urlErrorWrap(p, &StatusError{StatusCode: e.Response.StatusCode})
	}
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Client) Head(url string) (*request.Execution, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.NewPlan, request.BodyBytes, and
// httpretry.Post, namely: string; []byte; io.Reader; and io.ReadCloser.
//
// POST is not idempotent, so by default only network failures, not
// 5XX responses, are retried.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewPlan and Client.Do.
func (c *Client) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(c, url, data)
}

// Put issues a PUT to the specified URL, using the same policies
// followed by Do. The body parameter accepts the same types as Post.
func (c *Client) Put(url, contentType string, body interface{}) (*request.Execution, error) {
	return Put(c, url, contentType, body)
}

// Delete issues a DELETE to the specified URL, using the same policies
// followed by Do.
func (c *Client) Delete(url string) (*request.Execution, error) {
	return Delete(c, url)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger == nil {
		return &nopLogger
	}

	return c.Logger
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
