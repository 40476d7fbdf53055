// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpretry provides an HTTP client which retries failed requests
according to configurable eligibility rules, backoff delays and
per-request retry state, within a simple and familiar interface.

Create a Client to begin making requests.

	client := &httpretry.Client{}
	ex, err := client.Get("https://www.example.com")
	...
	ex, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)

By default, a failed attempt is retried up to three times, immediately,
if it failed at the network level or if the method is idempotent and
the server answered 429 or 5XX. Responses are considered failed unless
their status is 2XX. Set client-wide retry defaults with Client.Retry:

	client := &httpretry.Client{
		Retry: &request.RetryConfig{
			Retries: retry.Int(5),
			Delay:   retry.ExponentialDelay,
		},
	}

Override any of the defaults for a single request by setting the
plan's own retry configuration. Fields left unset keep the client's
values:

	p, err := request.NewPlan("POST", "https://www.example.com/jobs", body)
	p.Timeout = 2 * time.Second
	p.Retry = &request.RetryConfig{
		Retries:   retry.Int(2),
		Condition: retry.IsRetryableError,
		Delay:     retry.RetryAfter,
	}
	ex, err := client.Do(p)

The plan's Timeout is a budget shared by all attempts: before each
retry it shrinks by the time spent on the failed attempt plus the retry
delay, unless ShouldResetTimeout is set.

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer, for example a GoLang standard HTTP
client:

	client := &httpretry.Client{
		HTTPDoer: &http.Client{Transport: transport},
	}

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain:

	handlers := &httpretry.HandlerGroup{}
	handlers.PushBack(httpretry.BeforeRetry, httpretry.HandlerFunc(
		func(_ httpretry.Event, e *request.Execution) {
			log.Printf("Retry %d of %s in %s", e.Plan.RetryState().Count,
				e.Request.URL, e.Wait)
		}))
	client := &httpretry.Client{
		Handlers: handlers,
	}

Package metrics installs handlers exporting Prometheus metrics, and
package config loads retry defaults from the environment.

Package httpretry provides basic interfaces for each method of the
client (Doer, Getter, Header, Poster, FormPoster, Putter, Deleter, and
IdleCloser); a combined interface that composes all the basic methods
(Executor); and utility functions for working with a Doer (Inflate,
Get, Head, Post, PostForm, Put, and Delete).
*/
package httpretry
