// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpretry

import (
	"net/url"

	"github.com/gogama/httpretry/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes a request plan, retrying failed attempts according to its
// retry configuration, and returns the final execution state (and
// error, if any). Client implements Doer. Other implementations should
// honor the same retry contract as Client.Do, in particular the
// RetryState attached to the plan.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// Getter is the interface that wraps the basic Get method, which
// executes a GET plan for a URL.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string) (*request.Execution, error)
}

// Header is the interface that wraps the basic Head method, which
// executes a HEAD plan for a URL.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(url string) (*request.Execution, error)
}

// Poster is the interface that wraps the basic Post method, which
// executes a POST plan with the given content type and body.
//
// The body parameter may be nil for an empty body, or any type accepted
// by request.BodyBytes: string, []byte, io.Reader or io.ReadCloser.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url, contentType string, body interface{}) (*request.Execution, error)
}

// FormPoster is the interface that wraps the basic PostForm method,
// which executes a POST plan whose body is the URL-encoded form data.
//
// Any Doer can be used to emulate a FormPoster via the PostForm
// function.
type FormPoster interface {
	PostForm(url string, data url.Values) (*request.Execution, error)
}

// Putter is the interface that wraps the basic Put method, which
// executes a PUT plan with the given content type and body. PUT is
// idempotent, so the default retry condition retries 5XX and 429
// responses as well as network failures.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(url, contentType string, body interface{}) (*request.Execution, error)
}

// Deleter is the interface that wraps the basic Delete method, which
// executes a DELETE plan for a URL.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(url string) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method, which closes idle keep-alive connections held by the
// underlying transport, if it supports doing so.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor groups the Doer interface with all the convenience method
// interfaces.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Header
	Poster
	FormPoster
	Putter
	Deleter
	IdleCloser
}

// Get uses d to execute a GET plan for url.
//
// To set headers or a per-request retry configuration, use
// request.NewPlan and d.Do.
func Get(d Doer, url string) (*request.Execution, error) {
	return do(d, "GET", url, "", nil)
}

// Head uses d to execute a HEAD plan for url.
func Head(d Doer, url string) (*request.Execution, error) {
	return do(d, "HEAD", url, "", nil)
}

// Post uses d to execute a POST plan for url with the given content
// type and body. See Poster for the accepted body types.
func Post(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	return do(d, "POST", url, contentType, body)
}

// PostForm uses d to execute a POST plan for url, with data's keys and
// values URL-encoded as the request body and the Content-Type header set
// to application/x-www-form-urlencoded.
func PostForm(d Doer, url string, data url.Values) (*request.Execution, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data.Encode())
}

// Put uses d to execute a PUT plan for url with the given content type
// and body. See Poster for the accepted body types.
func Put(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	return do(d, "PUT", url, contentType, body)
}

// Delete uses d to execute a DELETE plan for url.
func Delete(d Doer, url string) (*request.Execution, error) {
	return do(d, "DELETE", url, "", nil)
}

func do(d Doer, method, url, contentType string, body interface{}) (*request.Execution, error) {
	p, err := request.NewPlan(method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		p.Header.Set("Content-Type", contentType)
	}
	return d.Do(p)
}

// Inflate converts any non-nil Doer into an Executor. If d already is an
// Executor, it is returned as is.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("httpretry: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(p *request.Plan) (*request.Execution, error) {
	return i.doer.Do(p)
}

func (i inflated) Get(url string) (*request.Execution, error) {
	return Get(i.doer, url)
}

func (i inflated) Head(url string) (*request.Execution, error) {
	return Head(i.doer, url)
}

func (i inflated) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(i.doer, url, contentType, body)
}

func (i inflated) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(i.doer, url, data)
}

func (i inflated) Put(url, contentType string, body interface{}) (*request.Execution, error) {
	return Put(i.doer, url, contentType, body)
}

func (i inflated) Delete(url string) (*request.Execution, error) {
	return Delete(i.doer, url)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
