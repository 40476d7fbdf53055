// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"syscall"
)

// Transport error codes produced by Code.
const (
	// CodeAborted is the code for an attempt that was aborted on the
	// client side, either because it timed out or because its context
	// was cancelled. Retry conditions treat it specially: an aborted
	// attempt is never considered retryable.
	CodeAborted = "ECONNABORTED"
	// CodeBadResponse is the code conventionally reported by errors
	// which represent an HTTP response with an unacceptable status.
	CodeBadResponse = "ERR_BAD_RESPONSE"
	// CodeNetwork is the fallback code for any error that has no more
	// specific code.
	CodeNetwork = "ERR_NETWORK"
)

// A Coder is an error that reports its own transport error code. Code
// honors the first Coder found in an error chain before any other
// classification.
type Coder interface {
	Code() string
}

// Code reduces err to a transport error code, looking through wrapped
// causes. A nil error produces the empty string; any non-nil error
// produces a non-empty code, CodeNetwork if nothing more specific
// applies.
//
// Client-side timeouts and cancellations produce CodeAborted. A
// connection timed out by the kernel is a network failure and produces
// ETIMEDOUT. DNS failures produce
// ENOTFOUND (no such host) or EAI_AGAIN. Certificate verification
// failures produce OpenSSL-style names such as CERT_HAS_EXPIRED or
// UNABLE_TO_VERIFY_LEAF_SIGNATURE. Socket errors produce their POSIX
// names, for example ECONNRESET.
func Code(err error) string {
	if err == nil {
		return ""
	}

	var c Coder
	if errors.As(err, &c) {
		if code := c.Code(); code != "" {
			return code
		}
	}

	if errors.Is(err, syscall.ETIMEDOUT) {
		return "ETIMEDOUT"
	}

	if errors.Is(err, context.Canceled) || Categorize(err) == Timeout {
		return CodeAborted
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return "ENOTFOUND"
		}
		return "EAI_AGAIN"
	}

	if code := certCode(err); code != "" {
		return code
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if code, ok := errnoCodes[errno]; ok {
			return code
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "ECONNRESET"
	}

	return CodeNetwork
}

var errnoCodes = map[syscall.Errno]string{
	syscall.ECONNRESET:    "ECONNRESET",
	syscall.ECONNREFUSED:  "ECONNREFUSED",
	syscall.ECONNABORTED:  "ECONNABORTED",
	syscall.ETIMEDOUT:     "ETIMEDOUT",
	syscall.EPIPE:         "EPIPE",
	syscall.ENETUNREACH:   "ENETUNREACH",
	syscall.ENETDOWN:      "ENETDOWN",
	syscall.EHOSTUNREACH:  "EHOSTUNREACH",
	syscall.EADDRINUSE:    "EADDRINUSE",
	syscall.EADDRNOTAVAIL: "EADDRNOTAVAIL",
}

func certCode(err error) string {
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return "HOSTNAME_MISMATCH"
	}

	var authorityErr x509.UnknownAuthorityError
	if errors.As(err, &authorityErr) {
		return "UNABLE_TO_VERIFY_LEAF_SIGNATURE"
	}

	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &invalidErr) {
		switch invalidErr.Reason {
		case x509.Expired:
			return "CERT_HAS_EXPIRED"
		case x509.NotAuthorizedToSign, x509.CANotAuthorizedForThisName:
			return "INVALID_CA"
		case x509.TooManyIntermediates:
			return "CERT_CHAIN_TOO_LONG"
		case x509.IncompatibleUsage:
			return "INVALID_PURPOSE"
		case x509.NameMismatch:
			return "CERT_REJECTED"
		default:
			return "CERT_UNTRUSTED"
		}
	}

	return ""
}
