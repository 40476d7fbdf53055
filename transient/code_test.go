// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code string
	}{
		{"nil", nil, ""},
		{"generic", errors.New("foo"), CodeNetwork},
		{"coder", coder("ERR_CUSTOM"), "ERR_CUSTOM"},
		{"empty coder", coder(""), CodeNetwork},
		{"wrapped coder", &url.Error{Err: wrapper{coder("X")}}, "X"},
		{"context canceled", context.Canceled, CodeAborted},
		{"context deadline", &url.Error{Err: context.DeadlineExceeded}, CodeAborted},
		{"timeout", timeout{}, CodeAborted},
		{"ETIMEDOUT", syscall.ETIMEDOUT, "ETIMEDOUT"},
		{"dial ETIMEDOUT", &url.Error{Err: &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ETIMEDOUT)}}, "ETIMEDOUT"},
		{"read timeout", &url.Error{Err: &net.OpError{Op: "read", Err: timeout{}}}, CodeAborted},
		{"ECONNRESET", &url.Error{Err: syscall.ECONNRESET}, "ECONNRESET"},
		{"ECONNREFUSED", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, "ECONNREFUSED"},
		{"EPIPE", wrapper{syscall.EPIPE}, "EPIPE"},
		{"ENETUNREACH", syscall.ENETUNREACH, "ENETUNREACH"},
		{"EHOSTUNREACH", syscall.EHOSTUNREACH, "EHOSTUNREACH"},
		{"ENETDOWN", syscall.ENETDOWN, "ENETDOWN"},
		{"unknown errno", syscall.EINVAL, CodeNetwork},
		{"dns not found", &url.Error{Err: &net.DNSError{Err: "no such host", IsNotFound: true}}, "ENOTFOUND"},
		{"dns other", &net.DNSError{Err: "server misbehaving"}, "EAI_AGAIN"},
		{"dns timeout", &net.DNSError{Err: "i/o timeout", IsTimeout: true}, CodeAborted},
		{"EOF", &url.Error{Err: io.EOF}, "ECONNRESET"},
		{"unexpected EOF", io.ErrUnexpectedEOF, "ECONNRESET"},
		{"hostname", &url.Error{Err: x509.HostnameError{Host: "foo"}}, "HOSTNAME_MISMATCH"},
		{"unknown authority", x509.UnknownAuthorityError{}, "UNABLE_TO_VERIFY_LEAF_SIGNATURE"},
		{"expired", x509.CertificateInvalidError{Reason: x509.Expired}, "CERT_HAS_EXPIRED"},
		{"not authorized to sign", x509.CertificateInvalidError{Reason: x509.NotAuthorizedToSign}, "INVALID_CA"},
		{"too many intermediates", x509.CertificateInvalidError{Reason: x509.TooManyIntermediates}, "CERT_CHAIN_TOO_LONG"},
		{"incompatible usage", x509.CertificateInvalidError{Reason: x509.IncompatibleUsage}, "INVALID_PURPOSE"},
		{"name mismatch", x509.CertificateInvalidError{Reason: x509.NameMismatch}, "CERT_REJECTED"},
		{"other invalid", x509.CertificateInvalidError{Reason: x509.TooManyConstraints}, "CERT_UNTRUSTED"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.code, Code(testCase.err))
		})
	}
}

func TestAllowed(t *testing.T) {
	for _, code := range []string{"", "ECONNRESET", "ECONNREFUSED", "EPIPE", "EAI_AGAIN", CodeNetwork, CodeAborted, "WHATEVER"} {
		assert.True(t, Allowed(code), fmt.Sprintf("expect %q allowed", code))
	}
	for _, code := range []string{"ENOTFOUND", "ENETUNREACH", "CERT_HAS_EXPIRED", "HOSTNAME_MISMATCH", "UNABLE_TO_VERIFY_LEAF_SIGNATURE", "SELF_SIGNED_CERT_IN_CHAIN"} {
		assert.False(t, Allowed(code), fmt.Sprintf("expect %q denied", code))
	}
}

func TestCodeThenAllowed(t *testing.T) {
	assert.False(t, Allowed(Code(&net.DNSError{IsNotFound: true})))
	assert.False(t, Allowed(Code(x509.HostnameError{})))
	assert.True(t, Allowed(Code(syscall.ECONNRESET)))
}

type coder string

func (c coder) Error() string {
	return "coder " + string(c)
}

func (c coder) Code() string {
	return string(c)
}
