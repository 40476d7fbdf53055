// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

// Allowed is the trust policy for retrying network errors. It reports
// whether an error carrying the given code may ever be retried.
//
// Codes for failures that a retry cannot fix are denied: unresolvable
// host names, unreachable networks, and every certificate verification
// failure. All other codes, including codes this package does not know
// about, are allowed.
func Allowed(code string) bool {
	_, denied := deniedCodes[code]
	return !denied
}

var deniedCodes = map[string]struct{}{
	"ENOTFOUND":                          {},
	"ENETUNREACH":                        {},
	"UNABLE_TO_GET_ISSUER_CERT":          {},
	"UNABLE_TO_GET_CRL":                  {},
	"UNABLE_TO_DECRYPT_CERT_SIGNATURE":   {},
	"UNABLE_TO_DECRYPT_CRL_SIGNATURE":    {},
	"UNABLE_TO_DECODE_ISSUER_PUBLIC_KEY": {},
	"CERT_SIGNATURE_FAILURE":             {},
	"CRL_SIGNATURE_FAILURE":              {},
	"CERT_NOT_YET_VALID":                 {},
	"CERT_HAS_EXPIRED":                   {},
	"CRL_NOT_YET_VALID":                  {},
	"CRL_HAS_EXPIRED":                    {},
	"ERROR_IN_CERT_NOT_BEFORE_FIELD":     {},
	"ERROR_IN_CERT_NOT_AFTER_FIELD":      {},
	"ERROR_IN_CRL_LAST_UPDATE_FIELD":     {},
	"ERROR_IN_CRL_NEXT_UPDATE_FIELD":     {},
	"OUT_OF_MEM":                         {},
	"DEPTH_ZERO_SELF_SIGNED_CERT":        {},
	"SELF_SIGNED_CERT_IN_CHAIN":          {},
	"UNABLE_TO_GET_ISSUER_CERT_LOCALLY":  {},
	"UNABLE_TO_VERIFY_LEAF_SIGNATURE":    {},
	"CERT_CHAIN_TOO_LONG":                {},
	"CERT_REVOKED":                       {},
	"INVALID_CA":                         {},
	"PATH_LENGTH_EXCEEDED":               {},
	"INVALID_PURPOSE":                    {},
	"CERT_UNTRUSTED":                     {},
	"CERT_REJECTED":                      {},
	"HOSTNAME_MISMATCH":                  {},
}
