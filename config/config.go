// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client-wide retry defaults from built-in
// defaults, environment variables and explicit overrides, and turns
// them into a request.RetryConfig for httpretry.Client.
//
// Environment variables use the prefix HTTPRETRY_ followed by the
// upper-case setting name, for example HTTPRETRY_RETRIES=5 or
// HTTPRETRY_FIXED_DELAY=250ms.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/retry"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "HTTPRETRY_"

// Names accepted by Settings.Condition.
const (
	ConditionNetworkOrIdempotent = "network_or_idempotent"
	ConditionNetwork             = "network"
	ConditionRetryable           = "retryable"
	ConditionSafe                = "safe"
	ConditionIdempotent          = "idempotent"
)

// Names accepted by Settings.Delay.
const (
	DelayNone        = "none"
	DelayFixed       = "fixed"
	DelayExponential = "exponential"
	DelayRetryAfter  = "retry_after"
	DelayBackoff     = "backoff"
)

// Settings holds retry defaults in a form that can be loaded from
// configuration sources.
type Settings struct {
	// Retries is the maximum number of retries after the first attempt.
	Retries int `koanf:"retries" validate:"gte=0,lte=100"`
	// Condition names the retry condition.
	Condition string `koanf:"condition" validate:"oneof=network_or_idempotent network retryable safe idempotent"`
	// Delay names the retry delay.
	Delay string `koanf:"delay" validate:"oneof=none fixed exponential retry_after backoff"`
	// FixedDelay is the wait used by the "fixed" delay.
	FixedDelay time.Duration `koanf:"fixed_delay" validate:"gte=0"`
	// BackoffBase and BackoffMax parameterize the "backoff" delay,
	// retry.NewExpDelay.
	BackoffBase time.Duration `koanf:"backoff_base" validate:"gt=0"`
	BackoffMax  time.Duration `koanf:"backoff_max" validate:"gtefield=BackoffBase"`
	// ShouldResetTimeout keeps the full timeout budget on every retry.
	ShouldResetTimeout bool `koanf:"should_reset_timeout"`
}

var validate = validator.New()

// Default returns the built-in settings, which match the defaults of
// package retry.
func Default() Settings {
	return Settings{
		Retries:     retry.DefaultRetries,
		Condition:   ConditionNetworkOrIdempotent,
		Delay:       DelayNone,
		BackoffBase: 50 * time.Millisecond,
		BackoffMax:  time.Second,
	}
}

// Load loads settings from three sources, each overriding the previous
// one: the built-in defaults, environment variables with EnvPrefix, and
// overrides. Keys of overrides are the koanf tag names of Settings, for
// example "retries" or "fixed_delay". Overrides may be nil.
//
// Durations may be given as time.Duration values or as strings such as
// "250ms". The loaded settings are validated.
func Load(overrides map[string]any) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("httpretry/config: failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), v
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("httpretry/config: failed to load environment variables: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("httpretry/config: failed to load overrides: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("httpretry/config: failed to unmarshal settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks that every field of s holds an acceptable value.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("httpretry/config: invalid settings: %w", err)
	}
	return nil
}

// RetryConfig converts s into a retry configuration with every field
// set, suitable for httpretry.Client.Retry.
func (s *Settings) RetryConfig() *request.RetryConfig {
	return &request.RetryConfig{
		Retries:            retry.Int(s.Retries),
		Condition:          conditions[s.Condition],
		Delay:              s.delay(),
		ShouldResetTimeout: retry.Bool(s.ShouldResetTimeout),
	}
}

var conditions = map[string]retry.ConditionFunc{
	ConditionNetworkOrIdempotent: retry.IsNetworkOrIdempotentRequestError,
	ConditionNetwork:             retry.IsNetworkError,
	ConditionRetryable:           retry.IsRetryableError,
	ConditionSafe:                retry.IsSafeRequestError,
	ConditionIdempotent:          retry.IsIdempotentRequestError,
}

func (s *Settings) delay() retry.DelayFunc {
	switch s.Delay {
	case DelayFixed:
		return retry.Fixed(s.FixedDelay)
	case DelayExponential:
		return retry.ExponentialDelay
	case DelayRetryAfter:
		return retry.RetryAfter
	case DelayBackoff:
		return retry.NewExpDelay(s.BackoffBase, s.BackoffMax, time.Now())
	default:
		return retry.NoDelay
	}
}

func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"retries":              d.Retries,
		"condition":            d.Condition,
		"delay":                d.Delay,
		"fixed_delay":          d.FixedDelay.String(),
		"backoff_base":         d.BackoffBase.String(),
		"backoff_max":          d.BackoffMax.String(),
		"should_reset_timeout": d.ShouldResetTimeout,
	}
}
