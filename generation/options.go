//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package generation

import (
	"time"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

const (
	defaultParallelism  = 8
	defaultMaxRetries   = 10
	defaultRetryBackoff = 500 * time.Millisecond
	defaultMaxTokens    = 1024
	defaultTemperature  = 0.0
	defaultTopP         = 1.0
)

// Option configures a Deduplicator.
type Option func(*options)

type options struct {
	name string
}

var defaultOptions = options{name: "default"}

// WithName labels the generator in logs, spans and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// BackendOption configures a ModelBackend.
type BackendOption func(*backendOptions)

type backendOptions struct {
	parallelism  int
	maxRetries   int
	retryBackoff time.Duration
	config       model.GenerationConfig
}

func defaultBackendOptions() backendOptions {
	return backendOptions{
		parallelism:  defaultParallelism,
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
		config: model.GenerationConfig{
			MaxTokens:   model.IntPtr(defaultMaxTokens),
			Temperature: model.Float64Ptr(defaultTemperature),
			TopP:        model.Float64Ptr(defaultTopP),
		},
	}
}

// WithParallelism bounds the number of in-flight requests. Values below
// one are ignored.
func WithParallelism(n int) BackendOption {
	return func(o *backendOptions) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithMaxRetries sets how often a failed or truncated request is retried.
func WithMaxRetries(n int) BackendOption {
	return func(o *backendOptions) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithRetryBackoff sets the base delay between retries. The n-th retry
// waits n times the base.
func WithRetryBackoff(d time.Duration) BackendOption {
	return func(o *backendOptions) { o.retryBackoff = d }
}

// WithGenerationConfig overrides the sampling parameters. Nil fields keep
// the defaults (1024 tokens, temperature 0, top_p 1).
func WithGenerationConfig(cfg model.GenerationConfig) BackendOption {
	return func(o *backendOptions) {
		if cfg.MaxTokens != nil {
			o.config.MaxTokens = cfg.MaxTokens
		}
		if cfg.Temperature != nil {
			o.config.Temperature = cfg.Temperature
		}
		if cfg.TopP != nil {
			o.config.TopP = cfg.TopP
		}
		if cfg.Stop != nil {
			o.config.Stop = cfg.Stop
		}
	}
}
