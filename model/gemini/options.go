//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package gemini

import "google.golang.org/genai"

type options struct {
	clientConfig  *genai.ClientConfig
	topK          *float32
	safetyFilters bool
}

var defaultOptions = options{
	clientConfig:  &genai.ClientConfig{Backend: genai.BackendGeminiAPI},
	safetyFilters: true,
}

// Option configures the Gemini model.
type Option func(*options)

// WithAPIKey sets the Gemini API key.
func WithAPIKey(key string) Option {
	return func(o *options) {
		cfg := *o.clientConfig
		cfg.APIKey = key
		o.clientConfig = &cfg
	}
}

// WithClientConfig replaces the genai client configuration.
func WithClientConfig(cfg *genai.ClientConfig) Option {
	return func(o *options) {
		if cfg != nil {
			o.clientConfig = cfg
		}
	}
}

// WithTopK sets top-k sampling.
func WithTopK(k float32) Option {
	return func(o *options) { o.topK = &k }
}

// WithSafetyFilters toggles the default harm filters. Disabled filters use
// BLOCK_NONE for hate speech, harassment, sexual and dangerous content.
func WithSafetyFilters(enabled bool) Option {
	return func(o *options) { o.safetyFilters = enabled }
}
