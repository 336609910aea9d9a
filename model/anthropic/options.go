//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package anthropic

import "github.com/anthropics/anthropic-sdk-go/option"

type options struct {
	apiKey        string
	baseURL       string
	clientOptions []option.RequestOption
}

// Option configures the Anthropic model.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithAnthropicClientOptions appends raw SDK client options.
func WithAnthropicClientOptions(opts ...option.RequestOption) Option {
	return func(o *options) { o.clientOptions = append(o.clientOptions, opts...) }
}
