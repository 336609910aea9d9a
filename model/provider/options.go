//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package provider

import (
	"context"

	"trpc.group/trpc-go/trpc-treqa-go/model/anthropic"
	"trpc.group/trpc-go/trpc-treqa-go/model/gemini"
	"trpc.group/trpc-go/trpc-treqa-go/model/openai"
)

// Options carries everything a Provider may need.
type Options struct {
	ProviderName string
	ModelName    string
	APIKey       string
	BaseURL      string
	// Context is used by providers whose client constructor takes one.
	Context context.Context

	OpenAIOption    []openai.Option
	AnthropicOption []anthropic.Option
	GeminiOption    []gemini.Option
}

// Option mutates Options.
type Option func(*Options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *Options) { o.APIKey = key }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(o *Options) { o.BaseURL = url }
}

// WithContext sets the context used to build the client.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Context = ctx
		}
	}
}

// WithOpenAIOption appends OpenAI specific options.
func WithOpenAIOption(opt ...openai.Option) Option {
	return func(o *Options) { o.OpenAIOption = append(o.OpenAIOption, opt...) }
}

// WithAnthropicOption appends Anthropic specific options.
func WithAnthropicOption(opt ...anthropic.Option) Option {
	return func(o *Options) { o.AnthropicOption = append(o.AnthropicOption, opt...) }
}

// WithGeminiOption appends Gemini specific options.
func WithGeminiOption(opt ...gemini.Option) Option {
	return func(o *Options) { o.GeminiOption = append(o.GeminiOption, opt...) }
}
