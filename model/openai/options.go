//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	"context"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
)

// ChatRequestCallbackFunc observes a request before it is sent.
type ChatRequestCallbackFunc func(ctx context.Context, chatRequest *openai.ChatCompletionNewParams)

type options struct {
	// APIKey for the OpenAI client.
	APIKey string
	// BaseURL is optional for OpenAI itself and required for compatible servers.
	BaseURL string
	// OpenAIOptions are appended to the client options.
	OpenAIOptions []openaiopt.RequestOption
	// ChatRequestCallback is invoked before each request.
	ChatRequestCallback ChatRequestCallbackFunc
}

// Option configures the OpenAI model.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.APIKey = key }
}

// WithBaseURL sets the API base URL, e.g. a vLLM or LiteLLM endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.BaseURL = url }
}

// WithOpenAIOptions appends raw openai-go request options.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) { o.OpenAIOptions = append(o.OpenAIOptions, opts...) }
}

// WithChatRequestCallback registers a callback run before each request.
func WithChatRequestCallback(fn ChatRequestCallbackFunc) Option {
	return func(o *options) { o.ChatRequestCallback = fn }
}
