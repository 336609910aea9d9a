//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package provider resolves a generation backend by provider name so that
// configuration files and CLI flags can select one by string.
package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"trpc.group/trpc-go/trpc-treqa-go/model"
	"trpc.group/trpc-go/trpc-treqa-go/model/anthropic"
	"trpc.group/trpc-go/trpc-treqa-go/model/gemini"
	"trpc.group/trpc-go/trpc-treqa-go/model/openai"
)

func init() {
	Register("openai", openaiProvider)
	Register("anthropic", anthropicProvider)
	Register("gemini", geminiProvider)
}

// Provider builds a model from options.
type Provider func(opts *Options) (model.Model, error)

var (
	providersMu sync.RWMutex
	providers   = make(map[string]Provider)
)

// Register adds or replaces a provider.
func Register(name string, provider Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = provider
}

// Get returns the provider registered under name.
func Get(name string) (Provider, bool) {
	providersMu.RLock()
	defer providersMu.RUnlock()
	provider, ok := providers[name]
	return provider, ok
}

// Names returns the registered provider names, sorted.
func Names() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Model creates a model through the named provider.
func Model(providerName, modelName string, opt ...Option) (model.Model, error) {
	opts := &Options{
		ProviderName: providerName,
		ModelName:    modelName,
		Context:      context.Background(),
	}
	for _, o := range opt {
		o(opts)
	}
	provider, ok := Get(providerName)
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}
	return provider(opts)
}

func openaiProvider(opts *Options) (model.Model, error) {
	var res []openai.Option
	if opts.APIKey != "" {
		res = append(res, openai.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		res = append(res, openai.WithBaseURL(opts.BaseURL))
	}
	res = append(res, opts.OpenAIOption...)
	return openai.New(opts.ModelName, res...), nil
}

func anthropicProvider(opts *Options) (model.Model, error) {
	var res []anthropic.Option
	if opts.APIKey != "" {
		res = append(res, anthropic.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		res = append(res, anthropic.WithBaseURL(opts.BaseURL))
	}
	res = append(res, opts.AnthropicOption...)
	return anthropic.New(opts.ModelName, res...), nil
}

func geminiProvider(opts *Options) (model.Model, error) {
	var res []gemini.Option
	if opts.APIKey != "" {
		res = append(res, gemini.WithAPIKey(opts.APIKey))
	}
	res = append(res, opts.GeminiOption...)
	return gemini.New(opts.Context, opts.ModelName, res...)
}
