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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

type fakeModel struct{ name string }

func (f *fakeModel) GenerateContent(context.Context, *model.Request) (*model.Response, error) {
	return &model.Response{}, nil
}

func (f *fakeModel) Info() model.Info { return model.Info{Name: f.name} }

// TestBuiltinProviders checks that the built-in providers are registered and
// build models carrying the requested name.
func TestBuiltinProviders(t *testing.T) {
	assert.Subset(t, Names(), []string{"anthropic", "gemini", "openai"})

	for _, name := range []string{"openai", "anthropic"} {
		t.Run(name, func(t *testing.T) {
			m, err := Model(name, "m-1", WithAPIKey("k"), WithBaseURL("http://localhost:1/"))
			require.NoError(t, err)
			assert.Equal(t, "m-1", m.Info().Name)
		})
	}
}

// TestRegisterCustom verifies that custom providers receive the options.
func TestRegisterCustom(t *testing.T) {
	var got *Options
	Register("fake", func(opts *Options) (model.Model, error) {
		got = opts
		return &fakeModel{name: opts.ModelName}, nil
	})
	t.Cleanup(func() {
		providersMu.Lock()
		delete(providers, "fake")
		providersMu.Unlock()
	})

	m, err := Model("fake", "tiny", WithAPIKey("secret"), WithContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, "tiny", m.Info().Name)
	assert.Equal(t, "secret", got.APIKey)
	assert.Equal(t, "fake", got.ProviderName)
}

// TestUnknownProvider returns an error naming the provider.
func TestUnknownProvider(t *testing.T) {
	_, err := Model("vllm-local", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vllm-local")
}
