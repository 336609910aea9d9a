//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "treqa.yaml", `
log_level: debug
default_backend: qwen
backends:
  qwen:
    model: Qwen/Qwen2.5-72B-Instruct
    base_url: http://localhost:8000/v1/
    api_key_env: VLLM_KEY
    max_tokens: 512
    temperature: 0.2
    parallelism: 4
    max_retries: 0
  claude:
    provider: anthropic
    model: claude-sonnet
telemetry:
  endpoint: localhost:4318
  protocol: http
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "qwen", cfg.DefaultBackend)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{".env"}, cfg.EnvFiles)

	qwen := cfg.Backends["qwen"]
	assert.Equal(t, DefaultProvider, qwen.Provider)
	assert.Equal(t, 512, *qwen.MaxTokens)
	assert.Equal(t, 0.2, *qwen.Temperature)
	assert.Nil(t, qwen.TopP)
	require.NotNil(t, qwen.MaxRetries)
	assert.Equal(t, 0, *qwen.MaxRetries)
	assert.Equal(t, "anthropic", cfg.Backends["claude"].Provider)
	assert.Equal(t, Telemetry{Endpoint: "localhost:4318", Protocol: "http"}, cfg.Telemetry)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "backends: ["},
		{"no model", "backends:\n  x:\n    provider: openai\n"},
		{"bad protocol", "telemetry:\n  protocol: udp\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", tt.content))
			assert.Error(t, err)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestBackend(t *testing.T) {
	cfg := Default()
	cfg.Backends["judge"] = Backend{Provider: "gemini", Model: "gemini-2.0-flash"}
	tests := []struct {
		name string
		want Backend
	}{
		{"judge", Backend{Provider: "gemini", Model: "gemini-2.0-flash"}},
		{"gpt-4o", Backend{Provider: "openai", Model: "gpt-4o"}},
		{"anthropic:claude-sonnet", Backend{Provider: "anthropic", Model: "claude-sonnet"}},
		{"Unbabel/Tower:7b", Backend{Provider: "openai", Model: "Unbabel/Tower:7b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.Backend(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := cfg.Backend("")
	assert.Error(t, err)

	cfg.DefaultBackend = "judge"
	got, err := cfg.Backend("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", got.Provider)
}

func TestLoadEnvAndAPIKey(t *testing.T) {
	env := writeFile(t, ".env", "TREQA_TEST_KEY=from-file\n")
	t.Setenv("TREQA_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("TREQA_TEST_KEY"))

	cfg := Default()
	cfg.EnvFiles = []string{filepath.Join(t.TempDir(), "missing.env"), env}
	require.NoError(t, cfg.LoadEnv())
	assert.Equal(t, "from-file", Backend{APIKeyEnv: "TREQA_TEST_KEY"}.APIKey())

	t.Setenv("OPENAI_API_KEY", "sk-test")
	assert.Equal(t, "sk-test", Backend{Provider: "openai"}.APIKey())
	assert.Empty(t, Backend{Provider: "custom"}.APIKey())
}

func TestNewGenerator(t *testing.T) {
	var seen []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		seen = append(seen, body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "qwen",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Paris"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	b := Backend{
		Provider:    "openai",
		Model:       "qwen",
		BaseURL:     srv.URL + "/v1/",
		APIKeyEnv:   "TREQA_TEST_KEY",
		MaxTokens:   model.IntPtr(32),
		Parallelism: 1,
		MaxRetries:  model.IntPtr(0),
	}
	t.Setenv("TREQA_TEST_KEY", "k")
	gen, err := b.NewGenerator(t.Context())
	require.NoError(t, err)

	chat := generation.Chat{model.NewUserMessage("Capital of France?")}
	out, err := gen.Generate(t.Context(), []generation.Chat{chat, chat}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Paris"}, out)
	require.Len(t, seen, 1)
	assert.Equal(t, "qwen", seen[0]["model"])
	assert.EqualValues(t, 32, seen[0]["max_completion_tokens"])

	_, err = Backend{Provider: "nope", Model: "m"}.NewGenerator(t.Context())
	assert.Error(t, err)
}
