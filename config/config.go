//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads the YAML file describing generation backends,
// logging and telemetry, and builds generators from it.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
	"trpc.group/trpc-go/trpc-treqa-go/model/provider"
)

// DefaultProvider serves model names that have no backend entry.
// OpenAI-compatible servers (vLLM, LiteLLM) cover most deployments.
const DefaultProvider = "openai"

// defaultKeyEnv names the API key variable of each built-in provider.
var defaultKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// Config is the top-level configuration file.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// DefaultBackend serves components that name no backend.
	DefaultBackend string `yaml:"default_backend"`
	// EnvFiles are loaded with godotenv before API keys are resolved.
	// Missing files are ignored.
	EnvFiles  []string           `yaml:"env_files"`
	Backends  map[string]Backend `yaml:"backends"`
	Telemetry Telemetry          `yaml:"telemetry"`
	Server    Server             `yaml:"server"`
}

// Backend describes one named generation backend.
type Backend struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	APIKeyEnv   string   `yaml:"api_key_env"`
	MaxTokens   *int     `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
	TopP        *float64 `yaml:"top_p"`
	Parallelism int      `yaml:"parallelism"`
	MaxRetries  *int     `yaml:"max_retries"`
}

// Telemetry enables OTLP export when Endpoint is set.
type Telemetry struct {
	Endpoint    string `yaml:"endpoint"`
	Protocol    string `yaml:"protocol"`
	ServiceName string `yaml:"service_name"`
}

// Server configures `treqa serve`.
type Server struct {
	Addr    string `yaml:"addr"`
	Backend string `yaml:"backend"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		EnvFiles: []string{".env"},
		Backends: map[string]Backend{},
		Telemetry: Telemetry{
			Protocol: "grpc",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Backends == nil {
		cfg.Backends = map[string]Backend{}
	}
	for name, b := range cfg.Backends {
		if b.Model == "" {
			return nil, fmt.Errorf("backend %q: model is required", name)
		}
		if b.Provider == "" {
			b.Provider = DefaultProvider
			cfg.Backends[name] = b
		}
	}
	switch cfg.Telemetry.Protocol {
	case "grpc", "http":
	default:
		return nil, fmt.Errorf("telemetry protocol %q is neither grpc nor http", cfg.Telemetry.Protocol)
	}
	return cfg, nil
}

// LoadEnv loads the configured .env files into the process environment.
// Variables already set win.
func (c *Config) LoadEnv() error {
	for _, path := range c.EnvFiles {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debugf("config: no env file %s", path)
				continue
			}
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// Backend resolves name, or DefaultBackend when name is empty. Names
// without an entry become a backend of the default provider, and
// "provider:model" picks another provider.
func (c *Config) Backend(name string) (Backend, error) {
	if name == "" {
		name = c.DefaultBackend
	}
	if name == "" {
		return Backend{}, errors.New("no backend named and no default_backend configured")
	}
	if b, ok := c.Backends[name]; ok {
		return b, nil
	}
	if p, m, ok := strings.Cut(name, ":"); ok {
		if _, known := provider.Get(p); known {
			return Backend{Provider: p, Model: m}, nil
		}
	}
	return Backend{Provider: DefaultProvider, Model: name}, nil
}

// APIKey reads the key from APIKeyEnv, or from the provider's usual
// variable when unset.
func (b Backend) APIKey() string {
	env := b.APIKeyEnv
	if env == "" {
		env = defaultKeyEnv[b.Provider]
	}
	if env == "" {
		return ""
	}
	return os.Getenv(env)
}

// NewGenerator builds a deduplicating generator for b.
func (b Backend) NewGenerator(ctx context.Context) (generation.Generator, error) {
	opts := []provider.Option{provider.WithContext(ctx)}
	if key := b.APIKey(); key != "" {
		opts = append(opts, provider.WithAPIKey(key))
	}
	if b.BaseURL != "" {
		opts = append(opts, provider.WithBaseURL(b.BaseURL))
	}
	m, err := provider.Model(b.Provider, b.Model, opts...)
	if err != nil {
		return nil, fmt.Errorf("backend %s/%s: %w", b.Provider, b.Model, err)
	}
	backendOpts := []generation.BackendOption{
		generation.WithParallelism(b.Parallelism),
		generation.WithGenerationConfig(model.GenerationConfig{
			MaxTokens:   b.MaxTokens,
			Temperature: b.Temperature,
			TopP:        b.TopP,
		}),
	}
	if b.MaxRetries != nil {
		backendOpts = append(backendOpts, generation.WithMaxRetries(*b.MaxRetries))
	}
	log.Debugf("config: backend %s/%s base_url=%q", b.Provider, b.Model, b.BaseURL)
	return generation.New(generation.NewModelBackend(m, backendOpts...), generation.WithName(b.Model)), nil
}
