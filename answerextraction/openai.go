//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answerextraction

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"trpc.group/trpc-go/trpc-treqa-go/log"
)

const (
	// DefaultEmbeddingModel is the default embedding model.
	DefaultEmbeddingModel = "text-embedding-3-small"
	defaultEmbedRetries   = 2
)

var defaultEmbedBackoff = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
}

// OpenAIEmbedder embeds texts through the OpenAI embeddings API or a
// compatible server.
type OpenAIEmbedder struct {
	client     openai.Client
	model      string
	maxRetries int
	backoff    []time.Duration
}

type embedderOptions struct {
	model      string
	apiKey     string
	baseURL    string
	maxRetries int
}

// EmbedderOption configures an OpenAIEmbedder.
type EmbedderOption func(*embedderOptions)

// WithEmbeddingModel sets the embedding model.
func WithEmbeddingModel(name string) EmbedderOption {
	return func(o *embedderOptions) { o.model = name }
}

// WithEmbeddingAPIKey sets the API key. OPENAI_API_KEY is used otherwise.
func WithEmbeddingAPIKey(key string) EmbedderOption {
	return func(o *embedderOptions) { o.apiKey = key }
}

// WithEmbeddingBaseURL points the client at a compatible server.
func WithEmbeddingBaseURL(url string) EmbedderOption {
	return func(o *embedderOptions) { o.baseURL = url }
}

// WithEmbeddingMaxRetries sets how often a failed request is retried.
// Negative values are treated as 0.
func WithEmbeddingMaxRetries(n int) EmbedderOption {
	return func(o *embedderOptions) { o.maxRetries = max(n, 0) }
}

// NewOpenAIEmbedder creates an OpenAIEmbedder.
func NewOpenAIEmbedder(opts ...EmbedderOption) *OpenAIEmbedder {
	o := embedderOptions{model: DefaultEmbeddingModel, maxRetries: defaultEmbedRetries}
	for _, opt := range opts {
		opt(&o)
	}
	var clientOpts []openaiopt.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.baseURL))
	}
	// Retries are handled here.
	clientOpts = append(clientOpts, openaiopt.WithMaxRetries(0))
	return &OpenAIEmbedder{
		client:     openai.NewClient(clientOpts...),
		model:      o.model,
		maxRetries: o.maxRetries,
		backoff:    defaultEmbedBackoff,
	}
}

// Embed implements Embedder with one request for all texts.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		vecs, err := e.embed(ctx, texts)
		if err == nil {
			return vecs, nil
		}
		lastErr = err
		if attempt == e.maxRetries {
			break
		}
		wait := e.backoff[min(attempt, len(e.backoff)-1)]
		log.Infof("embedding request failed, retrying in %v (attempt %d/%d): %v", wait, attempt+1, e.maxRetries, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("create embeddings: %w", lastErr)
}

func (e *OpenAIEmbedder) embed(ctx context.Context, texts []string) ([][]float64, error) {
	rsp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormat("float"),
	})
	if err != nil {
		return nil, err
	}
	if len(rsp.Data) != len(texts) {
		return nil, fmt.Errorf("got %d embeddings for %d texts", len(rsp.Data), len(texts))
	}
	vecs := make([][]float64, len(texts))
	for _, d := range rsp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}
