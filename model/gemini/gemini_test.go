//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

type stubModels struct {
	rsp      *genai.GenerateContentResponse
	err      error
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (s *stubModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.contents = contents
	s.config = config
	return s.rsp, s.err
}

type stubClient struct{ models *stubModels }

func (c *stubClient) Models() Models { return c.models }

func newStubModel(models *stubModels, opts ...Option) *Model {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Model{client: &stubClient{models: models}, name: "gemini-2.5-flash", opts: o}
}

// TestGenerateContent moves the system prompt to SystemInstruction and skips
// thought parts.
func TestGenerateContent(t *testing.T) {
	models := &stubModels{rsp: &genai.GenerateContentResponse{
		ResponseID: "r1",
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking", Thought: true},
				{Text: "Q: Who?\nA: Paris"},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount: 10, CandidatesTokenCount: 4, TotalTokenCount: 14,
		},
	}}
	m := newStubModel(models, WithTopK(100), WithSafetyFilters(false))

	rsp, err := m.GenerateContent(context.Background(), &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage("system prompt"),
			model.NewUserMessage("user prompt"),
		},
		GenerationConfig: model.GenerationConfig{
			MaxTokens:   model.IntPtr(32768),
			Temperature: model.Float64Ptr(0),
			TopP:        model.Float64Ptr(0.7),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Q: Who?\nA: Paris", rsp.Content())
	assert.False(t, rsp.Truncated())
	assert.Equal(t, 14, rsp.Usage.TotalTokens)

	require.Len(t, models.contents, 1)
	assert.Equal(t, "user prompt", models.contents[0].Parts[0].Text)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Equal(t, "system prompt", models.config.SystemInstruction.Parts[0].Text)
	assert.EqualValues(t, 32768, models.config.MaxOutputTokens)
	assert.InDelta(t, 0.7, *models.config.TopP, 1e-6)
	assert.InDelta(t, 100, *models.config.TopK, 1e-6)
	assert.Len(t, models.config.SafetySettings, len(harmCategories))
}

// TestGenerateContentMaxTokens reports truncation for MAX_TOKENS and for
// responses without candidates.
func TestGenerateContentMaxTokens(t *testing.T) {
	models := &stubModels{rsp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText("Q: half", genai.RoleModel),
			FinishReason: genai.FinishReasonMaxTokens,
		}},
	}}
	rsp, err := newStubModel(models).GenerateContent(context.Background(), &model.Request{
		Messages: []model.Message{model.NewUserMessage("x")},
	})
	require.NoError(t, err)
	assert.True(t, rsp.Truncated())
	assert.Empty(t, models.config.SafetySettings)

	models.rsp = &genai.GenerateContentResponse{}
	rsp, err = newStubModel(models).GenerateContent(context.Background(), &model.Request{
		Messages: []model.Message{model.NewUserMessage("x")},
	})
	require.NoError(t, err)
	assert.True(t, rsp.Truncated())
}

// TestGenerateContentError wraps client errors with the model name.
func TestGenerateContentError(t *testing.T) {
	m := newStubModel(&stubModels{err: errors.New("quota")})
	_, err := m.GenerateContent(context.Background(), &model.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini-2.5-flash")

	_, err = m.GenerateContent(context.Background(), nil)
	require.Error(t, err)
}
