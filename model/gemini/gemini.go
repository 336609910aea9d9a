//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package gemini provides a non-streaming chat backend for Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

// harmCategories are relaxed when WithSafetyFilters(false) is set, so
// translations of violent or explicit passages are still answered.
var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHateSpeech,
	genai.HarmCategoryHarassment,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Model implements model.Model on top of the Gemini API.
type Model struct {
	client Client
	name   string
	opts   options
}

// New creates a Gemini model.
func New(ctx context.Context, name string, opts ...Option) (*Model, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	client, err := genai.NewClient(ctx, o.clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Model{client: &clientWrapper{client: client}, name: name, opts: o}, nil
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent implements model.Model.
func (m *Model) GenerateContent(ctx context.Context, request *model.Request) (*model.Response, error) {
	if request == nil {
		return nil, fmt.Errorf("gemini: request cannot be nil")
	}
	system, rest := request.SplitSystem()
	rsp, err := m.client.Models().GenerateContent(ctx, m.name, convertMessages(rest), m.buildConfig(request, system))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content for %s: %w", m.name, err)
	}
	return m.convertResponse(rsp), nil
}

func (m *Model) buildConfig(request *model.Request, system []string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "text/plain",
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if request.MaxTokens != nil {
		config.MaxOutputTokens = int32(*request.MaxTokens)
	}
	if request.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*request.Temperature))
	}
	if request.TopP != nil {
		config.TopP = genai.Ptr(float32(*request.TopP))
	}
	if m.opts.topK != nil {
		config.TopK = genai.Ptr(*m.opts.topK)
	}
	if len(request.Stop) > 0 {
		config.StopSequences = request.Stop
	}
	if !m.opts.safetyFilters {
		for _, category := range harmCategories {
			config.SafetySettings = append(config.SafetySettings, &genai.SafetySetting{
				Category:  category,
				Threshold: genai.HarmBlockThresholdBlockNone,
			})
		}
	}
	return config
}

func (m *Model) convertResponse(rsp *genai.GenerateContentResponse) *model.Response {
	out := &model.Response{
		ID:        rsp.ResponseID,
		Model:     m.name,
		Timestamp: time.Now(),
	}
	for i, candidate := range rsp.Candidates {
		var text strings.Builder
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part == nil || part.Thought {
					continue
				}
				text.WriteString(part.Text)
			}
		}
		choice := model.Choice{
			Index:   i,
			Message: model.NewAssistantMessage(text.String()),
		}
		if candidate.FinishReason != "" {
			choice.FinishReason = model.StringPtr(string(candidate.FinishReason))
		}
		out.Choices = append(out.Choices, choice)
	}
	if usage := rsp.UsageMetadata; usage != nil {
		out.Usage = &model.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return out
}

func convertMessages(messages []model.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.RoleUser
		if msg.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, genai.Role(role)))
	}
	return contents
}
