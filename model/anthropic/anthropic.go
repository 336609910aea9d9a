//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package anthropic provides a non-streaming chat backend for the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

// defaultMaxTokens is required by the Messages API when the request sets none.
const defaultMaxTokens = 4096

// Model implements model.Model on top of the Messages API.
type Model struct {
	client anthropic.Client
	name   string
	opts   options
}

// New creates an Anthropic model.
func New(name string, opts ...Option) *Model {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	var clientOpts []option.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}
	clientOpts = append(clientOpts, o.clientOptions...)
	return &Model{client: anthropic.NewClient(clientOpts...), name: name, opts: o}
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent implements model.Model.
func (m *Model) GenerateContent(ctx context.Context, request *model.Request) (*model.Response, error) {
	if request == nil {
		return nil, fmt.Errorf("anthropic: request cannot be nil")
	}
	params, err := m.buildChatRequest(request)
	if err != nil {
		return nil, err
	}
	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: create message for %s: %w", m.name, err)
	}

	var text strings.Builder
	for _, content := range message.Content {
		if block, ok := content.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(block.Text)
		}
	}
	now := time.Now()
	rsp := &model.Response{
		ID:        message.ID,
		Model:     string(message.Model),
		Created:   now.Unix(),
		Timestamp: now,
		Choices:   []model.Choice{{Message: model.NewAssistantMessage(text.String())}},
		Usage: &model.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}
	if reason := strings.TrimSpace(string(message.StopReason)); reason != "" {
		rsp.Choices[0].FinishReason = &reason
	}
	return rsp, nil
}

func (m *Model) buildChatRequest(request *model.Request) (anthropic.MessageNewParams, error) {
	system, rest := request.SplitSystem()
	if len(rest) == 0 {
		return anthropic.MessageNewParams{}, fmt.Errorf("anthropic: request must include at least one non-system message")
	}
	messages := make([]anthropic.MessageParam, 0, len(rest))
	for _, msg := range rest {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == model.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(block))
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.name),
		Messages:  messages,
		MaxTokens: defaultMaxTokens,
	}
	for _, s := range system {
		params.System = append(params.System, anthropic.TextBlockParam{Text: s})
	}
	if request.MaxTokens != nil {
		params.MaxTokens = int64(*request.MaxTokens)
	}
	if request.Temperature != nil {
		params.Temperature = anthropic.Float(*request.Temperature)
	}
	if request.TopP != nil {
		params.TopP = anthropic.Float(*request.TopP)
	}
	if len(request.Stop) > 0 {
		params.StopSequences = append(params.StopSequences, request.Stop...)
	}
	return params, nil
}
