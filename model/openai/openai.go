//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides a non-streaming chat backend for the OpenAI API
// and OpenAI-compatible servers such as vLLM or a LiteLLM proxy.
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

// Model implements model.Model on top of the Chat Completions API.
type Model struct {
	client openai.Client
	name   string
	opts   options
}

// New creates an OpenAI-compatible model.
func New(name string, opts ...Option) *Model {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []openaiopt.RequestOption
	if o.APIKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.BaseURL))
	}
	clientOpts = append(clientOpts, o.OpenAIOptions...)

	return &Model{
		client: openai.NewClient(clientOpts...),
		name:   name,
		opts:   o,
	}
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent implements model.Model.
func (m *Model) GenerateContent(ctx context.Context, request *model.Request) (*model.Response, error) {
	if request == nil {
		return nil, fmt.Errorf("openai: request cannot be nil")
	}
	chatRequest := m.buildChatRequest(request)
	if m.opts.ChatRequestCallback != nil {
		m.opts.ChatRequestCallback(ctx, &chatRequest)
	}

	completion, err := m.client.Chat.Completions.New(ctx, chatRequest)
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion for %s: %w", m.name, err)
	}

	rsp := &model.Response{
		ID:        completion.ID,
		Model:     completion.Model,
		Created:   completion.Created,
		Timestamp: time.Now(),
		Usage: &model.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}
	for _, choice := range completion.Choices {
		c := model.Choice{
			Index:   int(choice.Index),
			Message: model.NewAssistantMessage(choice.Message.Content),
		}
		if choice.FinishReason != "" {
			c.FinishReason = model.StringPtr(string(choice.FinishReason))
		}
		rsp.Choices = append(rsp.Choices, c)
	}
	return rsp, nil
}

func (m *Model) buildChatRequest(request *model.Request) openai.ChatCompletionNewParams {
	chatRequest := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(m.name),
		Messages: convertMessages(request.Messages),
	}
	if request.MaxTokens != nil {
		chatRequest.MaxCompletionTokens = openai.Int(int64(*request.MaxTokens))
	}
	if request.Temperature != nil {
		chatRequest.Temperature = openai.Float(*request.Temperature)
	}
	if request.TopP != nil {
		chatRequest.TopP = openai.Float(*request.TopP)
	}
	if len(request.Stop) > 0 {
		chatRequest.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: request.Stop,
		}
	}
	return chatRequest
}

func convertMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			}
		case model.RoleAssistant:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			}
		default:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			}
		}
	}
	return result
}
