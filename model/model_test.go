//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResponseTruncated covers every finish reason that triggers a retry.
func TestResponseTruncated(t *testing.T) {
	withReason := func(reason string) *Response {
		return &Response{Choices: []Choice{{
			Message:      NewAssistantMessage("partial"),
			FinishReason: StringPtr(reason),
		}}}
	}
	tests := []struct {
		name string
		rsp  *Response
		want bool
	}{
		{"nil response", nil, true},
		{"no choices", &Response{}, true},
		{"openai length", withReason(FinishReasonLength), true},
		{"gemini max tokens", withReason(FinishReasonMaxTokens), true},
		{"anthropic max tokens", withReason(FinishReasonMaxTokensAPI), true},
		{"stop", withReason("stop"), false},
		{"no finish reason", &Response{Choices: []Choice{{Message: NewAssistantMessage("ok")}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rsp.Truncated())
		})
	}
}

// TestResponseContent returns the first choice text.
func TestResponseContent(t *testing.T) {
	assert.Equal(t, "", (*Response)(nil).Content())
	rsp := &Response{Choices: []Choice{
		{Message: NewAssistantMessage("first")},
		{Message: NewAssistantMessage("second")},
	}}
	assert.Equal(t, "first", rsp.Content())
}

// TestSplitSystem moves system turns out of the conversation.
func TestSplitSystem(t *testing.T) {
	req := &Request{Messages: []Message{
		NewSystemMessage("be brief"),
		NewUserMessage("hi"),
		NewAssistantMessage("hello"),
	}}
	system, rest := req.SplitSystem()
	assert.Equal(t, []string{"be brief"}, system)
	assert.Equal(t, []Message{NewUserMessage("hi"), NewAssistantMessage("hello")}, rest)
}

// TestRoleIsValid rejects unknown roles.
func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.False(t, Role("tool").IsValid())
}
