//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package model

import "time"

// ErrorTypeAPIError marks errors returned by the remote API.
const ErrorTypeAPIError = "api_error"

// Finish reasons signalling that the output hit the length cap.
const (
	FinishReasonLength       = "length"     // OpenAI compatible servers.
	FinishReasonMaxTokens    = "MAX_TOKENS" // Gemini.
	FinishReasonMaxTokensAPI = "max_tokens" // Anthropic.
)

// Choice is one completion alternative.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Usage reports token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ResponseError is an error reported inside a response body.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Response is a complete, non-streaming completion.
type Response struct {
	ID        string         `json:"id"`
	Model     string         `json:"model"`
	Created   int64          `json:"created"`
	Choices   []Choice       `json:"choices"`
	Usage     *Usage         `json:"usage,omitempty"`
	Error     *ResponseError `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Content returns the text of the first choice, or "" without choices.
func (rsp *Response) Content() string {
	if rsp == nil || len(rsp.Choices) == 0 {
		return ""
	}
	return rsp.Choices[0].Message.Content
}

// Truncated reports whether the response is incomplete and should be
// requested again: it has no choices or the first choice hit a length cap.
func (rsp *Response) Truncated() bool {
	if rsp == nil || len(rsp.Choices) == 0 {
		return true
	}
	reason := rsp.Choices[0].FinishReason
	if reason == nil {
		return false
	}
	switch *reason {
	case FinishReasonLength, FinishReasonMaxTokens, FinishReasonMaxTokensAPI:
		return true
	default:
		return false
	}
}
