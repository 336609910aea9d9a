//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package model defines the chat request and response types exchanged with
// text generation backends.
package model

// Role is the author of a message.
type Role string

// Roles understood by every backend.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the role name.
func (r Role) String() string { return string(r) }

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Message is one chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// GenerationConfig holds sampling parameters. Nil fields use the backend
// default.
type GenerationConfig struct {
	// MaxTokens caps the number of generated tokens.
	MaxTokens *int `json:"max_tokens,omitempty"`
	// Temperature controls randomness (0.0 to 2.0).
	Temperature *float64 `json:"temperature,omitempty"`
	// TopP controls nucleus sampling (0.0 to 1.0).
	TopP *float64 `json:"top_p,omitempty"`
	// Stop lists sequences where generation stops.
	Stop []string `json:"stop,omitempty"`
}

// Request is a single non-streaming chat completion request.
type Request struct {
	Messages []Message `json:"messages"`

	GenerationConfig `json:",inline"`
}

// SplitSystem separates the leading system messages from the rest of the
// conversation. Gemini and Anthropic take the system prompt out of band.
func (r *Request) SplitSystem() (system []string, rest []Message) {
	for _, msg := range r.Messages {
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		rest = append(rest, msg)
	}
	return system, rest
}
