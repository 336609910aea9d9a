//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package generation turns batches of chats into completions. It collapses
// identical chats before they reach the backend and scatters the outputs
// back to every original position.
package generation

import (
	"context"
	"encoding/json"
	"errors"

	"trpc.group/trpc-go/trpc-treqa-go/model"
)

var (
	// ErrShortOutput is returned when a backend produces fewer outputs
	// than the chats it was given.
	ErrShortOutput = errors.New("generation: backend returned fewer outputs than requested")
	// ErrMissingOutput is returned when an input position received no
	// output after scattering.
	ErrMissingOutput = errors.New("generation: output missing for input position")
)

// Chat is an ordered list of role-tagged turns.
type Chat []model.Message

// Key returns the canonical form of c. Two chats are identical exactly
// when their keys are equal.
func (c Chat) Key() string {
	turns := make([]map[string]string, len(c))
	for i, m := range c {
		turns[i] = map[string]string{"role": string(m.Role), "content": m.Content}
	}
	// Maps marshal with sorted keys. Strings never fail to encode.
	b, _ := json.Marshal(turns)
	return string(b)
}

// Backend completes every chat it is given, one output per chat in order.
type Backend interface {
	Complete(ctx context.Context, chats []Chat) ([]string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, chats []Chat) ([]string, error)

// Complete calls f.
func (f BackendFunc) Complete(ctx context.Context, chats []Chat) ([]string, error) {
	return f(ctx, chats)
}

// Generator produces one output per chat. With dedup set, identical chats
// are sent once and share an output.
type Generator interface {
	Generate(ctx context.Context, chats []Chat, dedup bool) ([]string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, chats []Chat, dedup bool) ([]string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, chats []Chat, dedup bool) ([]string, error) {
	return f(ctx, chats, dedup)
}
