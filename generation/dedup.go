//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package generation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	itelemetry "trpc.group/trpc-go/trpc-treqa-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	atrace "trpc.group/trpc-go/trpc-treqa-go/telemetry/trace"
)

// Deduplicator is the Generator every prompt component shares. It is safe
// for concurrent use when its Backend is.
type Deduplicator struct {
	backend Backend
	name    string
}

// New wraps backend in a Deduplicator.
func New(backend Backend, opts ...Option) *Deduplicator {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Deduplicator{backend: backend, name: o.name}
}

// Generate implements Generator.
func (d *Deduplicator) Generate(ctx context.Context, chats []Chat, dedup bool) ([]string, error) {
	ctx, span := atrace.Tracer.Start(ctx, itelemetry.SpanGenerate)
	defer span.End()

	if len(chats) == 0 {
		return []string{}, nil
	}

	unique, positions := chats, [][]int(nil)
	if dedup {
		unique, positions = collapse(chats)
	}
	attrs := metric.WithAttributes(
		attribute.String("generator", d.name),
		itelemetry.KeyDedup.Bool(dedup),
	)
	itelemetry.GenerationRequests.Add(ctx, int64(len(chats)), attrs)
	itelemetry.GenerationDispatched.Add(ctx, int64(len(unique)), attrs)
	span.SetAttributes(
		itelemetry.KeyChats.Int(len(chats)),
		itelemetry.KeyUniqueChats.Int(len(unique)),
		itelemetry.KeyDedup.Bool(dedup),
	)
	log.Debugf("generation %s: %d chats, %d dispatched", d.name, len(chats), len(unique))

	outputs, err := d.backend.Complete(ctx, unique)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("generation %s: %w", d.name, err)
	}
	if len(outputs) < len(unique) {
		err := fmt.Errorf("%w: got %d, want %d", ErrShortOutput, len(outputs), len(unique))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !dedup {
		return outputs[:len(chats)], nil
	}
	return scatter(outputs, positions, len(chats))
}

// collapse keeps the first occurrence of every chat in input order and
// records where each unique chat appeared.
func collapse(chats []Chat) ([]Chat, [][]int) {
	index := make(map[string]int, len(chats))
	var (
		unique    []Chat
		positions [][]int
	)
	for i, c := range chats {
		k := c.Key()
		j, ok := index[k]
		if !ok {
			j = len(unique)
			index[k] = j
			unique = append(unique, c)
			positions = append(positions, nil)
		}
		positions[j] = append(positions[j], i)
	}
	return unique, positions
}

func scatter(outputs []string, positions [][]int, n int) ([]string, error) {
	result := make([]string, n)
	filled := make([]bool, n)
	for j, idxs := range positions {
		for _, i := range idxs {
			result[i] = outputs[j]
			filled[i] = true
		}
	}
	for i, ok := range filled {
		if !ok {
			return nil, fmt.Errorf("%w: index %d", ErrMissingOutput, i)
		}
	}
	return result, nil
}
