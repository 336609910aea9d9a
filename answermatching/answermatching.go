//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package answermatching scores predicted answers against reference
// answers. Every matcher declares the range its scores fall in so callers
// can substitute the extremes for documents without questions.
package answermatching

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/registry"
)

var (
	// ErrMissingInput is returned when a matcher lacks a field it needs.
	ErrMissingInput = errors.New("answermatching: missing input")
	// ErrScoreCountMismatch is returned when fewer scores than answers
	// could be produced.
	ErrScoreCountMismatch = errors.New("answermatching: score count mismatch")
)

// Inputs are parallel slices, one entry per predicted answer. Matchers
// only read the fields they need.
type Inputs struct {
	Predicted  []string
	Questions  []string
	References []string
	Contexts   []string
}

// Matcher scores each predicted answer.
type Matcher interface {
	EvaluateAnswers(ctx context.Context, in Inputs) ([]float64, error)
	// Bounds returns the lowest and highest score the matcher produces.
	Bounds() (minVal, maxVal float64)
}

// requireInput checks that field has one entry per predicted answer.
func requireInput(name string, field []string, n int) error {
	if field == nil {
		return fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	if len(field) != n {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrMissingInput, name, len(field), n)
	}
	return nil
}

// Args configures matchers built through the registry.
type Args struct {
	NormalizeScores bool `json:"normalize_scores,omitempty"`
	NumRuns         int  `json:"num_runs,omitempty"`
}

// Factory builds a matcher. gen may be nil for matchers that do not
// prompt a model.
type Factory func(gen generation.Generator, args Args) (Matcher, error)

var factories = registry.New[Factory]("answer matcher")

func init() {
	Register("chrf", func(generation.Generator, Args) (Matcher, error) { return NewChrf(), nil })
	Register("exact_match", func(generation.Generator, Args) (Matcher, error) { return NewExactMatch(), nil })
	Register("prompt_am", func(gen generation.Generator, args Args) (Matcher, error) {
		if gen == nil {
			return nil, errors.New("prompt_am needs a generator")
		}
		opts := []PromptOption{WithNormalizeScores(args.NormalizeScores)}
		if args.NumRuns > 0 {
			opts = append(opts, WithNumRuns(args.NumRuns))
		}
		return NewPrompt(gen, opts...), nil
	})
}

// Register adds a matcher factory under name.
func Register(name string, f Factory) { factories.Register(name, f) }

// New builds the matcher registered as name.
func New(name string, gen generation.Generator, args Args) (Matcher, error) {
	f, err := factories.Get(name)
	if err != nil {
		return nil, err
	}
	return f(gen, args)
}

// Names lists the registered matchers.
func Names() []string { return factories.Names() }
