//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package questiongen prompts a model for question-answer pairs about a
// passage. PromptQAG writes questions and answers together, PromptQG writes
// questions for answers extracted beforehand.
package questiongen

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/registry"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
	"trpc.group/trpc-go/trpc-treqa-go/outputparser"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
)

// QAGRequest describes one batch of passages to write pairs for.
type QAGRequest struct {
	// Passages are the texts answers must come from.
	Passages []string
	// AltPassages, when set, pairs every passage with its counterpart in
	// the other language.
	AltPassages []string
	// Candidates, when non-nil, lists the translations of every passage the
	// questions should discriminate between. An empty inner slice still
	// selects the candidate-aware templates.
	Candidates [][]string
	// NumQuestions asks for a specific number of pairs. Zero leaves it to
	// the model.
	NumQuestions int
}

// QAGenerator writes question-answer pairs from passages alone.
type QAGenerator interface {
	GenerateQAPairs(ctx context.Context, req QAGRequest) ([][]qapair.Pair, error)
}

// QuestionGenerator writes question-answer pairs whose answers are the
// given keyphrases.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, passages []string, answers [][]string) ([][]qapair.Pair, error)
}

// Args configures generators built through the registry.
type Args struct {
	Template               string   `json:"template,omitempty"`
	SystemTemplate         string   `json:"system_template,omitempty"`
	AnswerOverlapThreshold *float64 `json:"answer_overlap_threshold,omitempty"`
	// ModelName selects the output parser.
	ModelName string `json:"model_name,omitempty"`
}

// Factory builds a generator. The result implements QAGenerator or
// QuestionGenerator.
type Factory func(gen generation.Generator, args Args) (any, error)

var factories = registry.New[Factory]("question generator")

func init() {
	Register("prompt_qag", func(gen generation.Generator, args Args) (any, error) {
		if gen == nil {
			return nil, errors.New("prompt_qag needs a generator")
		}
		opts := []QAGOption{WithParser(outputparser.ForModel(args.ModelName))}
		if args.Template != "" {
			opts = append(opts, WithTemplate(args.Template))
		}
		if args.SystemTemplate != "" {
			opts = append(opts, WithSystemTemplate(args.SystemTemplate))
		}
		if args.AnswerOverlapThreshold != nil {
			opts = append(opts, WithAnswerOverlapThreshold(args.AnswerOverlapThreshold))
		}
		return NewPromptQAG(gen, opts...)
	})
	Register("prompt_qg", func(gen generation.Generator, args Args) (any, error) {
		if gen == nil {
			return nil, errors.New("prompt_qg needs a generator")
		}
		if args.SystemTemplate != "" {
			return nil, fmt.Errorf("prompt_qg has no system templates, got %q", args.SystemTemplate)
		}
		opts := []QGOption{WithQGParser(outputparser.ForModel(args.ModelName))}
		if args.Template != "" {
			opts = append(opts, WithQGTemplate(args.Template))
		}
		if args.AnswerOverlapThreshold != nil {
			opts = append(opts, WithQGAnswerOverlapThreshold(args.AnswerOverlapThreshold))
		}
		return NewPromptQG(gen, opts...)
	})
}

// Register adds a generator factory under name.
func Register(name string, f Factory) { factories.Register(name, f) }

// New builds the generator registered as name.
func New(name string, gen generation.Generator, args Args) (any, error) {
	f, err := factories.Get(name)
	if err != nil {
		return nil, err
	}
	return f(gen, args)
}

// Names lists the registered generators.
func Names() []string { return factories.Names() }

func chat(system, user string) generation.Chat {
	return generation.Chat{model.NewSystemMessage(system), model.NewUserMessage(user)}
}

// parseAll parses every output against the passage it was generated from.
func parseAll(p outputparser.Parser, outputs, passages []string, threshold *float64) [][]qapair.Pair {
	pairs := make([][]qapair.Pair, len(outputs))
	for i, out := range outputs {
		var skipped []outputparser.Skipped
		pairs[i], skipped = p.Parse(out, passages[i], threshold)
		if len(skipped) > 0 {
			log.Debugf("questiongen: passage %d kept %d pairs, skipped %d blocks", i, len(pairs[i]), len(skipped))
		}
	}
	return pairs
}

func float64Ptr(f float64) *float64 { return &f }
