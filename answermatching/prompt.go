//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answermatching

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
)

const defaultNumRuns = 20

var scoreRe = regexp.MustCompile(`\d+`)

// Prompt asks a model to grade each answer on a 0 to 5 rubric given the
// question and the passage it was asked about.
type Prompt struct {
	gen  generation.Generator
	opts promptOptions
}

type promptOptions struct {
	normalize bool
	numRuns   int
}

// PromptOption configures a Prompt matcher.
type PromptOption func(*promptOptions)

// WithNormalizeScores samples every grading chat several times and
// averages the scores.
func WithNormalizeScores(normalize bool) PromptOption {
	return func(o *promptOptions) { o.normalize = normalize }
}

// WithNumRuns sets how many samples a normalised grade averages over.
// Default is 20.
func WithNumRuns(n int) PromptOption {
	return func(o *promptOptions) {
		if n > 0 {
			o.numRuns = n
		}
	}
}

// NewPrompt creates a rubric matcher generating through gen.
func NewPrompt(gen generation.Generator, opts ...PromptOption) *Prompt {
	o := promptOptions{numRuns: defaultNumRuns}
	for _, opt := range opts {
		opt(&o)
	}
	return &Prompt{gen: gen, opts: o}
}

// Bounds implements Matcher.
func (*Prompt) Bounds() (float64, float64) { return 0, 5 }

// EvaluateAnswers implements Matcher. Questions and contexts are required.
func (p *Prompt) EvaluateAnswers(ctx context.Context, in Inputs) ([]float64, error) {
	n := len(in.Predicted)
	if err := requireInput("questions", in.Questions, n); err != nil {
		return nil, err
	}
	if err := requireInput("contexts", in.Contexts, n); err != nil {
		return nil, err
	}
	chats := make([]generation.Chat, n)
	for i := range in.Predicted {
		chats[i] = gradingChat(in.Contexts[i], in.Questions[i], in.Predicted[i])
	}
	if !p.opts.normalize {
		outputs, err := p.gen.Generate(ctx, chats, true)
		if err != nil {
			return nil, fmt.Errorf("grade answers: %w", err)
		}
		return parseScores(outputs)
	}

	runs := p.opts.numRuns
	repeated := make([]generation.Chat, 0, n*runs)
	for _, c := range chats {
		for range runs {
			repeated = append(repeated, c)
		}
	}
	log.Debugf("answermatching: sampling %d grades %d times each", n, runs)
	outputs, err := p.gen.Generate(ctx, repeated, false)
	if err != nil {
		return nil, fmt.Errorf("grade answers: %w", err)
	}
	samples, err := parseScores(outputs)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, n)
	for i := range scores {
		var sum float64
		for _, s := range samples[i*runs : (i+1)*runs] {
			sum += s
		}
		scores[i] = sum / float64(runs)
	}
	return scores, nil
}

func gradingChat(passage, question, answer string) generation.Chat {
	return generation.Chat{
		model.NewSystemMessage(rubricSystemPrompt),
		model.NewUserMessage(prompt.Format(rubricTemplate, map[string]string{
			"context":  passage,
			"question": question,
			"answer":   answer,
		})),
	}
}

// parseScores reads the first integer of the first paragraph of every
// output. An output without one fails the whole batch.
func parseScores(outputs []string) ([]float64, error) {
	scores := make([]float64, 0, len(outputs))
	for i, out := range outputs {
		head, _, _ := strings.Cut(out, "\n\n")
		m := scoreRe.FindString(head)
		if m == "" {
			log.Debugf("answermatching: no score in output %d: %q", i, out)
			continue
		}
		s, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, fmt.Errorf("parse score %q: %w", m, err)
		}
		scores = append(scores, s)
	}
	if len(scores) != len(outputs) {
		return nil, fmt.Errorf("%w: parsed %d scores from %d outputs",
			ErrScoreCountMismatch, len(scores), len(outputs))
	}
	return scores, nil
}
