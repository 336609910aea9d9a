//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answerextraction

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
)

var (
	templateSet = prompt.NewSet("answer extraction", templates)
	systemSet   = prompt.NewSet("answer extraction system", systemPrompts)
)

// listMarkers are stripped from the start of every generated line.
const listMarkers = "0123456789.- "

// Prompt asks a model for keyphrases and keeps those found verbatim in
// the passage.
type Prompt struct {
	gen      generation.Generator
	template string
	system   string
	side     Side
}

type promptOptions struct {
	template    string
	system      string
	extractFrom string
}

// PromptOption configures a Prompt extractor.
type PromptOption func(*promptOptions)

// WithTemplate names the user prompt: "standard" (default), "answer-rq",
// "eng-standard" or "eng-answer-rq".
func WithTemplate(name string) PromptOption {
	return func(o *promptOptions) { o.template = name }
}

// WithSystemTemplate names the system prompt: "standard" (default) or
// "teacher".
func WithSystemTemplate(name string) PromptOption {
	return func(o *promptOptions) { o.system = name }
}

// WithExtractFrom records which side of the corpus the passages come from,
// "target" (default) or "source".
func WithExtractFrom(side string) PromptOption {
	return func(o *promptOptions) { o.extractFrom = side }
}

// NewPrompt creates a Prompt extractor.
func NewPrompt(gen generation.Generator, opts ...PromptOption) (*Prompt, error) {
	o := promptOptions{template: "standard", system: "standard"}
	for _, opt := range opts {
		opt(&o)
	}
	tmpl, err := templateSet.Get(o.template)
	if err != nil {
		return nil, err
	}
	system, err := systemSet.Get(o.system)
	if err != nil {
		return nil, err
	}
	side, err := parseSide(o.extractFrom)
	if err != nil {
		return nil, err
	}
	return &Prompt{gen: gen, template: tmpl, system: system, side: side}, nil
}

// ExtractFrom returns the corpus side the extractor was configured for.
func (p *Prompt) ExtractFrom() Side { return p.side }

// ExtractAnswers implements Extractor. Zero numAnswers asks for up to
// DefaultNumAnswers. The count is a hint to the model, not a cap.
func (p *Prompt) ExtractAnswers(ctx context.Context, passages []string, numAnswers int) ([][]string, error) {
	if numAnswers <= 0 {
		numAnswers = DefaultNumAnswers
	}
	chats := make([]generation.Chat, len(passages))
	for i, passage := range passages {
		chats[i] = generation.Chat{
			model.NewSystemMessage(p.system),
			model.NewUserMessage(prompt.Format(p.template, map[string]string{
				"text":        passage,
				"num_answers": strconv.Itoa(numAnswers),
			})),
		}
	}
	outputs, err := p.gen.Generate(ctx, chats, true)
	if err != nil {
		return nil, fmt.Errorf("extract answers: %w", err)
	}
	answers := make([][]string, len(passages))
	for i, out := range outputs {
		answers[i] = parseKeyphrases(out, passages[i])
		log.Debugf("answerextraction: passage %d yielded %d keyphrases", i, len(answers[i]))
	}
	return answers, nil
}

// parseKeyphrases reads one phrase per line, drops list numbering and
// keeps phrases occurring in passage, first occurrence only.
func parseKeyphrases(output, passage string) []string {
	var phrases []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), listMarkers)
		if line == "" || !strings.Contains(passage, line) {
			continue
		}
		phrases = append(phrases, line)
	}
	return dedup(phrases)
}
