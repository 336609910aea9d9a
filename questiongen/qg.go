//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package questiongen

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/outputparser"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
)

const (
	defaultQGTemplate  = "standard"
	defaultQGThreshold = 60
)

var qgSet = prompt.NewSet("question generation", qgTemplates)

// PromptQG writes one question per given answer.
type PromptQG struct {
	gen       generation.Generator
	template  string
	threshold *float64
	parser    outputparser.Parser
}

// QGOption configures a PromptQG.
type QGOption func(*PromptQG)

// WithQGTemplate names the user prompt: "standard" (default) or
// "eng-standard".
func WithQGTemplate(name string) QGOption {
	return func(p *PromptQG) { p.template = name }
}

// WithQGAnswerOverlapThreshold sets the minimum answer overlap with the
// passage, in percent. Nil disables the check. Default is 60.
func WithQGAnswerOverlapThreshold(threshold *float64) QGOption {
	return func(p *PromptQG) { p.threshold = threshold }
}

// WithQGParser replaces the default output parser.
func WithQGParser(parser outputparser.Parser) QGOption {
	return func(p *PromptQG) { p.parser = parser }
}

// NewPromptQG creates a PromptQG. An unknown template is an error.
func NewPromptQG(gen generation.Generator, opts ...QGOption) (*PromptQG, error) {
	p := &PromptQG{
		gen:       gen,
		template:  defaultQGTemplate,
		threshold: float64Ptr(defaultQGThreshold),
		parser:    outputparser.Default{},
	}
	for _, opt := range opts {
		opt(p)
	}
	tmpl, err := qgSet.Get(p.template)
	if err != nil {
		return nil, err
	}
	p.template = tmpl
	return p, nil
}

// GenerateQuestions implements QuestionGenerator.
func (p *PromptQG) GenerateQuestions(ctx context.Context, passages []string, answers [][]string) ([][]qapair.Pair, error) {
	if len(answers) != len(passages) {
		return nil, fmt.Errorf("got %d answer lists for %d passages", len(answers), len(passages))
	}
	chats := make([]generation.Chat, len(passages))
	for i, passage := range passages {
		chats[i] = chat(qgSystemPrompt, prompt.Format(p.template, map[string]string{
			"passage":    passage,
			"keyphrases": strings.Join(answers[i], "\n"),
		}))
	}
	outputs, err := p.gen.Generate(ctx, chats, true)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return parseAll(p.parser, outputs, passages, p.threshold), nil
}
