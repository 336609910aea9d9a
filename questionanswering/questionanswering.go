//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package questionanswering answers questions about passages by prompting
// a model.
package questionanswering

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/internal/registry"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
)

// Answerer answers questions[i] against passages[i].
type Answerer interface {
	ExtractAnswers(ctx context.Context, passages []string, questions [][]string, opts ...CallOption) ([][]string, error)
}

// CallOption adjusts a single ExtractAnswers call.
type CallOption func(*callOptions)

type callOptions struct {
	template string
}

// WithCallTemplate answers with the named template for this call only.
func WithCallTemplate(name string) CallOption {
	return func(o *callOptions) { o.template = name }
}

var (
	templateSet = prompt.NewSet("question answering", templates)
	systemSet   = prompt.NewSet("question answering system", systemPrompts)
)

// Prompt asks the model one question at a time.
type Prompt struct {
	gen      generation.Generator
	template string
	system   string
}

// Option configures a Prompt answerer.
type Option func(*options)

type options struct {
	template string
	system   string
}

// WithTemplate names the user prompt: "standard" (default),
// "eng-standard" or "eng-detailed".
func WithTemplate(name string) Option {
	return func(o *options) { o.template = name }
}

// WithSystemTemplate names the system prompt: "standard" (default) or
// "english".
func WithSystemTemplate(name string) Option {
	return func(o *options) { o.system = name }
}

// NewPrompt creates a Prompt answerer. Unknown template names are errors.
func NewPrompt(gen generation.Generator, opts ...Option) (*Prompt, error) {
	o := options{template: "standard", system: "standard"}
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
	return &Prompt{gen: gen, template: tmpl, system: system}, nil
}

// ExtractAnswers implements Answerer. All questions of all passages go to
// the generator in one batch.
func (p *Prompt) ExtractAnswers(ctx context.Context, passages []string, questions [][]string, opts ...CallOption) ([][]string, error) {
	if len(questions) != len(passages) {
		return nil, fmt.Errorf("got %d question lists for %d passages", len(questions), len(passages))
	}
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	tmpl := p.template
	if co.template != "" {
		var err error
		if tmpl, err = templateSet.Get(co.template); err != nil {
			return nil, err
		}
	}

	var chats []generation.Chat
	for i, passage := range passages {
		for _, q := range questions[i] {
			chats = append(chats, generation.Chat{
				model.NewSystemMessage(p.system),
				model.NewUserMessage(prompt.Format(tmpl, map[string]string{
					"passage":  passage,
					"question": q,
				})),
			})
		}
	}
	log.Debugf("questionanswering: %d questions over %d passages", len(chats), len(passages))
	flat, err := p.gen.Generate(ctx, chats, true)
	if err != nil {
		return nil, fmt.Errorf("answer questions: %w", err)
	}
	if len(flat) != len(chats) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(flat), len(chats))
	}

	answers := make([][]string, len(questions))
	idx := 0
	for i, qs := range questions {
		answers[i] = flat[idx : idx+len(qs) : idx+len(qs)]
		idx += len(qs)
	}
	return answers, nil
}

// Args configures answerers built through the registry.
type Args struct {
	Template       string `json:"template,omitempty"`
	SystemTemplate string `json:"system_template,omitempty"`
}

// Factory builds an answerer.
type Factory func(gen generation.Generator, args Args) (Answerer, error)

var factories = registry.New[Factory]("question answerer")

func init() {
	Register("prompt_qa", func(gen generation.Generator, args Args) (Answerer, error) {
		if gen == nil {
			return nil, errors.New("prompt_qa needs a generator")
		}
		var opts []Option
		if args.Template != "" {
			opts = append(opts, WithTemplate(args.Template))
		}
		if args.SystemTemplate != "" {
			opts = append(opts, WithSystemTemplate(args.SystemTemplate))
		}
		return NewPrompt(gen, opts...)
	})
}

// Register adds an answerer factory under name.
func Register(name string, f Factory) { factories.Register(name, f) }

// New builds the answerer registered as name.
func New(name string, gen generation.Generator, args Args) (Answerer, error) {
	f, err := factories.Get(name)
	if err != nil {
		return nil, err
	}
	return f(gen, args)
}

// Names lists the registered answerers.
func Names() []string { return factories.Names() }
