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
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/outputparser"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
)

const (
	defaultQAGTemplate  = "eng-cands-0shot"
	defaultSystemPrompt = "standard"
	candidateSeparator  = "\n-\n"
)

var (
	passageSet    = prompt.NewSet("passage", passageTemplates)
	candidateSet  = prompt.NewSet("candidate", candidateTemplates)
	evaluationSet = prompt.NewSet("source-reference candidate", evaluationTemplates)
	bothSet       = prompt.NewSet("source-reference", bothTemplates)
	qagSystemSet  = prompt.NewSet("system", qagSystemPrompts)
)

// PromptQAG writes question-answer pairs in one prompt per passage.
type PromptQAG struct {
	gen       generation.Generator
	template  string
	system    string
	threshold *float64
	parser    outputparser.Parser
}

// QAGOption configures a PromptQAG.
type QAGOption func(*PromptQAG)

// WithTemplate names the user prompt. The same name is looked up in
// whichever family the request selects. Default is "eng-cands-0shot".
func WithTemplate(name string) QAGOption {
	return func(p *PromptQAG) { p.template = name }
}

// WithSystemTemplate names the system prompt: "standard" (default) or
// "teacher".
func WithSystemTemplate(name string) QAGOption {
	return func(p *PromptQAG) { p.system = name }
}

// WithAnswerOverlapThreshold sets the minimum answer overlap with the
// passage, in percent. Nil disables the check. Default is 0.
func WithAnswerOverlapThreshold(threshold *float64) QAGOption {
	return func(p *PromptQAG) { p.threshold = threshold }
}

// WithParser replaces the default output parser.
func WithParser(parser outputparser.Parser) QAGOption {
	return func(p *PromptQAG) { p.parser = parser }
}

// NewPromptQAG creates a PromptQAG. An unknown system template is an
// error. User templates are resolved per request since the family depends
// on the request.
func NewPromptQAG(gen generation.Generator, opts ...QAGOption) (*PromptQAG, error) {
	p := &PromptQAG{
		gen:       gen,
		template:  defaultQAGTemplate,
		system:    defaultSystemPrompt,
		threshold: float64Ptr(0),
		parser:    outputparser.Default{},
	}
	for _, opt := range opts {
		opt(p)
	}
	system, err := qagSystemSet.Get(p.system)
	if err != nil {
		return nil, err
	}
	p.system = system
	return p, nil
}

// GenerateQAPairs implements QAGenerator.
func (p *PromptQAG) GenerateQAPairs(ctx context.Context, req QAGRequest) ([][]qapair.Pair, error) {
	n := len(req.Passages)
	if req.AltPassages != nil && len(req.AltPassages) != n {
		return nil, fmt.Errorf("got %d alternative passages for %d passages", len(req.AltPassages), n)
	}
	if req.Candidates != nil && len(req.Candidates) != n {
		return nil, fmt.Errorf("got %d candidate lists for %d passages", len(req.Candidates), n)
	}
	numQuestions := ""
	if req.NumQuestions > 0 {
		numQuestions = " " + strconv.Itoa(req.NumQuestions)
	}
	chats := make([]generation.Chat, n)
	for i, passage := range req.Passages {
		user, err := p.render(req, i, passage, numQuestions)
		if err != nil {
			return nil, err
		}
		chats[i] = chat(p.system, user)
	}
	outputs, err := p.gen.Generate(ctx, chats, true)
	if err != nil {
		return nil, fmt.Errorf("generate qa pairs: %w", err)
	}
	return parseAll(p.parser, outputs, req.Passages, p.threshold), nil
}

func (p *PromptQAG) render(req QAGRequest, i int, passage, numQuestions string) (string, error) {
	vars := map[string]string{"num_questions": numQuestions}
	var set prompt.Set
	switch {
	case req.Candidates != nil && req.AltPassages != nil:
		set = evaluationSet
		vars["src_passage"] = passage
		vars["ref_passage"] = req.AltPassages[i]
		vars["alternatives"] = strings.Join(req.Candidates[i], candidateSeparator)
	case req.Candidates != nil:
		set = candidateSet
		vars["passage"] = passage
		vars["alternatives"] = strings.Join(req.Candidates[i], candidateSeparator)
	case req.AltPassages != nil:
		set = bothSet
		vars["src_passage"] = passage
		vars["ref_passage"] = req.AltPassages[i]
	default:
		set = passageSet
		vars["passage"] = passage
	}
	tmpl, err := set.Get(p.template)
	if err != nil {
		return "", err
	}
	return prompt.Format(tmpl, vars), nil
}
