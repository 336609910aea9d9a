//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package demo runs the single-passage evaluation pipeline: generate
// questions from a source, a reference and candidate translations, answer
// them on every passage and rate each candidate answer with chrF.
package demo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/chrf"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
	"trpc.group/trpc-go/trpc-treqa-go/outputparser"
)

// ErrMissingInput is returned when source, reference or candidates are
// empty.
var ErrMissingInput = errors.New("missing source, reference or candidates")

// Result is the outcome of one Run. Scores[i][j] rates candidate i on
// question j.
type Result struct {
	ID               string                    `json:"id"`
	Questions        []string                  `json:"questions"`
	ReferenceAnswers []string                  `json:"reference_answers"`
	CandidateAnswers [][]string                `json:"candidate_answers"`
	Scores           [][]answermatching.Rating `json:"scores"`
}

// Run evaluates candidates against reference. gen serves both the
// question generation prompt and the question answering prompts.
func Run(ctx context.Context, gen generation.Generator, source, reference string, candidates []string) (*Result, error) {
	if source == "" || reference == "" || len(candidates) == 0 {
		return nil, ErrMissingInput
	}
	res := &Result{ID: uuid.NewString()}

	questions, err := generateQuestions(ctx, gen, source, reference, candidates)
	if err != nil {
		return nil, err
	}
	res.Questions = questions
	log.Debugf("demo %s: generated %d questions", res.ID, len(questions))

	// Reference first, then each candidate, question by question.
	passages := append([]string{reference}, candidates...)
	chats := make([]generation.Chat, 0, len(passages)*len(questions))
	for _, passage := range passages {
		for _, q := range questions {
			chats = append(chats, generation.Chat{
				model.NewSystemMessage(qaSystemPrompt),
				model.NewUserMessage(prompt.Format(qaTemplate, map[string]string{
					"passage":  passage,
					"question": q,
				})),
			})
		}
	}
	answers, err := gen.Generate(ctx, chats, true)
	if err != nil {
		return nil, fmt.Errorf("answer questions: %w", err)
	}
	if len(answers) != len(chats) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(answers), len(chats))
	}
	nq := len(questions)
	res.ReferenceAnswers = answers[:nq:nq]
	res.CandidateAnswers = make([][]string, len(candidates))
	res.Scores = make([][]answermatching.Rating, len(candidates))
	for i := range candidates {
		start := (i + 1) * nq
		res.CandidateAnswers[i] = answers[start : start+nq : start+nq]
		res.Scores[i] = make([]answermatching.Rating, nq)
		for j, ans := range res.CandidateAnswers[i] {
			score := chrf.Sentence(ans, res.ReferenceAnswers[j])
			res.Scores[i][j] = answermatching.Rate(score, answermatching.DefaultRatingThreshold)
		}
	}
	log.Debugf("demo %s: scored %d candidates", res.ID, len(candidates))
	return res, nil
}

func generateQuestions(ctx context.Context, gen generation.Generator, source, reference string,
	candidates []string) ([]string, error) {
	chat := generation.Chat{
		model.NewSystemMessage(qagSystemPrompt),
		model.NewUserMessage(prompt.Format(qagTemplate, map[string]string{
			"src_passage":  source,
			"ref_passage":  reference,
			"alternatives": strings.Join(candidates, "\n"),
		})),
	}
	outputs, err := gen.Generate(ctx, []generation.Chat{chat}, false)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("got %d outputs for one question generation prompt", len(outputs))
	}
	pairs, skipped := outputparser.Default{}.Parse(outputs[0], "", nil)
	for _, s := range skipped {
		log.Debugf("demo: skipped block (%s): %q", s.Reason, s.Text)
	}
	// Pairs are unique but a question may come back with two answers.
	questions := make([]string, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p.Question]; ok {
			continue
		}
		seen[p.Question] = struct{}{}
		questions = append(questions, p.Question)
	}
	return questions, nil
}
