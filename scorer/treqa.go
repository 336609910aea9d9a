//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package scorer

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	itelemetry "trpc.group/trpc-go/trpc-treqa-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
	"trpc.group/trpc-go/trpc-treqa-go/questionanswering"
	"trpc.group/trpc-go/trpc-treqa-go/selector"
	atrace "trpc.group/trpc-go/trpc-treqa-go/telemetry/trace"
)

// TREQA scores translations by question answering. The reference variant
// reads reference answers from the references, the QE variant from the
// sources.
type TREQA struct {
	name     string
	answerer questionanswering.Answerer
	matcher  answermatching.Matcher
	// fromSource selects the QE variant.
	fromSource    bool
	fallback      Fallback
	fallbackValue float64
	genRefAnswers bool
	refTemplate   string
	selector      *selector.Selector
	numCandidates int
}

// TREQAOption configures a TREQA scorer.
type TREQAOption func(*TREQA)

// WithFallback sets the policy for documents without questions. The
// reference variant defaults to "no_error", the QE variant to "error".
func WithFallback(f Fallback) TREQAOption {
	return func(s *TREQA) { s.fallback = f }
}

// WithGenRefAnswers answers the questions on the reference side when set
// (the default). Otherwise the answers stored with the questions are used.
func WithGenRefAnswers(gen bool) TREQAOption {
	return func(s *TREQA) { s.genRefAnswers = gen }
}

// WithRefTemplate names the question answering template used for
// reference answers. Empty keeps the answerer's own template. Defaults are
// "standard" for the reference variant and "eng-standard" for QE.
func WithRefTemplate(name string) TREQAOption {
	return func(s *TREQA) { s.refTemplate = name }
}

// WithSelection replaces the questions of every group of numCandidates
// consecutive translations of the same passage with sel's choice. It
// requires generated reference answers.
func WithSelection(sel *selector.Selector, numCandidates int) TREQAOption {
	return func(s *TREQA) {
		s.selector = sel
		s.numCandidates = numCandidates
	}
}

// NewTREQA creates the reference-based scorer.
func NewTREQA(answerer questionanswering.Answerer, matcher answermatching.Matcher, opts ...TREQAOption) (*TREQA, error) {
	return newTREQA("treqa", false, FallbackNoError, "standard", answerer, matcher, opts)
}

// NewTREQAQE creates the source-based, reference-free scorer.
func NewTREQAQE(answerer questionanswering.Answerer, matcher answermatching.Matcher, opts ...TREQAOption) (*TREQA, error) {
	return newTREQA("treqa_qe", true, FallbackError, "eng-standard", answerer, matcher, opts)
}

func newTREQA(name string, fromSource bool, fallback Fallback, refTemplate string,
	answerer questionanswering.Answerer, matcher answermatching.Matcher, opts []TREQAOption) (*TREQA, error) {
	if answerer == nil || matcher == nil {
		return nil, fmt.Errorf("%s needs a question answerer and an answer matcher", name)
	}
	s := &TREQA{
		name:          name,
		answerer:      answerer,
		matcher:       matcher,
		fromSource:    fromSource,
		fallback:      fallback,
		genRefAnswers: true,
		refTemplate:   refTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}
	lo, hi := matcher.Bounds()
	v, err := s.fallback.Value(lo, hi)
	if err != nil {
		return nil, err
	}
	s.fallbackValue = v
	if s.selector != nil {
		if s.numCandidates <= 0 {
			return nil, errors.New("question selection needs a positive candidate count")
		}
		if !s.genRefAnswers {
			return nil, errors.New("question selection needs generated reference answers")
		}
	}
	return s, nil
}

// Bounds implements DocScorer with the matcher's bounds.
func (s *TREQA) Bounds() (float64, float64) { return s.matcher.Bounds() }

// Score implements DocScorer. Result always carries answers and
// per-question scores.
func (s *TREQA) Score(ctx context.Context, in Inputs) (*Result, error) {
	n := len(in.Translations)
	if in.QAPairs == nil {
		return nil, fmt.Errorf("%w: qa pairs", ErrMissingInput)
	}
	if len(in.QAPairs) != n {
		return nil, fmt.Errorf("%w: %d qa pair lists for %d translations", ErrLengthMismatch, len(in.QAPairs), n)
	}
	contexts, contextName := in.References, "references"
	if s.fromSource {
		contexts, contextName = in.Sources, "sources"
	}
	if err := requireField(contextName, contexts, n); err != nil {
		return nil, err
	}

	questions, err := s.questions(ctx, in.QAPairs)
	if err != nil {
		return nil, err
	}

	ctx1, span := atrace.Tracer.Start(ctx, itelemetry.SpanPredictedAnswers)
	predicted, err := s.answer(ctx1, "predicted", in.Translations, questions)
	span.End()
	if err != nil {
		return nil, err
	}

	ctx1, span = atrace.Tracer.Start(ctx, itelemetry.SpanReferenceAnswers)
	var reference [][]string
	if s.genRefAnswers {
		var opts []questionanswering.CallOption
		if s.refTemplate != "" {
			opts = append(opts, questionanswering.WithCallTemplate(s.refTemplate))
		}
		reference, err = s.answer(ctx1, "reference", contexts, questions, opts...)
	} else {
		reference = make([][]string, n)
		for i, pairs := range in.QAPairs {
			reference[i] = qapair.Answers(pairs)
		}
	}
	span.End()
	if err != nil {
		return nil, err
	}

	flat, err := s.match(ctx, questions, predicted, reference, contexts)
	if err != nil {
		return nil, err
	}

	ctx, span = atrace.Tracer.Start(ctx, itelemetry.SpanAggregate)
	defer span.End()
	span.SetAttributes(itelemetry.KeyDocuments.Int(n))
	scores, perQuestion, err := s.aggregate(ctx, questions, flat)
	if err != nil {
		return nil, err
	}
	return &Result{
		Scores:      scores,
		Predicted:   predicted,
		Reference:   reference,
		PerQuestion: perQuestion,
	}, nil
}

// questions lists each document's questions, applying selection if set.
func (s *TREQA) questions(ctx context.Context, pairs [][]qapair.Pair) ([][]string, error) {
	_, span := atrace.Tracer.Start(ctx, itelemetry.SpanQuestions)
	defer span.End()
	questions := make([][]string, len(pairs))
	total := 0
	for i, p := range pairs {
		questions[i] = qapair.Questions(p)
		total += len(p)
	}
	span.SetAttributes(itelemetry.KeyDocuments.Int(len(pairs)), itelemetry.KeyQuestions.Int(total))
	if s.selector == nil {
		return questions, nil
	}
	if len(questions)%s.numCandidates != 0 {
		return nil, fmt.Errorf("%w: %d documents do not split into groups of %d candidates",
			ErrLengthMismatch, len(questions), s.numCandidates)
	}
	return s.selector.Select(questions, len(questions)/s.numCandidates, s.numCandidates)
}

func (s *TREQA) answer(ctx context.Context, kind string, passages []string, questions [][]string,
	opts ...questionanswering.CallOption) ([][]string, error) {
	answers, err := s.answerer.ExtractAnswers(ctx, passages, questions, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s answers: %w", kind, err)
	}
	if len(answers) != len(questions) {
		return nil, fmt.Errorf("%s answers: got %d documents, want %d", kind, len(answers), len(questions))
	}
	for i := range answers {
		if len(answers[i]) != len(questions[i]) {
			return nil, fmt.Errorf("%s answers: document %d has %d answers for %d questions",
				kind, i, len(answers[i]), len(questions[i]))
		}
	}
	log.Debugf("%s: %s answers ready for %d documents", s.name, kind, len(answers))
	return answers, nil
}

// match scores every question of every document in a single matcher call.
func (s *TREQA) match(ctx context.Context, questions, predicted, reference [][]string, contexts []string) ([]float64, error) {
	ctx, span := atrace.Tracer.Start(ctx, itelemetry.SpanMatch)
	defer span.End()
	var in answermatching.Inputs
	for i, qs := range questions {
		in.Questions = append(in.Questions, qs...)
		in.Predicted = append(in.Predicted, predicted[i]...)
		in.References = append(in.References, reference[i]...)
		for range qs {
			in.Contexts = append(in.Contexts, contexts[i])
		}
	}
	span.SetAttributes(itelemetry.KeyQuestions.Int(len(in.Questions)))
	if len(in.Questions) == 0 {
		return []float64{}, nil
	}
	scores, err := s.matcher.EvaluateAnswers(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("match answers: %w", err)
	}
	if len(scores) != len(in.Questions) {
		return nil, fmt.Errorf("%w: %d scores for %d questions", ErrScoreCountMismatch, len(scores), len(in.Questions))
	}
	return scores, nil
}

// aggregate regroups flat scores by document and averages them. Documents
// without questions get the fallback value.
func (s *TREQA) aggregate(ctx context.Context, questions [][]string, flat []float64) ([]float64, [][]float64, error) {
	scores := make([]float64, len(questions))
	perQuestion := make([][]float64, len(questions))
	idx := 0
	for i, qs := range questions {
		if len(qs) == 0 {
			log.Infof("%s: using fallback for index %d", s.name, i)
			itelemetry.ScorerFallbacks.Add(ctx, 1, metric.WithAttributes(
				itelemetry.KeyScorer.String(s.name),
				itelemetry.KeyFallback.String(string(s.fallback)),
			))
			scores[i] = s.fallbackValue
			perQuestion[i] = []float64{}
			continue
		}
		if idx+len(qs) > len(flat) {
			return nil, nil, fmt.Errorf("%w: ran out of scores at document %d", ErrScoreCountMismatch, i)
		}
		perQuestion[i] = flat[idx : idx+len(qs) : idx+len(qs)]
		scores[i] = Mean(perQuestion[i])
		idx += len(qs)
	}
	if idx != len(flat) {
		return nil, nil, fmt.Errorf("%w: used %d of %d scores", ErrScoreCountMismatch, idx, len(flat))
	}
	return scores, perQuestion, nil
}
