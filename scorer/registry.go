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
	"errors"
	"fmt"
	"math/rand"

	"trpc.group/trpc-go/trpc-treqa-go/answerextraction"
	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/registry"
	"trpc.group/trpc-go/trpc-treqa-go/questionanswering"
	"trpc.group/trpc-go/trpc-treqa-go/selector"
)

// Deps are the components a scorer may be built on. A factory fails when
// a component it needs is nil.
type Deps struct {
	Generator generation.Generator
	Answerer  questionanswering.Answerer
	Matcher   answermatching.Matcher
	Extractor answerextraction.Extractor
}

// Args configures scorers built through the registry. Fields a scorer
// does not use are ignored.
type Args struct {
	// TREQA.
	Fallback       string  `json:"fallback,omitempty"`
	GenRefAnswers  *bool   `json:"gen_ref_answers,omitempty"`
	RefTemplate    *string `json:"ref_template,omitempty"`
	SelectStrategy string  `json:"select_strategy,omitempty"`
	NumQuestions   int     `json:"num_questions,omitempty"`
	NumCandidates  int     `json:"num_candidates,omitempty"`
	Seed           *int64  `json:"seed,omitempty"`

	// Keyphrase.
	Comparator string `json:"comparator,omitempty"`
	NumAnswers int    `json:"num_answers,omitempty"`

	// GEMBA.
	SrcLang string `json:"src_lang,omitempty"`
	TgtLang string `json:"tgt_lang,omitempty"`

	// Mix.
	Scorers []string  `json:"scorer_list,omitempty"`
	Weights []float64 `json:"weights,omitempty"`
}

// Factory builds a scorer.
type Factory func(deps Deps, args Args) (DocScorer, error)

var factories = registry.New[Factory]("scorer")

func init() {
	Register("treqa", func(deps Deps, args Args) (DocScorer, error) {
		opts, err := treqaOptions(args)
		if err != nil {
			return nil, err
		}
		return NewTREQA(deps.Answerer, deps.Matcher, opts...)
	})
	Register("treqa_qe", func(deps Deps, args Args) (DocScorer, error) {
		opts, err := treqaOptions(args)
		if err != nil {
			return nil, err
		}
		return NewTREQAQE(deps.Answerer, deps.Matcher, opts...)
	})
	Register("chrf", func(Deps, Args) (DocScorer, error) { return NewChrf(), nil })
	Register("keyphrase", func(deps Deps, args Args) (DocScorer, error) {
		comparator := args.Comparator
		if comparator == "" {
			comparator = ComparatorJaccard
		}
		return NewKeyphrase(deps.Extractor, comparator, args.NumAnswers)
	})
	Register("gemba", func(deps Deps, args Args) (DocScorer, error) {
		var opts []GEMBAOption
		if args.SrcLang != "" || args.TgtLang != "" {
			opts = append(opts, WithLanguages(args.SrcLang, args.TgtLang))
		}
		return NewGEMBA(deps.Generator, opts...)
	})
	Register("mix", func(deps Deps, args Args) (DocScorer, error) {
		if len(args.Scorers) == 0 {
			return nil, errors.New("mix needs scorer_list")
		}
		sub := args
		sub.Scorers, sub.Weights = nil, nil
		scorers := make([]DocScorer, len(args.Scorers))
		for i, name := range args.Scorers {
			if name == "mix" {
				return nil, errors.New("mix cannot contain itself")
			}
			s, err := New(name, deps, sub)
			if err != nil {
				return nil, fmt.Errorf("mix scorer %q: %w", name, err)
			}
			scorers[i] = s
		}
		return NewMix(scorers, args.Weights)
	})
}

func treqaOptions(args Args) ([]TREQAOption, error) {
	var opts []TREQAOption
	if args.Fallback != "" {
		opts = append(opts, WithFallback(Fallback(args.Fallback)))
	}
	if args.GenRefAnswers != nil {
		opts = append(opts, WithGenRefAnswers(*args.GenRefAnswers))
	}
	if args.RefTemplate != nil {
		opts = append(opts, WithRefTemplate(*args.RefTemplate))
	}
	if args.SelectStrategy == "" {
		return opts, nil
	}
	selOpts := []selector.Option{selector.WithNumQuestions(args.NumQuestions)}
	if args.Seed != nil {
		selOpts = append(selOpts, selector.WithRand(rand.New(rand.NewSource(*args.Seed))))
	}
	sel, err := selector.New(selector.Strategy(args.SelectStrategy), selOpts...)
	if err != nil {
		return nil, err
	}
	return append(opts, WithSelection(sel, args.NumCandidates)), nil
}

// Register adds a scorer factory under name.
func Register(name string, f Factory) { factories.Register(name, f) }

// New builds the scorer registered as name.
func New(name string, deps Deps, args Args) (DocScorer, error) {
	f, err := factories.Get(name)
	if err != nil {
		return nil, err
	}
	return f(deps, args)
}

// Names lists the registered scorers.
func Names() []string { return factories.Names() }
