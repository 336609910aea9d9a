//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package answerextraction picks candidate answer spans out of passages.
// Questions are later written for these spans.
package answerextraction

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/registry"
)

// DefaultNumAnswers is used by extractors that need a count when the
// caller passes zero.
const DefaultNumAnswers = 5

// Extractor returns the answer spans found in each passage.
type Extractor interface {
	// ExtractAnswers returns at most numAnswers spans per passage. Zero
	// leaves the count to the extractor.
	ExtractAnswers(ctx context.Context, passages []string, numAnswers int) ([][]string, error)
}

// Side names the half of a parallel corpus answers come from.
type Side string

// Sides.
const (
	SideTarget Side = "target"
	SideSource Side = "source"
)

func parseSide(s string) (Side, error) {
	switch Side(s) {
	case "", SideTarget:
		return SideTarget, nil
	case SideSource:
		return SideSource, nil
	}
	return "", fmt.Errorf("extract_from must be %q or %q, got %q", SideSource, SideTarget, s)
}

// Args configures extractors built through the registry. Fields an
// extractor does not use are ignored.
type Args struct {
	Template       string `json:"template,omitempty"`
	SystemTemplate string `json:"system_template,omitempty"`
	ExtractFrom    string `json:"extract_from,omitempty"`

	Strategy string `json:"strategy,omitempty"`
	Language string `json:"lp,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`

	NgramRange   []int    `json:"keyphrase_ngram_range,omitempty"`
	UseMMR       *bool    `json:"use_mmr,omitempty"`
	Diversity    *float64 `json:"diversity,omitempty"`
	NrCandidates int      `json:"nr_candidates,omitempty"`
	Model        string   `json:"model,omitempty"`
	BaseURL      string   `json:"base_url,omitempty"`
	APIKey       string   `json:"api_key,omitempty"`
}

// Factory builds an extractor. gen is nil when no generation backend is
// configured.
type Factory func(gen generation.Generator, args Args) (Extractor, error)

var factories = registry.New[Factory]("answer extractor")

func init() {
	Register("prompt_ae", func(gen generation.Generator, args Args) (Extractor, error) {
		if gen == nil {
			return nil, errors.New("prompt_ae needs a generator")
		}
		opts := []PromptOption{WithExtractFrom(args.ExtractFrom)}
		if args.Template != "" {
			opts = append(opts, WithTemplate(args.Template))
		}
		if args.SystemTemplate != "" {
			opts = append(opts, WithSystemTemplate(args.SystemTemplate))
		}
		return NewPrompt(gen, opts...)
	})
	Register("spacy", func(_ generation.Generator, args Args) (Extractor, error) {
		opts := []RuleOption{WithRuleExtractFrom(args.ExtractFrom)}
		if args.Language != "" {
			opts = append(opts, WithLanguage(args.Language))
		}
		if args.Seed != nil {
			opts = append(opts, WithRand(rand.New(rand.NewSource(*args.Seed))))
		}
		strategy := RuleStrategy(args.Strategy)
		if strategy == "" {
			strategy = StrategyAll
		}
		return NewRule(strategy, opts...)
	})
	Register("keyllm", func(_ generation.Generator, args Args) (Extractor, error) {
		var opts []KeywordOption
		if len(args.NgramRange) != 0 {
			if len(args.NgramRange) != 2 {
				return nil, fmt.Errorf("keyphrase_ngram_range needs 2 values, got %d", len(args.NgramRange))
			}
			opts = append(opts, WithNgramRange(args.NgramRange[0], args.NgramRange[1]))
		}
		if args.UseMMR != nil {
			opts = append(opts, WithMMR(*args.UseMMR))
		}
		if args.Diversity != nil {
			opts = append(opts, WithDiversity(*args.Diversity))
		}
		if args.NrCandidates > 0 {
			opts = append(opts, WithNrCandidates(args.NrCandidates))
		}
		var embOpts []EmbedderOption
		if args.Model != "" {
			embOpts = append(embOpts, WithEmbeddingModel(args.Model))
		}
		if args.BaseURL != "" {
			embOpts = append(embOpts, WithEmbeddingBaseURL(args.BaseURL))
		}
		if args.APIKey != "" {
			embOpts = append(embOpts, WithEmbeddingAPIKey(args.APIKey))
		}
		return NewKeyword(NewOpenAIEmbedder(embOpts...), opts...)
	})
}

// Register adds an extractor factory under name.
func Register(name string, f Factory) { factories.Register(name, f) }

// New builds the extractor registered as name.
func New(name string, gen generation.Generator, args Args) (Extractor, error) {
	f, err := factories.Get(name)
	if err != nil {
		return nil, err
	}
	return f(gen, args)
}

// Names lists the registered extractors.
func Names() []string { return factories.Names() }

// dedup drops repeated spans, keeping the first.
func dedup(spans []string) []string {
	seen := make(map[string]struct{}, len(spans))
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
