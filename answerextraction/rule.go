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
	"math/rand"

	"trpc.group/trpc-go/trpc-treqa-go/internal/textproc"
)

// RuleStrategy selects the spans a Rule extractor proposes.
type RuleStrategy string

// Rule strategies.
const (
	// StrategyNPChunks proposes every phrase between stop words and
	// punctuation.
	StrategyNPChunks RuleStrategy = "np-chunks"
	// StrategyMaxNP proposes the longest phrase of each sentence.
	StrategyMaxNP RuleStrategy = "max-np"
	// StrategyNER proposes runs of capitalised words and numbers.
	StrategyNER RuleStrategy = "ner"
	// StrategyAll proposes the union of the other strategies.
	StrategyAll RuleStrategy = "all"
)

// maxChunkTokens bounds phrase length. Longer runs are usually clauses.
const maxChunkTokens = 7

// Rule proposes spans with surface heuristics over segmented sentences.
// A Rule is not safe for concurrent use when sampling.
type Rule struct {
	strategy RuleStrategy
	lang     string
	side     Side
	rng      *rand.Rand
}

type ruleOptions struct {
	lang        string
	extractFrom string
	rng         *rand.Rand
}

// RuleOption configures a Rule extractor.
type RuleOption func(*ruleOptions)

// WithLanguage selects the sentence model, "en" by default.
func WithLanguage(lang string) RuleOption {
	return func(o *ruleOptions) { o.lang = lang }
}

// WithRand sets the source used to sample answers.
func WithRand(rng *rand.Rand) RuleOption {
	return func(o *ruleOptions) { o.rng = rng }
}

// WithRuleExtractFrom records which side of the corpus the passages come
// from, "target" (default) or "source".
func WithRuleExtractFrom(side string) RuleOption {
	return func(o *ruleOptions) { o.extractFrom = side }
}

// NewRule creates a Rule extractor.
func NewRule(strategy RuleStrategy, opts ...RuleOption) (*Rule, error) {
	switch strategy {
	case StrategyNPChunks, StrategyMaxNP, StrategyNER, StrategyAll:
	default:
		return nil, fmt.Errorf("unknown rule strategy %q", strategy)
	}
	o := ruleOptions{lang: "en"}
	for _, opt := range opts {
		opt(&o)
	}
	side, err := parseSide(o.extractFrom)
	if err != nil {
		return nil, err
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(42))
	}
	return &Rule{strategy: strategy, lang: o.lang, side: side, rng: o.rng}, nil
}

// ExtractFrom returns the corpus side the extractor was configured for.
func (r *Rule) ExtractFrom() Side { return r.side }

// ExtractAnswers implements Extractor. With numAnswers set, min(numAnswers,
// found) spans are drawn with replacement.
func (r *Rule) ExtractAnswers(_ context.Context, passages []string, numAnswers int) ([][]string, error) {
	out := make([][]string, len(passages))
	for i, passage := range passages {
		sentences, err := textproc.Sentences(r.lang, passage)
		if err != nil {
			return nil, err
		}
		var spans []string
		for _, s := range sentences {
			spans = append(spans, r.sentenceSpans(s)...)
		}
		if r.strategy == StrategyAll {
			spans = dedup(spans)
		}
		if numAnswers > 0 && len(spans) > 0 {
			picked := make([]string, min(numAnswers, len(spans)))
			for j := range picked {
				picked[j] = spans[r.rng.Intn(len(spans))]
			}
			spans = picked
		}
		out[i] = spans
	}
	return out, nil
}

func (r *Rule) sentenceSpans(s string) []string {
	switch r.strategy {
	case StrategyNPChunks:
		return chunks(s)
	case StrategyMaxNP:
		return longestChunk(s)
	case StrategyNER:
		return entities(s)
	default:
		spans := chunks(s)
		spans = append(spans, longestChunk(s)...)
		return append(spans, entities(s)...)
	}
}

// chunkRuns groups adjacent content words. Stop words and punctuation end
// a run.
func chunkRuns(s string) [][]textproc.Token {
	var (
		runs [][]textproc.Token
		cur  []textproc.Token
	)
	flush := func() {
		if len(cur) > 0 && len(cur) <= maxChunkTokens {
			runs = append(runs, cur)
		}
		cur = nil
	}
	for _, tok := range textproc.Words(s) {
		if textproc.IsStopWord(tok.Text) {
			flush()
			continue
		}
		if len(cur) > 0 && !textproc.Adjacent(s, cur[len(cur)-1], tok) {
			flush()
		}
		cur = append(cur, tok)
	}
	flush()
	return runs
}

func span(s string, run []textproc.Token) string {
	return s[run[0].Start:run[len(run)-1].End]
}

func chunks(s string) []string {
	runs := chunkRuns(s)
	out := make([]string, len(runs))
	for i, run := range runs {
		out[i] = span(s, run)
	}
	return out
}

// longestChunk returns the chunk with the most words, the first on ties.
func longestChunk(s string) []string {
	var best []textproc.Token
	for _, run := range chunkRuns(s) {
		if len(run) > len(best) {
			best = run
		}
	}
	if best == nil {
		return nil
	}
	return []string{span(s, best)}
}

// entities returns runs of capitalised words and numbers. A lone
// capitalised word opening the sentence is skipped, and leading stop
// words are dropped.
func entities(s string) []string {
	tokens := textproc.Words(s)
	var out []string
	for i := 0; i < len(tokens); {
		if !isEntityToken(tokens[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && isEntityToken(tokens[j]) && textproc.Adjacent(s, tokens[j-1], tokens[j]) {
			j++
		}
		run := tokens[i:j]
		startsSentence := i == 0
		i = j
		for len(run) > 0 && textproc.IsStopWord(run[0].Text) {
			run = run[1:]
			startsSentence = false
		}
		if len(run) == 0 || (startsSentence && len(run) == 1 && !textproc.Numeric(run[0])) {
			continue
		}
		out = append(out, span(s, run))
	}
	return out
}

func isEntityToken(t textproc.Token) bool {
	return textproc.Capitalized(t) || textproc.Numeric(t)
}
