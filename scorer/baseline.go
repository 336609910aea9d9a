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

	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/trpc-treqa-go/answerextraction"
	"trpc.group/trpc-go/trpc-treqa-go/internal/chrf"
	"trpc.group/trpc-go/trpc-treqa-go/log"
)

// Chrf scores each translation with sentence chrF against its reference.
type Chrf struct{}

// NewChrf returns a chrF scorer.
func NewChrf() *Chrf { return &Chrf{} }

// Bounds implements DocScorer.
func (*Chrf) Bounds() (float64, float64) { return 0, 100 }

// Score implements DocScorer. References are required.
func (*Chrf) Score(_ context.Context, in Inputs) (*Result, error) {
	if err := requireField("references", in.References, len(in.Translations)); err != nil {
		return nil, err
	}
	scores := make([]float64, len(in.Translations))
	for i, hyp := range in.Translations {
		scores[i] = chrf.Sentence(hyp, in.References[i])
	}
	return &Result{Scores: scores}, nil
}

// ComparatorJaccard compares keyphrase sets by intersection over union.
const ComparatorJaccard = "jaccard"

// Keyphrase compares the keyphrases extracted from translation and
// reference.
type Keyphrase struct {
	extractor  answerextraction.Extractor
	numAnswers int
}

// NewKeyphrase creates a keyphrase scorer. Only the "jaccard" comparator
// exists. numAnswers is passed to the extractor.
func NewKeyphrase(extractor answerextraction.Extractor, comparator string, numAnswers int) (*Keyphrase, error) {
	if extractor == nil {
		return nil, errors.New("keyphrase scorer needs an answer extractor")
	}
	if comparator != ComparatorJaccard {
		return nil, fmt.Errorf("unknown keyphrase comparator %q", comparator)
	}
	return &Keyphrase{extractor: extractor, numAnswers: numAnswers}, nil
}

// Bounds implements DocScorer.
func (*Keyphrase) Bounds() (float64, float64) { return 0, 1 }

// Score implements DocScorer. References are required.
func (k *Keyphrase) Score(ctx context.Context, in Inputs) (*Result, error) {
	if err := requireField("references", in.References, len(in.Translations)); err != nil {
		return nil, err
	}
	refs, err := k.extractor.ExtractAnswers(ctx, in.References, k.numAnswers)
	if err != nil {
		return nil, fmt.Errorf("reference keyphrases: %w", err)
	}
	hyps, err := k.extractor.ExtractAnswers(ctx, in.Translations, k.numAnswers)
	if err != nil {
		return nil, fmt.Errorf("translation keyphrases: %w", err)
	}
	if len(refs) != len(in.Translations) || len(hyps) != len(in.Translations) {
		return nil, fmt.Errorf("%w: extractor returned %d and %d lists for %d translations",
			ErrLengthMismatch, len(refs), len(hyps), len(in.Translations))
	}
	scores := make([]float64, len(in.Translations))
	for i := range scores {
		scores[i] = jaccard(hyps[i], refs[i])
	}
	return &Result{Scores: scores}, nil
}

// jaccard returns |a ∩ b| / |a ∪ b| over distinct phrases, 0 if either
// list is empty.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	union := len(setA)
	inter := 0
	seenB := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, ok := seenB[s]; ok {
			continue
		}
		seenB[s] = struct{}{}
		if _, ok := setA[s]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// Mix sums the scores of several scorers, each scaled by its weight.
type Mix struct {
	scorers []DocScorer
	weights []float64
}

// NewMix creates a Mix. scorers and weights must have the same length.
func NewMix(scorers []DocScorer, weights []float64) (*Mix, error) {
	if len(scorers) != len(weights) {
		return nil, fmt.Errorf("mix: %d scorers but %d weights", len(scorers), len(weights))
	}
	return &Mix{scorers: scorers, weights: weights}, nil
}

// Bounds implements DocScorer with the weighted sums of the bounds.
func (m *Mix) Bounds() (float64, float64) {
	var lo, hi float64
	for i, s := range m.scorers {
		a, b := s.Bounds()
		a, b = a*m.weights[i], b*m.weights[i]
		lo += min(a, b)
		hi += max(a, b)
	}
	return lo, hi
}

// Score implements DocScorer. Sub-scorers run concurrently on the same
// inputs.
func (m *Mix) Score(ctx context.Context, in Inputs) (*Result, error) {
	results := make([]*Result, len(m.scorers))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range m.scorers {
		g.Go(func() error {
			r, err := s.Score(gctx, in)
			if err != nil {
				return fmt.Errorf("mix scorer %d: %w", i, err)
			}
			if len(r.Scores) != len(in.Translations) {
				return fmt.Errorf("%w: mix scorer %d returned %d scores for %d translations",
					ErrLengthMismatch, i, len(r.Scores), len(in.Translations))
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	agg := make([]float64, len(in.Translations))
	for i, r := range results {
		for j, s := range r.Scores {
			agg[j] += s * m.weights[i]
		}
	}
	log.Debugf("mix: combined %d scorers over %d translations", len(m.scorers), len(agg))
	return &Result{Scores: agg}, nil
}
