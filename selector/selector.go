//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package selector picks one shared question list for every group of
// candidate translations of the same passage.
package selector

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"trpc.group/trpc-go/trpc-treqa-go/log"
)

var (
	// ErrSizeMismatch is returned when the question lists do not form n
	// groups of k.
	ErrSizeMismatch = errors.New("selector: question lists must number n x k")
	// ErrUnknownStrategy is returned for an unsupported strategy name.
	ErrUnknownStrategy = errors.New("selector: unknown strategy")
)

// Strategy names how questions are chosen within a group.
type Strategy string

// Supported strategies.
const (
	// Frequent keeps the questions asked by most candidates.
	Frequent Strategy = "frequent"
	// Similarity keeps the questions lexically closest to all the others.
	Similarity Strategy = "similarity"
	// Random keeps a uniform sample.
	Random Strategy = "random"
)

// Selector picks questions per group. A Selector built with WithRand is
// not safe for concurrent use.
type Selector struct {
	strategy     Strategy
	numQuestions int
	rng          *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithNumQuestions caps the questions kept per group. Zero keeps the
// union of every question in the group, whatever the strategy.
func WithNumQuestions(n int) Option {
	return func(s *Selector) { s.numQuestions = n }
}

// WithRand sets the source used by the random strategy. The default is
// seeded with 42.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

const defaultSeed = 42

// New creates a Selector for strategy.
func New(strategy Strategy, opts ...Option) (*Selector, error) {
	switch strategy {
	case Frequent, Similarity, Random:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	s := &Selector{strategy: strategy}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(defaultSeed))
	}
	return s, nil
}

// Select splits questions into n groups of k consecutive lists and
// returns n*k lists where every slot of a group holds the group's
// selection. Slots of one group share the same backing slice.
func (s *Selector) Select(questions [][]string, n, k int) ([][]string, error) {
	if n < 0 || k < 0 || len(questions) != n*k {
		return nil, fmt.Errorf("%w: got %d lists for n=%d k=%d", ErrSizeMismatch, len(questions), n, k)
	}
	result := make([][]string, 0, len(questions))
	for g := range n {
		var all []string
		for _, qs := range questions[g*k : (g+1)*k] {
			all = append(all, qs...)
		}
		picked := s.pick(all)
		log.Debugf("selector: group %d kept %d of %d questions", g, len(picked), len(all))
		for range k {
			result = append(result, picked)
		}
	}
	return result, nil
}

func (s *Selector) pick(all []string) []string {
	if s.numQuestions <= 0 {
		return union(all)
	}
	switch s.strategy {
	case Similarity:
		return mostCentral(all, s.numQuestions)
	case Random:
		return sample(s.rng, all, s.numQuestions)
	default:
		return mostFrequent(all, s.numQuestions)
	}
}

// union deduplicates all in first-seen order.
func union(all []string) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, q := range all {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// mostFrequent keeps the n most frequent distinct questions. Ties go to
// the question seen first.
func mostFrequent(all []string, n int) []string {
	counts := make(map[string]int, len(all))
	for _, q := range all {
		counts[q]++
	}
	distinct := union(all)
	sort.SliceStable(distinct, func(i, j int) bool {
		return counts[distinct[i]] > counts[distinct[j]]
	})
	return distinct[:min(n, len(distinct))]
}

// mostCentral keeps the n questions with the highest summed similarity to
// every other question. Duplicates are scored separately and may both be
// kept. Ties go to the earlier question.
func mostCentral(all []string, n int) []string {
	runes := make([][]rune, len(all))
	for i, q := range all {
		runes[i] = []rune(q)
	}
	scores := make([]float64, len(all))
	for i := range all {
		for j := range all {
			if i != j {
				scores[i] += ratio(runes[i], runes[j])
			}
		}
	}
	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	out := make([]string, 0, min(n, len(all)))
	for _, i := range idx[:min(n, len(all))] {
		out = append(out, all[i])
	}
	return out
}

// sample draws min(n, len(all)) questions without replacement.
func sample(rng *rand.Rand, all []string, n int) []string {
	n = min(n, len(all))
	perm := rng.Perm(len(all))
	out := make([]string, n)
	for i := range out {
		out[i] = all[perm[i]]
	}
	return out
}
