//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package scorer computes one quality score per translated document.
//
// The TREQA scorers answer each document's questions on the translation
// and on the reference (or source), compare the two answers and average
// the comparisons. The other scorers are baselines sharing the same
// interface.
package scorer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"trpc.group/trpc-go/trpc-treqa-go/qapair"
)

var (
	// ErrMissingInput is returned when a scorer lacks a field it needs.
	ErrMissingInput = errors.New("scorer: missing input")
	// ErrLengthMismatch is returned when parallel inputs differ in length.
	ErrLengthMismatch = errors.New("scorer: parallel inputs differ in length")
	// ErrUnknownFallback is returned for an unsupported fallback policy.
	ErrUnknownFallback = errors.New("scorer: unknown fallback policy")
	// ErrScoreCountMismatch means the matcher did not return one score per
	// question. It indicates a bug in a matcher, not bad input.
	ErrScoreCountMismatch = errors.New("scorer: score count mismatch")
)

// Inputs are parallel slices, one entry per document. Scorers only read
// the fields they need.
type Inputs struct {
	Translations []string
	Sources      []string
	References   []string
	// QAPairs holds the questions of every document.
	QAPairs [][]qapair.Pair
	// LPs optionally gives a language pair such as "en-de" per document.
	LPs []string
}

// Result holds document scores and, for TREQA scorers, the answers and
// per-question scores behind them.
type Result struct {
	Scores []float64 `json:"scores"`
	// Predicted are the answers read from each translation.
	Predicted [][]string `json:"predicted_answers,omitempty"`
	// Reference are the answers each prediction was compared to.
	Reference [][]string `json:"reference_answers,omitempty"`
	// PerQuestion is empty for documents scored by the fallback policy.
	PerQuestion [][]float64 `json:"per_q_scores,omitempty"`
}

// Detailed reports whether r carries answers and per-question scores.
func (r *Result) Detailed() bool {
	return r.PerQuestion != nil
}

// DocScorer scores documents.
type DocScorer interface {
	Score(ctx context.Context, in Inputs) (*Result, error)
	// Bounds returns the lowest and highest score a document can get.
	Bounds() (minVal, maxVal float64)
}

// Fallback names the score given to documents without questions.
type Fallback string

// Fallback policies.
const (
	// FallbackNoError treats a document without questions as perfect.
	FallbackNoError Fallback = "no_error"
	// FallbackError treats a document without questions as wrong.
	FallbackError Fallback = "error"
)

// Value returns the score f assigns given the matcher bounds.
func (f Fallback) Value(minVal, maxVal float64) (float64, error) {
	switch f {
	case FallbackNoError:
		return maxVal, nil
	case FallbackError:
		return minVal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFallback, string(f))
}

// Mean returns the arithmetic mean of scores, NaN for none.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func requireField(name string, field []string, n int) error {
	if field == nil {
		return fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	if len(field) != n {
		return fmt.Errorf("%w: %d %s for %d translations", ErrLengthMismatch, len(field), name, n)
	}
	return nil
}
