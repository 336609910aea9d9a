//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answermatching

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// ExactMatch gives 1 when the answers agree after trimming, case folding
// and whitespace collapsing, 0 otherwise.
type ExactMatch struct{}

// NewExactMatch returns an exact match matcher.
func NewExactMatch() *ExactMatch { return &ExactMatch{} }

// Bounds implements Matcher.
func (*ExactMatch) Bounds() (float64, float64) { return 0, 1 }

// EvaluateAnswers implements Matcher. References are required.
func (*ExactMatch) EvaluateAnswers(_ context.Context, in Inputs) ([]float64, error) {
	if err := requireInput("references", in.References, len(in.Predicted)); err != nil {
		return nil, err
	}
	// A Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	scores := make([]float64, len(in.Predicted))
	for i, p := range in.Predicted {
		if normalize(fold, p) == normalize(fold, in.References[i]) {
			scores[i] = 1
		}
	}
	return scores, nil
}

func normalize(fold cases.Caser, s string) string {
	return strings.Join(strings.Fields(fold.String(s)), " ")
}
