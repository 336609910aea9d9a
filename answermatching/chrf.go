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

	"trpc.group/trpc-go/trpc-treqa-go/internal/chrf"
)

// Chrf scores answers with sentence chrF against the reference answer.
type Chrf struct{}

// NewChrf returns a chrF matcher.
func NewChrf() *Chrf { return &Chrf{} }

// Bounds implements Matcher.
func (*Chrf) Bounds() (float64, float64) { return 0, 100 }

// EvaluateAnswers implements Matcher. References are required.
func (*Chrf) EvaluateAnswers(_ context.Context, in Inputs) ([]float64, error) {
	if err := requireInput("references", in.References, len(in.Predicted)); err != nil {
		return nil, err
	}
	scores := make([]float64, len(in.Predicted))
	for i, p := range in.Predicted {
		scores[i] = chrf.Sentence(p, in.References[i])
	}
	return scores, nil
}
