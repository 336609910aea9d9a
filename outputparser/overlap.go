//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package outputparser

import "strings"

const overlapOrder = 6

// AnswerOverlap measures, in percent, how much of answer appears in
// target. Spaces are ignored. It is the number of distinct character
// 6-grams of answer found in target over the number of 6-grams in answer,
// and 0 when answer is shorter than six characters.
func AnswerOverlap(target, answer string) float64 {
	answerGrams := charNgrams(answer, overlapOrder)
	if len(answerGrams) == 0 {
		return 0
	}
	targetSet := make(map[string]struct{})
	for _, g := range charNgrams(target, overlapOrder) {
		targetSet[g] = struct{}{}
	}
	common := make(map[string]struct{})
	for _, g := range answerGrams {
		if _, ok := targetSet[g]; ok {
			common[g] = struct{}{}
		}
	}
	return float64(len(common)) / float64(len(answerGrams)) * 100
}

func charNgrams(s string, n int) []string {
	r := []rune(strings.ReplaceAll(s, " ", ""))
	if len(r) < n {
		return nil
	}
	out := make([]string, 0, len(r)-n+1)
	for i := 0; i+n <= len(r); i++ {
		out = append(out, string(r[i:i+n]))
	}
	return out
}
