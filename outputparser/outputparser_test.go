//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package outputparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trpc.group/trpc-go/trpc-treqa-go/qapair"
)

func ptr(f float64) *float64 { return &f }

func reasons(skipped []Skipped) []SkipReason {
	var out []SkipReason
	for _, s := range skipped {
		out = append(out, s.Reason)
	}
	return out
}

func TestDefaultParse(t *testing.T) {
	const target = "The cat sat on the mat"
	tests := []struct {
		name        string
		output      string
		threshold   *float64
		wantPairs   []qapair.Pair
		wantReasons []SkipReason
	}{
		{
			name:      "canonical form round trips",
			output:    "Q: Who sat?\nA: the cat\n\nQ: Where?\nA: on the mat\n\n",
			wantPairs: []qapair.Pair{{Question: "Who sat?", Answer: "the cat"}, {Question: "Where?", Answer: "on the mat"}},
		},
		{
			name:        "no markers",
			output:      "foo\nbar",
			wantReasons: []SkipReason{MissingPrefix},
		},
		{
			name:        "single line",
			output:      "Q: only a question",
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "three lines",
			output:      "Q: a\nA: b\nextra",
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "empty answer line",
			output:      "Q: a\n   ",
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "empty question after marker",
			output:      "Q:\nA: Paris",
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "empty answer after marker",
			output:      "Q: What?\nA:",
			threshold:   ptr(0),
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "markers with only spaces",
			output:      "Q:   \nA:  ",
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "repeated marker with nothing else",
			output:      "Q: Who?\nA: A:",
			wantReasons: []SkipReason{NotTwoLines},
		},
		{
			name:        "whitespace block",
			output:      "   \t ",
			wantReasons: []SkipReason{NoContent},
		},
		{
			name:        "indented marker is missing",
			output:      " Q: a\nA: b",
			wantReasons: []SkipReason{MissingPrefix},
		},
		{
			name:      "duplicates collapse in first seen order",
			output:    "Q: x\nA: y\n\nQ: z\nA: w\n\nQ: x\nA: y",
			wantPairs: []qapair.Pair{{Question: "x", Answer: "y"}, {Question: "z", Answer: "w"}},
		},
		{
			name:      "every marker occurrence removed",
			output:    "Q: Q: twice?\nA: yes A: really",
			wantPairs: []qapair.Pair{{Question: "twice?", Answer: "yes  really"}},
		},
		{
			name:        "overlap rejects unseen answer",
			output:      "Q: Who sat?\nA: dog",
			threshold:   ptr(50),
			wantReasons: []SkipReason{LowAnswerOverlap},
		},
		{
			name:      "overlap accepts extractive answer",
			output:    "Q: Who sat?\nA: cat sat",
			threshold: ptr(50),
			wantPairs: []qapair.Pair{{Question: "Who sat?", Answer: "cat sat"}},
		},
		{
			name:      "zero threshold accepts short answers",
			output:    "Q: Who?\nA: dog",
			threshold: ptr(0),
			wantPairs: []qapair.Pair{{Question: "Who?", Answer: "dog"}},
		},
		{
			name:        "mixed blocks",
			output:      "Q: a\nA: b\n\nnoise\n\n\n\nQ: c\nA: d",
			wantPairs:   []qapair.Pair{{Question: "a", Answer: "b"}, {Question: "c", Answer: "d"}},
			wantReasons: []SkipReason{NotTwoLines, NoContent},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, skipped := Default{}.Parse(tt.output, target, tt.threshold)
			if tt.wantPairs == nil {
				assert.Empty(t, pairs)
			} else {
				assert.Equal(t, tt.wantPairs, pairs)
			}
			assert.Equal(t, tt.wantReasons, reasons(skipped))
		})
	}
}

func TestSkippedKeepsRawText(t *testing.T) {
	_, skipped := Default{}.Parse("foo\nbar", "", nil)
	assert.Equal(t, []Skipped{{Reason: MissingPrefix, Text: "foo\nbar"}}, skipped)
}

func TestBoldParse(t *testing.T) {
	output := "Here are the pairs:\n\n" +
		"**Q: What is the capital?**\n**A: Paris**\n\n" +
		"Q: Plain?\nA: fine\n\n" +
		"**Q: Who?** extra\nmissing"
	pairs, skipped := Bold{}.Parse(output, "", nil)
	assert.Equal(t, []qapair.Pair{{Question: "What is the capital?", Answer: "Paris"}, {Question: "Plain?", Answer: "fine"}}, pairs)
	assert.Equal(t, []SkipReason{MissingPrefix}, reasons(skipped))
}

func TestBoldRejectsEmptyFields(t *testing.T) {
	pairs, skipped := Bold{}.Parse("Sure:\n\n**Q:**\n**A: Paris**", "", nil)
	assert.Empty(t, pairs)
	assert.Equal(t, []SkipReason{NotTwoLines}, reasons(skipped))
}

func TestBoldDropsPreamble(t *testing.T) {
	pairs, skipped := Bold{}.Parse("Q: a\nA: b", "", nil)
	assert.Empty(t, pairs)
	assert.Empty(t, skipped)
}

func TestForModel(t *testing.T) {
	assert.IsType(t, Bold{}, ForModel("aya"))
	assert.IsType(t, Default{}, ForModel("meta-llama/Meta-Llama-3.1-8B-Instruct"))
}

func TestAnswerOverlap(t *testing.T) {
	tests := []struct {
		target, answer string
		want           float64
	}{
		{"The cat sat on the mat", "cat sat", 100},
		{"The cat sat on the mat", "dog", 0},
		{"The cat sat on the mat", "", 0},
		{"abcdefgh", "abcdefXY", 100.0 / 3},
		{"abc abc abc", "abcabcabc", 300.0 / 4},
		{"Zürich liegt am See", "Zürich", 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, AnswerOverlap(tt.target, tt.answer), 1e-9, "%q in %q", tt.answer, tt.target)
	}
}
