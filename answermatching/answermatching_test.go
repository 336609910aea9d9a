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
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
)

// fixedGenerator answers every chat with reply(chat) and records the calls.
type fixedGenerator struct {
	reply  func(generation.Chat) string
	calls  int
	dedups []bool
	sizes  []int
}

func (g *fixedGenerator) Generate(_ context.Context, chats []generation.Chat, dedup bool) ([]string, error) {
	g.calls++
	g.dedups = append(g.dedups, dedup)
	g.sizes = append(g.sizes, len(chats))
	out := make([]string, len(chats))
	for i, c := range chats {
		out[i] = g.reply(c)
	}
	return out, nil
}

func TestChrf(t *testing.T) {
	m := NewChrf()
	scores, err := m.EvaluateAnswers(t.Context(), Inputs{
		Predicted:  []string{"Germany", "Paris", "the cat"},
		References: []string{"Paris", "Paris", "the cat sat"},
	})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.InDelta(t, 7.407407407407407, scores[0], 1e-9)
	assert.InDelta(t, 100, scores[1], 1e-9)
	assert.InDelta(t, 55.771010532810365, scores[2], 1e-9)

	lo, hi := m.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100.0, hi)
}

func TestMissingInputs(t *testing.T) {
	gen := &fixedGenerator{reply: func(generation.Chat) string { return "5" }}
	tests := []struct {
		name    string
		matcher Matcher
		in      Inputs
	}{
		{"chrf without references", NewChrf(), Inputs{Predicted: []string{"a"}}},
		{"exact match without references", NewExactMatch(), Inputs{Predicted: []string{"a"}}},
		{"chrf short references", NewChrf(), Inputs{Predicted: []string{"a", "b"}, References: []string{"a"}}},
		{"prompt without questions", NewPrompt(gen), Inputs{Predicted: []string{"a"}, Contexts: []string{"c"}}},
		{"prompt without contexts", NewPrompt(gen), Inputs{Predicted: []string{"a"}, Questions: []string{"q"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.matcher.EvaluateAnswers(t.Context(), tt.in)
			assert.ErrorIs(t, err, ErrMissingInput)
		})
	}
	assert.Zero(t, gen.calls)
}

func TestExactMatch(t *testing.T) {
	scores, err := NewExactMatch().EvaluateAnswers(t.Context(), Inputs{
		Predicted:  []string{"  Paris ", "NEW  york", "ÉCOLE", "Berlin"},
		References: []string{"paris", "new york", "école", "Bern"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 0}, scores)
}

func TestPrompt(t *testing.T) {
	gen := &fixedGenerator{reply: func(c generation.Chat) string {
		user := c[len(c)-1].Content
		switch {
		case strings.Contains(user, "Answer:\nParis\n"):
			return "Score: 4\n\nThe answer is mostly right, 2 details differ."
		default:
			return "1 point.\n\nWrong."
		}
	}}
	m := NewPrompt(gen)
	scores, err := m.EvaluateAnswers(t.Context(), Inputs{
		Predicted: []string{"Paris", "Berlin"},
		Questions: []string{"Capital?", "Capital?"},
		Contexts:  []string{"Paris is the capital of France.", "Paris is the capital of France."},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 1}, scores)
	assert.Equal(t, []bool{true}, gen.dedups)

	lo, hi := m.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestPromptChatContent(t *testing.T) {
	var seen generation.Chat
	gen := &fixedGenerator{reply: func(c generation.Chat) string { seen = c; return "3" }}
	_, err := NewPrompt(gen).EvaluateAnswers(t.Context(), Inputs{
		Predicted: []string{"the answer"},
		Questions: []string{"the question"},
		Contexts:  []string{"the context"},
	})
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, rubricSystemPrompt, seen[0].Content)
	for _, want := range []string{"the answer", "the question", "the context"} {
		assert.Contains(t, seen[1].Content, want)
	}
	assert.NotContains(t, seen[1].Content, "{answer}")
}

func TestPromptNormalized(t *testing.T) {
	n := 0
	gen := &fixedGenerator{reply: func(generation.Chat) string {
		n++
		if n%2 == 0 {
			return "4"
		}
		return "2"
	}}
	m := NewPrompt(gen, WithNormalizeScores(true), WithNumRuns(4))
	scores, err := m.EvaluateAnswers(t.Context(), Inputs{
		Predicted: []string{"a", "b"},
		Questions: []string{"q", "q"},
		Contexts:  []string{"c", "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3}, scores)
	assert.Equal(t, []bool{false}, gen.dedups)
	assert.Equal(t, []int{8}, gen.sizes)
}

func TestPromptUnparsableScore(t *testing.T) {
	gen := &fixedGenerator{reply: func(generation.Chat) string { return "no idea\n\n5" }}
	_, err := NewPrompt(gen).EvaluateAnswers(t.Context(), Inputs{
		Predicted: []string{"a"},
		Questions: []string{"q"},
		Contexts:  []string{"c"},
	})
	assert.ErrorIs(t, err, ErrScoreCountMismatch)
}

func TestPromptGeneratorError(t *testing.T) {
	boom := errors.New("backend down")
	gen := generation.GeneratorFunc(func(context.Context, []generation.Chat, bool) ([]string, error) {
		return nil, boom
	})
	_, err := NewPrompt(gen).EvaluateAnswers(t.Context(), Inputs{
		Predicted: []string{"a"},
		Questions: []string{"q"},
		Contexts:  []string{"c"},
	})
	assert.ErrorIs(t, err, boom)
}

func TestRate(t *testing.T) {
	tests := []struct {
		score float64
		text  string
		class string
	}{
		{7.4, "Poor Match", "low-score"},
		{50, "Poor Match", "low-score"},
		{50.01, "Excellent Match", "high-score"},
		{100, "Excellent Match", "high-score"},
	}
	for _, tt := range tests {
		r := Rate(tt.score, DefaultRatingThreshold)
		assert.Equal(t, tt.score, r.Score)
		assert.Equal(t, tt.text, r.Text)
		assert.Equal(t, tt.class, r.Class)
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"chrf", "exact_match", "prompt_am"}, Names())

	m, err := New("chrf", nil, Args{})
	require.NoError(t, err)
	assert.IsType(t, &Chrf{}, m)

	_, err = New("prompt_am", nil, Args{})
	assert.Error(t, err)

	gen := &fixedGenerator{reply: func(generation.Chat) string { return "5" }}
	m, err = New("prompt_am", gen, Args{NormalizeScores: true, NumRuns: 3})
	require.NoError(t, err)
	p := m.(*Prompt)
	assert.True(t, p.opts.normalize)
	assert.Equal(t, 3, p.opts.numRuns)

	_, err = New("bertscore", nil, Args{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
