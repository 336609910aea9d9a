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
	"math"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
	"trpc.group/trpc-go/trpc-treqa-go/questionanswering"
	"trpc.group/trpc-go/trpc-treqa-go/selector"
)

// echoAnswerer answers every question with "passage|question".
type echoAnswerer struct {
	mu    sync.Mutex
	calls [][]string
}

func (a *echoAnswerer) ExtractAnswers(_ context.Context, passages []string, questions [][]string,
	_ ...questionanswering.CallOption) ([][]string, error) {
	a.mu.Lock()
	a.calls = append(a.calls, passages)
	a.mu.Unlock()
	out := make([][]string, len(passages))
	for i, qs := range questions {
		out[i] = make([]string, len(qs))
		for j, q := range qs {
			out[i][j] = passages[i] + "|" + q
		}
	}
	return out, nil
}

// countingMatcher scores the i-th flattened answer i+1 and records inputs.
type countingMatcher struct {
	lo, hi float64
	drop   int
	calls  []answermatching.Inputs
}

func (m *countingMatcher) Bounds() (float64, float64) { return m.lo, m.hi }

func (m *countingMatcher) EvaluateAnswers(_ context.Context, in answermatching.Inputs) ([]float64, error) {
	m.calls = append(m.calls, in)
	scores := make([]float64, len(in.Predicted)-m.drop)
	for i := range scores {
		scores[i] = float64(i + 1)
	}
	return scores, nil
}

func pairs(questions ...string) []qapair.Pair {
	out := make([]qapair.Pair, len(questions))
	for i, q := range questions {
		out[i] = qapair.Pair{Question: q, Answer: "gold-" + q}
	}
	return out
}

func TestTREQAFlattenAndFallback(t *testing.T) {
	in := Inputs{
		Translations: []string{"t1", "t2", "t3"},
		References:   []string{"r1", "r2", "r3"},
		QAPairs:      [][]qapair.Pair{pairs("a", "b"), {}, pairs("c", "d", "e")},
	}
	tests := []struct {
		name     string
		opts     []TREQAOption
		fallback float64
	}{
		{"no_error", nil, 100},
		{"error", []TREQAOption{WithFallback(FallbackError)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &countingMatcher{lo: 0, hi: 100}
			s, err := NewTREQA(&echoAnswerer{}, m, tt.opts...)
			require.NoError(t, err)

			res, err := s.Score(t.Context(), in)
			require.NoError(t, err)
			assert.Equal(t, []float64{1.5, tt.fallback, 4}, res.Scores)
			if diff := cmp.Diff([][]float64{{1, 2}, {}, {3, 4, 5}}, res.PerQuestion); diff != "" {
				t.Errorf("PerQuestion mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, res.Detailed())

			require.Len(t, m.calls, 1)
			call := m.calls[0]
			assert.Equal(t, []string{"a", "b", "c", "d", "e"}, call.Questions)
			assert.Equal(t, []string{"t1|a", "t1|b", "t3|c", "t3|d", "t3|e"}, call.Predicted)
			assert.Equal(t, []string{"r1|a", "r1|b", "r3|c", "r3|d", "r3|e"}, call.References)
			assert.Equal(t, []string{"r1", "r1", "r3", "r3", "r3"}, call.Contexts)
		})
	}
}

func TestTREQAQEUsesSources(t *testing.T) {
	m := &countingMatcher{lo: 0, hi: 5}
	a := &echoAnswerer{}
	s, err := NewTREQAQE(a, m)
	require.NoError(t, err)

	_, err = s.Score(t.Context(), Inputs{
		Translations: []string{"t1"},
		References:   []string{"r1"},
		QAPairs:      [][]qapair.Pair{pairs("a")},
	})
	assert.ErrorIs(t, err, ErrMissingInput)

	res, err := s.Score(t.Context(), Inputs{
		Translations: []string{"t1", "t2"},
		Sources:      []string{"s1", "s2"},
		QAPairs:      [][]qapair.Pair{pairs("a"), nil},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, res.Scores)
	assert.Equal(t, [][]string{{"t1", "t2"}, {"s1", "s2"}}, a.calls)
	assert.Equal(t, []string{"s1"}, m.calls[0].Contexts)
}

// templateGenerator answers with the first line of the user prompt so
// tests can tell templates apart.
type templateGenerator struct{}

func (templateGenerator) Generate(_ context.Context, chats []generation.Chat, _ bool) ([]string, error) {
	out := make([]string, len(chats))
	for i, c := range chats {
		out[i], _, _ = strings.Cut(c[1].Content, "\n")
	}
	return out, nil
}

func TestTREQARefTemplate(t *testing.T) {
	qa, err := questionanswering.NewPrompt(templateGenerator{})
	require.NoError(t, err)
	in := Inputs{
		Translations: []string{"t"},
		Sources:      []string{"s"},
		References:   []string{"r"},
		QAPairs:      [][]qapair.Pair{pairs("q")},
	}

	s, err := NewTREQAQE(qa, &countingMatcher{hi: 1})
	require.NoError(t, err)
	res, err := s.Score(t.Context(), in)
	require.NoError(t, err)
	assert.Contains(t, res.Predicted[0][0], "extract the exact answer")
	assert.Contains(t, res.Reference[0][0], "return the answer in English")

	s, err = NewTREQA(qa, &countingMatcher{hi: 1}, WithRefTemplate(""))
	require.NoError(t, err)
	res, err = s.Score(t.Context(), in)
	require.NoError(t, err)
	assert.Equal(t, res.Predicted, res.Reference)
}

func TestTREQAStoredAnswers(t *testing.T) {
	m := &countingMatcher{hi: 1}
	a := &echoAnswerer{}
	s, err := NewTREQA(a, m, WithGenRefAnswers(false))
	require.NoError(t, err)
	res, err := s.Score(t.Context(), Inputs{
		Translations: []string{"t"},
		References:   []string{"r"},
		QAPairs:      [][]qapair.Pair{pairs("a", "b")},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"gold-a", "gold-b"}}, res.Reference)
	assert.Len(t, a.calls, 1)
}

func TestTREQAErrors(t *testing.T) {
	_, err := NewTREQA(&echoAnswerer{}, &countingMatcher{}, WithFallback("skip"))
	assert.ErrorIs(t, err, ErrUnknownFallback)
	_, err = NewTREQA(nil, &countingMatcher{})
	assert.Error(t, err)

	s, err := NewTREQA(&echoAnswerer{}, &countingMatcher{hi: 1, drop: 1})
	require.NoError(t, err)
	_, err = s.Score(t.Context(), Inputs{
		Translations: []string{"t"},
		References:   []string{"r"},
		QAPairs:      [][]qapair.Pair{pairs("a", "b")},
	})
	assert.ErrorIs(t, err, ErrScoreCountMismatch)

	_, err = s.Score(t.Context(), Inputs{Translations: []string{"t"}, References: []string{"r"}})
	assert.ErrorIs(t, err, ErrMissingInput)
	_, err = s.Score(t.Context(), Inputs{
		Translations: []string{"t", "u"},
		References:   []string{"r", "s"},
		QAPairs:      [][]qapair.Pair{pairs("a")},
	})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = s.Score(t.Context(), Inputs{
		Translations: []string{"t"},
		QAPairs:      [][]qapair.Pair{pairs("a")},
	})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestTREQAAllFallback(t *testing.T) {
	m := &countingMatcher{lo: 0, hi: 5}
	s, err := NewTREQA(&echoAnswerer{}, m)
	require.NoError(t, err)
	res, err := s.Score(t.Context(), Inputs{
		Translations: []string{"t"},
		References:   []string{"r"},
		QAPairs:      [][]qapair.Pair{{}},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, res.Scores)
	assert.Empty(t, m.calls)
}

func TestTREQASelection(t *testing.T) {
	sel, err := selector.New(selector.Frequent, selector.WithNumQuestions(1))
	require.NoError(t, err)

	_, err = NewTREQA(&echoAnswerer{}, &countingMatcher{hi: 1}, WithSelection(sel, 2), WithGenRefAnswers(false))
	assert.Error(t, err)

	m := &countingMatcher{hi: 1}
	s, err := NewTREQA(&echoAnswerer{}, m, WithSelection(sel, 2))
	require.NoError(t, err)
	res, err := s.Score(t.Context(), Inputs{
		Translations: []string{"c1", "c2"},
		References:   []string{"r", "r"},
		QAPairs:      [][]qapair.Pair{pairs("a", "b", "a"), pairs("a", "c")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, m.calls[0].Questions)
	assert.Equal(t, [][]string{{"c1|a"}, {"c2|a"}}, res.Predicted)

	_, err = s.Score(t.Context(), Inputs{
		Translations: []string{"c1", "c2", "c3"},
		References:   []string{"r", "r", "r"},
		QAPairs:      [][]qapair.Pair{pairs("a"), pairs("a"), pairs("a")},
	})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

// passageAnswerer reads answers off the passage as a QA model would.
type passageAnswerer struct{}

func (passageAnswerer) ExtractAnswers(_ context.Context, passages []string, questions [][]string,
	_ ...questionanswering.CallOption) ([][]string, error) {
	out := make([][]string, len(passages))
	for i, qs := range questions {
		for range qs {
			ans := "Paris"
			if strings.Contains(passages[i], "Germany") {
				ans = "Germany"
			}
			out[i] = append(out[i], ans)
		}
	}
	return out, nil
}

func TestTREQAEndToEnd(t *testing.T) {
	s, err := NewTREQA(passageAnswerer{}, answermatching.NewChrf())
	require.NoError(t, err)
	res, err := s.Score(t.Context(), Inputs{
		Translations: []string{"Paris is the capital of Germany."},
		Sources:      []string{"Paris is the capital of France."},
		References:   []string{"Paris is France's capital city."},
		QAPairs:      [][]qapair.Pair{{{Question: "What is the capital of France?", Answer: "Paris"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Germany"}}, res.Predicted)
	assert.Equal(t, [][]string{{"Paris"}}, res.Reference)
	require.Len(t, res.Scores, 1)
	assert.Less(t, res.Scores[0], 50.0)
	rating := answermatching.Rate(res.Scores[0], answermatching.DefaultRatingThreshold)
	assert.Equal(t, "Poor Match", rating.Text)
	assert.Equal(t, "low-score", rating.Class)
}

func TestChrfScorer(t *testing.T) {
	res, err := NewChrf().Score(t.Context(), Inputs{
		Translations: []string{"Paris", "the cat"},
		References:   []string{"Paris", "the cat sat"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, res.Scores[0], 1e-9)
	assert.Greater(t, res.Scores[1], 0.0)
	assert.Less(t, res.Scores[1], 100.0)
	assert.False(t, res.Detailed())

	_, err = NewChrf().Score(t.Context(), Inputs{Translations: []string{"a"}})
	assert.ErrorIs(t, err, ErrMissingInput)
}

type splitExtractor struct{}

func (splitExtractor) ExtractAnswers(_ context.Context, passages []string, _ int) ([][]string, error) {
	out := make([][]string, len(passages))
	for i, p := range passages {
		out[i] = strings.Fields(p)
	}
	return out, nil
}

func TestKeyphraseScorer(t *testing.T) {
	_, err := NewKeyphrase(splitExtractor{}, "cosine", 0)
	assert.Error(t, err)

	k, err := NewKeyphrase(splitExtractor{}, ComparatorJaccard, 0)
	require.NoError(t, err)
	res, err := k.Score(t.Context(), Inputs{
		Translations: []string{"a b c", "", "x x"},
		References:   []string{"b c d d", "a", "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0, 1}, res.Scores)
}

type constScorer struct {
	scores []float64
	err    error
}

func (c constScorer) Bounds() (float64, float64) { return 0, 1 }

func (c constScorer) Score(context.Context, Inputs) (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &Result{Scores: c.scores}, nil
}

func TestMix(t *testing.T) {
	_, err := NewMix([]DocScorer{constScorer{}}, []float64{1, 2})
	assert.Error(t, err)

	m, err := NewMix([]DocScorer{
		constScorer{scores: []float64{1, 0}},
		constScorer{scores: []float64{0.5, 1}},
	}, []float64{0.5, 2})
	require.NoError(t, err)
	res, err := m.Score(t.Context(), Inputs{Translations: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2}, res.Scores)
	lo, hi := m.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.5, hi)

	boom := errors.New("boom")
	m, err = NewMix([]DocScorer{constScorer{scores: []float64{1}}, constScorer{err: boom}}, []float64{1, 1})
	require.NoError(t, err)
	_, err = m.Score(t.Context(), Inputs{Translations: []string{"a"}})
	assert.ErrorIs(t, err, boom)
}

func TestParseMQM(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want float64
	}{
		{"shot one", mqmShots[0].answer, -12},
		{"shot three", mqmShots[2].answer, -16},
		{"clean", "Critical:\nno-error\nMajor:\nno-error\nMinor:\nno-error\n", 0},
		{"non-translation", "Minor:\nnon-translation - \"x\"\n", -10},
		{"no level", "accuracy/addition - \"x\"\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMQM(tt.out))
		})
	}
}

type recordingGenerator struct {
	chats []generation.Chat
	reply string
}

func (g *recordingGenerator) Generate(_ context.Context, chats []generation.Chat, _ bool) ([]string, error) {
	g.chats = append(g.chats, chats...)
	out := make([]string, len(chats))
	for i := range out {
		out[i] = g.reply
	}
	return out, nil
}

func TestGEMBA(t *testing.T) {
	gen := &recordingGenerator{reply: "Major:\naccuracy/mistranslation - \"Germany\"\n"}
	g, err := NewGEMBA(gen, WithLanguages("en", "de"))
	require.NoError(t, err)
	res, err := g.Score(t.Context(), Inputs{
		Translations: []string{"Paris ist die Hauptstadt Deutschlands."},
		Sources:      []string{"Paris is the capital of France."},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{-5}, res.Scores)
	require.Len(t, gen.chats, 1)
	chat := gen.chats[0]
	assert.Len(t, chat, 2+2*len(mqmShots))
	last := chat[len(chat)-1].Content
	assert.True(t, strings.HasPrefix(last, "English source:\n```Paris is the capital of France.```\nGerman translation:"), last)

	res, err = g.Score(t.Context(), Inputs{
		Translations: []string{"x"},
		Sources:      []string{"y"},
		LPs:          []string{"zh-en"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{-5}, res.Scores)
	assert.True(t, strings.HasPrefix(gen.chats[1][len(chat)-1].Content, "Chinese source:"))

	_, err = g.Score(t.Context(), Inputs{Translations: []string{"x"}, Sources: []string{"y"}, LPs: []string{"zhen"}})
	assert.Error(t, err)

	bare, err := NewGEMBA(gen)
	require.NoError(t, err)
	_, err = bare.Score(t.Context(), Inputs{Translations: []string{"x"}, Sources: []string{"y"}})
	assert.ErrorIs(t, err, ErrMissingInput)
	lo, hi := bare.Bounds()
	assert.True(t, math.IsInf(lo, -1))
	assert.Equal(t, 0.0, hi)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"chrf", "gemba", "keyphrase", "mix", "treqa", "treqa_qe"}, Names())

	deps := Deps{Answerer: &echoAnswerer{}, Matcher: &countingMatcher{hi: 1}, Extractor: splitExtractor{}}
	s, err := New("treqa", deps, Args{Fallback: "error", SelectStrategy: "similarity", NumQuestions: 2, NumCandidates: 3})
	require.NoError(t, err)
	assert.IsType(t, &TREQA{}, s)

	_, err = New("treqa", deps, Args{SelectStrategy: "best"})
	assert.ErrorIs(t, err, selector.ErrUnknownStrategy)

	s, err = New("mix", deps, Args{Scorers: []string{"chrf", "keyphrase"}, Weights: []float64{0.5, 0.5}})
	require.NoError(t, err)
	res, err := s.Score(t.Context(), Inputs{Translations: []string{"a b"}, References: []string{"a b"}})
	require.NoError(t, err)
	assert.InDelta(t, 50.5, res.Scores[0], 1e-9)

	_, err = New("mix", deps, Args{Scorers: []string{"chrf"}, Weights: []float64{1, 1}})
	assert.Error(t, err)
	_, err = New("gemba", Deps{}, Args{})
	assert.Error(t, err)
	_, err = New("comet", deps, Args{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
