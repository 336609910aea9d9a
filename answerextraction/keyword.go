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
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/internal/textproc"
)

const (
	defaultNgramMin     = 2
	defaultNgramMax     = 5
	defaultDiversity    = 0.7
	defaultNrCandidates = 20
)

// Embedder turns texts into vectors, one per text in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Keyword ranks word n-grams of a passage by embedding similarity to the
// whole passage.
type Keyword struct {
	embedder     Embedder
	ngramMin     int
	ngramMax     int
	useMMR       bool
	diversity    float64
	nrCandidates int
}

// KeywordOption configures a Keyword extractor.
type KeywordOption func(*Keyword)

// WithNgramRange sets the candidate length range in words, 2 to 5 by
// default.
func WithNgramRange(lo, hi int) KeywordOption {
	return func(k *Keyword) { k.ngramMin, k.ngramMax = lo, hi }
}

// WithMMR toggles maximal marginal relevance reranking, on by default.
func WithMMR(use bool) KeywordOption {
	return func(k *Keyword) { k.useMMR = use }
}

// WithDiversity weighs redundancy against relevance under MMR, 0.7 by
// default.
func WithDiversity(d float64) KeywordOption {
	return func(k *Keyword) { k.diversity = d }
}

// WithNrCandidates sets how many of the most relevant candidates MMR
// chooses from, 20 by default.
func WithNrCandidates(n int) KeywordOption {
	return func(k *Keyword) { k.nrCandidates = n }
}

// NewKeyword creates a Keyword extractor over e.
func NewKeyword(e Embedder, opts ...KeywordOption) (*Keyword, error) {
	if e == nil {
		return nil, errors.New("keyword extractor needs an embedder")
	}
	k := &Keyword{
		embedder:     e,
		ngramMin:     defaultNgramMin,
		ngramMax:     defaultNgramMax,
		useMMR:       true,
		diversity:    defaultDiversity,
		nrCandidates: defaultNrCandidates,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.ngramMin < 1 || k.ngramMax < k.ngramMin {
		return nil, fmt.Errorf("invalid n-gram range [%d, %d]", k.ngramMin, k.ngramMax)
	}
	return k, nil
}

// ExtractAnswers implements Extractor. Zero numAnswers keeps
// DefaultNumAnswers keyphrases.
func (k *Keyword) ExtractAnswers(ctx context.Context, passages []string, numAnswers int) ([][]string, error) {
	if numAnswers <= 0 {
		numAnswers = DefaultNumAnswers
	}
	out := make([][]string, len(passages))
	for i, passage := range passages {
		cands := candidates(passage, k.ngramMin, k.ngramMax)
		if len(cands) == 0 {
			out[i] = []string{}
			continue
		}
		vecs, err := k.embedder.Embed(ctx, append([]string{passage}, cands...))
		if err != nil {
			return nil, fmt.Errorf("embed passage %d: %w", i, err)
		}
		if len(vecs) != len(cands)+1 {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(cands)+1)
		}
		out[i] = k.rank(vecs[0], cands, vecs[1:], numAnswers)
	}
	return out, nil
}

func (k *Keyword) rank(doc []float64, cands []string, vecs [][]float64, n int) []string {
	rel := make([]float64, len(cands))
	for i, v := range vecs {
		rel[i] = cosine(doc, v)
	}
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rel[order[a]] > rel[order[b]] })

	if !k.useMMR {
		order = order[:min(n, len(order))]
		out := make([]string, len(order))
		for i, j := range order {
			out[i] = cands[j]
		}
		return out
	}

	pool := order[:min(max(k.nrCandidates, n), len(order))]
	picked := []int{pool[0]}
	rest := append([]int(nil), pool[1:]...)
	for len(picked) < n && len(rest) > 0 {
		best, bestScore := 0, math.Inf(-1)
		for ri, c := range rest {
			redundancy := math.Inf(-1)
			for _, p := range picked {
				redundancy = math.Max(redundancy, cosine(vecs[c], vecs[p]))
			}
			score := (1-k.diversity)*rel[c] - k.diversity*redundancy
			if score > bestScore {
				best, bestScore = ri, score
			}
		}
		picked = append(picked, rest[best])
		rest = append(rest[:best], rest[best+1:]...)
	}
	out := make([]string, len(picked))
	for i, j := range picked {
		out[i] = cands[j]
	}
	return out
}

// candidates lists the lower-cased word n-grams of passage that neither
// start nor end with a stop word, first occurrence only.
func candidates(passage string, lo, hi int) []string {
	tokens := textproc.Words(passage)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = strings.ToLower(t.Text)
	}
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(words); i++ {
			if textproc.IsStopWord(words[i]) || textproc.IsStopWord(words[i+n-1]) {
				continue
			}
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return dedup(out)
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range min(len(a), len(b)) {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
