//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package chrf computes sentence-level chrF: the character n-gram F-score
// with character order 6, no word n-grams and beta 2. Whitespace is
// ignored.
package chrf

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// CharOrder is the highest character n-gram order.
	CharOrder = 6
	// Beta weights recall over precision.
	Beta = 2.0
)

// Stats holds hypothesis, reference and matched n-gram counts per order.
type Stats struct {
	Hyp   [CharOrder]int
	Ref   [CharOrder]int
	Match [CharOrder]int
}

// Sentence returns the chrF of hyp against ref in [0, 100].
func Sentence(hyp, ref string) float64 {
	return Collect(hyp, ref).Score()
}

// Collect counts the n-gram statistics of hyp against ref.
func Collect(hyp, ref string) Stats {
	var st Stats
	h, r := prepare(hyp), prepare(ref)
	for n := 1; n <= CharOrder; n++ {
		hc, rc := ngrams(h, n), ngrams(r, n)
		for g, c := range hc {
			st.Hyp[n-1] += c
			st.Match[n-1] += min(c, rc[g])
		}
		for _, c := range rc {
			st.Ref[n-1] += c
		}
	}
	return st
}

// Score turns the statistics into chrF. Orders missing on either side do
// not count towards the averaged precision and recall.
func (st Stats) Score() float64 {
	factor := Beta * Beta
	var avgPrec, avgRec float64
	effective := 0
	for i := 0; i < CharOrder; i++ {
		if st.Hyp[i] == 0 || st.Ref[i] == 0 {
			continue
		}
		avgPrec += float64(st.Match[i]) / float64(st.Hyp[i])
		avgRec += float64(st.Match[i]) / float64(st.Ref[i])
		effective++
	}
	if effective == 0 {
		return 0
	}
	avgPrec /= float64(effective)
	avgRec /= float64(effective)
	if avgPrec+avgRec == 0 {
		return 0
	}
	return 100 * (1 + factor) * avgPrec * avgRec / (factor*avgPrec + avgRec)
}

func prepare(s string) []rune {
	return []rune(strings.Join(strings.Fields(norm.NFC.String(s)), ""))
}

func ngrams(r []rune, n int) map[string]int {
	out := make(map[string]int)
	for i := 0; i+n <= len(r); i++ {
		out[string(r[i:i+n])]++
	}
	return out
}
