//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package selector

// autojunkMin is the length of b from which popular runes are ignored
// when looking for matches.
const autojunkMin = 200

// ratio returns the Ratcliff/Obershelp similarity 2*M/T of a and b, where
// M is the number of runes in matching blocks and T the total length.
// Popular runes of long b sequences are junk, as in Python's difflib.
func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	m := &matcher{a: a, b: b}
	m.index()
	return 2 * float64(m.matches(0, len(a), 0, len(b))) / float64(total)
}

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func (m *matcher) index() {
	m.b2j = make(map[rune][]int)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	if n := len(m.b); n >= autojunkMin {
		limit := n/100 + 1
		for r, js := range m.b2j {
			if len(js) > limit {
				delete(m.b2j, r)
			}
		}
	}
}

// matches sums the sizes of the matching blocks of a[alo:ahi] and
// b[blo:bhi].
func (m *matcher) matches(alo, ahi, blo, bhi int) int {
	i, j, k := m.longest(alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	total := k
	if alo < i && blo < j {
		total += m.matches(alo, i, blo, j)
	}
	if i+k < ahi && j+k < bhi {
		total += m.matches(i+k, ahi, j+k, bhi)
	}
	return total
}

// longest finds the earliest longest matching block, then widens it over
// equal neighbours the popular-rune filter skipped.
func (m *matcher) longest(alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, bestk := alo, blo, 0
	lengths := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestk = besti-1, bestj-1, bestk+1
	}
	for besti+bestk < ahi && bestj+bestk < bhi && m.a[besti+bestk] == m.b[bestj+bestk] {
		bestk++
	}
	return besti, bestj, bestk
}
