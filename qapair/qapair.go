//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package qapair holds question-answer pairs and their JSONL file format.
package qapair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyField is returned for a stored pair whose question or answer is
// blank.
var ErrEmptyField = errors.New("qa pair has an empty question or answer")

// Pair is a question with its expected answer.
type Pair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// UnmarshalJSON accepts {"question": ..., "answer": ...} as well as the
// two element array form ["question", "answer"]. Both fields must be
// non-blank.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) != 2 {
			return fmt.Errorf("qa pair must have 2 elements, got %d", len(arr))
		}
		return p.set(arr[0], arr[1])
	}
	var obj struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("qa pair: %w", err)
	}
	if obj.Question == nil || obj.Answer == nil {
		return fmt.Errorf("qa pair object needs question and answer")
	}
	return p.set(*obj.Question, *obj.Answer)
}

func (p *Pair) set(question, answer string) error {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: %q / %q", ErrEmptyField, question, answer)
	}
	p.Question, p.Answer = question, answer
	return nil
}

// Set is a collection of unique pairs that remembers insertion order.
type Set struct {
	seen  map[Pair]struct{}
	pairs []Pair
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{seen: map[Pair]struct{}{}}
}

// Add inserts p and reports whether it was new.
func (s *Set) Add(p Pair) bool {
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.pairs = append(s.pairs, p)
	return true
}

// Pairs returns the pairs in first insertion order.
func (s *Set) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Len returns the number of unique pairs.
func (s *Set) Len() int { return len(s.pairs) }

// Questions returns the question of every pair.
func Questions(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Question
	}
	return out
}

// Answers returns the answer of every pair.
func Answers(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Answer
	}
	return out
}
