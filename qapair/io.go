//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package qapair

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const maxLineSize = 16 << 20

// ErrBlankLine is returned for a blank line between documents.
var ErrBlankLine = errors.New("blank line between documents")

// ReadJSONL reads one JSON array of pairs per line. Blank lines may only
// trail the last document; an empty document is written as [].
func ReadJSONL(r io.Reader) ([][]Pair, error) {
	var out [][]Pair
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	lineNo, blank := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if blank == 0 {
				blank = lineNo
			}
			continue
		}
		if blank != 0 {
			return nil, fmt.Errorf("line %d: %w", blank, ErrBlankLine)
		}
		var pairs []Pair
		if err := json.Unmarshal([]byte(line), &pairs); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if pairs == nil {
			pairs = []Pair{}
		}
		out = append(out, pairs)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read qa pairs: %w", err)
	}
	return out, nil
}

// WriteJSONL writes one JSON array per document.
func WriteJSONL(w io.Writer, docs [][]Pair) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, pairs := range docs {
		if pairs == nil {
			pairs = []Pair{}
		}
		if err := enc.Encode(pairs); err != nil {
			return fmt.Errorf("write document %d: %w", i, err)
		}
	}
	return nil
}

// ReadLines reads a corpus with one segment per line. Line terminators
// are removed; other whitespace is kept.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for sc.Scan() {
		out = append(out, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}
