//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package outputparser extracts question-answer pairs from free-form model
// output. A well formed block is two lines, "Q: ..." then "A: ...", and
// blocks are separated by a blank line.
package outputparser

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/metric"

	itelemetry "trpc.group/trpc-go/trpc-treqa-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
)

// SkipReason explains why a block produced no pair.
type SkipReason string

// Skip reasons. NotTwoLines also covers a question or answer left empty
// once its marker is removed.
const (
	NoContent        SkipReason = "no_content"
	NotTwoLines      SkipReason = "not_two_lines"
	MissingPrefix    SkipReason = "missing_prefix"
	LowAnswerOverlap SkipReason = "low_answer_overlap"
)

// Skipped is a rejected block and the reason.
type Skipped struct {
	Reason SkipReason
	Text   string
}

// Parser turns one model output into pairs. threshold is the minimum
// answer overlap with target in percent; nil disables the check.
type Parser interface {
	Parse(output, target string, threshold *float64) ([]qapair.Pair, []Skipped)
}

const (
	blockSep       = "\n\n"
	questionPrefix = "Q:"
	answerPrefix   = "A:"
)

// Default parses plain "Q:"/"A:" blocks.
type Default struct{}

// Parse implements Parser.
func (Default) Parse(output, target string, threshold *float64) ([]qapair.Pair, []Skipped) {
	return parseBlocks(splitBlocks(output), target, threshold, nil)
}

// Bold parses output that wraps each line in **markdown bold** and opens
// with a preamble block, the style of the aya models.
type Bold struct{}

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Parse implements Parser.
func (Bold) Parse(output, target string, threshold *float64) ([]qapair.Pair, []Skipped) {
	blocks := splitBlocks(output)
	if len(blocks) > 0 {
		blocks = blocks[1:]
	}
	return parseBlocks(blocks, target, threshold, unbold)
}

// splitBlocks splits on blank lines. The empty remainder after a final
// separator is not a block.
func splitBlocks(output string) []string {
	blocks := strings.Split(output, blockSep)
	if n := len(blocks); n > 1 && blocks[n-1] == "" {
		blocks = blocks[:n-1]
	}
	return blocks
}

func unbold(line string) string {
	if m := boldRe.FindStringSubmatch(line); m != nil {
		line = m[1]
	}
	return strings.TrimSpace(line)
}

// ForModel returns the parser suited to a model family.
func ForModel(modelName string) Parser {
	if modelName == "aya" {
		return Bold{}
	}
	return Default{}
}

func parseBlocks(blocks []string, target string, threshold *float64, clean func(string) string) ([]qapair.Pair, []Skipped) {
	set := qapair.NewSet()
	var skipped []Skipped
	skip := func(reason SkipReason, text string) {
		skipped = append(skipped, Skipped{Reason: reason, Text: text})
		itelemetry.ParserSkipped.Add(context.Background(), 1,
			metric.WithAttributes(itelemetry.KeySkipReason.String(string(reason))))
		log.Debugf("skipping qa block (%s): %q", reason, text)
	}
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			skip(NoContent, block)
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) != 2 || strings.TrimSpace(lines[0]) == "" || strings.TrimSpace(lines[1]) == "" {
			skip(NotTwoLines, block)
			continue
		}
		q, a := lines[0], lines[1]
		if clean != nil {
			q, a = clean(q), clean(a)
		}
		if !strings.HasPrefix(q, questionPrefix) || !strings.HasPrefix(a, answerPrefix) {
			skip(MissingPrefix, block)
			continue
		}
		q = strings.TrimSpace(strings.ReplaceAll(q, questionPrefix, ""))
		a = strings.TrimSpace(strings.ReplaceAll(a, answerPrefix, ""))
		if q == "" || a == "" {
			skip(NotTwoLines, block)
			continue
		}
		if threshold != nil && AnswerOverlap(target, a) < *threshold {
			skip(LowAnswerOverlap, block)
			continue
		}
		set.Add(qapair.Pair{Question: q, Answer: a})
	}
	return set.Pairs(), skipped
}
