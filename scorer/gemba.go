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
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/internal/prompt"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
)

// MQM severity weights.
const (
	weightCritical = 10
	weightMajor    = 5
	weightMinor    = 1
)

// GEMBA asks a model to annotate MQM errors and scores a translation as
// minus the weighted error count.
type GEMBA struct {
	gen     generation.Generator
	srcLang string
	tgtLang string
}

// GEMBAOption configures a GEMBA scorer.
type GEMBAOption func(*GEMBA)

// WithLanguages sets the language pair used when Inputs.LPs is empty.
// Codes such as "de" are shown to the model as language names.
func WithLanguages(src, tgt string) GEMBAOption {
	return func(g *GEMBA) { g.srcLang, g.tgtLang = src, tgt }
}

// NewGEMBA creates a GEMBA-MQM scorer.
func NewGEMBA(gen generation.Generator, opts ...GEMBAOption) (*GEMBA, error) {
	if gen == nil {
		return nil, errors.New("gemba needs a generator")
	}
	g := &GEMBA{gen: gen}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Bounds implements DocScorer. Scores have no lower bound.
func (*GEMBA) Bounds() (float64, float64) { return math.Inf(-1), 0 }

// Score implements DocScorer. Sources are required, as is a language pair
// from Inputs.LPs or WithLanguages.
func (g *GEMBA) Score(ctx context.Context, in Inputs) (*Result, error) {
	n := len(in.Translations)
	if err := requireField("sources", in.Sources, n); err != nil {
		return nil, err
	}
	srcLangs, tgtLangs, err := g.languages(in.LPs, n)
	if err != nil {
		return nil, err
	}
	chats := make([]generation.Chat, n)
	for i := range chats {
		chats[i] = mqmChat(in.Sources[i], in.Translations[i], srcLangs[i], tgtLangs[i])
	}
	outputs, err := g.gen.Generate(ctx, chats, true)
	if err != nil {
		return nil, fmt.Errorf("gemba: %w", err)
	}
	scores := make([]float64, n)
	for i, out := range outputs {
		scores[i] = parseMQM(out)
	}
	return &Result{Scores: scores}, nil
}

func (g *GEMBA) languages(lps []string, n int) ([]string, []string, error) {
	src, tgt := make([]string, n), make([]string, n)
	if lps != nil {
		if len(lps) != n {
			return nil, nil, fmt.Errorf("%w: %d language pairs for %d translations", ErrLengthMismatch, len(lps), n)
		}
		for i, lp := range lps {
			s, t, ok := strings.Cut(lp, "-")
			if !ok {
				return nil, nil, fmt.Errorf("language pair %q is not of the form src-tgt", lp)
			}
			src[i], tgt[i] = languageName(s), languageName(t)
		}
		return src, tgt, nil
	}
	if g.srcLang == "" || g.tgtLang == "" {
		return nil, nil, fmt.Errorf("%w: gemba needs language pairs or source and target languages", ErrMissingInput)
	}
	for i := range src {
		src[i], tgt[i] = languageName(g.srcLang), languageName(g.tgtLang)
	}
	return src, tgt, nil
}

// languageName spells out ISO codes. Anything else is returned as is.
func languageName(code string) string {
	base, err := language.ParseBase(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return code
}

func mqmChat(source, target, srcLang, tgtLang string) generation.Chat {
	render := func(srcLang, srcSeg, tgtLang, tgtSeg string) string {
		return prompt.Format(mqmTemplate, map[string]string{
			"source_lang": srcLang,
			"source_seg":  srcSeg,
			"target_lang": tgtLang,
			"target_seg":  tgtSeg,
		})
	}
	chat := generation.Chat{model.NewSystemMessage(mqmSystemPrompt)}
	for _, shot := range mqmShots {
		chat = append(chat,
			model.NewUserMessage(render(shot.sourceLang, shot.sourceSeg, shot.targetLang, shot.targetSeg)),
			model.NewAssistantMessage(shot.answer))
	}
	return append(chat, model.NewUserMessage(render(srcLang, source, tgtLang, target)))
}

// errorCategories are the MQM categories an annotation line may start
// with.
var errorCategories = []string{
	"accuracy", "fluency", "locale convention", "style",
	"terminology", "non-translation", "other",
}

// parseMQM reads a "Critical:/Major:/Minor:" annotation and returns minus
// the weighted number of errors. Non-translation errors are always
// critical.
func parseMQM(output string) float64 {
	counts := map[string]int{}
	level := ""
	for _, line := range strings.Split(strings.ToLower(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "no-error") || strings.Contains(line, "no error") {
			continue
		}
		switch line {
		case "critical:", "major:", "minor:":
			level = strings.TrimSuffix(line, ":")
			continue
		}
		if level == "" {
			log.Debugf("gemba: no error level for %q", line)
			continue
		}
		if !hasCategory(line) {
			log.Debugf("gemba: unexpected annotation %q", line)
		}
		if strings.Contains(line, "non-translation") {
			counts["critical"]++
		} else {
			counts[level]++
		}
	}
	return -float64(weightCritical*counts["critical"] + weightMajor*counts["major"] + weightMinor*counts["minor"])
}

func hasCategory(line string) bool {
	for _, c := range errorCategories {
		if strings.HasPrefix(line, c) {
			return true
		}
	}
	return false
}
