//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/answerextraction"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
	"trpc.group/trpc-go/trpc-treqa-go/questiongen"
)

type generateFlags struct {
	output       string
	src, tgt     string
	hyps         stringList
	qgModel      string
	qgModelArgs  string
	numQuestions int
	aeModel      string
	aeModelArgs  string
	answersFile  string
	numAnswers   int
}

func runGenerate(ctx context.Context, a *app, args []string) error {
	var f generateFlags
	// OUTPUT may come before the flags.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		f.output, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.StringVar(&f.src, "src", "", "source texts, one per line")
	fs.StringVar(&f.tgt, "tgt", "", "target texts, one per line")
	fs.Var(&f.hyps, "hyp", "hypothesis file or glob, repeatable")
	fs.StringVar(&f.qgModel, "qg-model", "prompt_qag", "question generator: "+strings.Join(questiongen.Names(), ", "))
	fs.StringVar(&f.qgModelArgs, "qg-model-args", "{}", "question generator arguments as a JSON object")
	fs.IntVar(&f.numQuestions, "num-questions", 0, "questions per passage, 0 leaves it to the model")
	fs.StringVar(&f.aeModel, "ae-model", "spacy", "answer extractor: "+strings.Join(answerextraction.Names(), ", "))
	fs.StringVar(&f.aeModelArgs, "ae-model-args", "{}", "answer extractor arguments as a JSON object")
	fs.StringVar(&f.answersFile, "answers-file", "", "precomputed answers, one JSON array per line")
	fs.IntVar(&f.numAnswers, "num-answers", answerextraction.DefaultNumAnswers, "answers to extract per passage")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: treqa generate OUTPUT (-src file | -tgt file) [-hyp file]... [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if f.output == "" && fs.NArg() == 1 {
		f.output = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if f.output == "" {
		return fmt.Errorf("%w: OUTPUT is required", errUsage)
	}
	if f.src == "" && f.tgt == "" {
		return fmt.Errorf("%w: either -src or -tgt must be provided", errUsage)
	}

	texts, altTexts, candidates, defaultTemplate, err := loadGenerateCorpus(&f)
	if err != nil {
		return err
	}

	var qa qgArgs
	if err := decodeArgs("qg-model-args", f.qgModelArgs, &qa); err != nil {
		return err
	}
	if qa.ModelName == "" {
		if b, err := a.cfg.Backend(qa.Backend); err == nil {
			qa.ModelName = b.Model
		}
	}
	if qa.Template == "" && f.qgModel == "prompt_qag" {
		qa.Template = defaultTemplate
	}
	qg, err := questiongen.New(f.qgModel, a.lazyGenerator(qa.Backend), qa.Args)
	if err != nil {
		return err
	}

	var docs [][]qapair.Pair
	switch g := qg.(type) {
	case questiongen.QAGenerator:
		docs, err = g.GenerateQAPairs(ctx, questiongen.QAGRequest{
			Passages:     texts,
			AltPassages:  altTexts,
			Candidates:   candidates,
			NumQuestions: f.numQuestions,
		})
	case questiongen.QuestionGenerator:
		var answers [][]string
		answers, err = generateAnswers(ctx, a, &f, texts)
		if err == nil {
			docs, err = g.GenerateQuestions(ctx, texts, answers)
		}
	default:
		err = fmt.Errorf("%s is neither a question-answer nor a question generator", f.qgModel)
	}
	if err != nil {
		return err
	}

	if err := writeFile(f.output, func(out *os.File) error { return qapair.WriteJSONL(out, docs) }); err != nil {
		return err
	}
	total := 0
	for _, d := range docs {
		total += len(d)
	}
	log.Infof("generate: wrote %d pairs for %d passages to %s", total, len(docs), f.output)
	return nil
}

// loadGenerateCorpus reads the passages and picks the default question
// generation template from what was given: sources alone, targets, and
// hypotheses each switch to a richer template.
func loadGenerateCorpus(f *generateFlags) (texts, altTexts []string, candidates [][]string, template string, err error) {
	if f.src != "" {
		if texts, err = readCorpus(f.src); err != nil {
			return nil, nil, nil, "", err
		}
		template = "eng-nocands"
	}
	if f.tgt != "" {
		targets, err := readCorpus(f.tgt)
		if err != nil {
			return nil, nil, nil, "", err
		}
		if texts == nil {
			texts = targets
		} else {
			if len(targets) != len(texts) {
				return nil, nil, nil, "", fmt.Errorf("%d sources but %d targets", len(texts), len(targets))
			}
			altTexts = targets
		}
		template = "eng-both-nocands-0shot"
	}
	if len(f.hyps) == 0 {
		return texts, altTexts, nil, template, nil
	}
	paths, err := expandGlobs(f.hyps)
	if err != nil {
		return nil, nil, nil, "", err
	}
	candidates = make([][]string, len(texts))
	for _, p := range paths {
		hyps, err := readCorpus(p)
		if err != nil {
			return nil, nil, nil, "", err
		}
		if len(hyps) != len(texts) {
			return nil, nil, nil, "", fmt.Errorf("%s has %d hypotheses for %d passages", p, len(hyps), len(texts))
		}
		for i, h := range hyps {
			candidates[i] = append(candidates[i], h)
		}
	}
	template = "eng-cands"
	if altTexts != nil {
		template = "eng-cands-0shot"
	}
	return texts, altTexts, candidates, template, nil
}

// generateAnswers loads the answers file or extracts answers from texts.
func generateAnswers(ctx context.Context, a *app, f *generateFlags, texts []string) ([][]string, error) {
	if f.answersFile != "" {
		log.Infof("generate: loading answers from %s", f.answersFile)
		answers, err := readAnswersFile(f.answersFile)
		if err != nil {
			return nil, err
		}
		if len(answers) != len(texts) {
			return nil, fmt.Errorf("%s has %d answer lists for %d passages", f.answersFile, len(answers), len(texts))
		}
		return answers, nil
	}
	var ae aeArgs
	if err := decodeArgs("ae-model-args", f.aeModelArgs, &ae); err != nil {
		return nil, err
	}
	extractor, err := answerextraction.New(f.aeModel, a.lazyGenerator(ae.Backend), ae.Args)
	if err != nil {
		return nil, err
	}
	answers, err := extractor.ExtractAnswers(ctx, texts, f.numAnswers)
	if err != nil {
		return nil, fmt.Errorf("extract answers: %w", err)
	}
	return answers, nil
}
