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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-treqa-go/answerextraction"
	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
	"trpc.group/trpc-go/trpc-treqa-go/questionanswering"
	"trpc.group/trpc-go/trpc-treqa-go/scorer"
)

type evaluateFlags struct {
	hyp, src, ref        string
	scorer               string
	scorerArgs           string
	backend              string
	qaFile               string
	qaModel, qaModelArgs string
	aeModel, aeModelArgs string
	comparator           string
	numAnswers           int
	amModel, amModelArgs string
	saveScores           string
	saveDetailed         string
}

// detailedRecord is one line of the detailed evaluation file.
type detailedRecord struct {
	Predicted   []string  `json:"predicted_answers"`
	Reference   []string  `json:"reference_answers"`
	PerQuestion []float64 `json:"per_q_scores"`
}

func isTREQA(name string) bool { return name == "treqa" || name == "treqa_qe" }

func runEvaluate(ctx context.Context, a *app, args []string) error {
	var f evaluateFlags
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.StringVar(&f.hyp, "hyp", "", "translations to score, one per line (required)")
	fs.StringVar(&f.src, "src", "", "source texts, one per line (required)")
	fs.StringVar(&f.ref, "ref", "", "reference translations, one per line")
	fs.StringVar(&f.scorer, "scorer", "treqa", "scorer: "+strings.Join(scorer.Names(), ", "))
	fs.StringVar(&f.scorerArgs, "scorer-init-args", "{}", "scorer arguments as a JSON object")
	fs.StringVar(&f.backend, "backend", "", "generation backend of the scorer itself (gemba)")
	fs.StringVar(&f.qaFile, "qa-file", "", "question-answer pairs written by generate")
	fs.StringVar(&f.qaModel, "qa-model", "prompt_qa", "question answerer: "+strings.Join(questionanswering.Names(), ", "))
	fs.StringVar(&f.qaModelArgs, "qa-model-args", "{}", "question answerer arguments as a JSON object")
	fs.StringVar(&f.aeModel, "ae-model", "spacy", "keyphrase extractor: "+strings.Join(answerextraction.Names(), ", "))
	fs.StringVar(&f.aeModelArgs, "ae-model-args", "{}", "keyphrase extractor arguments as a JSON object")
	fs.StringVar(&f.comparator, "keyphrase-comparator", scorer.ComparatorJaccard, "keyphrase comparator")
	fs.IntVar(&f.numAnswers, "num-answers", 0, "keyphrases per passage, 0 leaves it to the extractor")
	fs.StringVar(&f.amModel, "am-model", "chrf", "answer matcher: "+strings.Join(answermatching.Names(), ", "))
	fs.StringVar(&f.amModelArgs, "am-model-args", "{}", "answer matcher arguments as a JSON object")
	fs.StringVar(&f.saveScores, "save-scores", "", "write one score per line to this file")
	fs.StringVar(&f.saveDetailed, "save-detailed-evaluation", "", "write answers and per-question scores as JSONL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if f.hyp == "" || f.src == "" {
		return fmt.Errorf("%w: -hyp and -src are required", errUsage)
	}
	if f.saveDetailed != "" && !isTREQA(f.scorer) {
		return fmt.Errorf("only the treqa scorers support detailed evaluation, not %s", f.scorer)
	}

	in, err := loadEvaluateInputs(&f)
	if err != nil {
		return err
	}
	var sargs scorer.Args
	if err := decodeArgs("scorer-init-args", f.scorerArgs, &sargs); err != nil {
		return err
	}
	if sargs.Comparator == "" {
		sargs.Comparator = f.comparator
	}
	if sargs.NumAnswers == 0 {
		sargs.NumAnswers = f.numAnswers
	}
	deps, err := evaluateDeps(a, &f, sargs, &in)
	if err != nil {
		return err
	}
	s, err := scorer.New(f.scorer, deps, sargs)
	if err != nil {
		return err
	}

	res, err := s.Score(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: %.4f\n", f.scorer, scorer.Mean(res.Scores))

	if f.saveScores != "" {
		err := writeFile(f.saveScores, func(out *os.File) error {
			for _, v := range res.Scores {
				if _, err := fmt.Fprintln(out, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	if f.saveDetailed != "" {
		err := writeFile(f.saveDetailed, func(out *os.File) error {
			enc := json.NewEncoder(out)
			for i := range res.Scores {
				if err := enc.Encode(detailedRecord{
					Predicted:   res.Predicted[i],
					Reference:   res.Reference[i],
					PerQuestion: res.PerQuestion[i],
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	log.Debugf("evaluate: scored %d translations with %s", len(res.Scores), f.scorer)
	return nil
}

func loadEvaluateInputs(f *evaluateFlags) (scorer.Inputs, error) {
	var in scorer.Inputs
	var err error
	if in.Translations, err = readCorpus(f.hyp); err != nil {
		return in, err
	}
	if in.Sources, err = readCorpus(f.src); err != nil {
		return in, err
	}
	if f.ref != "" {
		if in.References, err = readCorpus(f.ref); err != nil {
			return in, err
		}
	}
	return in, nil
}

// evaluateDeps builds the components the scorer, or the scorers a mix
// combines, need. TREQA scorers also load the question-answer pairs.
func evaluateDeps(a *app, f *evaluateFlags, sargs scorer.Args, in *scorer.Inputs) (scorer.Deps, error) {
	names := append([]string{f.scorer}, sargs.Scorers...)
	deps := scorer.Deps{Generator: a.lazyGenerator(f.backend)}

	if slices.ContainsFunc(names, isTREQA) {
		if f.qaFile == "" {
			return deps, fmt.Errorf("%w: %s needs -qa-file; generate pairs first with treqa generate", errUsage, f.scorer)
		}
		docs, err := readQAFile(f.qaFile)
		if err != nil {
			return deps, err
		}
		if len(docs) != len(in.Translations) {
			return deps, fmt.Errorf("%s has %d lines for %d translations", f.qaFile, len(docs), len(in.Translations))
		}
		in.QAPairs = docs
		logPairStats(docs)

		var qa qaArgs
		if err := decodeArgs("qa-model-args", f.qaModelArgs, &qa); err != nil {
			return deps, err
		}
		if deps.Answerer, err = questionanswering.New(f.qaModel, a.lazyGenerator(qa.Backend), qa.Args); err != nil {
			return deps, err
		}
		var am amArgs
		if err := decodeArgs("am-model-args", f.amModelArgs, &am); err != nil {
			return deps, err
		}
		if deps.Matcher, err = answermatching.New(f.amModel, a.lazyGenerator(am.Backend), am.Args); err != nil {
			return deps, err
		}
	}
	if slices.Contains(names, "keyphrase") {
		var ae aeArgs
		if err := decodeArgs("ae-model-args", f.aeModelArgs, &ae); err != nil {
			return deps, err
		}
		var err error
		if deps.Extractor, err = answerextraction.New(f.aeModel, a.lazyGenerator(ae.Backend), ae.Args); err != nil {
			return deps, err
		}
	}
	return deps, nil
}

func logPairStats(docs [][]qapair.Pair) {
	empty, total := 0, 0
	for _, d := range docs {
		total += len(d)
		if len(d) == 0 {
			empty++
		}
	}
	log.Debugf("evaluate: %d pairs, %d documents without questions", total, empty)
}
