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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"trpc.group/trpc-go/trpc-treqa-go/answerextraction"
	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	"trpc.group/trpc-go/trpc-treqa-go/qapair"
	"trpc.group/trpc-go/trpc-treqa-go/questionanswering"
	"trpc.group/trpc-go/trpc-treqa-go/questiongen"
)

// Component arguments. Backend names the generation backend of the
// component; the remaining keys belong to the component itself.
type (
	qgArgs struct {
		Backend string `json:"backend,omitempty"`
		questiongen.Args
	}
	aeArgs struct {
		Backend string `json:"backend,omitempty"`
		answerextraction.Args
	}
	qaArgs struct {
		Backend string `json:"backend,omitempty"`
		questionanswering.Args
	}
	amArgs struct {
		Backend string `json:"backend,omitempty"`
		answermatching.Args
	}
)

// decodeArgs decodes a JSON object flag into v. Unknown keys are errors.
func decodeArgs(flagName, raw string, v any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("-%s: %w", flagName, err)
	}
	return nil
}

// stringList is a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// expandGlobs expands every pattern. Patterns matching nothing are kept as
// literal paths so the read reports the missing file.
func expandGlobs(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			paths = append(paths, p)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// readCorpus reads one segment per line.
func readCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := qapair.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// readQAFile reads one JSON array of pairs per line.
func readQAFile(path string) ([][]qapair.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	docs, err := qapair.ReadJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return docs, nil
}

// readAnswersFile reads one JSON array of answer strings per line.
func readAnswersFile(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var answers [][]string
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var a []string
		if err := json.Unmarshal([]byte(line), &a); err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", path, i+1, err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
