//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package textproc holds the light text processing shared by the answer
// extractors: sentence segmentation, word tokens and stop words.
package textproc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

// punktLanguages maps language codes to the bundled Punkt training files.
var punktLanguages = map[string]string{
	"en": "english",
	"de": "german",
	"fr": "french",
	"es": "spanish",
	"it": "italian",
	"pt": "portuguese",
	"nl": "dutch",
	"cs": "czech",
}

var (
	tokenizersMu sync.Mutex
	tokenizers   = map[string]*sentences.DefaultSentenceTokenizer{}
)

// tokenizer loads the Punkt model for lang once.
func tokenizer(lang string) (*sentences.DefaultSentenceTokenizer, error) {
	name, ok := punktLanguages[lang]
	if !ok {
		return nil, fmt.Errorf("no sentence model for language %q", lang)
	}
	tokenizersMu.Lock()
	defer tokenizersMu.Unlock()
	if t, ok := tokenizers[name]; ok {
		return t, nil
	}
	b, err := sentencesdata.Asset("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load %s punkt data: %w", name, err)
	}
	training, err := sentences.LoadTraining(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s punkt data: %w", name, err)
	}
	t := sentences.NewSentenceTokenizer(training)
	tokenizers[name] = t
	return t, nil
}

// Sentences splits text into trimmed, non-empty sentences.
func Sentences(lang, text string) ([]string, error) {
	t, err := tokenizer(lang)
	if err != nil {
		return nil, err
	}
	raw := t.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s := strings.TrimSpace(s.Text); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
