//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answerextraction

import "github.com/MakeNowJust/heredoc/v2"

// systemPrompts are the system turns for keyphrase extraction.
var systemPrompts = map[string]string{
	"standard": "You are an expert in keyphrase extraction from text. Your goal is to identify keyphrases in a given text that are crucial to its meaning. Focus on phrases that, if changed, would significantly alter the sentence's meaning or tone. Output only the phrases, one per line.",
	"teacher":  "You are an expert teacher who is tasked with designing reading comprehension questions from a text.",
}

// templates take {text} and {num_answers}.
var templates = map[string]string{
	"standard": heredoc.Doc(`
		Identify 1-{num_answers} short (1-3 words) keyphrases from the following text that are crucial to its meaning. Focus on phrases that, if changed, would significantly alter the sentence's meaning or tone. Output only the phrases, one per line:

		Text: {text}

		Key phrases:`),
	"answer-rq": heredoc.Doc(`
		Analyze the following passage to identify 1-{num_answers} key facts, concepts, and primary relationships presented. Focus on pieces of text that highlight core ideas, essential information, and connections between ideas that are central to understanding the passage as a whole. Extract concise segments that capture the main points and that can serve as a basis for comprehension questions. Output only the phrases, one per line:

		Text: {text}

		Key phrases:`),
	"eng-standard": heredoc.Doc(`
		Identify 1-{num_answers} short (1-3 words) keyphrases from the following text that are crucial to its meaning. Focus on phrases that, if changed, would significantly alter the sentence's meaning or tone. Output only the phrases in English, one per line:

		Text: {text}

		Key phrases:`),
	"eng-answer-rq": heredoc.Doc(`
		Analyze the following passage to identify 1-{num_answers} key facts, concepts, and primary relationships presented. Focus on pieces of text that highlight core ideas, essential information, and connections between ideas that are central to understanding the passage as a whole. Extract concise segments that capture the main points and that can serve as a basis for comprehension questions. Output only the phrases in English, one per line:

		Text: {text}

		Key phrases:`),
}
