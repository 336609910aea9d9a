//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package questionanswering

import "github.com/MakeNowJust/heredoc/v2"

// systemPrompts are the system turns for question answering.
var systemPrompts = map[string]string{
	"standard": "You are a helpful AI assistant skilled in extractive question answering.",
	"english":  "You are a helpful AI assistant skilled in question answering.",
}

// templates take {passage} and {question}.
var templates = map[string]string{
	"standard": heredoc.Doc(`
		Given the following passage and question, extract the exact answer from the passage. The answer should be a short span of text found verbatim in the passage.
		###
		Passage:
		{passage}
		###
		Question:
		{question}
		###
		Answer:`),
	"eng-standard": heredoc.Doc(`
		Given the following passage and question, return the answer in English using only the information from the passage. The answer should be a concise response based on the provided content.
		###
		Passage:
		{passage}
		###
		Question:
		{question}
		###
		Answer:`),
	"eng-detailed": heredoc.Doc(`
		Given a passage written in a non-English language, followed by a question written in English. Your task is to extract the answer from the passage and provide it in English. If the answer is not explicitly mentioned in the passage, respond with "The passage does not provide this information."
		###
		Passage:
		{passage}
		###
		Question:
		{question}
		###
		Answer:`),
}
