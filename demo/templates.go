//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package demo

import "github.com/MakeNowJust/heredoc/v2"

var qagSystemPrompt = "You are a helpful AI assistant skilled in generating questions and answers from given passages."

// qagTemplate takes {src_passage}, {ref_passage} and {alternatives}.
var qagTemplate = heredoc.Doc(`
	"Generate question-answer pairs to verify translation accuracy. Each answer should be a key phrase, concept, or entity from the original passage (source or reference) that could help detect errors or mistranslations in the candidate(s).
	The questions and answers must be strictly in English, while ensuring that the meaning of the answer is preserved. The questions should be diverse and cover different aspects of the passage. Answer in the format:

	Q: <question1>
	A: <answer1>

	Q: <question2>
	A: <answer2>

	...

	Source Passage:
	{src_passage}

	Reference Passage:
	{ref_passage}

	Candidate Passage(s):
	{alternatives}

	Question-Answer Pairs:
`)

var qaSystemPrompt = "You are a helpful AI assistant skilled in question answering."

// qaTemplate takes {passage} and {question}.
var qaTemplate = heredoc.Doc(`
	Given the following passage and question, return the answer in English using only the information from the passage. The answer should be a concise response based on the provided content.
	###
	Passage:
	{passage}
	###
	Question:
	{question}
	###
	Answer:`)
