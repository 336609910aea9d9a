//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answermatching

import "github.com/MakeNowJust/heredoc/v2"

var rubricSystemPrompt = "You are a helpful AI assistant skilled in evaluating answers to questions given a context."

// rubricTemplate takes {context}, {question} and {answer}.
var rubricTemplate = heredoc.Doc(`
	You are an evaluator tasked with assessing the quality of an answer based on a given context and question. Assign a score between 1 and 5 using the following criteria:

	Scoring Guidelines:
	1 (Poor): The answer does not address the question, provides incorrect information, or is unrelated to the context.
	2 (Below Average): The answer demonstrates limited understanding, contains major errors, or omits critical elements, making it inadequate.
	3 (Average): The answer is somewhat correct but lacks clarity, completeness, or sufficient relevance to fully address the question.
	4 (Good): The answer is clear, mostly correct, and addresses the key points of the question effectively, though minor improvements are possible.
	5 (Excellent): The answer is entirely correct, comprehensive, and demonstrates a deep understanding of the question and context.

	Instructions:
	Read the context, question, and answer carefully.
	Use the scoring guidelines to assign a score from 1 to 5.
	Ensure your score reflects the distinctions between the levels.
	Please output only the score.

	###
	Context:
	{context}
	###
	Question:
	{question}
	###
	Answer:
	{answer}
	###
	Score:`)
