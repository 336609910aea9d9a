//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package scorer

import "github.com/MakeNowJust/heredoc/v2"

var mqmSystemPrompt = "You are an annotator for assessing the quality of machine translation. Your task is to identify errors and assess the quality of the translation."

// mqmTemplate takes {source_lang}, {source_seg}, {target_lang} and {target_seg}.
var mqmTemplate = heredoc.Doc(`
	{source_lang} source:
	` + "```" + `{source_seg}` + "```" + `
	{target_lang} translation:
	` + "```" + `{target_seg}` + "```" + `

	Based on the source segment and machine translation surrounded with triple backticks, identify error types in the translation and classify them. The categories of errors are: accuracy (addition, mistranslation, omission, untranslated text), fluency (character encoding, grammar, inconsistency, punctuation, register, spelling), style (awkward), terminology (inappropriate for context, inconsistent use), non-translation, other, or no-error.
	Each error is classified as one of three categories: critical, major, and minor. Critical errors inhibit comprehension of the text. Major errors disrupt the flow, but what the text is trying to say is still understandable. Minor errors are technically errors, but do not disrupt the flow or hinder comprehension.`)

type mqmShot struct {
	sourceLang string
	sourceSeg  string
	targetLang string
	targetSeg  string
	answer     string
}

// mqmShots are the worked examples placed before the segment to annotate.
var mqmShots = []mqmShot{
	{
		sourceLang: "English",
		sourceSeg:  "I do apologise about this, we must gain permission from the account holder to discuss an order with another person, I apologise if this was done previously, however, I would not be able to discuss this with yourself without the account holders permission.",
		targetLang: "German",
		targetSeg:  "Ich entschuldige mich dafür, wir müssen die Erlaubnis einholen, um eine Bestellung mit einer anderen Person zu besprechen. Ich entschuldige mich, falls dies zuvor geschehen wäre, aber ohne die Erlaubnis des Kontoinhabers wäre ich nicht in der Lage, dies mit dir involvement.",
		answer:     "Critical:\nno-error\nMajor:\naccuracy/mistranslation - \"involvement\"\naccuracy/omission - \"the account holder\"\nMinor:\nfluency/grammar - \"wäre\"\nfluency/register - \"dir\"\n",
	},
	{
		sourceLang: "English",
		sourceSeg:  "Talks have resumed in Vienna to try to revive the nuclear pact, with both sides trying to gauge the prospects of success after the latest exchanges in the stop-start negotiations.",
		targetLang: "Czech",
		targetSeg:  "Ve Vídni se ve Vídni obnovily rozhovory o oživení jaderného paktu, přičemž obě partaje se snaží posoudit vyhlídky na úspěch po posledních výměnách v jednáních.",
		answer:     "Critical:\nno-error\nMajor:\naccuracy/addition - \"ve Vídni\"\naccuracy/omission - \"the stop-start\"\nMinor:\nterminology/inappropriate for context - \"partaje\"\n",
	},
	{
		sourceLang: "Chinese",
		sourceSeg:  "大众点评乌鲁木齐家居卖场频道为您提供高铁居然之家地址，电话，营业时间等最新商户信息，找装修公司，就上大众点评",
		targetLang: "English",
		targetSeg:  "Urumqi Home Furnishing Store Channel provides you with the latest business information such as the address, telephone number, business hours, etc., of high-speed rail, and find a decoration company, and go to the reviews.",
		answer:     "Critical:\naccuracy/addition - \"of high-speed rail\"\nMajor:\naccuracy/mistranslation - \"go to the reviews\"\nMinor:\nstyle/awkward - \"etc.,\"\n",
	},
}
