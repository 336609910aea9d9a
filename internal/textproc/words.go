//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// wordRe matches letters and digits, keeping inner apostrophes and hyphens.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’-][\p{L}\p{N}]+)*`)

// Token is a word and its byte span in the text it came from.
type Token struct {
	Text       string
	Start, End int
}

// Words returns the word tokens of s in order.
func Words(s string) []Token {
	spans := wordRe.FindAllStringIndex(s, -1)
	tokens := make([]Token, len(spans))
	for i, sp := range spans {
		tokens[i] = Token{Text: s[sp[0]:sp[1]], Start: sp[0], End: sp[1]}
	}
	return tokens
}

// Adjacent reports whether only spaces separate a and b in s.
func Adjacent(s string, a, b Token) bool {
	return strings.TrimSpace(s[a.End:b.Start]) == ""
}

// Capitalized reports whether the token starts with an upper case letter.
func Capitalized(t Token) bool {
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsUpper(r)
}

// Numeric reports whether the token starts with a digit.
func Numeric(t Token) bool {
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsDigit(r)
}
